// Package handler implements the HTTP endpoints. Every protected handler
// runs behind the middleware token gate and follows the same ordering:
// resolve the user, check existence before ownership, validate, persist.
package handler

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/duka-bookkeeping/internal/apperr"
	"github.com/iliyamo/duka-bookkeeping/internal/middleware"
	"github.com/iliyamo/duka-bookkeeping/internal/model"
)

// Store interfaces are satisfied by the concrete repositories; tests swap in
// in-memory fakes.

// UserStore is the credential store consumed by the auth endpoints.
type UserStore interface {
	Create(ctx context.Context, username, password string, cost int) (uint64, error)
	GetByUsername(ctx context.Context, username string) (model.User, error)
	GetByID(ctx context.Context, id uint64) (model.User, error)
	SetActive(ctx context.Context, id uint64, active bool) error
}

// OutletStore persists outlets.
type OutletStore interface {
	Create(ctx context.Context, o *model.Outlet) error
	ListByOwner(ctx context.Context, ownerID uint64) ([]model.Outlet, error)
	GetByID(ctx context.Context, id uint64) (model.Outlet, error)
	Update(ctx context.Context, o *model.Outlet) error
	Delete(ctx context.Context, id uint64) error
}

// GoodStore persists goods.
type GoodStore interface {
	Create(ctx context.Context, g *model.Good) error
	ListByOwner(ctx context.Context, ownerID uint64) ([]model.Good, error)
	GetByID(ctx context.Context, id uint64) (model.Good, error)
	Update(ctx context.Context, g *model.Good) error
	Delete(ctx context.Context, id uint64) error
}

// ServiceStore persists services.
type ServiceStore interface {
	Create(ctx context.Context, s *model.Service) error
	ListByOwner(ctx context.Context, ownerID uint64) ([]model.Service, error)
	GetByID(ctx context.Context, id uint64) (model.Service, error)
	Update(ctx context.Context, s *model.Service) error
	Delete(ctx context.Context, id uint64) error
}

// AccountStore persists accounts.
type AccountStore interface {
	Create(ctx context.Context, a *model.Account) error
	ListByOwner(ctx context.Context, ownerID uint64) ([]model.Account, error)
	GetByID(ctx context.Context, id uint64) (model.Account, error)
	Update(ctx context.Context, a *model.Account) error
	Delete(ctx context.Context, id uint64) error
}

// currentUser returns the authenticated user placed in the context by the
// token gate.
func currentUser(c echo.Context) (model.User, error) {
	u, ok := middleware.CurrentUser(c)
	if !ok {
		return model.User{}, apperr.New(apperr.Authentication, "Unauthenticated request")
	}
	return u, nil
}

// parseID extracts the numeric :id path parameter. An unparseable id behaves
// like an unknown one, so callers respond 404.
func parseID(c echo.Context) (uint64, bool) {
	id, err := strconv.ParseUint(strings.TrimSuffix(c.Param("id"), "/"), 10, 64)
	if err != nil {
		return 0, false
	}
	return id, true
}

// dbCtx derives a bounded context for store calls from the request.
func dbCtx(c echo.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request().Context(), 5*time.Second)
}

// requiredMessage renders a validation message naming every missing field,
// e.g. "Outlet name, location are required". The wording keeps the per-field
// phrases ("phone no ... required") clients pattern-match against.
func requiredMessage(missing []string) string {
	verb := " is required"
	if len(missing) > 1 {
		verb = " are required"
	}
	return strings.Join(missing, ", ") + verb
}

// present reports whether an optional string field was provided with a
// non-empty value; an empty or whitespace-only string counts as missing.
func present(s *string) bool {
	return s != nil && strings.TrimSpace(*s) != ""
}
