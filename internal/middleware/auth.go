// Package middleware contains reusable HTTP middleware: the bearer token
// gate, the per-user response cache and request logging.
package middleware

import (
	"context"
	"database/sql"
	"errors"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/duka-bookkeeping/internal/apperr"
	"github.com/iliyamo/duka-bookkeeping/internal/auth"
	"github.com/iliyamo/duka-bookkeeping/internal/model"
)

// TokenHeader is the request header carrying the bearer token. The wire
// contract names this header `username` rather than `Authorization`, and
// existing clients depend on that, so the name is kept.
const TokenHeader = "username"

// currentUserKey is the context key under which the authenticated user is
// stored for handlers.
const currentUserKey = "current_user"

// UserResolver resolves a token's user id to a live user record.
type UserResolver interface {
	GetByID(ctx context.Context, id uint64) (model.User, error)
}

// TokenAuth returns middleware enforcing the authentication gate shared by
// every protected endpoint, in this exact order:
//
//  1. a missing header is 401 "Unauthenticated request";
//  2. a header that fails verification (malformed, expired or tampered) is
//     403 "Invalid token";
//  3. a verified token whose user id no longer resolves to a stored user is
//     also 403 "Invalid token" — a token never vouches for a deleted user.
//
// On success the resolved user is stored in the context for CurrentUser.
func TokenAuth(secret string, users UserResolver) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw := c.Request().Header.Get(TokenHeader)
			if raw == "" {
				return apperr.Respond(c, apperr.New(apperr.Authentication, "Unauthenticated request"))
			}
			uid, err := auth.Verify(secret, raw)
			if err != nil {
				// Expired, malformed and forged tokens collapse to one
				// external outcome.
				return apperr.Respond(c, apperr.New(apperr.Authorization, "Invalid token"))
			}
			user, err := users.GetByID(c.Request().Context(), uid)
			if err != nil {
				if errors.Is(err, sql.ErrNoRows) {
					return apperr.Respond(c, apperr.New(apperr.Authorization, "Invalid token"))
				}
				return apperr.Respond(c, err)
			}
			c.Set(currentUserKey, user)
			return next(c)
		}
	}
}

// CurrentUser returns the authenticated user stored by TokenAuth. The second
// result is false when the gate did not run for this route.
func CurrentUser(c echo.Context) (model.User, bool) {
	u, ok := c.Get(currentUserKey).(model.User)
	return u, ok
}

// SetCurrentUser stores a user in the context the way TokenAuth does. It
// exists so handler tests can run without the full gate.
func SetCurrentUser(c echo.Context, u model.User) {
	c.Set(currentUserKey, u)
}
