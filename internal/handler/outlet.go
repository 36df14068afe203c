package handler

import (
	"database/sql"
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/duka-bookkeeping/internal/apperr"
	"github.com/iliyamo/duka-bookkeeping/internal/guard"
	"github.com/iliyamo/duka-bookkeeping/internal/model"
	"github.com/iliyamo/duka-bookkeeping/internal/service"
)

// OutletHandler implements CRUD over the authenticated user's outlets.
type OutletHandler struct {
	Outlets OutletStore
	Audit   *service.AuditPublisher
}

func NewOutletHandler(outlets OutletStore, audit *service.AuditPublisher) *OutletHandler {
	return &OutletHandler{Outlets: outlets, Audit: audit}
}

// outletForm binds create and partial-update payloads. Pointer fields make
// "absent" distinguishable from "empty".
type outletForm struct {
	Name          *string `json:"name" form:"name"`
	PostalAddress *string `json:"postal_address" form:"postal_address"`
	Location      *string `json:"location" form:"location"`
}

func (f *outletForm) missing() []string {
	var m []string
	if !present(f.Name) {
		m = append(m, "Outlet name")
	}
	if !present(f.PostalAddress) {
		m = append(m, "postal address")
	}
	if !present(f.Location) {
		m = append(m, "location")
	}
	return m
}

// List handles GET /outlets/ and returns only the caller's outlets.
func (h *OutletHandler) List(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return apperr.Respond(c, err)
	}
	ctx, cancel := dbCtx(c)
	defer cancel()

	items, err := h.Outlets.ListByOwner(ctx, user.ID)
	if err != nil {
		return apperr.Respond(c, err)
	}
	return c.JSON(http.StatusOK, items)
}

// Create handles POST /outlets/. All fields are required; every missing one
// is named in a single validation message.
func (h *OutletHandler) Create(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return apperr.Respond(c, err)
	}
	var f outletForm
	if err := c.Bind(&f); err != nil {
		return apperr.Respond(c, apperr.New(apperr.Validation, "Invalid request body"))
	}
	if m := f.missing(); len(m) > 0 {
		return apperr.Respond(c, apperr.New(apperr.Validation, requiredMessage(m)))
	}

	outlet := model.Outlet{
		UserID:        user.ID,
		Name:          strings.TrimSpace(*f.Name),
		PostalAddress: strings.TrimSpace(*f.PostalAddress),
		Location:      strings.TrimSpace(*f.Location),
	}
	ctx, cancel := dbCtx(c)
	defer cancel()
	if err := h.Outlets.Create(ctx, &outlet); err != nil {
		return apperr.Respond(c, err)
	}
	h.Audit.Record(ctx, "created", "outlet", outlet.ID, user.ID)
	return c.JSON(http.StatusCreated, outlet)
}

// Retrieve handles GET /outlets/:id/. Existence is checked before ownership,
// so an unknown id is 404 even for non-owners.
func (h *OutletHandler) Retrieve(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return apperr.Respond(c, err)
	}
	id, ok := parseID(c)
	if !ok {
		return apperr.Respond(c, apperr.New(apperr.NotFound, "Outlet does not exist"))
	}
	ctx, cancel := dbCtx(c)
	defer cancel()

	outlet, err := h.Outlets.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return apperr.Respond(c, apperr.New(apperr.NotFound, "Outlet does not exist"))
		}
		return apperr.Respond(c, err)
	}
	if err := guard.Check(outlet.UserID, user.ID); err != nil {
		return apperr.Respond(c, apperr.New(apperr.Authorization, "Access to outlet is restricted to owner"))
	}
	return c.JSON(http.StatusOK, outlet)
}

// Update handles PUT /outlets/:id/. Only fields present in the request are
// applied; ownership is checked before any field validation.
func (h *OutletHandler) Update(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return apperr.Respond(c, err)
	}
	id, ok := parseID(c)
	if !ok {
		return apperr.Respond(c, apperr.New(apperr.NotFound, "Outlet does not exist"))
	}
	ctx, cancel := dbCtx(c)
	defer cancel()

	outlet, err := h.Outlets.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return apperr.Respond(c, apperr.New(apperr.NotFound, "Outlet does not exist"))
		}
		return apperr.Respond(c, err)
	}
	if err := guard.Check(outlet.UserID, user.ID); err != nil {
		return apperr.Respond(c, apperr.New(apperr.Authorization, "Access to outlet is restricted to owner"))
	}

	var f outletForm
	if err := c.Bind(&f); err != nil {
		return apperr.Respond(c, apperr.New(apperr.Validation, "Invalid request body"))
	}
	if present(f.Name) {
		outlet.Name = strings.TrimSpace(*f.Name)
	}
	if present(f.PostalAddress) {
		outlet.PostalAddress = strings.TrimSpace(*f.PostalAddress)
	}
	if present(f.Location) {
		outlet.Location = strings.TrimSpace(*f.Location)
	}
	if err := h.Outlets.Update(ctx, &outlet); err != nil {
		return apperr.Respond(c, err)
	}
	h.Audit.Record(ctx, "updated", "outlet", outlet.ID, user.ID)
	return c.JSON(http.StatusOK, outlet)
}

// Delete handles DELETE /outlets/:id/ and responds 204 with an empty body.
func (h *OutletHandler) Delete(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return apperr.Respond(c, err)
	}
	id, ok := parseID(c)
	if !ok {
		return apperr.Respond(c, apperr.New(apperr.NotFound, "Outlet does not exist"))
	}
	ctx, cancel := dbCtx(c)
	defer cancel()

	outlet, err := h.Outlets.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return apperr.Respond(c, apperr.New(apperr.NotFound, "Outlet does not exist"))
		}
		return apperr.Respond(c, err)
	}
	if err := guard.Check(outlet.UserID, user.ID); err != nil {
		return apperr.Respond(c, apperr.New(apperr.Authorization, "Access to outlet is restricted to owner"))
	}
	if err := h.Outlets.Delete(ctx, id); err != nil {
		return apperr.Respond(c, err)
	}
	h.Audit.Record(ctx, "deleted", "outlet", id, user.ID)
	return c.NoContent(http.StatusNoContent)
}
