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

// ServiceHandler implements CRUD over the authenticated user's services.
type ServiceHandler struct {
	Services ServiceStore
	Audit    *service.AuditPublisher
}

func NewServiceHandler(services ServiceStore, audit *service.AuditPublisher) *ServiceHandler {
	return &ServiceHandler{Services: services, Audit: audit}
}

type serviceForm struct {
	Name  *string `json:"name" form:"name"`
	Price *int64  `json:"price" form:"price"`
}

func (f *serviceForm) missing() []string {
	var m []string
	if !present(f.Name) {
		m = append(m, "Service name")
	}
	if f.Price == nil {
		m = append(m, "price")
	}
	return m
}

// List handles GET /services/ and returns only the caller's services.
func (h *ServiceHandler) List(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return apperr.Respond(c, err)
	}
	ctx, cancel := dbCtx(c)
	defer cancel()

	items, err := h.Services.ListByOwner(ctx, user.ID)
	if err != nil {
		return apperr.Respond(c, err)
	}
	return c.JSON(http.StatusOK, items)
}

// Create handles POST /services/.
func (h *ServiceHandler) Create(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return apperr.Respond(c, err)
	}
	var f serviceForm
	if err := c.Bind(&f); err != nil {
		return apperr.Respond(c, apperr.New(apperr.Validation, "Invalid request body"))
	}
	if m := f.missing(); len(m) > 0 {
		return apperr.Respond(c, apperr.New(apperr.Validation, requiredMessage(m)))
	}

	svc := model.Service{
		UserID: user.ID,
		Name:   strings.TrimSpace(*f.Name),
		Price:  *f.Price,
	}
	ctx, cancel := dbCtx(c)
	defer cancel()
	if err := h.Services.Create(ctx, &svc); err != nil {
		return apperr.Respond(c, err)
	}
	h.Audit.Record(ctx, "created", "service", svc.ID, user.ID)
	return c.JSON(http.StatusCreated, svc)
}

// Retrieve handles GET /services/:id/.
func (h *ServiceHandler) Retrieve(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return apperr.Respond(c, err)
	}
	id, ok := parseID(c)
	if !ok {
		return apperr.Respond(c, apperr.New(apperr.NotFound, "Service does not exist"))
	}
	ctx, cancel := dbCtx(c)
	defer cancel()

	svc, err := h.Services.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return apperr.Respond(c, apperr.New(apperr.NotFound, "Service does not exist"))
		}
		return apperr.Respond(c, err)
	}
	if err := guard.Check(svc.UserID, user.ID); err != nil {
		return apperr.Respond(c, apperr.New(apperr.Authorization, "Access to service is restricted to owner"))
	}
	return c.JSON(http.StatusOK, svc)
}

// Update handles PUT /services/:id/ with partial-update semantics.
func (h *ServiceHandler) Update(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return apperr.Respond(c, err)
	}
	id, ok := parseID(c)
	if !ok {
		return apperr.Respond(c, apperr.New(apperr.NotFound, "Service does not exist"))
	}
	ctx, cancel := dbCtx(c)
	defer cancel()

	svc, err := h.Services.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return apperr.Respond(c, apperr.New(apperr.NotFound, "Service does not exist"))
		}
		return apperr.Respond(c, err)
	}
	if err := guard.Check(svc.UserID, user.ID); err != nil {
		return apperr.Respond(c, apperr.New(apperr.Authorization, "Access to service is restricted to owner"))
	}

	var f serviceForm
	if err := c.Bind(&f); err != nil {
		return apperr.Respond(c, apperr.New(apperr.Validation, "Invalid request body"))
	}
	if present(f.Name) {
		svc.Name = strings.TrimSpace(*f.Name)
	}
	if f.Price != nil {
		svc.Price = *f.Price
	}
	if err := h.Services.Update(ctx, &svc); err != nil {
		return apperr.Respond(c, err)
	}
	h.Audit.Record(ctx, "updated", "service", svc.ID, user.ID)
	return c.JSON(http.StatusOK, svc)
}

// Delete handles DELETE /services/:id/.
func (h *ServiceHandler) Delete(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return apperr.Respond(c, err)
	}
	id, ok := parseID(c)
	if !ok {
		return apperr.Respond(c, apperr.New(apperr.NotFound, "Service does not exist"))
	}
	ctx, cancel := dbCtx(c)
	defer cancel()

	svc, err := h.Services.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return apperr.Respond(c, apperr.New(apperr.NotFound, "Service does not exist"))
		}
		return apperr.Respond(c, err)
	}
	if err := guard.Check(svc.UserID, user.ID); err != nil {
		return apperr.Respond(c, apperr.New(apperr.Authorization, "Access to service is restricted to owner"))
	}
	if err := h.Services.Delete(ctx, id); err != nil {
		return apperr.Respond(c, err)
	}
	h.Audit.Record(ctx, "deleted", "service", id, user.ID)
	return c.NoContent(http.StatusNoContent)
}
