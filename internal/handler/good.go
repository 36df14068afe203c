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

// GoodHandler implements CRUD over the authenticated user's goods.
type GoodHandler struct {
	Goods GoodStore
	Audit *service.AuditPublisher
}

func NewGoodHandler(goods GoodStore, audit *service.AuditPublisher) *GoodHandler {
	return &GoodHandler{Goods: goods, Audit: audit}
}

// goodForm binds create and partial-update payloads. Price and Necessary are
// pointers so a zero price or a false flag still counts as provided.
type goodForm struct {
	Name      *string `json:"name" form:"name"`
	Price     *int64  `json:"price" form:"price"`
	Necessary *bool   `json:"necessary" form:"necessary"`
}

func (f *goodForm) missing() []string {
	var m []string
	if !present(f.Name) {
		m = append(m, "Good name")
	}
	if f.Price == nil {
		m = append(m, "price")
	}
	if f.Necessary == nil {
		m = append(m, "necessary")
	}
	return m
}

// List handles GET /goods/ and returns only the caller's goods.
func (h *GoodHandler) List(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return apperr.Respond(c, err)
	}
	ctx, cancel := dbCtx(c)
	defer cancel()

	items, err := h.Goods.ListByOwner(ctx, user.ID)
	if err != nil {
		return apperr.Respond(c, err)
	}
	return c.JSON(http.StatusOK, items)
}

// Create handles POST /goods/.
func (h *GoodHandler) Create(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return apperr.Respond(c, err)
	}
	var f goodForm
	if err := c.Bind(&f); err != nil {
		return apperr.Respond(c, apperr.New(apperr.Validation, "Invalid request body"))
	}
	if m := f.missing(); len(m) > 0 {
		return apperr.Respond(c, apperr.New(apperr.Validation, requiredMessage(m)))
	}

	good := model.Good{
		UserID:    user.ID,
		Name:      strings.TrimSpace(*f.Name),
		Price:     *f.Price,
		Necessary: *f.Necessary,
	}
	ctx, cancel := dbCtx(c)
	defer cancel()
	if err := h.Goods.Create(ctx, &good); err != nil {
		return apperr.Respond(c, err)
	}
	h.Audit.Record(ctx, "created", "good", good.ID, user.ID)
	return c.JSON(http.StatusCreated, good)
}

// Retrieve handles GET /goods/:id/.
func (h *GoodHandler) Retrieve(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return apperr.Respond(c, err)
	}
	id, ok := parseID(c)
	if !ok {
		return apperr.Respond(c, apperr.New(apperr.NotFound, "Good does not exist"))
	}
	ctx, cancel := dbCtx(c)
	defer cancel()

	good, err := h.Goods.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return apperr.Respond(c, apperr.New(apperr.NotFound, "Good does not exist"))
		}
		return apperr.Respond(c, err)
	}
	if err := guard.Check(good.UserID, user.ID); err != nil {
		return apperr.Respond(c, apperr.New(apperr.Authorization, "Access to good is restricted to owner"))
	}
	return c.JSON(http.StatusOK, good)
}

// Update handles PUT /goods/:id/ with partial-update semantics.
func (h *GoodHandler) Update(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return apperr.Respond(c, err)
	}
	id, ok := parseID(c)
	if !ok {
		return apperr.Respond(c, apperr.New(apperr.NotFound, "Good does not exist"))
	}
	ctx, cancel := dbCtx(c)
	defer cancel()

	good, err := h.Goods.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return apperr.Respond(c, apperr.New(apperr.NotFound, "Good does not exist"))
		}
		return apperr.Respond(c, err)
	}
	if err := guard.Check(good.UserID, user.ID); err != nil {
		return apperr.Respond(c, apperr.New(apperr.Authorization, "Access to good is restricted to owner"))
	}

	var f goodForm
	if err := c.Bind(&f); err != nil {
		return apperr.Respond(c, apperr.New(apperr.Validation, "Invalid request body"))
	}
	if present(f.Name) {
		good.Name = strings.TrimSpace(*f.Name)
	}
	if f.Price != nil {
		good.Price = *f.Price
	}
	if f.Necessary != nil {
		good.Necessary = *f.Necessary
	}
	if err := h.Goods.Update(ctx, &good); err != nil {
		return apperr.Respond(c, err)
	}
	h.Audit.Record(ctx, "updated", "good", good.ID, user.ID)
	return c.JSON(http.StatusOK, good)
}

// Delete handles DELETE /goods/:id/.
func (h *GoodHandler) Delete(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return apperr.Respond(c, err)
	}
	id, ok := parseID(c)
	if !ok {
		return apperr.Respond(c, apperr.New(apperr.NotFound, "Good does not exist"))
	}
	ctx, cancel := dbCtx(c)
	defer cancel()

	good, err := h.Goods.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return apperr.Respond(c, apperr.New(apperr.NotFound, "Good does not exist"))
		}
		return apperr.Respond(c, err)
	}
	if err := guard.Check(good.UserID, user.ID); err != nil {
		return apperr.Respond(c, apperr.New(apperr.Authorization, "Access to good is restricted to owner"))
	}
	if err := h.Goods.Delete(ctx, id); err != nil {
		return apperr.Respond(c, err)
	}
	h.Audit.Record(ctx, "deleted", "good", id, user.ID)
	return c.NoContent(http.StatusNoContent)
}
