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

// AccountHandler implements CRUD over the authenticated user's payment
// accounts.
type AccountHandler struct {
	Accounts AccountStore
	Audit    *service.AuditPublisher
}

func NewAccountHandler(accounts AccountStore, audit *service.AuditPublisher) *AccountHandler {
	return &AccountHandler{Accounts: accounts, Audit: audit}
}

type accountForm struct {
	Name            *string `json:"name" form:"name"`
	PhoneNo         *string `json:"phone_no" form:"phone_no"`
	AccountNo       *string `json:"account_no" form:"account_no"`
	AccountProvider *string `json:"account_provider" form:"account_provider"`
}

func (f *accountForm) missing() []string {
	var m []string
	if !present(f.Name) {
		m = append(m, "Account name")
	}
	if !present(f.PhoneNo) {
		m = append(m, "phone no")
	}
	if !present(f.AccountNo) {
		m = append(m, "account no")
	}
	if !present(f.AccountProvider) {
		m = append(m, "account provider")
	}
	return m
}

// List handles GET /accounts/ and returns only the caller's accounts.
func (h *AccountHandler) List(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return apperr.Respond(c, err)
	}
	ctx, cancel := dbCtx(c)
	defer cancel()

	items, err := h.Accounts.ListByOwner(ctx, user.ID)
	if err != nil {
		return apperr.Respond(c, err)
	}
	return c.JSON(http.StatusOK, items)
}

// Create handles POST /accounts/.
func (h *AccountHandler) Create(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return apperr.Respond(c, err)
	}
	var f accountForm
	if err := c.Bind(&f); err != nil {
		return apperr.Respond(c, apperr.New(apperr.Validation, "Invalid request body"))
	}
	if m := f.missing(); len(m) > 0 {
		return apperr.Respond(c, apperr.New(apperr.Validation, requiredMessage(m)))
	}

	account := model.Account{
		UserID:          user.ID,
		Name:            strings.TrimSpace(*f.Name),
		PhoneNo:         strings.TrimSpace(*f.PhoneNo),
		AccountNo:       strings.TrimSpace(*f.AccountNo),
		AccountProvider: strings.TrimSpace(*f.AccountProvider),
	}
	ctx, cancel := dbCtx(c)
	defer cancel()
	if err := h.Accounts.Create(ctx, &account); err != nil {
		return apperr.Respond(c, err)
	}
	h.Audit.Record(ctx, "created", "account", account.ID, user.ID)
	return c.JSON(http.StatusCreated, account)
}

// Retrieve handles GET /accounts/:id/.
func (h *AccountHandler) Retrieve(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return apperr.Respond(c, err)
	}
	id, ok := parseID(c)
	if !ok {
		return apperr.Respond(c, apperr.New(apperr.NotFound, "Account does not exist"))
	}
	ctx, cancel := dbCtx(c)
	defer cancel()

	account, err := h.Accounts.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return apperr.Respond(c, apperr.New(apperr.NotFound, "Account does not exist"))
		}
		return apperr.Respond(c, err)
	}
	if err := guard.Check(account.UserID, user.ID); err != nil {
		return apperr.Respond(c, apperr.New(apperr.Authorization, "Access to account is restricted to owner"))
	}
	return c.JSON(http.StatusOK, account)
}

// Update handles PUT /accounts/:id/ with partial-update semantics.
func (h *AccountHandler) Update(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return apperr.Respond(c, err)
	}
	id, ok := parseID(c)
	if !ok {
		return apperr.Respond(c, apperr.New(apperr.NotFound, "Account does not exist"))
	}
	ctx, cancel := dbCtx(c)
	defer cancel()

	account, err := h.Accounts.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return apperr.Respond(c, apperr.New(apperr.NotFound, "Account does not exist"))
		}
		return apperr.Respond(c, err)
	}
	if err := guard.Check(account.UserID, user.ID); err != nil {
		return apperr.Respond(c, apperr.New(apperr.Authorization, "Access to account is restricted to owner"))
	}

	var f accountForm
	if err := c.Bind(&f); err != nil {
		return apperr.Respond(c, apperr.New(apperr.Validation, "Invalid request body"))
	}
	if present(f.Name) {
		account.Name = strings.TrimSpace(*f.Name)
	}
	if present(f.PhoneNo) {
		account.PhoneNo = strings.TrimSpace(*f.PhoneNo)
	}
	if present(f.AccountNo) {
		account.AccountNo = strings.TrimSpace(*f.AccountNo)
	}
	if present(f.AccountProvider) {
		account.AccountProvider = strings.TrimSpace(*f.AccountProvider)
	}
	if err := h.Accounts.Update(ctx, &account); err != nil {
		return apperr.Respond(c, err)
	}
	h.Audit.Record(ctx, "updated", "account", account.ID, user.ID)
	return c.JSON(http.StatusOK, account)
}

// Delete handles DELETE /accounts/:id/.
func (h *AccountHandler) Delete(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return apperr.Respond(c, err)
	}
	id, ok := parseID(c)
	if !ok {
		return apperr.Respond(c, apperr.New(apperr.NotFound, "Account does not exist"))
	}
	ctx, cancel := dbCtx(c)
	defer cancel()

	account, err := h.Accounts.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return apperr.Respond(c, apperr.New(apperr.NotFound, "Account does not exist"))
		}
		return apperr.Respond(c, err)
	}
	if err := guard.Check(account.UserID, user.ID); err != nil {
		return apperr.Respond(c, apperr.New(apperr.Authorization, "Access to account is restricted to owner"))
	}
	if err := h.Accounts.Delete(ctx, id); err != nil {
		return apperr.Respond(c, err)
	}
	h.Audit.Record(ctx, "deleted", "account", id, user.ID)
	return c.NoContent(http.StatusNoContent)
}
