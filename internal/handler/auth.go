package handler

import (
	"database/sql"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/duka-bookkeeping/internal/apperr"
	"github.com/iliyamo/duka-bookkeeping/internal/auth"
	"github.com/iliyamo/duka-bookkeeping/internal/config"
	"github.com/iliyamo/duka-bookkeeping/internal/middleware"
	"github.com/iliyamo/duka-bookkeeping/internal/repository"
)

// AuthHandler bundles dependencies for the registration, login and logout
// endpoints.
type AuthHandler struct {
	Cfg   config.Config
	Users UserStore
}

func NewAuthHandler(cfg config.Config, users UserStore) *AuthHandler {
	return &AuthHandler{Cfg: cfg, Users: users}
}

type credentialsReq struct {
	Username string `json:"username" form:"username"`
	Password string `json:"password" form:"password"`
}

// Register handles POST /auth/new/ and creates a user. The password is
// stored only as a bcrypt hash and the new user starts logged out.
func (h *AuthHandler) Register(c echo.Context) error {
	var req credentialsReq
	if err := c.Bind(&req); err != nil {
		return apperr.Respond(c, apperr.New(apperr.Validation, "Username missing"))
	}
	req.Username = strings.TrimSpace(req.Username)
	if req.Username == "" {
		return apperr.Respond(c, apperr.New(apperr.Validation, "Username missing"))
	}
	if req.Password == "" {
		return apperr.Respond(c, apperr.New(apperr.Validation, "Password missing"))
	}

	ctx, cancel := dbCtx(c)
	defer cancel()

	if _, err := h.Users.Create(ctx, req.Username, req.Password, h.Cfg.BcryptCost); err != nil {
		if errors.Is(err, repository.ErrUserExists) {
			return apperr.Respond(c, apperr.New(apperr.Conflict, "User already exists"))
		}
		return apperr.Respond(c, err)
	}
	return c.JSON(http.StatusCreated, echo.Map{"message": "User successfully registered"})
}

// Login handles POST /auth/login/ and returns a bearer token on success.
/// Checks run in a fixed order so the reported failure is stable: username
// present, user exists, password present, password correct.
func (h *AuthHandler) Login(c echo.Context) error {
	var req credentialsReq
	if err := c.Bind(&req); err != nil {
		return apperr.Respond(c, apperr.New(apperr.Validation, "Username is required"))
	}
	req.Username = strings.TrimSpace(req.Username)
	if req.Username == "" {
		return apperr.Respond(c, apperr.New(apperr.Validation, "Username is required"))
	}

	ctx, cancel := dbCtx(c)
	defer cancel()

	user, err := h.Users.GetByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return apperr.Respond(c, apperr.New(apperr.Validation, "User does not exist"))
		}
		return apperr.Respond(c, err)
	}
	if req.Password == "" {
		return apperr.Respond(c, apperr.New(apperr.Validation, "Password is required"))
	}
	if !auth.VerifyPassword(user.PasswordHash, req.Password) {
		return apperr.Respond(c, apperr.New(apperr.Validation, "Incorrect password"))
	}

	token, err := auth.Issue(h.Cfg.TokenSecret, user.ID, time.Duration(h.Cfg.TokenTTLSeconds)*time.Second)
	if err != nil {
		return apperr.Respond(c, err)
	}
	if err := h.Users.SetActive(ctx, user.ID, true); err != nil {
		return apperr.Respond(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"token": token})
}

// Logout handles GET /auth/logout/. It requires a valid token in the
// `username` header and flips the user's is_active flag to false; any failure
// is reported as 400 "User is not logged in".
//
// Known limitation: logout does not revoke the token itself. A previously
// issued token keeps verifying until its natural expiry because tokens are
// stateless and there is no revocation list.
func (h *AuthHandler) Logout(c echo.Context) error {
	notLoggedIn := apperr.New(apperr.Validation, "User is not logged in")

	raw := c.Request().Header.Get(middleware.TokenHeader)
	if raw == "" {
		return apperr.Respond(c, notLoggedIn)
	}
	uid, err := auth.Verify(h.Cfg.TokenSecret, raw)
	if err != nil {
		return apperr.Respond(c, notLoggedIn)
	}

	ctx, cancel := dbCtx(c)
	defer cancel()

	user, err := h.Users.GetByID(ctx, uid)
	if err != nil {
		return apperr.Respond(c, notLoggedIn)
	}
	if err := h.Users.SetActive(ctx, user.ID, false); err != nil {
		return apperr.Respond(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "User successfully logged out"})
}
