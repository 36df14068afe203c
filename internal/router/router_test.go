package router

// End-to-end tests over the registered routes with in-memory stores: the
// register → login → create → list flow plus the gate behavior, through the
// real middleware stack.

import (
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/duka-bookkeeping/internal/auth"
	"github.com/iliyamo/duka-bookkeeping/internal/config"
	"github.com/iliyamo/duka-bookkeeping/internal/handler"
	"github.com/iliyamo/duka-bookkeeping/internal/model"
)

// ----- in-memory stores -----

type memUsers struct {
	byID   map[uint64]model.User
	byName map[string]model.User
	nextID uint64
}

func newMemUsers() *memUsers {
	return &memUsers{byID: map[uint64]model.User{}, byName: map[string]model.User{}, nextID: 1}
}

func (m *memUsers) Create(_ context.Context, username, password string, cost int) (uint64, error) {
	hash, err := auth.HashPassword(password, cost)
	if err != nil {
		return 0, err
	}
	u := model.User{ID: m.nextID, Username: username, PasswordHash: hash}
	m.nextID++
	m.byID[u.ID] = u
	m.byName[u.Username] = u
	return u.ID, nil
}

func (m *memUsers) GetByUsername(_ context.Context, username string) (model.User, error) {
	u, ok := m.byName[username]
	if !ok {
		return model.User{}, sql.ErrNoRows
	}
	return u, nil
}

func (m *memUsers) GetByID(_ context.Context, id uint64) (model.User, error) {
	u, ok := m.byID[id]
	if !ok {
		return model.User{}, sql.ErrNoRows
	}
	return u, nil
}

func (m *memUsers) SetActive(_ context.Context, id uint64, active bool) error {
	u, ok := m.byID[id]
	if !ok {
		return sql.ErrNoRows
	}
	u.IsActive = active
	m.byID[id] = u
	m.byName[u.Username] = u
	return nil
}

type memOutlets struct {
	items  map[uint64]model.Outlet
	nextID uint64
}

func newMemOutlets() *memOutlets { return &memOutlets{items: map[uint64]model.Outlet{}, nextID: 1} }

func (m *memOutlets) Create(_ context.Context, o *model.Outlet) error {
	o.ID = m.nextID
	m.nextID++
	m.items[o.ID] = *o
	return nil
}

func (m *memOutlets) ListByOwner(_ context.Context, ownerID uint64) ([]model.Outlet, error) {
	out := []model.Outlet{}
	for id := uint64(1); id < m.nextID; id++ {
		if o, ok := m.items[id]; ok && o.UserID == ownerID {
			out = append(out, o)
		}
	}
	return out, nil
}

func (m *memOutlets) GetByID(_ context.Context, id uint64) (model.Outlet, error) {
	o, ok := m.items[id]
	if !ok {
		return model.Outlet{}, sql.ErrNoRows
	}
	return o, nil
}

func (m *memOutlets) Update(_ context.Context, o *model.Outlet) error {
	m.items[o.ID] = *o
	return nil
}

func (m *memOutlets) Delete(_ context.Context, id uint64) error {
	delete(m.items, id)
	return nil
}

type memGoods struct{}

func (memGoods) Create(_ context.Context, _ *model.Good) error { return nil }
func (memGoods) ListByOwner(_ context.Context, _ uint64) ([]model.Good, error) {
	return []model.Good{}, nil
}
func (memGoods) GetByID(_ context.Context, _ uint64) (model.Good, error) {
	return model.Good{}, sql.ErrNoRows
}
func (memGoods) Update(_ context.Context, _ *model.Good) error { return nil }
func (memGoods) Delete(_ context.Context, _ uint64) error      { return nil }

type memServices struct{}

func (memServices) Create(_ context.Context, _ *model.Service) error { return nil }
func (memServices) ListByOwner(_ context.Context, _ uint64) ([]model.Service, error) {
	return []model.Service{}, nil
}
func (memServices) GetByID(_ context.Context, _ uint64) (model.Service, error) {
	return model.Service{}, sql.ErrNoRows
}
func (memServices) Update(_ context.Context, _ *model.Service) error { return nil }
func (memServices) Delete(_ context.Context, _ uint64) error         { return nil }

type memAccounts struct{}

func (memAccounts) Create(_ context.Context, _ *model.Account) error { return nil }
func (memAccounts) ListByOwner(_ context.Context, _ uint64) ([]model.Account, error) {
	return []model.Account{}, nil
}
func (memAccounts) GetByID(_ context.Context, _ uint64) (model.Account, error) {
	return model.Account{}, sql.ErrNoRows
}
func (memAccounts) Update(_ context.Context, _ *model.Account) error { return nil }
func (memAccounts) Delete(_ context.Context, _ uint64) error         { return nil }

// ----- helpers -----

func newTestServer(t *testing.T) *echo.Echo {
	t.Helper()
	cfg := config.Config{TokenSecret: "router-test-secret", TokenTTLSeconds: 600, BcryptCost: 4}
	users := newMemUsers()

	e := echo.New()
	Register(e, Deps{
		Cfg:      cfg,
		Users:    users,
		Auth:     handler.NewAuthHandler(cfg, users),
		Outlets:  handler.NewOutletHandler(newMemOutlets(), nil),
		Goods:    handler.NewGoodHandler(memGoods{}, nil),
		Services: handler.NewServiceHandler(memServices{}, nil),
		Accounts: handler.NewAccountHandler(memAccounts{}, nil),
	})
	return e
}

func do(e *echo.Echo, method, path, body, token string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if token != "" {
		req.Header.Set("username", token)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

// ----- tests -----

func TestRegisterLoginCreateListFlow(t *testing.T) {
	e := newTestServer(t)

	rec := do(e, http.MethodPost, "/auth/new/", `{"username":"alice","password":"secret"}`, "")
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = do(e, http.MethodPost, "/auth/login/", `{"username":"alice","password":"secret"}`, "")
	require.Equal(t, http.StatusOK, rec.Code)
	var login struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &login))
	require.NotEmpty(t, login.Token)

	rec = do(e, http.MethodPost, "/outlets/",
		`{"name":"Shop","postal_address":"1 Main St","location":"Nairobi"}`, login.Token)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = do(e, http.MethodGet, "/outlets/", "", login.Token)
	require.Equal(t, http.StatusOK, rec.Code)
	var items []model.Outlet
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &items))
	require.Len(t, items, 1)
	assert.Equal(t, "Shop", items[0].Name)
}

func TestGateStatusMapping(t *testing.T) {
	e := newTestServer(t)

	rec := do(e, http.MethodGet, "/accounts/", "", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "Unauthenticated request")

	garbage := "9f86d081884c7d659a2feaa0c55ad015a3bf4f1b2b0b822cd15d6c15b0f00a08"
	rec = do(e, http.MethodGet, "/accounts/", "", garbage)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Contains(t, rec.Body.String(), "Invalid token")
}

func TestLogoutRoute(t *testing.T) {
	e := newTestServer(t)

	do(e, http.MethodPost, "/auth/new/", `{"username":"alice","password":"secret"}`, "")
	rec := do(e, http.MethodPost, "/auth/login/", `{"username":"alice","password":"secret"}`, "")
	require.Equal(t, http.StatusOK, rec.Code)
	var login struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &login))

	rec = do(e, http.MethodGet, "/auth/logout/", "", login.Token)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "User successfully logged out")

	rec = do(e, http.MethodGet, "/auth/logout/", "", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "User is not logged in")
}

func TestWelcomeAndHealth(t *testing.T) {
	e := newTestServer(t)

	rec := do(e, http.MethodGet, "/", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Welcome home!")

	rec = do(e, http.MethodGet, "/healthz", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)
}
