package handler

// In-memory fakes for the store interfaces plus request helpers shared by the
// handler tests.

import (
	"context"
	"database/sql"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/duka-bookkeeping/internal/middleware"
	"github.com/iliyamo/duka-bookkeeping/internal/model"
	"github.com/iliyamo/duka-bookkeeping/internal/repository"
)

// ----- users -----

type fakeUserStore struct {
	byID     map[uint64]model.User
	byName   map[string]model.User
	nextID   uint64
	setCalls []struct {
		ID     uint64
		Active bool
	}
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{byID: map[uint64]model.User{}, byName: map[string]model.User{}, nextID: 1}
}

func (f *fakeUserStore) add(u model.User) model.User {
	if u.ID == 0 {
		u.ID = f.nextID
		f.nextID++
	}
	f.byID[u.ID] = u
	f.byName[u.Username] = u
	return u
}

func (f *fakeUserStore) Create(_ context.Context, username, password string, _ int) (uint64, error) {
	if _, ok := f.byName[username]; ok {
		return 0, repository.ErrUserExists
	}
	u := f.add(model.User{Username: username, PasswordHash: "hashed:" + password})
	return u.ID, nil
}

func (f *fakeUserStore) GetByUsername(_ context.Context, username string) (model.User, error) {
	u, ok := f.byName[username]
	if !ok {
		return model.User{}, sql.ErrNoRows
	}
	return u, nil
}

func (f *fakeUserStore) GetByID(_ context.Context, id uint64) (model.User, error) {
	u, ok := f.byID[id]
	if !ok {
		return model.User{}, sql.ErrNoRows
	}
	return u, nil
}

func (f *fakeUserStore) SetActive(_ context.Context, id uint64, active bool) error {
	u, ok := f.byID[id]
	if !ok {
		return sql.ErrNoRows
	}
	u.IsActive = active
	f.byID[id] = u
	f.byName[u.Username] = u
	f.setCalls = append(f.setCalls, struct {
		ID     uint64
		Active bool
	}{id, active})
	return nil
}

// ----- outlets -----

type fakeOutletStore struct {
	items  map[uint64]model.Outlet
	nextID uint64
}

func newFakeOutletStore() *fakeOutletStore {
	return &fakeOutletStore{items: map[uint64]model.Outlet{}, nextID: 1}
}

func (f *fakeOutletStore) Create(_ context.Context, o *model.Outlet) error {
	o.ID = f.nextID
	f.nextID++
	f.items[o.ID] = *o
	return nil
}

func (f *fakeOutletStore) ListByOwner(_ context.Context, ownerID uint64) ([]model.Outlet, error) {
	out := []model.Outlet{}
	for id := uint64(1); id < f.nextID; id++ {
		if o, ok := f.items[id]; ok && o.UserID == ownerID {
			out = append(out, o)
		}
	}
	return out, nil
}

func (f *fakeOutletStore) GetByID(_ context.Context, id uint64) (model.Outlet, error) {
	o, ok := f.items[id]
	if !ok {
		return model.Outlet{}, sql.ErrNoRows
	}
	return o, nil
}

func (f *fakeOutletStore) Update(_ context.Context, o *model.Outlet) error {
	f.items[o.ID] = *o
	return nil
}

func (f *fakeOutletStore) Delete(_ context.Context, id uint64) error {
	delete(f.items, id)
	return nil
}

// ----- goods -----

type fakeGoodStore struct {
	items  map[uint64]model.Good
	nextID uint64
}

func newFakeGoodStore() *fakeGoodStore {
	return &fakeGoodStore{items: map[uint64]model.Good{}, nextID: 1}
}

func (f *fakeGoodStore) put(g model.Good) model.Good {
	if g.ID == 0 {
		g.ID = f.nextID
	}
	if g.ID >= f.nextID {
		f.nextID = g.ID + 1
	}
	f.items[g.ID] = g
	return g
}

func (f *fakeGoodStore) Create(_ context.Context, g *model.Good) error {
	*g = f.put(*g)
	return nil
}

func (f *fakeGoodStore) ListByOwner(_ context.Context, ownerID uint64) ([]model.Good, error) {
	out := []model.Good{}
	for id := uint64(1); id < f.nextID; id++ {
		if g, ok := f.items[id]; ok && g.UserID == ownerID {
			out = append(out, g)
		}
	}
	return out, nil
}

func (f *fakeGoodStore) GetByID(_ context.Context, id uint64) (model.Good, error) {
	g, ok := f.items[id]
	if !ok {
		return model.Good{}, sql.ErrNoRows
	}
	return g, nil
}

func (f *fakeGoodStore) Update(_ context.Context, g *model.Good) error {
	f.items[g.ID] = *g
	return nil
}

func (f *fakeGoodStore) Delete(_ context.Context, id uint64) error {
	delete(f.items, id)
	return nil
}

// ----- services -----

type fakeServiceStore struct {
	items  map[uint64]model.Service
	nextID uint64
}

func newFakeServiceStore() *fakeServiceStore {
	return &fakeServiceStore{items: map[uint64]model.Service{}, nextID: 1}
}

func (f *fakeServiceStore) Create(_ context.Context, s *model.Service) error {
	s.ID = f.nextID
	f.nextID++
	f.items[s.ID] = *s
	return nil
}

func (f *fakeServiceStore) ListByOwner(_ context.Context, ownerID uint64) ([]model.Service, error) {
	out := []model.Service{}
	for id := uint64(1); id < f.nextID; id++ {
		if s, ok := f.items[id]; ok && s.UserID == ownerID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *fakeServiceStore) GetByID(_ context.Context, id uint64) (model.Service, error) {
	s, ok := f.items[id]
	if !ok {
		return model.Service{}, sql.ErrNoRows
	}
	return s, nil
}

func (f *fakeServiceStore) Update(_ context.Context, s *model.Service) error {
	f.items[s.ID] = *s
	return nil
}

func (f *fakeServiceStore) Delete(_ context.Context, id uint64) error {
	delete(f.items, id)
	return nil
}

// ----- accounts -----

type fakeAccountStore struct {
	items  map[uint64]model.Account
	nextID uint64
}

func newFakeAccountStore() *fakeAccountStore {
	return &fakeAccountStore{items: map[uint64]model.Account{}, nextID: 1}
}

func (f *fakeAccountStore) Create(_ context.Context, a *model.Account) error {
	a.ID = f.nextID
	f.nextID++
	f.items[a.ID] = *a
	return nil
}

func (f *fakeAccountStore) ListByOwner(_ context.Context, ownerID uint64) ([]model.Account, error) {
	out := []model.Account{}
	for id := uint64(1); id < f.nextID; id++ {
		if a, ok := f.items[id]; ok && a.UserID == ownerID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (f *fakeAccountStore) GetByID(_ context.Context, id uint64) (model.Account, error) {
	a, ok := f.items[id]
	if !ok {
		return model.Account{}, sql.ErrNoRows
	}
	return a, nil
}

func (f *fakeAccountStore) Update(_ context.Context, a *model.Account) error {
	f.items[a.ID] = *a
	return nil
}

func (f *fakeAccountStore) Delete(_ context.Context, id uint64) error {
	delete(f.items, id)
	return nil
}

// ----- request helpers -----

// newJSONRequest builds an echo context carrying a JSON body. A non-nil user
// is stored the way the token gate would store it.
func newJSONRequest(t *testing.T, method, path, body string, user *model.User) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if user != nil {
		middleware.SetCurrentUser(c, *user)
	}
	return c, rec
}

// withID sets the :id path parameter.
func withID(c echo.Context, id string) {
	c.SetParamNames("id")
	c.SetParamValues(id)
}
