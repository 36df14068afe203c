// Package router wires handlers, middleware and routes onto the Echo
// instance. Paths keep their trailing slashes; existing clients depend on the
// exact forms.
package router

import (
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/iliyamo/duka-bookkeeping/internal/config"
	"github.com/iliyamo/duka-bookkeeping/internal/handler"
	"github.com/iliyamo/duka-bookkeeping/internal/middleware"
)

// Deps bundles everything the routes need.
type Deps struct {
	Cfg      config.Config
	Users    handler.UserStore
	Outlets  *handler.OutletHandler
	Goods    *handler.GoodHandler
	Services *handler.ServiceHandler
	Accounts *handler.AccountHandler
	Auth     *handler.AuthHandler
	Redis    *redis.Client // nil disables response caching
}

// Register attaches all application routes to e.
func Register(e *echo.Echo, d Deps) {
	e.GET("/", handler.Home)
	e.GET("/healthz", handler.Health)

	// Auth endpoints run outside the token gate: registration and login have
	// no credential yet, and logout reports its own 400 on a bad token
	// instead of the gate's 401/403.
	e.POST("/auth/new/", d.Auth.Register)
	e.POST("/auth/login/", d.Auth.Login)
	e.GET("/auth/logout/", d.Auth.Logout)

	gate := middleware.TokenAuth(d.Cfg.TokenSecret, d.Users)
	cache := middleware.UserCache(d.Redis, time.Duration(d.Cfg.CacheTTLSeconds)*time.Second)

	for _, r := range []struct {
		prefix                                 string
		list, create, retrieve, update, remove echo.HandlerFunc
	}{
		{"/outlets", d.Outlets.List, d.Outlets.Create, d.Outlets.Retrieve, d.Outlets.Update, d.Outlets.Delete},
		{"/goods", d.Goods.List, d.Goods.Create, d.Goods.Retrieve, d.Goods.Update, d.Goods.Delete},
		{"/services", d.Services.List, d.Services.Create, d.Services.Retrieve, d.Services.Update, d.Services.Delete},
		{"/accounts", d.Accounts.List, d.Accounts.Create, d.Accounts.Retrieve, d.Accounts.Update, d.Accounts.Delete},
	} {
		g := e.Group(r.prefix, gate, cache)
		g.GET("/", r.list)
		g.POST("/", r.create)
		g.GET("/:id/", r.retrieve)
		g.PUT("/:id/", r.update)
		g.DELETE("/:id/", r.remove)
	}
}
