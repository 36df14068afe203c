package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// Home handles GET / with a plain welcome message.
func Home(c echo.Context) error {
	return c.String(http.StatusOK, "Welcome home!")
}

// Health reports service liveness for load balancers and monitors.
func Health(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{"status": "ok"})
}
