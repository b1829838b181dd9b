package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// HealthGet reports that the server is up.
func HealthGet(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}
