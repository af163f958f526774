package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// Helper function for safe user ID extraction
func getUserID(c echo.Context) (string, error) {
	userID, ok := c.Get("uid").(string)
	if !ok || userID == "" {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "Invalid session")
	}
	return userID, nil
}
