package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// identity is the authenticated principal injected by the Auth middleware.
type identity struct {
	UserID   string
	Username string
	Name     string
}

// ctxIdentity extracts the auth claims set by the middleware and fast-fails
// with a 401 when they are absent, which proves the guard did not run.
func ctxIdentity(c echo.Context) (identity, error) {
	userID, _ := c.Get("user_id").(string)
	if userID == "" {
		return identity{}, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}

	username, _ := c.Get("username").(string)
	name, _ := c.Get("name").(string)
	return identity{UserID: userID, Username: username, Name: name}, nil
}
