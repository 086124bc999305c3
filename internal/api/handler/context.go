package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// ctxIdentity extracts the identity claims injected by the Auth middleware
// and fails fast when they are absent: a present user id proves the
// middleware ran, and every authenticated operation needs it.
func ctxIdentity(c echo.Context) (userID, userName, passcode string, err error) {
	userID, _ = c.Get("user_id").(string)
	if userID == "" {
		return "", "", "", echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	userName, _ = c.Get("user_name").(string)
	passcode, _ = c.Get("passcode").(string)
	return userID, userName, passcode, nil
}
