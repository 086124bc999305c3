package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/pairchat/chat-service/internal/core/domain"
)

// RoomGuard enforces room membership: the caller's own passcode (from the
// JWT claims) must be one of the two components of the :roomID path
// parameter. Runs after Auth.
func RoomGuard() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			passcode, _ := c.Get("passcode").(string)
			if passcode == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
			}

			roomID := c.Param("roomID")
			if !domain.RoomHasParticipant(roomID, passcode) {
				return domain.ErrRoomForbidden
			}
			return next(c)
		}
	}
}
