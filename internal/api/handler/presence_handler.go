package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/pairchat/chat-service/internal/api/metrics"
	"github.com/pairchat/chat-service/internal/core/ports"
)

// PresenceHandler handles HTTP requests for presence tracking.
type PresenceHandler struct {
	service ports.PresenceService
}

func NewPresenceHandler(service ports.PresenceService) *PresenceHandler {
	return &PresenceHandler{service: service}
}

// Set handles POST /v1/presence. Clients call it on visibility changes and
// before unload; the write is an idempotent overwrite.
//
// @Summary      Overwrite the caller's online flag
// @Tags         presence
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      presenceRequest  true  "New online flag"
// @Success      204   "No Content"
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      500   {object}  errorResponse
// @Router       /v1/presence [post]
func (h *PresenceHandler) Set(c echo.Context) error {
	userID, _, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req presenceRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	if err := h.service.SetOnline(c.Request().Context(), userID, req.Online); err != nil {
		return err
	}

	state := "offline"
	if req.Online {
		state = "online"
	}
	metrics.PresenceUpdatesTotal.WithLabelValues(state).Inc()
	return c.NoContent(http.StatusNoContent)
}

// Get handles GET /v1/presence/:userID.
//
// @Summary      Read an account's presence with a rendered last-seen label
// @Tags         presence
// @Produce      json
// @Security     BearerAuth
// @Param        userID  path      string  true  "Account id"
// @Success      200     {object}  presenceResponse
// @Failure      401     {object}  errorResponse
// @Failure      500     {object}  errorResponse
// @Router       /v1/presence/{userID} [get]
func (h *PresenceHandler) Get(c echo.Context) error {
	if _, _, _, err := ctxIdentity(c); err != nil {
		return err
	}

	p, err := h.service.Get(c.Request().Context(), c.Param("userID"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toPresenceResponse(p, time.Now()))
}
