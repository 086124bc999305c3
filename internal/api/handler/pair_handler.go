package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/pairchat/chat-service/internal/api/metrics"
	"github.com/pairchat/chat-service/internal/core/domain"
	"github.com/pairchat/chat-service/internal/core/ports"
)

// PairHandler handles HTTP requests for passcode pairing.
type PairHandler struct {
	service ports.PairingService
}

func NewPairHandler(service ports.PairingService) *PairHandler {
	return &PairHandler{service: service}
}

// Pair handles POST /v1/pair.
//
// @Summary      Resolve a peer passcode into a shared room
// @Tags         pairing
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      pairRequest  true  "Peer passcode"
// @Success      200   {object}  pairResponse
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Failure      500   {object}  errorResponse
// @Router       /v1/pair [post]
func (h *PairHandler) Pair(c echo.Context) error {
	userID, _, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req pairRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	result, err := h.service.Pair(c.Request().Context(), userID, req.Passcode)
	if err != nil {
		metrics.PairingsTotal.WithLabelValues(pairingOutcome(err)).Inc()
		return err
	}

	metrics.PairingsTotal.WithLabelValues("ok").Inc()
	return c.JSON(http.StatusOK, pairResponse{
		RoomID: result.RoomID,
		Peer: peerResponse{
			ID:       result.Peer.ID,
			Name:     result.Peer.Name,
			Passcode: result.Peer.Passcode,
		},
	})
}

func pairingOutcome(err error) string {
	switch {
	case errors.Is(err, domain.ErrSelfPairing):
		return "self"
	case errors.Is(err, domain.ErrUnknownPasscode):
		return "unknown"
	default:
		return "error"
	}
}
