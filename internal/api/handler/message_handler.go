package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/pairchat/chat-service/internal/api/metrics"
	"github.com/pairchat/chat-service/internal/core/ports"
)

// MessageHandler handles HTTP requests for the room message channel.
type MessageHandler struct {
	service ports.ChatService
}

func NewMessageHandler(service ports.ChatService) *MessageHandler {
	return &MessageHandler{service: service}
}

// Send handles POST /v1/rooms/:roomID/messages.
//
// @Summary      Append a message to a room
// @Tags         messages
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        roomID  path      string              true  "Room id"
// @Param        body    body      sendMessageRequest  true  "Message text and optional client timestamp (ms)"
// @Success      201     {object}  messageResponse
// @Failure      400     {object}  errorResponse
// @Failure      401     {object}  errorResponse
// @Failure      403     {object}  errorResponse
// @Failure      500     {object}  errorResponse
// @Router       /v1/rooms/{roomID}/messages [post]
func (h *MessageHandler) Send(c echo.Context) error {
	userID, userName, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req sendMessageRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	msg, err := h.service.Send(c.Request().Context(), ports.SendMessageInput{
		RoomID:     c.Param("roomID"),
		SenderID:   userID,
		SenderName: userName,
		Text:       req.Text,
		Timestamp:  req.Timestamp,
	})
	if err != nil {
		return err
	}

	metrics.MessagesSentTotal.Inc()
	return c.JSON(http.StatusCreated, toMessageResponse(*msg))
}

// List handles GET /v1/rooms/:roomID/messages.
//
// @Summary      Fetch the full ordered message history of a room
// @Tags         messages
// @Produce      json
// @Security     BearerAuth
// @Param        roomID  path      string  true  "Room id"
// @Success      200     {object}  messagesResponse
// @Failure      401     {object}  errorResponse
// @Failure      403     {object}  errorResponse
// @Failure      500     {object}  errorResponse
// @Router       /v1/rooms/{roomID}/messages [get]
func (h *MessageHandler) List(c echo.Context) error {
	if _, _, _, err := ctxIdentity(c); err != nil {
		return err
	}

	msgs, err := h.service.History(c.Request().Context(), c.Param("roomID"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toMessagesResponse(msgs))
}
