package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/pairchat/chat-service/internal/api/metrics"
	"github.com/pairchat/chat-service/internal/core/ports"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
)

// wsEnvelope is a server-to-client frame. Exactly one payload field is set,
// selected by Type.
type wsEnvelope struct {
	Type     string            `json:"type"`
	Messages []messageResponse `json:"messages,omitempty"`
	Presence *presenceResponse `json:"presence,omitempty"`
	Error    string            `json:"error,omitempty"`
}

// wsClientFrame is a client-to-server frame: "send" appends a message,
// "visibility" overwrites the caller's online flag.
type wsClientFrame struct {
	Type      string `json:"type"`
	Text      string `json:"text,omitempty"`
	Timestamp int64  `json:"timestamp,omitempty"`
	Online    bool   `json:"online"`
}

// WSHandler upgrades room connections to websockets and bridges them onto a
// room attachment: snapshots flow out, sends and visibility flips flow in.
type WSHandler struct {
	attach   ports.RoomAttachmentFactory
	chat     ports.ChatService
	presence ports.PresenceService
	log      zerolog.Logger
	upgrader websocket.Upgrader
}

func NewWSHandler(
	attach ports.RoomAttachmentFactory,
	chat ports.ChatService,
	presence ports.PresenceService,
	log zerolog.Logger,
) *WSHandler {
	return &WSHandler{
		attach:   attach,
		chat:     chat,
		presence: presence,
		log:      log,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
	}
}

// Serve handles GET /v1/rooms/:roomID/ws.
//
// @Summary      Attach to a room over a websocket
// @Description  Streams message and peer presence snapshots; accepts send and visibility frames.
// @Tags         messages
// @Security     BearerAuth
// @Param        roomID  path  string  true   "Room id"
// @Param        token   query string  false  "JWT, for clients that cannot set headers"
// @Success      101     "Switching Protocols"
// @Failure      401     {object}  errorResponse
// @Failure      403     {object}  errorResponse
// @Router       /v1/rooms/{roomID}/ws [get]
func (h *WSHandler) Serve(c echo.Context) error {
	userID, userName, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}
	roomID := c.Param("roomID")

	room := h.attach()
	sess, err := room.Enter(c.Request().Context(), userID, roomID)
	if err != nil {
		return err
	}

	conn, err := h.upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		// Teardown uses a fresh context: the request context dies with the
		// failed upgrade.
		if lerr := room.Leave(context.Background()); lerr != nil {
			h.log.Warn().Err(lerr).Str("room_id", roomID).Msg("room teardown after failed upgrade")
		}
		return err
	}

	metrics.ActiveStreams.WithLabelValues("websocket").Inc()
	defer metrics.ActiveStreams.WithLabelValues("websocket").Dec()

	h.log.Info().
		Str("room_id", roomID).
		Str("user_id", userID).
		Str("peer_id", sess.Peer.ID).
		Msg("room attachment opened")

	done := make(chan struct{})
	go h.writePump(conn, room, done)
	h.readPump(conn, roomID, userID, userName)

	close(done)
	if err := room.Leave(context.Background()); err != nil {
		h.log.Warn().Err(err).Str("room_id", roomID).Msg("room teardown")
	}
	conn.Close()

	h.log.Info().Str("room_id", roomID).Str("user_id", userID).Msg("room attachment closed")
	return nil
}

// writePump is the only goroutine writing to conn. It forwards stream
// snapshots and keeps the connection alive with pings.
func (h *WSHandler) writePump(conn *websocket.Conn, room ports.RoomAttachment, done <-chan struct{}) {
	msgs := room.Messages()
	peer := room.PeerPresence()
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case snapshot, ok := <-msgs.Updates:
			if !ok {
				return
			}
			h.writeJSON(conn, wsEnvelope{Type: "messages", Messages: toMessagesResponse(snapshot).Messages})
		case p, ok := <-peer.Updates:
			if !ok {
				return
			}
			resp := toPresenceResponse(&p, time.Now())
			h.writeJSON(conn, wsEnvelope{Type: "presence", Presence: &resp})
		case <-ticker.C:
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-done:
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			conn.WriteMessage(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
			return
		}
	}
}

func (h *WSHandler) writeJSON(conn *websocket.Conn, env wsEnvelope) {
	conn.SetWriteDeadline(time.Now().Add(writeWait))
	if err := conn.WriteJSON(env); err != nil {
		h.log.Debug().Err(err).Msg("websocket write")
	}
}

// readPump consumes client frames until the connection drops. It never
// writes to conn except through the services; writePump owns the socket's
// write side.
func (h *WSHandler) readPump(conn *websocket.Conn, roomID, userID, userName string) {
	conn.SetReadLimit(64 << 10)
	conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, raw, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				h.log.Debug().Err(err).Str("room_id", roomID).Msg("websocket read")
			}
			return
		}

		var frame wsClientFrame
		if err := json.Unmarshal(raw, &frame); err != nil {
			h.log.Debug().Err(err).Msg("malformed client frame")
			continue
		}

		switch frame.Type {
		case "send":
			_, err := h.chat.Send(context.Background(), ports.SendMessageInput{
				RoomID:     roomID,
				SenderID:   userID,
				SenderName: userName,
				Text:       frame.Text,
				Timestamp:  frame.Timestamp,
			})
			if err != nil {
				h.log.Warn().Err(err).Str("room_id", roomID).Msg("send over websocket")
				continue
			}
			metrics.MessagesSentTotal.Inc()
		case "visibility":
			if err := h.presence.SetOnline(context.Background(), userID, frame.Online); err != nil {
				h.log.Warn().Err(err).Str("user_id", userID).Msg("visibility flip over websocket")
			}
		default:
			h.log.Debug().Str("type", frame.Type).Msg("unknown client frame type")
		}
	}
}
