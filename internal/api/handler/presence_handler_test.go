package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/pairchat/chat-service/internal/core/domain"
	"github.com/pairchat/chat-service/internal/core/ports"
)

type stubPresenceService struct {
	setOnlineFn func(ctx context.Context, userID string, online bool) error
	getFn       func(ctx context.Context, userID string) (*domain.Presence, error)
	observeFn   func(ctx context.Context, userID string) (*ports.PresenceStream, error)
}

func (s *stubPresenceService) SetOnline(ctx context.Context, userID string, online bool) error {
	return s.setOnlineFn(ctx, userID, online)
}

func (s *stubPresenceService) Get(ctx context.Context, userID string) (*domain.Presence, error) {
	return s.getFn(ctx, userID)
}

func (s *stubPresenceService) Observe(ctx context.Context, userID string) (*ports.PresenceStream, error) {
	return s.observeFn(ctx, userID)
}

func TestPresenceHandler_Set(t *testing.T) {
	e := newTestEcho()
	var gotOnline bool
	stub := &stubPresenceService{
		setOnlineFn: func(ctx context.Context, userID string, online bool) error {
			if userID != "u1" {
				t.Fatalf("unexpected user id: %q", userID)
			}
			gotOnline = online
			return nil
		},
	}
	handler := NewPresenceHandler(stub)

	body := strings.NewReader(`{"online":true}`)
	req := httptest.NewRequest(http.MethodPost, "/v1/presence", body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("user_id", "u1")

	if err := handler.Set(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
	if !gotOnline {
		t.Fatalf("expected online flag to be set")
	}
}

func TestPresenceHandler_Get_Online(t *testing.T) {
	e := newTestEcho()
	stub := &stubPresenceService{
		getFn: func(ctx context.Context, userID string) (*domain.Presence, error) {
			return &domain.Presence{UserID: userID, IsOnline: true, LastSeen: time.Now()}, nil
		},
	}
	handler := NewPresenceHandler(stub)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("userID")
	c.SetParamValues("u2")
	c.Set("user_id", "u1")

	if err := handler.Get(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var resp presenceResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if !resp.IsOnline || resp.Display != "online" {
		t.Fatalf("unexpected presence: %+v", resp)
	}
}

func TestPresenceHandler_Get_RecentlyOffline(t *testing.T) {
	e := newTestEcho()
	stub := &stubPresenceService{
		getFn: func(ctx context.Context, userID string) (*domain.Presence, error) {
			return &domain.Presence{UserID: userID, IsOnline: false, LastSeen: time.Now().Add(-30 * time.Second)}, nil
		},
	}
	handler := NewPresenceHandler(stub)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("userID")
	c.SetParamValues("u2")
	c.Set("user_id", "u1")

	if err := handler.Get(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var resp presenceResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp.IsOnline {
		t.Fatalf("expected offline")
	}
	if resp.Display != "last seen just now" {
		t.Fatalf("unexpected display: %q", resp.Display)
	}
	if resp.LastSeen == 0 {
		t.Fatalf("expected last_seen to be set")
	}
}

func TestPresenceHandler_Get_NeverSeen(t *testing.T) {
	e := newTestEcho()
	stub := &stubPresenceService{
		getFn: func(ctx context.Context, userID string) (*domain.Presence, error) {
			return &domain.Presence{UserID: userID}, nil
		},
	}
	handler := NewPresenceHandler(stub)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("userID")
	c.SetParamValues("u2")
	c.Set("user_id", "u1")

	if err := handler.Get(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var resp presenceResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp.Display != "offline" {
		t.Fatalf("unexpected display: %q", resp.Display)
	}
	if resp.LastSeen != 0 {
		t.Fatalf("expected no last_seen, got %d", resp.LastSeen)
	}
}
