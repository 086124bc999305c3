package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/pairchat/chat-service/internal/core/domain"
	"github.com/pairchat/chat-service/internal/core/ports"
)

type stubPairingService struct {
	pairFn func(ctx context.Context, userID, peerInput string) (*ports.PairResult, error)
}

func (s *stubPairingService) Pair(ctx context.Context, userID, peerInput string) (*ports.PairResult, error) {
	return s.pairFn(ctx, userID, peerInput)
}

func TestPairHandler_Success(t *testing.T) {
	e := newTestEcho()
	stub := &stubPairingService{
		pairFn: func(ctx context.Context, userID, peerInput string) (*ports.PairResult, error) {
			if userID != "u1" {
				t.Fatalf("unexpected user id: %q", userID)
			}
			if peerInput != "  zz99yy88 " {
				t.Fatalf("expected raw passcode to pass through, got %q", peerInput)
			}
			return &ports.PairResult{
				RoomID: "AB12CD34-ZZ99YY88",
				Peer:   domain.Peer{ID: "u2", Name: "bob", Passcode: "ZZ99YY88"},
			}, nil
		},
	}
	handler := NewPairHandler(stub)

	body := strings.NewReader(`{"passcode":"  zz99yy88 "}`)
	req := httptest.NewRequest(http.MethodPost, "/v1/pair", body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("user_id", "u1")

	if err := handler.Pair(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp pairResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp.RoomID != "AB12CD34-ZZ99YY88" {
		t.Fatalf("unexpected room id: %q", resp.RoomID)
	}
	if resp.Peer.ID != "u2" || resp.Peer.Name != "bob" {
		t.Fatalf("unexpected peer: %+v", resp.Peer)
	}
}

func TestPairHandler_SelfPairing(t *testing.T) {
	e := newTestEcho()
	stub := &stubPairingService{
		pairFn: func(ctx context.Context, userID, peerInput string) (*ports.PairResult, error) {
			return nil, domain.ErrSelfPairing
		},
	}
	handler := NewPairHandler(stub)

	body := strings.NewReader(`{"passcode":"AB12CD34"}`)
	req := httptest.NewRequest(http.MethodPost, "/v1/pair", body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("user_id", "u1")

	if err := handler.Pair(c); !errors.Is(err, domain.ErrSelfPairing) {
		t.Fatalf("expected ErrSelfPairing, got %v", err)
	}
}

func TestPairHandler_MissingPasscode(t *testing.T) {
	e := newTestEcho()
	stub := &stubPairingService{
		pairFn: func(ctx context.Context, userID, peerInput string) (*ports.PairResult, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	}
	handler := NewPairHandler(stub)

	req := httptest.NewRequest(http.MethodPost, "/v1/pair", strings.NewReader(`{}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("user_id", "u1")

	err := handler.Pair(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 HTTPError, got %v", err)
	}
}
