package home_test

import (
	"net/http/httptest"
	"testing"

	"github.com/dalemusser/courtpost/internal/app/features/home"
	"github.com/dalemusser/courtpost/internal/app/system/gate"
	"go.uber.org/zap"
)

const testSessionKey = "0123456789abcdef0123456789abcdef"

func newTestHandler(t *testing.T) *home.Handler {
	t.Helper()
	logger := zap.NewNop()
	sm, err := gate.NewSessionManager(testSessionKey, "courtpost_session", "", false, logger)
	if err != nil {
		t.Fatalf("NewSessionManager: %v", err)
	}
	return home.NewHandler(sm, logger)
}

func TestNewHandler(t *testing.T) {
	h := newTestHandler(t)
	if h == nil {
		t.Fatal("NewHandler() returned nil")
	}
}

func TestServeRoot(t *testing.T) {
	handler := newTestHandler(t)

	req := httptest.NewRequest("GET", "/", nil)
	rec := httptest.NewRecorder()

	// Handler will try to render a template which may panic without an
	// initialized template engine. The test verifies the handler logic
	// up to the render call.
	func() {
		defer func() { _ = recover() }()
		handler.ServeRoot(rec, req)
	}()
}
