package builder

import (
	"bytes"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	uierrors "github.com/dalemusser/courtpost/internal/app/features/errors"
	"github.com/dalemusser/courtpost/internal/app/system/gate"
	"github.com/dalemusser/courtpost/internal/newsletter"
	"github.com/dalemusser/courtpost/internal/newsletter/booking"
	"github.com/dalemusser/courtpost/internal/newsletter/capacity"
	"github.com/dalemusser/courtpost/internal/newsletter/csvdata"
	"go.uber.org/zap"
)

func newPreviewHandler(t *testing.T) *Handler {
	t.Helper()
	logger := zap.NewNop()
	sm, err := gate.NewSessionManager("0123456789abcdef0123456789abcdef", "courtpost_session", "", false, logger)
	if err != nil {
		t.Fatalf("NewSessionManager: %v", err)
	}
	engine := newsletter.New(booking.New(""), capacity.Default(), nil)
	return NewHandler(engine, sm, uierrors.NewErrorLogger(logger), "", logger)
}

func multipartRequest(t *testing.T, fields map[string]string, csvContent string) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		if err := mw.WriteField(k, v); err != nil {
			t.Fatal(err)
		}
	}
	if csvContent != "" {
		fw, err := mw.CreateFormFile("csv", "sessions.csv")
		if err != nil {
			t.Fatal(err)
		}
		if _, err := fw.Write([]byte(csvContent)); err != nil {
			t.Fatal(err)
		}
	}
	if err := mw.Close(); err != nil {
		t.Fatal(err)
	}
	req := httptest.NewRequest("POST", "/builder/preview", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

// callPreview runs HandlePreview, swallowing the panic the template
// render raises when no engine is booted; what matters here is the
// form handling that happens before any render.
func callPreview(h *Handler, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	func() {
		defer func() { _ = recover() }()
		h.HandlePreview(rec, req)
	}()
	return rec
}

func TestHandlePreview_ParsesFormBeforeReadingFields(t *testing.T) {
	h := newPreviewHandler(t)
	req := multipartRequest(t, map[string]string{"event_title": "Open Day"}, "")

	callPreview(h, req)

	if req.MultipartForm == nil {
		t.Fatal("multipart form was not parsed by the handler")
	}
	if got := req.Form.Get("event_title"); got != "Open Day" {
		t.Errorf("event_title = %q, want %q (typed value lost)", got, "Open Day")
	}
}

func TestHandlePreview_RejectsOversizedUpload(t *testing.T) {
	h := newPreviewHandler(t)
	big := strings.Repeat("a", int(csvdata.MaxUploadSize)+1024)
	req := multipartRequest(t, nil, big)

	callPreview(h, req)

	if req.MultipartForm != nil {
		t.Error("oversized body was parsed instead of refused")
	}
}

func TestUploadErrorMessage(t *testing.T) {
	got := uploadErrorMessage(&http.MaxBytesError{Limit: csvdata.MaxUploadSize})
	if !strings.Contains(got, "too large") {
		t.Errorf("uploadErrorMessage(MaxBytesError) = %q, want size message", got)
	}
	got = uploadErrorMessage(errors.New("unexpected EOF"))
	if strings.Contains(got, "too large") {
		t.Errorf("uploadErrorMessage(other) = %q, want generic message", got)
	}
}
