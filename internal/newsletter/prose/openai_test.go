package prose

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap"
)

func chatBody(content string) string {
	return fmt.Sprintf(`{"choices":[{"message":{"content":%q}}]}`, content)
}

func newTestClient(t *testing.T, baseURL string) *OpenAI {
	t.Helper()
	c, err := NewOpenAI(OpenAIConfig{APIKey: "test-key", BaseURL: baseURL}, zap.NewNop())
	if err != nil {
		t.Fatalf("NewOpenAI: %v", err)
	}
	return c
}

func TestNewOpenAI_RequiresKey(t *testing.T) {
	_, err := NewOpenAI(OpenAIConfig{}, zap.NewNop())
	if !errors.Is(err, ErrNoAPIKey) {
		t.Errorf("NewOpenAI(no key) error = %v, want ErrNoAPIKey", err)
	}
}

func TestOpenAI_GenerateReturnsCleanedText(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Errorf("Authorization = %q", got)
		}
		if r.URL.Path != "/v1/chat/completions" {
			t.Errorf("path = %q", r.URL.Path)
		}
		fmt.Fprint(w, chatBody(`"1. Book Your Spot"`))
	}))
	defer srv.Close()

	got, err := newTestClient(t, srv.URL).SubjectLine(context.Background(), "newsletter text")
	if err != nil {
		t.Fatalf("SubjectLine() error = %v", err)
	}
	if got != "Book Your Spot" {
		t.Errorf("SubjectLine() = %q, want cleaned text", got)
	}
}

func TestOpenAI_RetriesServerErrors(t *testing.T) {
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls == 1 {
			http.Error(w, "upstream hiccup", http.StatusInternalServerError)
			return
		}
		fmt.Fprint(w, chatBody("Second time lucky"))
	}))
	defer srv.Close()

	got, err := newTestClient(t, srv.URL).Summary(context.Background(), "newsletter text")
	if err != nil {
		t.Fatalf("Summary() error = %v", err)
	}
	if got != "Second time lucky" {
		t.Errorf("Summary() = %q", got)
	}
	if calls != 2 {
		t.Errorf("calls = %d, want 2", calls)
	}
}

func TestOpenAI_DoesNotRetryClientErrors(t *testing.T) {
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		http.Error(w, `{"error":{"message":"bad request"}}`, http.StatusBadRequest)
	}))
	defer srv.Close()

	_, err := newTestClient(t, srv.URL).PreviewText(context.Background(), "newsletter text")
	if err == nil {
		t.Fatal("PreviewText() error = nil, want failure")
	}
	if calls != 1 {
		t.Errorf("calls = %d, want 1 (no retry on 4xx)", calls)
	}
}

func TestOpenAI_NoChoicesIsAnError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"choices":[]}`)
	}))
	defer srv.Close()

	_, err := newTestClient(t, srv.URL).SubjectLine(context.Background(), "text")
	if err == nil {
		t.Fatal("SubjectLine() error = nil, want failure on empty choices")
	}
}
