package classify

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	errs "github.com/matzehuels/tldrviz/pkg/errors"
	"github.com/matzehuels/tldrviz/pkg/httputil"
)

func newOpenRouterServer(t *testing.T, status int, body string, seen *map[string]any) *OpenRouter {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Errorf("path = %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Errorf("Authorization = %q", got)
		}
		if seen != nil {
			_ = json.NewDecoder(r.Body).Decode(seen)
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)

	o, err := NewOpenRouter(OpenRouterConfig{APIKey: "test-key", BaseURL: srv.URL})
	if err != nil {
		t.Fatal(err)
	}
	return o
}

func TestOpenRouter_Complete(t *testing.T) {
	var seen map[string]any
	content, _ := json.Marshal(validResponse)
	o := newOpenRouterServer(t, http.StatusOK,
		`{"id":"1","object":"chat.completion","choices":[{"index":0,"message":{"role":"assistant","content":`+string(content)+`},"finish_reason":"stop"}]}`,
		&seen)

	text, err := o.Complete(context.Background(), "classify these")
	if err != nil {
		t.Fatalf("Complete: %v", err)
	}
	if text != validResponse {
		t.Errorf("text = %q", text)
	}

	if seen["model"] != DefaultOpenRouterModel {
		t.Errorf("model = %v", seen["model"])
	}
	if seen["temperature"] != 0.1 {
		t.Errorf("temperature = %v", seen["temperature"])
	}
	rf, _ := seen["response_format"].(map[string]any)
	schema, _ := rf["json_schema"].(map[string]any)
	if rf["type"] != "json_schema" || schema["name"] != SchemaName || schema["strict"] != true {
		t.Errorf("response_format = %v", rf)
	}
}

func TestOpenRouter_Errors(t *testing.T) {
	tests := []struct {
		name      string
		status    int
		body      string
		code      errs.Code
		retryable bool
	}{
		{"server error", 500, `{"error":{"message":"boom","type":"server_error"}}`, errs.ErrCodeNetwork, true},
		{"rate limited", 429, `{"error":{"message":"slow down","type":"rate_limit"}}`, errs.ErrCodeRateLimited, true},
		{"bad key", 401, `{"error":{"message":"no auth","type":"auth"}}`, errs.ErrCodeUnauthorized, false},
		{"no choices", 200, `{"id":"1","choices":[]}`, errs.ErrCodeInvalidResponse, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := newOpenRouterServer(t, tt.status, tt.body, nil)
			_, err := o.Complete(context.Background(), "p")
			if !errs.Is(err, tt.code) {
				t.Errorf("err = %v, want code %s", err, tt.code)
			}
			if httputil.IsRetryable(err) != tt.retryable {
				t.Errorf("retryable = %v, want %v", httputil.IsRetryable(err), tt.retryable)
			}
		})
	}
}
