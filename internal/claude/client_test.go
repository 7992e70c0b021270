package claude

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/oukeidos/litra/internal/apperrors"
	"github.com/oukeidos/litra/internal/llm"
)

func TestClient_Complete_Errors(t *testing.T) {
	tests := []struct {
		name           string
		status         int
		responseBody   string
		expectedKind   apperrors.Kind
		expectedErrMsg string
		sensitiveMark  string
	}{
		{
			name:           "429 Too Many Requests",
			status:         http.StatusTooManyRequests,
			responseBody:   `{"error": {"type": "rate_limit_error", "message": "Rate limited: SECRET_BOOK_LINE"}}`,
			expectedKind:   apperrors.KindRateLimit,
			expectedErrMsg: "Claude API rate limit exceeded (429)",
			sensitiveMark:  "SECRET_BOOK_LINE",
		},
		{
			name:           "401 Unauthorized",
			status:         http.StatusUnauthorized,
			responseBody:   `{"error": {"type": "authentication_error", "message": "invalid x-api-key SECRET_BOOK_LINE"}}`,
			expectedKind:   apperrors.KindAuth,
			expectedErrMsg: "Claude API authentication/authorization failed (401)",
			sensitiveMark:  "SECRET_BOOK_LINE",
		},
		{
			name:           "529 Overloaded",
			status:         529,
			responseBody:   `{"error": {"type": "overloaded_error", "message": "Overloaded"}}`,
			expectedKind:   apperrors.KindTransient,
			expectedErrMsg: "Claude service temporary error (529)",
		},
		{
			name:           "500 Internal Server Error",
			status:         http.StatusInternalServerError,
			responseBody:   "server down SECRET_BOOK_LINE",
			expectedKind:   apperrors.KindTransient,
			expectedErrMsg: "Claude service temporary error (500)",
			sensitiveMark:  "SECRET_BOOK_LINE",
		},
		{
			name:           "400 Bad Request",
			status:         http.StatusBadRequest,
			responseBody:   `{"error": {"type": "invalid_request_error", "message": "max_tokens required"}}`,
			expectedKind:   apperrors.KindBadRequest,
			expectedErrMsg: "Claude request rejected (400)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				fmt.Fprint(w, tt.responseBody)
			}))
			defer server.Close()

			client := NewClient("test-key", "test-model")
			client.baseURL = server.URL // Override baseURL for testing

			_, err := client.Complete(context.Background(), llm.Request{MaxTokens: 64, User: "hi"})
			if err == nil {
				t.Fatal("Expected error, got nil")
			}

			kind, ok := apperrors.KindOf(err)
			if !ok || kind != tt.expectedKind {
				t.Errorf("Expected kind %s, got %v (ok=%v)", tt.expectedKind, kind, ok)
			}
			if !strings.Contains(err.Error(), tt.expectedErrMsg) {
				t.Errorf("Expected error message to contain %q, got %q", tt.expectedErrMsg, err.Error())
			}
			if tt.sensitiveMark != "" && strings.Contains(err.Error(), tt.sensitiveMark) {
				t.Errorf("Expected error message to redact upstream content, got %q", err.Error())
			}
		})
	}
}

func TestClient_Complete_CacheControl(t *testing.T) {
	var captured requestData
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("anthropic-version"); got != apiVersion {
			t.Errorf("missing anthropic-version header, got %q", got)
		}
		if got := r.Header.Get("x-api-key"); got != "test-key" {
			t.Errorf("unexpected x-api-key header: %q", got)
		}
		if err := json.NewDecoder(r.Body).Decode(&captured); err != nil {
			t.Errorf("failed to decode request: %v", err)
		}
		fmt.Fprint(w, `{
			"id": "msg_1",
			"content": [{"type": "text", "text": "Hallo "}, {"type": "thinking"}, {"type": "text", "text": "Welt"}],
			"usage": {"input_tokens": 100, "output_tokens": 5, "cache_read_input_tokens": 80, "cache_creation_input_tokens": 0}
		}`)
	}))
	defer server.Close()

	client := NewClient("test-key", "test-model")
	client.baseURL = server.URL

	resp, err := client.Complete(context.Background(), llm.Request{
		MaxTokens:   1024,
		Temperature: 0.3,
		System:      "You are a translator.",
		CacheSystem: true,
		User:        "Hello world",
	})
	if err != nil {
		t.Fatalf("Complete failed: %v", err)
	}

	// Non-text blocks are dropped, text blocks concatenated in order.
	if resp.Text != "Hallo Welt" {
		t.Errorf("unexpected text: %q", resp.Text)
	}
	if resp.Usage.InputTokens != 100 || resp.Usage.CacheReadTokens != 80 {
		t.Errorf("unexpected usage: %+v", resp.Usage)
	}

	// System prompt must be sent as a cache-annotated block list.
	blocks, ok := captured.System.([]any)
	if !ok || len(blocks) != 1 {
		t.Fatalf("expected one system block, got %v", captured.System)
	}
	block, _ := blocks[0].(map[string]any)
	if block["text"] != "You are a translator." {
		t.Errorf("unexpected system text: %v", block["text"])
	}
	cc, _ := block["cache_control"].(map[string]any)
	if cc == nil || cc["type"] != "ephemeral" {
		t.Errorf("expected ephemeral cache_control, got %v", block["cache_control"])
	}
}

func TestClient_Complete_PlainSystem(t *testing.T) {
	var captured requestData
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := json.NewDecoder(r.Body).Decode(&captured); err != nil {
			t.Errorf("failed to decode request: %v", err)
		}
		fmt.Fprint(w, `{"content": [{"type": "text", "text": "ok"}], "usage": {"input_tokens": 1, "output_tokens": 1}}`)
	}))
	defer server.Close()

	client := NewClient("test-key", "test-model")
	client.baseURL = server.URL

	_, err := client.Complete(context.Background(), llm.Request{
		MaxTokens: 64,
		System:    "Summarize.",
		User:      "text",
	})
	if err != nil {
		t.Fatalf("Complete failed: %v", err)
	}
	// With caching disabled the system prompt stays a plain string.
	if s, ok := captured.System.(string); !ok || s != "Summarize." {
		t.Errorf("expected plain string system, got %v", captured.System)
	}
}

func TestClient_Complete_EmptyContent(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"content": [], "stop_reason": "max_tokens", "usage": {"input_tokens": 1, "output_tokens": 0}}`)
	}))
	defer server.Close()

	client := NewClient("test-key", "test-model")
	client.baseURL = server.URL

	_, err := client.Complete(context.Background(), llm.Request{MaxTokens: 1, User: "x"})
	if err == nil {
		t.Fatal("expected error for empty content")
	}
	if kind, _ := apperrors.KindOf(err); kind != apperrors.KindValidation {
		t.Errorf("expected validation kind, got %v", kind)
	}
}
