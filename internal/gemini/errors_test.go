package gemini

import (
	"errors"
	"strings"
	"testing"

	"google.golang.org/api/googleapi"

	"github.com/oukeidos/litra/internal/apperrors"
)

func TestClassifyGeminiError_CodeMapping(t *testing.T) {
	tests := []struct {
		name      string
		code      int
		wantKind  apperrors.Kind
		retryable bool
	}{
		{"unauthorized", 401, apperrors.KindAuth, false},
		{"forbidden", 403, apperrors.KindAuth, false},
		{"bad request", 400, apperrors.KindBadRequest, false},
		{"model not found", 404, apperrors.KindBadRequest, false},
		{"rate limited", 429, apperrors.KindRateLimit, true},
		{"service unavailable", 503, apperrors.KindTransient, true},
		{"unknown client code", 418, apperrors.KindBadRequest, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := classifyGeminiError(&googleapi.Error{Code: tt.code})
			assertErrorKind(t, err, tt.wantKind)
			if apperrors.IsRetryable(err) != tt.retryable {
				t.Fatalf("code %d: retryable = %v, want %v", tt.code, !tt.retryable, tt.retryable)
			}
		})
	}
}

func TestClassifyGeminiError_NonAPIErrorIsTransient(t *testing.T) {
	err := classifyGeminiError(errors.New("dial tcp: connection refused"))
	assertErrorKind(t, err, apperrors.KindTransient)
	if !apperrors.IsRetryable(err) {
		t.Fatal("expected network failure to be retryable")
	}
}

func TestClassifyGeminiError_DoesNotExposeRawMessage(t *testing.T) {
	err := classifyGeminiError(errors.New("SECRET_BOOK_LINE"))
	if strings.Contains(err.Error(), "SECRET_BOOK_LINE") {
		t.Fatalf("expected safe message, got %q", err.Error())
	}
}

func assertErrorKind(t *testing.T, err error, kind apperrors.Kind) {
	t.Helper()
	var appErr *apperrors.Error
	if !errors.As(err, &appErr) {
		t.Fatalf("expected apperrors.Error, got %T", err)
	}
	if appErr.Kind != kind {
		t.Fatalf("expected kind %s, got %s", kind, appErr.Kind)
	}
}
