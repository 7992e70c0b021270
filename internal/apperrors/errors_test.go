package apperrors

import (
	"errors"
	"fmt"
	"testing"
)

func TestErrorMessage(t *testing.T) {
	cause := errors.New("socket reset with sk-ant-secret inside")
	err := New(KindTransient, "Upstream hiccup.", cause)
	if err.Error() != "Upstream hiccup." {
		t.Errorf("expected safe message, got %q", err.Error())
	}
	if !errors.Is(err, cause) {
		t.Error("expected wrapped cause to be reachable via errors.Is")
	}
}

func TestDefaultSafeMessages(t *testing.T) {
	tests := []struct {
		kind Kind
		want string
	}{
		{KindTransient, "Temporary upstream error. Please try again."},
		{KindRateLimit, "Rate limit exceeded. Please try again later."},
		{KindAuth, "Authentication failed. Please verify your API key and permissions."},
		{KindValidation, "Response validation failed."},
		{KindBadRequest, "Request rejected by upstream API."},
	}
	for _, tt := range tests {
		err := New(tt.kind, "", errors.New("internal detail"))
		if err.Error() != tt.want {
			t.Errorf("kind %s: expected %q, got %q", tt.kind, tt.want, err.Error())
		}
	}
}

func TestKindOf(t *testing.T) {
	err := RateLimit(errors.New("429"))
	kind, ok := KindOf(err)
	if !ok || kind != KindRateLimit {
		t.Errorf("expected rate_limit kind, got %v (ok=%v)", kind, ok)
	}

	wrapped := fmt.Errorf("while translating: %w", err)
	kind, ok = KindOf(wrapped)
	if !ok || kind != KindRateLimit {
		t.Errorf("expected kind to survive wrapping, got %v (ok=%v)", kind, ok)
	}

	if _, ok := KindOf(errors.New("plain")); ok {
		t.Error("plain error should have no kind")
	}
}

func TestIsRetryable(t *testing.T) {
	tests := []struct {
		err  error
		want bool
	}{
		{Transient(errors.New("503")), true},
		{RateLimit(errors.New("429")), true},
		{Validation(errors.New("bad json")), true},
		{Auth(errors.New("401")), false},
		{BadRequest(errors.New("400")), false},
		{errors.New("unclassified"), false},
	}
	for _, tt := range tests {
		if got := IsRetryable(tt.err); got != tt.want {
			t.Errorf("IsRetryable(%v) = %v, want %v", tt.err, got, tt.want)
		}
	}
}

func TestIsRateLimit(t *testing.T) {
	if !IsRateLimit(RateLimit(nil)) {
		t.Error("expected rate limit error to be detected")
	}
	if IsRateLimit(Transient(nil)) {
		t.Error("transient error should not be rate limit")
	}
}

func TestPublicMessage(t *testing.T) {
	if PublicMessage(nil) != "" {
		t.Error("nil error should produce empty message")
	}
	err := New(KindAuth, "Key rejected.", errors.New("x-api-key invalid: sk-ant-abc"))
	if PublicMessage(err) != "Key rejected." {
		t.Errorf("unexpected public message: %q", PublicMessage(err))
	}
}
