package llm

import (
	"errors"
	"fmt"
	"testing"
)

func TestClassifyError(t *testing.T) {
	tests := []struct {
		name          string
		err           error
		wantType      ErrorType
		wantRetryable bool
	}{
		{
			name:          "unauthorized",
			err:           errors.New("401 Unauthorized: invalid api key"),
			wantType:      ErrorTypeAuth,
			wantRetryable: false,
		},
		{
			name:          "model not found",
			err:           errors.New("model gpt-5000 does not exist"),
			wantType:      ErrorTypeModel,
			wantRetryable: false,
		},
		{
			name:          "connection refused",
			err:           errors.New("dial tcp 127.0.0.1:443: connection refused"),
			wantType:      ErrorTypeUnavailable,
			wantRetryable: true,
		},
		{
			name:          "deadline exceeded",
			err:           errors.New("context deadline exceeded"),
			wantType:      ErrorTypeUnavailable,
			wantRetryable: true,
		},
		{
			name:          "rate limited",
			err:           errors.New("429 Too Many Requests"),
			wantType:      ErrorTypeUnavailable,
			wantRetryable: true,
		},
		{
			name:          "server error",
			err:           errors.New("503 Service Unavailable"),
			wantType:      ErrorTypeUnavailable,
			wantRetryable: true,
		},
		{
			name:          "unrecognized",
			err:           errors.New("something odd happened"),
			wantType:      ErrorTypeUnknown,
			wantRetryable: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ClassifyError(tt.err)
			if got.Type != tt.wantType {
				t.Errorf("type = %s, want %s", got.Type, tt.wantType)
			}
			if got.Retryable != tt.wantRetryable {
				t.Errorf("retryable = %v, want %v", got.Retryable, tt.wantRetryable)
			}
		})
	}
}

func TestClassifyErrorPassthrough(t *testing.T) {
	original := MalformedResponseError(errors.New("bad json"))
	got := ClassifyError(fmt.Errorf("wrapped: %w", original))
	if got != original {
		t.Error("an already-classified error must pass through unchanged")
	}
}

func TestClassifyErrorNil(t *testing.T) {
	if got := ClassifyError(nil); got != nil {
		t.Errorf("got %v for nil error, want nil", got)
	}
}

func TestErrorUnwrap(t *testing.T) {
	cause := errors.New("root cause")
	err := NewError(ErrorTypeUnavailable, "server error", true, cause)
	if !errors.Is(err, cause) {
		t.Error("errors.Is must find the cause through Unwrap")
	}
}

func TestIsRetryable(t *testing.T) {
	if !IsRetryable(NewError(ErrorTypeUnavailable, "timeout", true, nil)) {
		t.Error("retryable error reported as not retryable")
	}
	if IsRetryable(NewError(ErrorTypeAuth, "auth", false, nil)) {
		t.Error("auth error reported as retryable")
	}
	if IsRetryable(errors.New("plain")) {
		t.Error("plain error reported as retryable")
	}
}
