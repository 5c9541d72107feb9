package llm

import (
	"testing"
	"time"
)

func TestCircuitBreakerTripsAfterThreshold(t *testing.T) {
	cb := NewCircuitBreaker(CircuitBreakerConfig{Threshold: 3, ResetAfter: time.Minute})

	for i := 0; i < 2; i++ {
		cb.RecordFailure()
	}
	if got := cb.State(); got != CircuitClosed {
		t.Fatalf("state = %s before threshold, want closed", got)
	}

	cb.RecordFailure()
	if got := cb.State(); got != CircuitOpen {
		t.Fatalf("state = %s after threshold, want open", got)
	}

	allowed, err := cb.Allow()
	if allowed {
		t.Error("open circuit must not allow requests")
	}
	if err == nil {
		t.Error("open circuit must explain the rejection")
	}
}

func TestCircuitBreakerSuccessCloses(t *testing.T) {
	cb := NewCircuitBreaker(CircuitBreakerConfig{Threshold: 2, ResetAfter: time.Minute})

	cb.RecordFailure()
	cb.RecordFailure()
	if cb.State() != CircuitOpen {
		t.Fatal("expected open circuit")
	}

	cb.RecordSuccess()
	if cb.State() != CircuitClosed {
		t.Fatal("success must close the circuit")
	}
	if cb.ConsecutiveFailures() != 0 {
		t.Error("success must reset the failure count")
	}
}

func TestCircuitBreakerHalfOpenAfterReset(t *testing.T) {
	cb := NewCircuitBreaker(CircuitBreakerConfig{Threshold: 1, ResetAfter: 10 * time.Millisecond})

	cb.RecordFailure()
	if cb.State() != CircuitOpen {
		t.Fatal("expected open circuit")
	}

	time.Sleep(20 * time.Millisecond)

	allowed, err := cb.Allow()
	if !allowed || err != nil {
		t.Fatalf("expected probe request after reset window, got allowed=%v err=%v", allowed, err)
	}
	if cb.State() != CircuitHalfOpen {
		t.Fatalf("state = %s, want half-open", cb.State())
	}

	// A second request during the probe is rejected.
	if allowed, _ := cb.Allow(); allowed {
		t.Error("half-open circuit must reject concurrent requests")
	}

	// Probe failure reopens immediately.
	cb.RecordFailure()
	if cb.State() != CircuitOpen {
		t.Fatalf("state = %s after probe failure, want open", cb.State())
	}
}

func TestCircuitBreakerReset(t *testing.T) {
	cb := NewCircuitBreaker(CircuitBreakerConfig{Threshold: 1, ResetAfter: time.Minute})
	cb.RecordFailure()
	cb.Reset()
	if cb.State() != CircuitClosed || cb.ConsecutiveFailures() != 0 {
		t.Error("reset must restore closed state")
	}
}
