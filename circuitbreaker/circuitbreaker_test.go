package circuitbreaker

import (
	"context"
	"errors"
	"testing"
	"time"
)

var errBoom = errors.New("boom")

func failing() error { return errBoom }
func succeeding() error { return nil }

func TestBreakerOpensAfterMaxFailures(t *testing.T) {
	cb := New(3, time.Minute)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if err := cb.Execute(ctx, failing); !errors.Is(err, errBoom) {
			t.Fatalf("Expected the wrapped error, got %v", err)
		}
	}

	if cb.GetState() != StateOpen {
		t.Errorf("Expected state %v, got %v", StateOpen, cb.GetState())
	}

	if err := cb.Execute(ctx, succeeding); !errors.Is(err, ErrCircuitOpen) {
		t.Errorf("Expected ErrCircuitOpen, got %v", err)
	}
}

func TestBreakerRecoversAfterResetTimeout(t *testing.T) {
	cb := New(1, 10*time.Millisecond)
	ctx := context.Background()

	if err := cb.Execute(ctx, failing); !errors.Is(err, errBoom) {
		t.Fatalf("Expected the wrapped error, got %v", err)
	}
	if cb.GetState() != StateOpen {
		t.Fatalf("Expected state %v, got %v", StateOpen, cb.GetState())
	}

	time.Sleep(20 * time.Millisecond)

	if err := cb.Execute(ctx, succeeding); err != nil {
		t.Errorf("Expected the half-open probe to succeed, got %v", err)
	}
	if cb.GetState() != StateClosed {
		t.Errorf("Expected state %v, got %v", StateClosed, cb.GetState())
	}
}

func TestBreakerReopensOnHalfOpenFailure(t *testing.T) {
	cb := New(1, 10*time.Millisecond)
	ctx := context.Background()

	_ = cb.Execute(ctx, failing)
	time.Sleep(20 * time.Millisecond)

	if err := cb.Execute(ctx, failing); !errors.Is(err, errBoom) {
		t.Fatalf("Expected the wrapped error, got %v", err)
	}
	if cb.GetState() != StateOpen {
		t.Errorf("Expected state %v, got %v", StateOpen, cb.GetState())
	}
}

func TestBreakerHonorsCancelledContext(t *testing.T) {
	cb := New(3, time.Minute)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := cb.Execute(ctx, succeeding); !errors.Is(err, context.Canceled) {
		t.Errorf("Expected context.Canceled, got %v", err)
	}
}

func TestBreakerSuccessResetsFailureCount(t *testing.T) {
	cb := New(2, time.Minute)
	ctx := context.Background()

	_ = cb.Execute(ctx, failing)
	_ = cb.Execute(ctx, succeeding)
	_ = cb.Execute(ctx, failing)

	if cb.GetState() != StateClosed {
		t.Errorf("Expected state %v, got %v", StateClosed, cb.GetState())
	}
}
