package retry

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
)

// mockOperation tracks invocation count and simulates transient failures.
type mockOperation struct {
	invocations  int
	failUntil    int // fail for invocations < failUntil
	transientErr error
	fatalErr     error
}

func (m *mockOperation) execute(ctx context.Context) error {
	m.invocations++

	if m.invocations < m.failUntil {
		if m.transientErr != nil {
			return m.transientErr
		}
		return &pgconn.PgError{Code: "08006", Message: "connection failure"}
	}

	if m.invocations == m.failUntil && m.fatalErr != nil {
		return m.fatalErr
	}

	return nil
}

func newTestExecutor(maxAttempts int) *Executor {
	strategy := NewExponentialBackoff(maxAttempts,
		WithInitialDelay(1*time.Millisecond),
		WithJitter(0),
	)
	return NewExecutor(NewPostgreSQLErrorClassifier(), strategy)
}

func TestExecutor_Execute_SuccessOnFirstAttempt(t *testing.T) {
	op := &mockOperation{failUntil: 1}

	if err := newTestExecutor(3).Execute(context.Background(), op.execute); err != nil {
		t.Errorf("Expected success, got error: %v", err)
	}
	if op.invocations != 1 {
		t.Errorf("Expected 1 invocation, got %d", op.invocations)
	}
}

func TestExecutor_Execute_SuccessAfterRetries(t *testing.T) {
	op := &mockOperation{failUntil: 4}

	if err := newTestExecutor(5).Execute(context.Background(), op.execute); err != nil {
		t.Errorf("Expected success after retries, got error: %v", err)
	}
	if op.invocations != 4 {
		t.Errorf("Expected 4 invocations, got %d", op.invocations)
	}
}

func TestExecutor_Execute_FatalErrorNoRetry(t *testing.T) {
	fatal := errors.New("syntax error at or near")
	op := &mockOperation{failUntil: 1, fatalErr: fatal}

	err := newTestExecutor(5).Execute(context.Background(), op.execute)
	if !errors.Is(err, fatal) {
		t.Errorf("Expected fatal error, got: %v", err)
	}
	if op.invocations != 1 {
		t.Errorf("Expected 1 invocation for fatal error, got %d", op.invocations)
	}
}

func TestExecutor_Execute_ExhaustsAttempts(t *testing.T) {
	op := &mockOperation{failUntil: 100}

	err := newTestExecutor(3).Execute(context.Background(), op.execute)
	if err == nil {
		t.Fatal("Expected error after exhausting retries")
	}
	// 1 initial attempt + 3 retries
	if op.invocations != 4 {
		t.Errorf("Expected 4 invocations, got %d", op.invocations)
	}
}

func TestExecutor_Execute_ContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	op := &mockOperation{failUntil: 100}
	strategy := NewExponentialBackoff(10,
		WithInitialDelay(100*time.Millisecond),
		WithJitter(0),
	)
	executor := NewExecutor(NewPostgreSQLErrorClassifier(), strategy)

	go func() {
		time.Sleep(10 * time.Millisecond)
		cancel()
	}()

	err := executor.Execute(ctx, op.execute)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Expected context.Canceled, got: %v", err)
	}
}

func TestExecutor_WithOnRetry_ReportsAttempts(t *testing.T) {
	var attempts []int
	op := &mockOperation{failUntil: 3}

	executor := newTestExecutor(5).WithOnRetry(func(attempt int, err error, delay time.Duration) {
		attempts = append(attempts, attempt)
	})

	if err := executor.Execute(context.Background(), op.execute); err != nil {
		t.Fatalf("Expected success, got: %v", err)
	}
	if len(attempts) != 2 {
		t.Errorf("Expected 2 retry callbacks, got %d", len(attempts))
	}
}

func TestExecutor_WithOnRetry_DoesNotMutateOriginal(t *testing.T) {
	base := newTestExecutor(3)
	derived := base.WithOnRetry(func(int, error, time.Duration) {})

	if base == derived {
		t.Error("WithOnRetry should return a new instance")
	}
	if base.onRetry != nil {
		t.Error("WithOnRetry must not modify the receiver")
	}
}

func TestNewExecutor_PanicsOnNilDependencies(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("Expected panic for nil classifier")
		}
	}()
	NewExecutor(nil, NewExponentialBackoff(3))
}
