package resilience

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/sony/gobreaker/v2"
)

// ErrorClassification decides how the executor treats a failure: Retryable
// triggers another attempt, RecordFailure counts against the breaker.
type ErrorClassification struct {
	Retryable     bool
	RecordFailure bool
}

type ErrorClassifier func(err error) ErrorClassification

// Executor wraps a single named upstream operation with bounded retries and
// a circuit breaker.
type Executor struct {
	name       string
	cfg        Config
	classifier ErrorClassifier
	breaker    *gobreaker.CircuitBreaker[any]
}

func NewExecutor(name string, cfg Config, classifier ErrorClassifier) *Executor {
	op := strings.TrimSpace(name)
	if op == "" {
		op = "unknown"
	}
	if classifier == nil {
		classifier = func(error) ErrorClassification {
			return ErrorClassification{RecordFailure: true}
		}
	}
	cfg = cfg.normalize()

	exec := &Executor{name: op, cfg: cfg, classifier: classifier}
	if cfg.BreakerEnabled {
		exec.breaker = gobreaker.NewCircuitBreaker[any](gobreaker.Settings{
			Name:        op,
			MaxRequests: cfg.BreakerHalfOpenMaxCalls,
			Timeout:     cfg.BreakerOpenTimeout,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				if counts.Requests < cfg.BreakerMinRequests {
					return false
				}
				return float64(counts.TotalFailures)/float64(counts.Requests) >= cfg.BreakerFailureRatio
			},
			IsSuccessful: func(err error) bool {
				if err == nil {
					return true
				}
				return !classifier(err).RecordFailure
			},
			OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
				slog.Warn("circuit_breaker_state_change", "operation", name, "from", from.String(), "to", to.String())
			},
		})
	}
	return exec
}

func (e *Executor) Execute(ctx context.Context, fn func(context.Context) error) error {
	if fn == nil {
		return fmt.Errorf("resilience: operation callback is nil")
	}
	if e.breaker == nil {
		return e.executeWithRetry(ctx, fn)
	}

	_, err := e.breaker.Execute(func() (any, error) {
		return nil, e.executeWithRetry(ctx, fn)
	})
	return err
}

func (e *Executor) executeWithRetry(ctx context.Context, fn func(context.Context) error) error {
	backoff := e.cfg.RetryInitialBackoff

	for attempt := 1; ; attempt++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		err := fn(ctx)
		if err == nil {
			return nil
		}

		class := e.classifier(err)
		if !class.Retryable || attempt == e.cfg.RetryMaxAttempts {
			return err
		}

		slog.Warn("retry_attempt",
			"operation", e.name,
			"attempt", attempt,
			"max_attempts", e.cfg.RetryMaxAttempts,
			"backoff_ms", float64(backoff.Microseconds())/1000.0,
			"error", err,
		)

		timer := time.NewTimer(backoff)
		select {
		case <-ctx.Done():
			timer.Stop()
			return err
		case <-timer.C:
		}

		backoff = time.Duration(float64(backoff) * e.cfg.RetryMultiplier)
		if backoff > e.cfg.RetryMaxBackoff {
			backoff = e.cfg.RetryMaxBackoff
		}
	}
}

func IsCircuitOpen(err error) bool {
	return errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests)
}
