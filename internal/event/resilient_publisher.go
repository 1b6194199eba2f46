package event

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/avast/retry-go/v4"
)

// ResilientConfig configures the ResilientPublisher
type ResilientConfig struct {
	MaxRetries int
	RetryDelay time.Duration
}

// DeadLetterSink receives events whose retries were exhausted
type DeadLetterSink interface {
	Write(event Event, attempts int, lastError error) error
}

// ResilientPublisher wraps a Bus so that a failing subscriber never fails the
// publisher. Failed events are retried in the background with exponential
// backoff and dead-lettered once retries run out.
type ResilientPublisher struct {
	inner      Bus
	config     ResilientConfig
	deadLetter DeadLetterSink

	mu       sync.Mutex
	closed   bool
	wg       sync.WaitGroup
	shutdown chan struct{}
}

// NewResilientPublisher creates a new ResilientPublisher. deadLetter may be nil,
// in which case exhausted events are only logged.
func NewResilientPublisher(inner Bus, config ResilientConfig, deadLetter DeadLetterSink) *ResilientPublisher {
	if config.MaxRetries <= 0 {
		config.MaxRetries = DefaultMaxRetries
	}
	if config.RetryDelay <= 0 {
		config.RetryDelay = DefaultRetryDelay
	}
	return &ResilientPublisher{
		inner:      inner,
		config:     config,
		deadLetter: deadLetter,
		shutdown:   make(chan struct{}),
	}
}

// Publish delivers synchronously once and falls back to background retries.
// It always returns nil.
func (p *ResilientPublisher) Publish(ctx context.Context, event Event) error {
	err := p.inner.Publish(ctx, event)
	if err == nil {
		return nil
	}

	slog.Warn(LogMsgEventPublishFailed, "event_type", event.Type, "error", err, "retries", p.config.MaxRetries)

	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		p.deadLettered(event, 1, err)
		return nil
	}
	p.wg.Add(1)
	p.mu.Unlock()

	go p.retryLoop(event)
	return nil
}

func (p *ResilientPublisher) retryLoop(event Event) {
	defer p.wg.Done()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() {
		select {
		case <-p.shutdown:
			cancel()
		case <-ctx.Done():
		}
	}()

	attempts := 0
	err := retry.Do(
		func() error {
			attempts++
			return p.inner.Publish(ctx, event)
		},
		retry.Context(ctx),
		retry.Attempts(uint(p.config.MaxRetries)),
		retry.Delay(p.config.RetryDelay),
		retry.DelayType(retry.BackOffDelay),
		retry.LastErrorOnly(true),
		retry.OnRetry(func(n uint, err error) {
			slog.Debug(LogMsgEventRetryFailed, "event_type", event.Type, "attempt", n+1, "error", err)
		}),
	)
	if err == nil {
		slog.Info(LogMsgEventRetrySucceeded, "event_type", event.Type, "attempts", attempts)
		return
	}

	slog.Warn(LogMsgEventRetryExhausted, "event_type", event.Type, "attempts", attempts)
	p.deadLettered(event, attempts+1, err)
}

func (p *ResilientPublisher) deadLettered(event Event, attempts int, err error) {
	if p.deadLetter == nil {
		return
	}
	if werr := p.deadLetter.Write(event, attempts, err); werr != nil {
		slog.Error(LogMsgDeadLetterWriteFailed, "event_type", event.Type, "error", werr)
	}
}

// Subscribe delegates to the inner bus
func (p *ResilientPublisher) Subscribe(eventType Type, handler Handler) {
	p.inner.Subscribe(eventType, handler)
}

// Shutdown cancels pending retries, which dead-letter their events, and waits
// for them to finish or for ctx to expire.
func (p *ResilientPublisher) Shutdown(ctx context.Context) error {
	p.mu.Lock()
	if !p.closed {
		p.closed = true
		close(p.shutdown)
	}
	p.mu.Unlock()

	done := make(chan struct{})
	go func() {
		p.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		slog.Warn(LogMsgShutdownTimeout)
		return ctx.Err()
	}
}
