package bootstrap

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/osse101/CineLoot_Go/internal/config"
	"github.com/osse101/CineLoot_Go/internal/event"
)

// EventSystem is the bus handed to services plus the pieces shutdown needs
type EventSystem struct {
	Bus        event.Bus
	Publisher  *event.ResilientPublisher
	DeadLetter *event.DeadLetterWriter
}

// InitializeEventSystem wraps a MemoryBus in a ResilientPublisher. Events
// that exhaust their retries go to cfg.EventDeadLetterPath when it is set.
func InitializeEventSystem(cfg *config.Config) (*EventSystem, error) {
	bus := event.NewMemoryBus()
	sys := &EventSystem{Bus: bus}

	var sink event.DeadLetterSink
	if cfg.EventDeadLetterPath != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.EventDeadLetterPath), DirPermission); err != nil {
			return nil, fmt.Errorf("%s: %w", ErrMsgFailedCreateDeadLetterDir, err)
		}
		dlw, err := event.NewDeadLetterWriter(cfg.EventDeadLetterPath)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", ErrMsgFailedOpenDeadLetter, err)
		}
		sys.DeadLetter = dlw
		sink = dlw
	} else {
		slog.Warn(LogMsgDeadLetterDisabled)
	}

	sys.Publisher = event.NewResilientPublisher(bus, event.ResilientConfig{
		MaxRetries: EventDefaultMaxRetries,
		RetryDelay: EventDefaultRetryDelay,
	}, sink)

	slog.Info(LogMsgEventSystemInitialized,
		"max_retries", EventDefaultMaxRetries,
		"retry_delay", EventDefaultRetryDelay,
		"deadletter_path", cfg.EventDeadLetterPath)

	return sys, nil
}
