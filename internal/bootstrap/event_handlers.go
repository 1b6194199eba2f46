package bootstrap

import (
	"log/slog"

	"github.com/osse101/CineLoot_Go/internal/event"
	"github.com/osse101/CineLoot_Go/internal/metrics"
)

// RegisterEventHandlers subscribes the event-driven metrics collector
func RegisterEventHandlers(bus event.Bus) {
	metrics.NewEventMetricsCollector().Register(bus)
	slog.Info(LogMsgMetricsCollectorReady)
}
