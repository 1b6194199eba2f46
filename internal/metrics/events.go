package metrics

import (
	"context"
	"strconv"

	"github.com/osse101/CineLoot_Go/internal/event"
	"github.com/osse101/CineLoot_Go/internal/logger"
)

// EventMetricsCollector subscribes to spin events and records metrics
type EventMetricsCollector struct{}

// NewEventMetricsCollector creates a new event metrics collector
func NewEventMetricsCollector() *EventMetricsCollector {
	return &EventMetricsCollector{}
}

// Register subscribes to every event type the collector understands
func (e *EventMetricsCollector) Register(bus event.Bus) {
	bus.Subscribe(event.SpinCompleted, e.HandleEvent)
	bus.Subscribe(event.OverrideSpinGranted, e.HandleEvent)
}

// HandleEvent processes events and updates metrics
func (e *EventMetricsCollector) HandleEvent(ctx context.Context, evt event.Event) error {
	log := logger.FromContext(ctx)
	EventsPublished.WithLabelValues(string(evt.Type)).Inc()

	switch evt.Type {
	case event.SpinCompleted:
		p, err := event.DecodePayload[event.SpinCompletedPayloadV1](evt.Payload)
		if err != nil {
			EventHandlerErrors.WithLabelValues(string(evt.Type)).Inc()
			log.Debug(LogMsgUnexpectedPayload, "type", evt.Type, "error", err)
			return nil
		}
		SpinsTotal.WithLabelValues(
			string(p.ContentType),
			p.Rarity.String(),
			strconv.FormatBool(p.WasNewUnlock),
			strconv.FormatBool(p.Guest),
		).Inc()

	case event.OverrideSpinGranted:
		p, err := event.DecodePayload[event.OverrideSpinGrantedPayloadV1](evt.Payload)
		if err != nil {
			EventHandlerErrors.WithLabelValues(string(evt.Type)).Inc()
			log.Debug(LogMsgUnexpectedPayload, "type", evt.Type, "error", err)
			return nil
		}
		OverrideSpinsGranted.Add(float64(p.Amount))
	}

	log.Debug(LogMsgMetricsRecorded, "type", evt.Type)
	return nil
}
