package event

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/osse101/CineLoot_Go/internal/domain"
)

// Type represents the type of an event
type Type string

// Event represents a generic event in the system
type Event struct {
	Version  string                 `json:"version"` // Event schema version (e.g., "1.0")
	Type     Type                   `json:"type"`
	Payload  interface{}            `json:"payload"`
	Metadata map[string]interface{} `json:"metadata,omitempty"`
}

// Event types
const (
	SpinCompleted       Type = Type(domain.EventTypeSpinCompleted)
	OverrideSpinGranted Type = Type(domain.EventTypeOverrideSpinGranted)
)

// SpinCompletedPayloadV1 is the typed payload for spin.completed
type SpinCompletedPayloadV1 struct {
	SpinID       string             `json:"spin_id"`
	UserID       string             `json:"user_id"`
	ContentID    int64              `json:"content_id"`
	ContentType  domain.ContentType `json:"content_type"`
	Rarity       domain.Rarity      `json:"rarity"`
	QualityScore int                `json:"quality_score"`
	WasNewUnlock bool               `json:"was_new_unlock"`
	Guest        bool               `json:"guest"`
	Timestamp    int64              `json:"timestamp"`
}

// OverrideSpinGrantedPayloadV1 is the typed payload for spin.override_granted
type OverrideSpinGrantedPayloadV1 struct {
	UserID    string `json:"user_id"`
	Amount    int    `json:"amount"`
	Balance   int    `json:"balance"`
	Timestamp int64  `json:"timestamp"`
}

// NewSpinCompletedEvent builds the event published after a spin commits.
// Guest spins have no record id and an empty user id.
func NewSpinCompletedEvent(outcome domain.SpinOutcome, userID string) Event {
	payload := SpinCompletedPayloadV1{
		UserID:       userID,
		ContentID:    outcome.Content.ID,
		ContentType:  outcome.Content.Type,
		Rarity:       outcome.Rarity.Tier,
		QualityScore: outcome.QualityScore,
		WasNewUnlock: outcome.WasNewUnlock,
		Guest:        outcome.SpinID == nil,
		Timestamp:    time.Now().Unix(),
	}
	if outcome.SpinID != nil {
		payload.SpinID = outcome.SpinID.String()
	}
	return Event{
		Version: EventSchemaVersion,
		Type:    SpinCompleted,
		Payload: payload,
	}
}

// NewOverrideSpinGrantedEvent builds the event published after an admin grant
func NewOverrideSpinGrantedEvent(userID string, amount, balance int) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    OverrideSpinGranted,
		Payload: OverrideSpinGrantedPayloadV1{
			UserID:    userID,
			Amount:    amount,
			Balance:   balance,
			Timestamp: time.Now().Unix(),
		},
	}
}

// Handler is a function that handles an event
type Handler func(ctx context.Context, event Event) error

// Bus defines the interface for an event bus
type Bus interface {
	Publish(ctx context.Context, event Event) error
	Subscribe(eventType Type, handler Handler)
}

// MemoryBus is an in-memory implementation of the Event Bus
type MemoryBus struct {
	handlers map[Type][]Handler
	mu       sync.RWMutex
}

// NewMemoryBus creates a new MemoryBus
func NewMemoryBus() *MemoryBus {
	return &MemoryBus{
		handlers: make(map[Type][]Handler),
	}
}

// Publish runs every subscriber of the event type synchronously
func (b *MemoryBus) Publish(ctx context.Context, event Event) error {
	b.mu.RLock()
	handlers := b.handlers[event.Type]
	b.mu.RUnlock()

	var errs []error
	for _, handler := range handlers {
		if err := handler(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf(LogMsgHandlerErrorFormat, len(errs), event.Type, errs)
	}
	return nil
}

// Subscribe subscribes a handler to an event type
func (b *MemoryBus) Subscribe(eventType Type, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.handlers[eventType] = append(b.handlers[eventType], handler)
}
