package event

import (
	"context"
	"fmt"
	"sync"

	"github.com/osse101/ArsenalSync_Go/internal/domain"
	"github.com/osse101/ArsenalSync_Go/internal/logger"
)

// Type represents the type of an event
type Type string

// Event represents a change notification raised by the engine
type Event struct {
	Version string      `json:"version"` // Event schema version (e.g., "1.0")
	Type    Type        `json:"type"`
	Payload interface{} `json:"payload"`
}

// Notification types
const (
	InventoryChanged    Type = "inventory.changed"
	SelectionChanged    Type = "inventory.selection_changed"
	DefinitionsResolved Type = "resolver.definitions_resolved"
)

// InventoryChangedPayloadV1 carries the full aggregate after a mutation
type InventoryChangedPayloadV1 struct {
	OwnerID   string                   `json:"owner_id"`
	Inventory domain.InventorySnapshot `json:"inventory"`
}

// SelectionChangedPayloadV1 carries the keys that are selected after a SetSelection
type SelectionChangedPayloadV1 struct {
	OwnerID      string   `json:"owner_id"`
	SelectedKeys []string `json:"selected_keys"`
}

// DefinitionsResolvedPayloadV1 carries the output of one resolution call
type DefinitionsResolvedPayloadV1 struct {
	Definitions []domain.ContentDefinition `json:"definitions"`
}

// NewInventoryChangedEvent creates an inventory changed event
func NewInventoryChangedEvent(snapshot domain.InventorySnapshot) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    InventoryChanged,
		Payload: InventoryChangedPayloadV1{
			OwnerID:   snapshot.OwnerID,
			Inventory: snapshot,
		},
	}
}

// NewSelectionChangedEvent creates a selection changed event
func NewSelectionChangedEvent(ownerID string, selectedKeys []string) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    SelectionChanged,
		Payload: SelectionChangedPayloadV1{
			OwnerID:      ownerID,
			SelectedKeys: selectedKeys,
		},
	}
}

// NewDefinitionsResolvedEvent creates a definitions resolved event
func NewDefinitionsResolvedEvent(defs []domain.ContentDefinition) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    DefinitionsResolved,
		Payload: DefinitionsResolvedPayloadV1{
			Definitions: defs,
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

// MemoryBus is an in-memory observer list. Handlers run synchronously on the
// publishing goroutine in subscription order.
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

// Publish publishes an event to all subscribers
func (b *MemoryBus) Publish(ctx context.Context, event Event) error {
	b.mu.RLock()
	handlers := append([]Handler(nil), b.handlers[event.Type]...)
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

// Notify publishes evt and logs handler failures. Observer errors never fail
// the operation that raised the notification. A nil bus is a no-op.
func Notify(ctx context.Context, bus Bus, evt Event) {
	if bus == nil {
		return
	}
	if err := bus.Publish(ctx, evt); err != nil {
		logger.FromContext(ctx).Warn(LogMsgObserverFailed, "type", evt.Type, "error", err)
	}
}
