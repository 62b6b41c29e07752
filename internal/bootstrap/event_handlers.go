package bootstrap

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/osse101/ArsenalSync_Go/internal/event"
	"github.com/osse101/ArsenalSync_Go/internal/logger"
	"github.com/osse101/ArsenalSync_Go/internal/metrics"
)

// RegisterEventHandlers subscribes the built-in observers: the metrics
// collector and a debug logger for selection and resolution changes
func RegisterEventHandlers(bus event.Bus) error {
	metricsCollector := metrics.NewEventMetricsCollector()
	if err := metricsCollector.Register(bus); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedRegisterMetrics, err)
	}
	slog.Info(LogMsgMetricsCollectorRegistered)

	bus.Subscribe(event.SelectionChanged, logSelectionChanged)
	bus.Subscribe(event.DefinitionsResolved, logDefinitionsResolved)
	slog.Info(LogMsgChangeLoggerRegistered)

	return nil
}

func logSelectionChanged(ctx context.Context, evt event.Event) error {
	payload, err := event.DecodePayload[event.SelectionChangedPayloadV1](evt.Payload)
	if err != nil {
		return err
	}
	logger.FromContext(ctx).Debug(LogMsgSelectionChanged,
		"owner_id", payload.OwnerID,
		"selected", payload.SelectedKeys)
	return nil
}

func logDefinitionsResolved(ctx context.Context, evt event.Event) error {
	payload, err := event.DecodePayload[event.DefinitionsResolvedPayloadV1](evt.Payload)
	if err != nil {
		return err
	}
	logger.FromContext(ctx).Debug(LogMsgDefinitionsResolved, "definitions", len(payload.Definitions))
	return nil
}
