package bootstrap

import (
	"fmt"
	"log/slog"

	"github.com/osse101/ArsenalSync_Go/internal/config"
	"github.com/osse101/ArsenalSync_Go/internal/event"
)

// InitializeEventSystem creates the in-memory bus behind a resilient
// publisher. Failing observers are retried cfg.EventMaxRetries times and then
// written to cfg.EventDeadLetterPath.
func InitializeEventSystem(cfg *config.Config) (*event.ResilientPublisher, error) {
	deadLetter, err := event.NewDeadLetterWriter(cfg.EventDeadLetterPath)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedCreateDeadLetter, err)
	}

	publisher := event.NewResilientPublisher(event.NewMemoryBus(), event.ResilientConfig{
		MaxRetries: cfg.EventMaxRetries,
		RetryDelay: cfg.EventRetryDelay,
		DeadLetter: deadLetter,
	})

	slog.Info(LogMsgEventSystemInitialized,
		"max_retries", cfg.EventMaxRetries,
		"retry_delay", cfg.EventRetryDelay,
		"deadletter_path", cfg.EventDeadLetterPath)

	return publisher, nil
}
