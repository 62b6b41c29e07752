package bootstrap

import (
	"context"
	"log/slog"
)

// GracefulShutdown stops the app in dependency order:
// 1. HTTP server (stop accepting new requests)
// 2. Catalog refresh worker
// 3. Event publisher (dead-letter pending observer retries)
// 4. Document store connection
//
// Errors are logged and never stop the sequence.
func GracefulShutdown(ctx context.Context, app *App) {
	slog.Info(LogMsgShuttingDownServer)
	if app.Server != nil {
		if err := app.Server.Stop(ctx); err != nil {
			slog.Error(LogMsgServerForcedShutdown, "error", err)
		}
	}

	if app.Refresher != nil {
		slog.Info(LogMsgStoppingRefresh)
		app.Refresher.Stop()
	}

	if app.Publisher != nil {
		slog.Info(LogMsgShuttingDownEventPublisher)
		if err := app.Publisher.Shutdown(ctx); err != nil {
			slog.Error(LogMsgResilientPublisherFailed, "error", err)
		}
	}

	if app.Storage != nil {
		slog.Info(LogMsgClosingStore)
		app.Storage.Close()
	}

	slog.Info(LogMsgServerStopped)
}
