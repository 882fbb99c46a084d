package service

import (
	"context"

	"github.com/getsentry/sentry-go"
	"go.uber.org/zap"
)

// reportStoreError logs a persistence failure and sends it to Sentry through
// the request hub when one is attached to ctx.
func reportStoreError(ctx context.Context, logger *zap.SugaredLogger, msg string, err error, keysAndValues ...interface{}) {
	logger.Errorw(msg, append(keysAndValues, "error", err)...)

	hub := sentry.GetHubFromContext(ctx)
	if hub == nil {
		hub = sentry.CurrentHub()
	}
	hub.WithScope(func(scope *sentry.Scope) {
		scope.SetTag("operation", msg)
		hub.CaptureException(err)
	})
}
