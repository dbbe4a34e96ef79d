package app

import (
	"context"

	"go.uber.org/zap"
)

// logEmitter records workspace events in the debug log. It stands in for a
// UI that would redraw on them.
type logEmitter struct {
	log *zap.Logger
}

func newLogEmitter(log *zap.Logger) logEmitter {
	return logEmitter{log: log.Named("events")}
}

func (e logEmitter) Emit(_ context.Context, event string, data any) {
	e.log.Debug(event, zap.Any("data", data))
}
