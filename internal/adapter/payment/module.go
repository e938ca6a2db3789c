package payment

import (
	"log/slog"
	"time"

	"go.uber.org/fx"
)

// Module exposes the payment gateway stub to the fx graph.
var Module = fx.Provide(newProcessor)

func newProcessor(logger *slog.Logger) Processor {
	return NewMockProcessor(200*time.Millisecond, logger)
}
