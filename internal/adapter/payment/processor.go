package payment

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

// Request carries what the gateway needs to charge a customer.
type Request struct {
	Method      string
	Amount      float64
	OrderNumber string
}

// Result is the synchronous outcome consumed before order persistence.
type Result struct {
	Success       bool
	TransactionID string
	Status        string
}

// Processor exposes operations of the payment gateway collaborator.
type Processor interface {
	Process(ctx context.Context, req Request) (*Result, error)
}

// MockProcessor simulates a gateway: short delay, then success.
type MockProcessor struct {
	delay  time.Duration
	logger *slog.Logger
}

// NewMockProcessor creates the stub gateway with the given processing delay.
func NewMockProcessor(delay time.Duration, logger *slog.Logger) *MockProcessor {
	return &MockProcessor{delay: delay, logger: logger}
}

// Process waits out the simulated delay and approves the charge.
func (p *MockProcessor) Process(ctx context.Context, req Request) (*Result, error) {
	if p.delay > 0 {
		timer := time.NewTimer(p.delay)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-timer.C:
		}
	}

	result := &Result{
		Success:       true,
		TransactionID: fmt.Sprintf("TXN_%d_%s", time.Now().UnixMilli(), uuid.NewString()[:8]),
		Status:        "processed",
	}
	p.logger.Info("payment processed",
		slog.String("method", req.Method),
		slog.String("order", req.OrderNumber),
		slog.Float64("amount", req.Amount),
		slog.String("transaction_id", result.TransactionID),
	)
	return result, nil
}
