package test

import (
	"context"

	"github.com/cartcloud/backend/internal/adapter/payment"
	"github.com/cartcloud/backend/internal/domain/model"
)

// ProcessorStub simulates the payment gateway.
type ProcessorStub struct {
	ProcessFn func(context.Context, payment.Request) (*payment.Result, error)
	Requests  []payment.Request
}

// Process records the request and returns a canned approval.
func (s *ProcessorStub) Process(ctx context.Context, req payment.Request) (*payment.Result, error) {
	s.Requests = append(s.Requests, req)
	if s.ProcessFn != nil {
		return s.ProcessFn(ctx, req)
	}
	return &payment.Result{Success: true, TransactionID: "TXN_test", Status: "processed"}, nil
}

// LedgerCall records a Credit or Debit invocation.
type LedgerCall struct {
	UserID int64
	Order  *model.Order
}

// LedgerStub records balance credits and debits.
type LedgerStub struct {
	CreditFn func(context.Context, int64, *model.Order) error
	DebitFn  func(context.Context, int64, *model.Order) error

	Credits []LedgerCall
	Debits  []LedgerCall
}

// Credit records the call and optionally delegates.
func (s *LedgerStub) Credit(ctx context.Context, userID int64, order *model.Order) error {
	s.Credits = append(s.Credits, LedgerCall{UserID: userID, Order: order})
	if s.CreditFn != nil {
		return s.CreditFn(ctx, userID, order)
	}
	return nil
}

// Debit records the call and optionally delegates.
func (s *LedgerStub) Debit(ctx context.Context, userID int64, order *model.Order) error {
	s.Debits = append(s.Debits, LedgerCall{UserID: userID, Order: order})
	if s.DebitFn != nil {
		return s.DebitFn(ctx, userID, order)
	}
	return nil
}
