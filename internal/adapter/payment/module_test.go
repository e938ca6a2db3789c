package payment

import (
	"testing"
	"time"
)

func TestNewProcessor(t *testing.T) {
	processor := newProcessor(testPaymentLogger())
	mock, ok := processor.(*MockProcessor)
	if !ok {
		t.Fatalf("expected *MockProcessor, got %T", processor)
	}
	if mock.delay != 200*time.Millisecond {
		t.Fatalf("unexpected delay: %s", mock.delay)
	}
	if mock.logger == nil {
		t.Fatal("expected logger to be wired")
	}
}
