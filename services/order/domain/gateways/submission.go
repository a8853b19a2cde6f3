package gateways

import (
	"context"
	"fmt"

	"github.com/ghuser/pizzaorder/services/order/domain/models"
)

// SubmissionGateway sends a validated draft to the order endpoint.
// The domain layer owns this interface; infrastructure implements it.
type SubmissionGateway interface {
	// SubmitOrder posts d verbatim and returns the decoded success body.
	// Structured failures are returned as *RejectionError.
	SubmitOrder(ctx context.Context, d models.OrderDraft) (*models.Receipt, error)
}

// RejectionError is a failure response from the order endpoint. Message is
// empty when the response carried no usable message.
type RejectionError struct {
	StatusCode int
	Message    string
}

func (e *RejectionError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("order rejected with status %d", e.StatusCode)
	}
	return fmt.Sprintf("order rejected with status %d: %s", e.StatusCode, e.Message)
}

// GatewayFunc adapts a function to SubmissionGateway.
type GatewayFunc func(ctx context.Context, d models.OrderDraft) (*models.Receipt, error)

// SubmitOrder calls f.
func (f GatewayFunc) SubmitOrder(ctx context.Context, d models.OrderDraft) (*models.Receipt, error) {
	return f(ctx, d)
}
