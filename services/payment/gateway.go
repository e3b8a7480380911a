package payment

import (
	"context"

	"zela/config"
	"zela/models"
)

// Gateway processes charges and refunds for committed bookings. A
// declined charge is reported in the result, not as an error; errors
// are reserved for transport and gateway failures.
type Gateway interface {
	ProcessPayment(ctx context.Context, req models.PaymentRequest) (*models.PaymentResult, error)
	RefundPayment(ctx context.Context, transactionID string, amount int64) (*models.RefundResult, error)
}

// NewGateway selects the configured gateway implementation.
func NewGateway() Gateway {
	if config.AppConfig.PaymentGateway == "stripe" {
		return NewStripeGateway(config.AppConfig.StripeKey)
	}
	return NewMockGateway()
}
