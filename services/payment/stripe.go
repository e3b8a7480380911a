package payment

import (
	"context"

	"zela/models"
	"zela/utils"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/client"
	"go.uber.org/zap"
)

// StripeGateway charges via Stripe payment intents. Amounts are already
// in the smallest currency unit.
type StripeGateway struct {
	api *client.API
}

func NewStripeGateway(apiKey string) *StripeGateway {
	return &StripeGateway{api: client.New(apiKey, nil)}
}

func (g *StripeGateway) ProcessPayment(ctx context.Context, req models.PaymentRequest) (*models.PaymentResult, error) {
	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(req.Amount),
		Currency: stripe.String(req.Currency),
		Params: stripe.Params{
			Context: ctx,
			Metadata: map[string]string{
				"booking_id":     req.BookingID,
				"payment_method": req.Method,
			},
		},
		Confirm: stripe.Bool(true),
	}

	intent, err := g.api.PaymentIntents.New(params)
	if err != nil {
		utils.GetLogger().Error("Stripe payment failed",
			zap.String("bookingId", req.BookingID), zap.Error(err))
		return nil, err
	}

	return &models.PaymentResult{
		Success:       intent.Status == stripe.PaymentIntentStatusSucceeded,
		TransactionID: intent.ID,
		Status:        string(intent.Status),
	}, nil
}

func (g *StripeGateway) RefundPayment(ctx context.Context, transactionID string, amount int64) (*models.RefundResult, error) {
	params := &stripe.RefundParams{
		PaymentIntent: stripe.String(transactionID),
		Params:        stripe.Params{Context: ctx},
	}
	if amount > 0 {
		params.Amount = stripe.Int64(amount)
	}

	refund, err := g.api.Refunds.New(params)
	if err != nil {
		utils.GetLogger().Error("Stripe refund failed",
			zap.String("transactionId", transactionID), zap.Error(err))
		return nil, err
	}

	return &models.RefundResult{
		Success:       refund.Status == stripe.RefundStatusSucceeded,
		RefundID:      refund.ID,
		TransactionID: transactionID,
		Status:        string(refund.Status),
	}, nil
}
