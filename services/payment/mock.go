package payment

import (
	"context"
	"strings"

	"zela/models"
	"zela/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// failAmount triggers the simulated decline in development.
const failAmount = 1

// MockGateway simulates a payment provider for development and tests.
type MockGateway struct{}

func NewMockGateway() *MockGateway {
	return &MockGateway{}
}

func (g *MockGateway) ProcessPayment(ctx context.Context, req models.PaymentRequest) (*models.PaymentResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	txnID := "TXN_" + mockRef()
	logger := utils.GetLogger()
	logger.Info("Processing mock payment",
		zap.Int64("amount", req.Amount),
		zap.String("bookingId", req.BookingID))

	if req.Amount == failAmount {
		return &models.PaymentResult{
			Success:       false,
			TransactionID: txnID,
			Status:        "failed",
			Error:         "Insufficient funds",
		}, nil
	}

	return &models.PaymentResult{
		Success:       true,
		TransactionID: txnID,
		Status:        "completed",
	}, nil
}

func (g *MockGateway) RefundPayment(ctx context.Context, transactionID string, amount int64) (*models.RefundResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	utils.GetLogger().Info("Processing mock refund", zap.String("transactionId", transactionID))
	return &models.RefundResult{
		Success:       true,
		RefundID:      "REF_" + mockRef(),
		TransactionID: transactionID,
		Status:        "refunded",
	}, nil
}

func mockRef() string {
	return strings.ToUpper(strings.ReplaceAll(uuid.New().String(), "-", "")[:12])
}
