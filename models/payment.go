package models

// PaymentRequest is the call contract consumed by payment gateways.
type PaymentRequest struct {
	Amount    int64  `json:"amount"`
	Currency  string `json:"currency"`
	BookingID string `json:"bookingId"`
	Method    string `json:"method"`
}

// PaymentResult is what a gateway returns for a processed payment.
type PaymentResult struct {
	Success       bool   `json:"success"`
	TransactionID string `json:"transaction_id"`
	Status        string `json:"status"`
	Error         string `json:"error,omitempty"`
}

// RefundResult is what a gateway returns for a refund attempt.
type RefundResult struct {
	Success       bool   `json:"success"`
	RefundID      string `json:"refund_id"`
	TransactionID string `json:"transaction_id"`
	Status        string `json:"status"`
	Error         string `json:"error,omitempty"`
}
