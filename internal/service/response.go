package service

import "time"

// Reconciliation outcomes. Every notification resolves to exactly one of
// these; none of them is a transport-level failure.
const (
	OutcomeConfirmed       = "confirmed"
	OutcomeAlreadyRecorded = "already recorded"
	OutcomeWrongDirection  = "ignored: wrong direction"
	OutcomeInvalidAmount   = "ignored: invalid amount"
	OutcomeNoBusinessKey   = "ignored: no business key"
	OutcomeOrderNotFound   = "ignored: order not found"
	OutcomeAlreadyPaid     = "ignored: already paid"
	OutcomeAmountMismatch  = "ignored: amount mismatch"
)

type ProcessNotificationResult struct {
	Processed     bool
	Outcome       string
	TransactionID int64
	OrderCode     string
}

type CreateStreamSessionResponse struct {
	SessionKey       string `json:"session_key"`
	OrderCode        string `json:"order_code"`
	ExpiresInSeconds int    `json:"expires_in_seconds"`
}

type OrderPaymentResponse struct {
	OrderCode     string          `json:"order_code"`
	PaymentStatus string          `json:"payment_status"`
	Details       *PaymentDetails `json:"payment_details,omitempty"`
}

type PaymentDetails struct {
	TransactionID *int64     `json:"transaction_id,omitempty"`
	BankTxCode    *string    `json:"bank_tx_code,omitempty"`
	Amount        *float64   `json:"amount,omitempty"`
	Gateway       *string    `json:"gateway,omitempty"`
	ReferenceCode *string    `json:"reference_code,omitempty"`
	PaidAt        *time.Time `json:"paid_at,omitempty"`
	ConfirmedBy   *string    `json:"confirmed_by,omitempty"`
}
