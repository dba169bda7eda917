package v1

// BankWebhookRequest is the gateway's notification payload, converted and
// validated once at the boundary before any business logic runs.
type BankWebhookRequest struct {
	ID              int64   `json:"id" validate:"required"`
	Gateway         string  `json:"gateway" validate:"required"`
	TransactionDate string  `json:"transactionDate"`
	AccountNumber   string  `json:"accountNumber"`
	TransferType    string  `json:"transferType" validate:"required,oneof=in out"`
	TransferAmount  float64 `json:"transferAmount"`
	Accumulated     float64 `json:"accumulated"`
	Code            *string `json:"code"`
	Content         string  `json:"content"`
	Description     string  `json:"description"`
	ReferenceCode   *string `json:"referenceCode"`
}

// TransferContent returns whichever free-text field the gateway filled in.
func (r BankWebhookRequest) TransferContent() string {
	if r.Content != "" {
		return r.Content
	}
	return r.Description
}

type CreateStreamSessionRequest struct {
	OrderCode string `json:"order_code" validate:"required,ordercode"`
}
