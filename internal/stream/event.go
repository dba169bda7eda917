package stream

import "encoding/json"

const (
	EventConnected     = "connected"
	EventPaymentUpdate = "payment_update"
)

// Event is the broadcast payload. It deliberately carries no amounts,
// transaction ids or raw gateway data: clients must re-fetch order state
// through the read API and treat Status as advisory only.
type Event struct {
	Event     string `json:"event"`
	OrderCode string `json:"order_code"`
	Status    string `json:"status"`
}

func (e Event) Marshal() []byte {
	b, _ := json.Marshal(e)
	return b
}
