package v1

// BankWebhookResponse always rides an HTTP 200: the gateway must never be
// given cause to retry aggressively, so rejections surface only in the
// body while the reason is recorded internally.
type BankWebhookResponse struct {
	Success   bool   `json:"success"`
	Processed bool   `json:"processed"`
	Reason    string `json:"reason,omitempty"`
}

type DebugStreamsResponse struct {
	Orders         int            `json:"orders"`
	Connections    map[string]int `json:"connections"`
	ActiveSessions int            `json:"active_sessions"`
}
