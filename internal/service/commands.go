package service

type ProcessNotificationCommand struct {
	GatewayRefID    int64
	Gateway         string
	TransactionDate string
	AccountNumber   string
	TransferType    string
	Amount          float64
	Accumulated     float64
	Code            *string
	Content         string
	ReferenceCode   *string
}

type CreateStreamSessionCommand struct {
	UserID    string
	OrderCode string
}

type ValidateStreamSessionCommand struct {
	SessionKey string
	OrderCode  string
}

type GetOrderPaymentQuery struct {
	UserID    string
	OrderCode string
}
