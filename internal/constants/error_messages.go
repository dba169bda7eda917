package constants

const (
	ErrCodeInvalidRequestBody   = "INVALID_REQUEST_BODY"
	ErrCodeInvalidAPIKey        = "INVALID_API_KEY"
	ErrCodeOrderNotFound        = "ORDER_NOT_FOUND"
	ErrCodeOrderNotOwned        = "ORDER_NOT_OWNED"
	ErrCodeSessionNotFound      = "SESSION_NOT_FOUND"
	ErrCodeSessionExpired       = "SESSION_EXPIRED"
	ErrCodeSessionOrderMismatch = "SESSION_ORDER_MISMATCH"
	ErrCodeInternalError        = "INTERNAL_ERROR"
)

const (
	ErrMsgInvalidRequestBody   = "failed to parse request body"
	ErrMsgInvalidAPIKey        = "invalid or missing api key"
	ErrMsgOrderNotFound        = "order not found"
	ErrMsgOrderNotOwned        = "order does not belong to this user"
	ErrMsgSessionNotFound      = "stream session not found"
	ErrMsgSessionExpired       = "stream session expired"
	ErrMsgSessionOrderMismatch = "stream session was issued for another order"
	ErrMsgInternalError        = "Internal server error"
)

var errorMessages = map[string]string{
	ErrCodeInvalidRequestBody:   ErrMsgInvalidRequestBody,
	ErrCodeInvalidAPIKey:        ErrMsgInvalidAPIKey,
	ErrCodeOrderNotFound:        ErrMsgOrderNotFound,
	ErrCodeOrderNotOwned:        ErrMsgOrderNotOwned,
	ErrCodeSessionNotFound:      ErrMsgSessionNotFound,
	ErrCodeSessionExpired:       ErrMsgSessionExpired,
	ErrCodeSessionOrderMismatch: ErrMsgSessionOrderMismatch,
	ErrCodeInternalError:        ErrMsgInternalError,
}

func GetErrorMessage(code string) string {
	if msg, exists := errorMessages[code]; exists {
		return msg
	}
	return ErrMsgInternalError
}

func GetHTTPStatus(code string) int {
	switch code {
	case ErrCodeInvalidRequestBody:
		return 400
	case ErrCodeInvalidAPIKey:
		return 401
	case ErrCodeOrderNotOwned, ErrCodeSessionNotFound, ErrCodeSessionExpired, ErrCodeSessionOrderMismatch:
		return 403
	case ErrCodeOrderNotFound:
		return 404
	default:
		return 500
	}
}
