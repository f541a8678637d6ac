package liquidation

// OperationError is the single error shape the liquidation operations
// surface to callers: a dot-delimited code the API returns verbatim, an
// HTTP status class, and a human message for logs.
type OperationError struct {
	Code    string
	Status  int
	Message string
}

func (e *OperationError) Error() string {
	return e.Message
}

func NewNotFoundError(code string, message string) *OperationError {
	return &OperationError{Code: code, Status: 404, Message: message}
}

func NewValidationError(code string, message string) *OperationError {
	return &OperationError{Code: code, Status: 422, Message: message}
}

func NewInternalError() *OperationError {
	return &OperationError{Code: "server.internal_error", Status: 500, Message: "internal error"}
}
