package serverutils

// ErrorBody is the JSON error shape every failing endpoint returns.
type ErrorBody struct {
	Error string `json:"error"`
}

func ErrorResponse(message string) ErrorBody {
	return ErrorBody{Error: message}
}
