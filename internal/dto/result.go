package dto

// Result is the envelope every JSON endpoint answers with.
type Result struct {
	Success bool       `json:"success"`
	Data    any        `json:"data,omitempty"`
	Error   *ErrorBody `json:"error,omitempty"`
}

type ErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func OK(data any) Result {
	return Result{Success: true, Data: data}
}

func Fail(code, message string) Result {
	return Result{Error: &ErrorBody{Code: code, Message: message}}
}
