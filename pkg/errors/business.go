package errors

import "fmt"

// BusinessError is an error meant to be shown to the person at the console.
type BusinessError struct {
	Code    string
	Message string
}

func NewBusinessError(code string, message string) *BusinessError {
	return &BusinessError{
		Code:    code,
		Message: message,
	}
}

func (e *BusinessError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}
