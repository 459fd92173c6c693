package errors

import (
	"errors"
)

// As is a wrapper around errors.As that works with our Error type.
func As(err error, target **Error) bool {
	return errors.As(err, target)
}

// GetCode extracts the error code from an error.
func GetCode(err error) Code {
	if err == nil {
		return CodeOK
	}
	var customErr *Error
	if errors.As(err, &customErr) {
		return customErr.Code
	}
	return CodeInternal
}

// GetMeta extracts metadata from an error.
func GetMeta(err error) map[string]any {
	var customErr *Error
	if errors.As(err, &customErr) {
		return customErr.Meta
	}
	return nil
}

// GetMessage extracts the user-facing message from an error.
func GetMessage(err error) string {
	if err == nil {
		return ""
	}
	var customErr *Error
	if errors.As(err, &customErr) {
		return customErr.Message
	}
	return err.Error()
}

// IsNotInitialized checks if an error is a not-initialized error.
func IsNotInitialized(err error) bool {
	return GetCode(err) == CodeNotInitialized
}

// IsNotFound checks if an error is a not found error.
func IsNotFound(err error) bool {
	return GetCode(err) == CodeNotFound
}

// IsInvalidInput checks if an error is an invalid input error.
func IsInvalidInput(err error) bool {
	return GetCode(err) == CodeInvalidInput
}

// IsInsufficientResource checks if an error is an insufficient resource error.
func IsInsufficientResource(err error) bool {
	return GetCode(err) == CodeInsufficientResource
}

// IsBudgetExceeded checks if an error is an encounter budget rejection.
func IsBudgetExceeded(err error) bool {
	return GetCode(err) == CodeBudgetExceeded
}
