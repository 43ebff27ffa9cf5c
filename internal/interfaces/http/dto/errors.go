package dto

import "net/http"

// Error code constants organized by category
// Format: ERR_<CATEGORY>_<DESCRIPTION>

// General error codes
const (
	// ErrCodeUnknown is used when the error type is unknown
	ErrCodeUnknown = "ERR_UNKNOWN"
	// ErrCodeInternal is used for internal server errors
	ErrCodeInternal = "ERR_INTERNAL"
)

// Validation error codes
const (
	// ErrCodeValidation is the base code for validation errors
	ErrCodeValidation = "ERR_VALIDATION"
	// ErrCodeValidationRequired is used when a required field is missing
	ErrCodeValidationRequired = "ERR_VALIDATION_REQUIRED"
	// ErrCodeValidationFormat is used when a field has invalid format
	ErrCodeValidationFormat = "ERR_VALIDATION_FORMAT"
)

// Resource error codes
const (
	// ErrCodeNotFound is used when a resource is not found
	ErrCodeNotFound = "ERR_NOT_FOUND"
	// ErrCodeAlreadyExists is used when trying to create a duplicate resource
	ErrCodeAlreadyExists = "ERR_ALREADY_EXISTS"
	// ErrCodeConflict is used for general resource conflicts
	ErrCodeConflict = "ERR_CONFLICT"
)

// Business rule error codes
const (
	// ErrCodeInvalidState is used when an operation is invalid for current state
	ErrCodeInvalidState = "ERR_INVALID_STATE"
	// ErrCodeBusinessRule is used for generic business rule violations
	ErrCodeBusinessRule = "ERR_BUSINESS_RULE"
	// ErrCodeUnbalancedEntry is used when a journal entry's debits and credits differ
	ErrCodeUnbalancedEntry = "ERR_UNBALANCED_ENTRY"
	// ErrCodeTooFewLines is used when a journal entry has fewer than two lines
	ErrCodeTooFewLines = "ERR_TOO_FEW_LINES"
	// ErrCodeUnknownAccount is used when a line references an account missing from the catalog
	ErrCodeUnknownAccount = "ERR_UNKNOWN_ACCOUNT"
	// ErrCodeNegativeAmount is used when a monetary amount is negative
	ErrCodeNegativeAmount = "ERR_NEGATIVE_AMOUNT"
	// ErrCodeTotalMismatch is used when a document total disagrees with subtotal plus tax
	ErrCodeTotalMismatch = "ERR_TOTAL_MISMATCH"
)

// Input error codes
const (
	// ErrCodeBadRequest is used for malformed requests
	ErrCodeBadRequest = "ERR_BAD_REQUEST"
	// ErrCodeInvalidInput is used for invalid input data
	ErrCodeInvalidInput = "ERR_INVALID_INPUT"
	// ErrCodeInvalidJSON is used when JSON parsing fails
	ErrCodeInvalidJSON = "ERR_INVALID_JSON"
	// ErrCodeInvalidDate is used when a date cannot be interpreted
	ErrCodeInvalidDate = "ERR_INVALID_DATE"
)

// ErrorCodeHTTPStatus maps error codes to HTTP status codes
var ErrorCodeHTTPStatus = map[string]int{
	// General errors
	ErrCodeUnknown:  http.StatusInternalServerError,
	ErrCodeInternal: http.StatusInternalServerError,

	// Validation errors -> 400 Bad Request
	ErrCodeValidation:         http.StatusBadRequest,
	ErrCodeValidationRequired: http.StatusBadRequest,
	ErrCodeValidationFormat:   http.StatusBadRequest,

	// Resource errors
	ErrCodeNotFound:      http.StatusNotFound,
	ErrCodeAlreadyExists: http.StatusConflict,
	ErrCodeConflict:      http.StatusConflict,

	// Business rule errors -> 422 Unprocessable Entity
	ErrCodeInvalidState:    http.StatusUnprocessableEntity,
	ErrCodeBusinessRule:    http.StatusUnprocessableEntity,
	ErrCodeUnbalancedEntry: http.StatusUnprocessableEntity,
	ErrCodeTooFewLines:     http.StatusUnprocessableEntity,
	ErrCodeUnknownAccount:  http.StatusUnprocessableEntity,
	ErrCodeNegativeAmount:  http.StatusUnprocessableEntity,
	ErrCodeTotalMismatch:   http.StatusUnprocessableEntity,

	// Input errors -> 400 Bad Request
	ErrCodeBadRequest:   http.StatusBadRequest,
	ErrCodeInvalidInput: http.StatusBadRequest,
	ErrCodeInvalidJSON:  http.StatusBadRequest,
	ErrCodeInvalidDate:  http.StatusBadRequest,
}

// GetHTTPStatus returns the HTTP status code for an error code
// Returns 500 Internal Server Error if the error code is not found
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// DomainErrorCodeMapping maps bare domain error codes to the standardized
// ERR_* codes used on the wire
var DomainErrorCodeMapping = map[string]string{
	"NOT_FOUND":              ErrCodeNotFound,
	"ALREADY_EXISTS":         ErrCodeAlreadyExists,
	"INVALID_INPUT":          ErrCodeInvalidInput,
	"INVALID_STATE":          ErrCodeInvalidState,
	"INVALID_DATE":           ErrCodeInvalidDate,
	"INVALID_DOCUMENT_TYPE":  ErrCodeInvalidInput,
	"INVALID_OPERATION_KIND": ErrCodeInvalidInput,
	"NEGATIVE_AMOUNT":        ErrCodeNegativeAmount,
	"TOTAL_MISMATCH":         ErrCodeTotalMismatch,
	"UNBALANCED_ENTRY":       ErrCodeUnbalancedEntry,
	"TOO_FEW_LINES":          ErrCodeTooFewLines,
	"UNKNOWN_ACCOUNT":        ErrCodeUnknownAccount,
	"VALIDATION_ERROR":       ErrCodeValidation,
	"BAD_REQUEST":            ErrCodeBadRequest,
	"INTERNAL_ERROR":         ErrCodeInternal,
}

// NormalizeErrorCode converts a bare domain error code to the standardized
// format. If the code is already in the new format or unknown, returns it as-is
func NormalizeErrorCode(code string) string {
	if newCode, ok := DomainErrorCodeMapping[code]; ok {
		return newCode
	}
	return code
}
