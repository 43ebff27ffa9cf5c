package dto

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetHTTPStatus(t *testing.T) {
	tests := []struct {
		code     string
		expected int
	}{
		{ErrCodeNotFound, http.StatusNotFound},
		{ErrCodeAlreadyExists, http.StatusConflict},
		{ErrCodeInvalidInput, http.StatusBadRequest},
		{ErrCodeInvalidDate, http.StatusBadRequest},
		{ErrCodeUnbalancedEntry, http.StatusUnprocessableEntity},
		{ErrCodeTooFewLines, http.StatusUnprocessableEntity},
		{ErrCodeUnknownAccount, http.StatusUnprocessableEntity},
		{ErrCodeNegativeAmount, http.StatusUnprocessableEntity},
		{ErrCodeTotalMismatch, http.StatusUnprocessableEntity},
		{ErrCodeInternal, http.StatusInternalServerError},
		{"ERR_SOMETHING_ELSE", http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			assert.Equal(t, tt.expected, GetHTTPStatus(tt.code))
		})
	}
}

func TestNormalizeErrorCode(t *testing.T) {
	assert.Equal(t, ErrCodeNotFound, NormalizeErrorCode("NOT_FOUND"))
	assert.Equal(t, ErrCodeUnbalancedEntry, NormalizeErrorCode("UNBALANCED_ENTRY"))
	assert.Equal(t, ErrCodeInvalidInput, NormalizeErrorCode("INVALID_DOCUMENT_TYPE"))
	assert.Equal(t, ErrCodeInvalidDate, NormalizeErrorCode("INVALID_DATE"))

	// Already normalized codes pass through untouched
	assert.Equal(t, ErrCodeNotFound, NormalizeErrorCode(ErrCodeNotFound))
	assert.Equal(t, "CUSTOM_CODE", NormalizeErrorCode("CUSTOM_CODE"))
}

func TestNewSuccessResponseWithMeta(t *testing.T) {
	resp := NewSuccessResponseWithMeta([]int{1, 2, 3}, 10, 3, 0, 3)

	assert.True(t, resp.Success)
	assert.Nil(t, resp.Error)
	assert.NotNil(t, resp.Meta)
	assert.Equal(t, int64(10), resp.Meta.Total)
	assert.Equal(t, 3, resp.Meta.Limit)
	assert.Equal(t, 0, resp.Meta.Offset)
	assert.Equal(t, 3, resp.Meta.Returned)
}

func TestNewErrorResponseWithRequestID(t *testing.T) {
	resp := NewErrorResponseWithRequestID(ErrCodeNotFound, "document not found", "req-123")

	assert.False(t, resp.Success)
	assert.Nil(t, resp.Data)
	assert.Equal(t, ErrCodeNotFound, resp.Error.Code)
	assert.Equal(t, "document not found", resp.Error.Message)
	assert.Equal(t, "req-123", resp.Error.RequestID)
}
