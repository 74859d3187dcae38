package utils

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GlebRadaev/investledger/internal/domain"
)

func TestStatusFromError(t *testing.T) {
	tests := []struct {
		err      error
		expected int
	}{
		{domain.ErrInvalidAmount, http.StatusBadRequest},
		{fmt.Errorf("crypto: %w", domain.ErrBelowMinimum), http.StatusBadRequest},
		{domain.ErrInvalidRequest, http.StatusBadRequest},
		{domain.ErrInvalidPlan, http.StatusBadRequest},
		{domain.ErrInvalidReferralCode, http.StatusBadRequest},
		{domain.ErrInvalidCredentials, http.StatusUnauthorized},
		{fmt.Errorf("%w: withdrawable_balance", domain.ErrInsufficientFunds), http.StatusPaymentRequired},
		{fmt.Errorf("withdrawal 3: %w", domain.ErrNotFound), http.StatusNotFound},
		{domain.ErrAlreadyProcessed, http.StatusConflict},
		{domain.ErrInvalidTransition, http.StatusConflict},
		{domain.ErrLoginTaken, http.StatusConflict},
		{domain.ErrTransactionAborted, http.StatusInternalServerError},
		{errors.New("db error"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			assert.Equal(t, tt.expected, StatusFromError(tt.err))
		})
	}
}

func TestRespondWithDomainError(t *testing.T) {
	rec := httptest.NewRecorder()
	RespondWithDomainError(rec, fmt.Errorf("withdrawal 3: %w", domain.ErrNotFound))

	var resp Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "withdrawal 3: not found", resp.Message)

	rec = httptest.NewRecorder()
	RespondWithDomainError(rec, errors.New("connection reset"))
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "Internal server error", resp.Message)
}
