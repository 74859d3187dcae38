package utils

import (
	"errors"
	"net/http"

	"github.com/GlebRadaev/investledger/internal/domain"
)

// StatusFromError maps domain errors to HTTP status codes.
func StatusFromError(err error) int {
	switch {
	case errors.Is(err, domain.ErrInvalidAmount),
		errors.Is(err, domain.ErrBelowMinimum),
		errors.Is(err, domain.ErrInvalidRequest),
		errors.Is(err, domain.ErrInvalidPlan),
		errors.Is(err, domain.ErrInvalidReferralCode):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized
	case errors.Is(err, domain.ErrInsufficientFunds):
		return http.StatusPaymentRequired
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrAlreadyProcessed),
		errors.Is(err, domain.ErrInvalidTransition),
		errors.Is(err, domain.ErrLoginTaken):
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}

// RespondWithDomainError writes err with its mapped status. Unmapped errors
// are reported without detail.
func RespondWithDomainError(w http.ResponseWriter, err error) {
	status := StatusFromError(err)
	if status == http.StatusInternalServerError {
		RespondWithError(w, status, "Internal server error")
		return
	}
	RespondWithError(w, status, err.Error())
}
