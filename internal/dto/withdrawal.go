package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/GlebRadaev/investledger/internal/domain"
)

type WithdrawalRequestDTO struct {
	Amount      decimal.Decimal `json:"amount" swaggertype:"string" example:"30" validate:"gt=0"`
	Method      string          `json:"method" example:"USDT" validate:"required"`
	Type        string          `json:"withdrawal_type" example:"combined" validate:"required,oneof=main referral combined"`
	Destination string          `json:"destination" example:"TQn9Y2khEsLJW1ChVWFMSMeRDow5KcbLSE" validate:"max=255"`
	Notes       string          `json:"notes,omitempty" validate:"max=500"`
}

type WithdrawalResponseDTO struct {
	ID               int             `json:"id" example:"1"`
	Amount           decimal.Decimal `json:"amount" swaggertype:"string" example:"30"`
	Method           string          `json:"method" example:"USDT"`
	Type             string          `json:"withdrawal_type" example:"combined"`
	Status           string          `json:"status" example:"pending"`
	FromWithdrawable decimal.Decimal `json:"from_withdrawable" swaggertype:"string" example:"20"`
	FromReferral     decimal.Decimal `json:"from_referral" swaggertype:"string" example:"10"`
	Destination      string          `json:"destination,omitempty"`
	Reason           string          `json:"reason,omitempty"`
	TransactionID    string          `json:"transaction_id,omitempty"`
	ProcessedAt      *time.Time      `json:"processed_at,omitempty"`
	CompletedAt      *time.Time      `json:"completed_at,omitempty"`
	CreatedAt        time.Time       `json:"created_at"`
}

func NewWithdrawalResponse(w *domain.Withdrawal) WithdrawalResponseDTO {
	return WithdrawalResponseDTO{
		ID:               w.ID,
		Amount:           w.Amount,
		Method:           w.Method,
		Type:             string(w.Type),
		Status:           w.Status,
		FromWithdrawable: w.FromWithdrawable,
		FromReferral:     w.FromReferral,
		Destination:      w.Destination,
		Reason:           w.Reason,
		TransactionID:    w.TransactionID,
		ProcessedAt:      w.ProcessedAt,
		CompletedAt:      w.CompletedAt,
		CreatedAt:        w.CreatedAt,
	}
}

type WithdrawalStatDTO struct {
	Status string          `json:"status" example:"pending"`
	Count  int             `json:"count" example:"2"`
	Total  decimal.Decimal `json:"total" swaggertype:"string" example:"60"`
}

type WithdrawalDecisionRequestDTO struct {
	Status        string `json:"status" example:"approved" validate:"required,oneof=approved rejected completed paid"`
	TransactionID string `json:"transaction_id,omitempty" validate:"max=255"`
	Reason        string `json:"reason,omitempty" validate:"max=500"`
}
