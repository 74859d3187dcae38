package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/GlebRadaev/investledger/internal/domain"
	"github.com/GlebRadaev/investledger/internal/plans"
)

type CreateInvestmentRequestDTO struct {
	Amount        decimal.Decimal `json:"amount" swaggertype:"string" example:"100" validate:"gt=0"`
	PaymentMethod string          `json:"payment_method" example:"USDT" validate:"required"`
}

type InvestmentResponseDTO struct {
	ID              int             `json:"id" example:"1"`
	PlanName        string          `json:"plan_name" example:"Starter"`
	PlanVersion     int             `json:"plan_version" example:"1"`
	Amount          decimal.Decimal `json:"amount" swaggertype:"string" example:"100"`
	ReturnsPercent  decimal.Decimal `json:"returns_percent" swaggertype:"string" example:"10"`
	DurationDays    int             `json:"duration_days" example:"5"`
	ExpectedReturn  decimal.Decimal `json:"expected_return" swaggertype:"string" example:"110"`
	PaymentMethod   string          `json:"payment_method" example:"USDT"`
	PaymentStatus   string          `json:"payment_status" example:"pending"`
	Status          string          `json:"status" example:"pending"`
	RejectionReason string          `json:"rejection_reason,omitempty"`
	StartDate       *time.Time      `json:"start_date,omitempty"`
	EndDate         *time.Time      `json:"end_date,omitempty"`
	CompletedAt     *time.Time      `json:"completed_at,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
}

func NewInvestmentResponse(inv *domain.Investment) InvestmentResponseDTO {
	return InvestmentResponseDTO{
		ID:              inv.ID,
		PlanName:        inv.PlanName,
		PlanVersion:     inv.PlanVersion,
		Amount:          inv.Amount,
		ReturnsPercent:  inv.ReturnsPercent,
		DurationDays:    inv.DurationDays,
		ExpectedReturn:  inv.ExpectedReturn,
		PaymentMethod:   inv.PaymentMethod,
		PaymentStatus:   inv.PaymentStatus,
		Status:          inv.Status,
		RejectionReason: inv.RejectionReason,
		StartDate:       inv.StartDate,
		EndDate:         inv.EndDate,
		CompletedAt:     inv.CompletedAt,
		CreatedAt:       inv.CreatedAt,
	}
}

type PlansResponseDTO struct {
	Version        int          `json:"version" example:"1"`
	Plans          []plans.Plan `json:"plans"`
	PaymentMethods []string     `json:"payment_methods"`
}

type PaymentDecisionRequestDTO struct {
	Status string `json:"status" example:"confirmed" validate:"required,oneof=confirmed rejected"`
	Reason string `json:"reason,omitempty" validate:"max=500"`
}

type InvestmentStatusRequestDTO struct {
	Status string `json:"status" example:"cancelled" validate:"required,oneof=completed cancelled"`
}

type PlanPatchRequestDTO struct {
	MinAmount      *decimal.Decimal `json:"min_amount,omitempty" swaggertype:"string"`
	MaxAmount      *decimal.Decimal `json:"max_amount,omitempty" swaggertype:"string"`
	ReturnsPercent *decimal.Decimal `json:"returns_percent,omitempty" swaggertype:"string"`
	DurationDays   *int             `json:"duration_days,omitempty" validate:"omitempty,gt=0"`
}

func (p PlanPatchRequestDTO) Patch() plans.Patch {
	return plans.Patch{
		MinAmount:      p.MinAmount,
		MaxAmount:      p.MaxAmount,
		ReturnsPercent: p.ReturnsPercent,
		DurationDays:   p.DurationDays,
	}
}
