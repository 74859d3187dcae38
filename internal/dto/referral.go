package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

type ReferralNodeDTO struct {
	UserID     int       `json:"user_id" example:"7"`
	Login      string    `json:"login" example:"alice"`
	ReferredBy int       `json:"referred_by" example:"3"`
	Level      int       `json:"level" example:"1"`
	JoinedAt   time.Time `json:"joined_at"`
}

type CommissionDTO struct {
	ID               int             `json:"id" example:"1"`
	RefereeID        int             `json:"referee_id" example:"7"`
	InvestmentID     int             `json:"investment_id" example:"12"`
	Amount           decimal.Decimal `json:"amount" swaggertype:"string" example:"5"`
	PercentageEarned decimal.Decimal `json:"percentage_earned" swaggertype:"string" example:"5"`
	Status           string          `json:"status" example:"paid"`
	CreatedAt        time.Time       `json:"created_at"`
}
