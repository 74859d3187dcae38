package dto

import (
	"github.com/shopspring/decimal"

	"github.com/GlebRadaev/investledger/internal/domain"
)

type BalanceResponseDTO struct {
	Balance             decimal.Decimal `json:"balance" swaggertype:"string" example:"110"`
	TotalInvested       decimal.Decimal `json:"total_invested" swaggertype:"string" example:"100"`
	TotalEarned         decimal.Decimal `json:"total_earned" swaggertype:"string" example:"10"`
	TotalRoiEarned      decimal.Decimal `json:"total_roi_earned" swaggertype:"string" example:"10"`
	PendingBalance      decimal.Decimal `json:"pending_balance" swaggertype:"string" example:"4"`
	WithdrawableBalance decimal.Decimal `json:"withdrawable_balance" swaggertype:"string" example:"6"`
	ReferralBalance     decimal.Decimal `json:"referral_balance" swaggertype:"string" example:"5"`
	ReferralEarnings    decimal.Decimal `json:"referral_earnings" swaggertype:"string" example:"5"`
	TotalPendingRoi     decimal.Decimal `json:"total_pending_roi" swaggertype:"string" example:"4"`
	TotalWithdrawable   decimal.Decimal `json:"total_withdrawable" swaggertype:"string" example:"11"`
}

func NewBalanceResponse(o *domain.BalanceOverview) BalanceResponseDTO {
	a := o.Account
	return BalanceResponseDTO{
		Balance:             a.Balance,
		TotalInvested:       a.TotalInvested,
		TotalEarned:         a.TotalEarned,
		TotalRoiEarned:      a.TotalRoiEarned,
		PendingBalance:      a.PendingBalance,
		WithdrawableBalance: a.WithdrawableBalance,
		ReferralBalance:     a.ReferralBalance,
		ReferralEarnings:    a.ReferralEarnings,
		TotalPendingRoi:     o.TotalPendingRoi,
		TotalWithdrawable:   o.TotalWithdrawable,
	}
}
