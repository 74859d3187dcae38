package balanceservice

import (
	"context"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/GlebRadaev/investledger/internal/domain"
)

//go:generate mockgen -source=balanceservice.go -destination=mock_balanceservice.go -package=balanceservice

type AccountReader interface {
	GetAccount(ctx context.Context, userID int) (*domain.Account, error)
}

type AccrualRepo interface {
	PendingTotal(ctx context.Context, userID int) (decimal.Decimal, error)
}

type Service struct {
	accounts AccountReader
	accruals AccrualRepo
}

func New(accounts AccountReader, accruals AccrualRepo) *Service {
	return &Service{
		accounts: accounts,
		accruals: accruals,
	}
}

// GetBalance returns the account with the totals derived from held accruals.
func (s *Service) GetBalance(ctx context.Context, userID int) (*domain.BalanceOverview, error) {
	account, err := s.accounts.GetAccount(ctx, userID)
	if err != nil {
		return nil, err
	}
	pending, err := s.accruals.PendingTotal(ctx, userID)
	if err != nil {
		zap.L().Error("failed to sum pending accruals", zap.Int("userID", userID), zap.Error(err))
		return nil, err
	}
	return &domain.BalanceOverview{
		Account:           *account,
		TotalPendingRoi:   pending,
		TotalWithdrawable: account.WithdrawableBalance.Add(account.ReferralBalance),
	}, nil
}
