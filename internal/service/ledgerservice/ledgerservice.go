// Package ledgerservice is the single writer of account balances. Every
// mutation locks the account row and is applied completely or not at all.
package ledgerservice

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/GlebRadaev/investledger/internal/domain"
	"github.com/GlebRadaev/investledger/internal/metrics"
)

//go:generate mockgen -source=ledgerservice.go -destination=mock_ledgerservice.go -package=ledgerservice

type AccountRepo interface {
	Get(ctx context.Context, userID int) (*domain.Account, error)
	Create(ctx context.Context, userID int) (*domain.Account, error)
	Update(ctx context.Context, userID int, fn func(a *domain.Account) error) (*domain.Account, error)
}

// Ledger is what the other services need from the account ledger.
type Ledger interface {
	Apply(ctx context.Context, userID int, entries ...domain.Entry) (*domain.Account, error)
	Reserve(ctx context.Context, userID int, wtype domain.WithdrawalType, total decimal.Decimal) (domain.Breakdown, error)
	Restore(ctx context.Context, userID int, b domain.Breakdown) (*domain.Account, error)
}

type Service struct {
	repo AccountRepo
}

func New(repo AccountRepo) *Service {
	return &Service{
		repo: repo,
	}
}

func validAmount(amount decimal.Decimal) error {
	if amount.IsNegative() {
		return fmt.Errorf("%w: %s", domain.ErrInvalidAmount, amount)
	}
	return nil
}

func (s *Service) CreateAccount(ctx context.Context, userID int) (*domain.Account, error) {
	account, err := s.repo.Create(ctx, userID)
	if err != nil {
		zap.L().Error("failed to create account", zap.Int("userID", userID), zap.Error(err))
		return nil, err
	}
	return account, nil
}

func (s *Service) GetAccount(ctx context.Context, userID int) (*domain.Account, error) {
	account, err := s.repo.Get(ctx, userID)
	if err != nil {
		zap.L().Error("failed to get account", zap.Int("userID", userID), zap.Error(err))
		return nil, err
	}
	if account == nil {
		return nil, fmt.Errorf("account of user %d: %w", userID, domain.ErrNotFound)
	}
	return account, nil
}

// Credit adds amount to field and returns the new value.
func (s *Service) Credit(ctx context.Context, userID int, field domain.Field, amount decimal.Decimal) (decimal.Decimal, error) {
	if err := validAmount(amount); err != nil {
		return decimal.Zero, err
	}
	account, err := s.Apply(ctx, userID, domain.Credit(field, amount))
	if err != nil {
		return decimal.Zero, err
	}
	return account.Value(field), nil
}

// Debit subtracts amount from field and returns the new value.
func (s *Service) Debit(ctx context.Context, userID int, field domain.Field, amount decimal.Decimal) (decimal.Decimal, error) {
	if err := validAmount(amount); err != nil {
		return decimal.Zero, err
	}
	account, err := s.Apply(ctx, userID, domain.Debit(field, amount))
	if err != nil {
		return decimal.Zero, err
	}
	return account.Value(field), nil
}

// Transfer moves amount between two fields of the same account.
func (s *Service) Transfer(ctx context.Context, userID int, from, to domain.Field, amount decimal.Decimal) (*domain.Account, error) {
	if err := validAmount(amount); err != nil {
		return nil, err
	}
	return s.Apply(ctx, userID, domain.Debit(from, amount), domain.Credit(to, amount))
}

// Apply posts entries to one account as a single unit.
func (s *Service) Apply(ctx context.Context, userID int, entries ...domain.Entry) (*domain.Account, error) {
	account, err := s.repo.Update(ctx, userID, func(a *domain.Account) error {
		return a.Apply(entries...)
	})
	metrics.LedgerMutations.WithLabelValues("apply", metrics.Result(err)).Inc()
	if err != nil {
		zap.L().Error("failed to apply ledger entries", zap.Int("userID", userID), zap.Error(err))
		return nil, err
	}
	return account, nil
}

// Reserve takes total out of the balances a withdrawal of wtype may use and
// returns how it was split.
func (s *Service) Reserve(ctx context.Context, userID int, wtype domain.WithdrawalType, total decimal.Decimal) (domain.Breakdown, error) {
	var b domain.Breakdown
	_, err := s.repo.Update(ctx, userID, func(a *domain.Account) error {
		var err error
		b, err = domain.SplitReservation(a, wtype, total)
		if err != nil {
			return err
		}
		return a.Apply(b.Debits()...)
	})
	metrics.LedgerMutations.WithLabelValues("reserve", metrics.Result(err)).Inc()
	if err != nil {
		zap.L().Info("reservation refused", zap.Int("userID", userID), zap.String("amount", total.String()), zap.Error(err))
		return domain.Breakdown{}, err
	}
	return b, nil
}

// Restore gives a reservation back exactly as it was taken.
func (s *Service) Restore(ctx context.Context, userID int, b domain.Breakdown) (*domain.Account, error) {
	account, err := s.repo.Update(ctx, userID, func(a *domain.Account) error {
		return a.Apply(b.Credits()...)
	})
	metrics.LedgerMutations.WithLabelValues("restore", metrics.Result(err)).Inc()
	if err != nil {
		zap.L().Error("failed to restore reservation", zap.Int("userID", userID), zap.Error(err))
		return nil, err
	}
	return account, nil
}
