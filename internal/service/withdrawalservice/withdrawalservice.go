package withdrawalservice

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/GlebRadaev/investledger/internal/domain"
	"github.com/GlebRadaev/investledger/internal/notify"
	"github.com/GlebRadaev/investledger/internal/pg"
	"github.com/GlebRadaev/investledger/internal/service/ledgerservice"
)

//go:generate mockgen -source=withdrawalservice.go -destination=mock_withdrawalservice.go -package=withdrawalservice

type Repo interface {
	CreateWithdrawal(ctx context.Context, withdrawal *domain.Withdrawal) (*domain.Withdrawal, error)
	GetForUpdate(ctx context.Context, id int) (*domain.Withdrawal, error)
	UpdateWithdrawal(ctx context.Context, withdrawal *domain.Withdrawal) error
	GetWithdrawalsByUserID(ctx context.Context, userID int) ([]domain.Withdrawal, error)
	StatsByUserID(ctx context.Context, userID int) ([]domain.WithdrawalStat, error)
}

type Service struct {
	repo     Repo
	ledger   ledgerservice.Ledger
	tx       pg.TXManager
	notifier notify.Notifier
	minimums domain.Minimums
	now      func() time.Time
}

func New(repo Repo, ledger ledgerservice.Ledger, tx pg.TXManager, notifier notify.Notifier, minimums domain.Minimums) *Service {
	return &Service{
		repo:     repo,
		ledger:   ledger,
		tx:       tx,
		notifier: notifier,
		minimums: minimums,
		now:      time.Now,
	}
}

func (s *Service) notify(ctx context.Context, w *domain.Withdrawal) {
	s.notifier.Notify(ctx, notify.Event{
		Type:     notify.WithdrawalEvent(w.Status),
		UserID:   w.UserID,
		EntityID: w.ID,
		Amount:   w.Amount.String(),
		Status:   w.Status,
		Reason:   w.Reason,
	})
}

// RequestWithdrawal reserves the amount from the balances allowed by the
// withdrawal type and records the split alongside the request.
func (s *Service) RequestWithdrawal(ctx context.Context, req domain.WithdrawalRequest) (*domain.Withdrawal, error) {
	if !req.Amount.IsPositive() {
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidAmount, req.Amount)
	}
	if !req.Type.Valid() {
		return nil, fmt.Errorf("%w: withdrawal type %q", domain.ErrInvalidRequest, req.Type)
	}
	if minimum := s.minimums.For(req.Method); req.Amount.LessThan(minimum) {
		return nil, fmt.Errorf("%w: %s withdrawals start at %s", domain.ErrBelowMinimum, domain.NormalizeMethod(req.Method), minimum)
	}

	var withdrawal *domain.Withdrawal
	err := s.tx.Begin(ctx, func(ctx context.Context) error {
		b, err := s.ledger.Reserve(ctx, req.UserID, req.Type, req.Amount)
		if err != nil {
			return err
		}
		withdrawal, err = s.repo.CreateWithdrawal(ctx, &domain.Withdrawal{
			UserID:           req.UserID,
			Amount:           req.Amount,
			Method:           req.Method,
			Type:             req.Type,
			Status:           domain.WithdrawalPending,
			FromWithdrawable: b.FromWithdrawable,
			FromReferral:     b.FromReferral,
			Destination:      req.Destination,
			Notes:            req.Notes,
		})
		return err
	})
	if err != nil {
		zap.L().Info("withdrawal request refused", zap.Int("userID", req.UserID), zap.String("amount", req.Amount.String()), zap.Error(err))
		return nil, err
	}

	s.notify(ctx, withdrawal)
	return withdrawal, nil
}

func (s *Service) lock(ctx context.Context, id int) (*domain.Withdrawal, error) {
	w, err := s.repo.GetForUpdate(ctx, id)
	if err != nil {
		return nil, err
	}
	if w == nil {
		return nil, fmt.Errorf("withdrawal %d: %w", id, domain.ErrNotFound)
	}
	return w, nil
}

func decidable(target string) bool {
	switch target {
	case domain.WithdrawalApproved, domain.WithdrawalRejected, domain.WithdrawalCompleted, domain.WithdrawalPaid:
		return true
	}
	return false
}

// Decide applies an admin decision. Only pending and approved withdrawals
// may be decided; a rejection gives the reservation back split exactly as
// it was taken.
func (s *Service) Decide(ctx context.Context, id int, d domain.WithdrawalDecision) (*domain.Withdrawal, error) {
	if !decidable(d.Status) {
		return nil, fmt.Errorf("withdrawal %d to %q: %w", id, d.Status, domain.ErrInvalidTransition)
	}

	var withdrawal *domain.Withdrawal
	err := s.tx.Begin(ctx, func(ctx context.Context) error {
		w, err := s.lock(ctx, id)
		if err != nil {
			return err
		}
		if w.Status != domain.WithdrawalPending && w.Status != domain.WithdrawalApproved {
			return fmt.Errorf("withdrawal %d is %s: %w", id, w.Status, domain.ErrAlreadyProcessed)
		}
		if w.Status == d.Status {
			return fmt.Errorf("withdrawal %d is already %s: %w", id, w.Status, domain.ErrAlreadyProcessed)
		}

		if d.Status == domain.WithdrawalRejected {
			if _, err = s.ledger.Restore(ctx, w.UserID, w.Breakdown()); err != nil {
				return err
			}
			w.Reason = d.Reason
		}

		now := s.now().UTC()
		processedBy := d.ProcessedBy
		w.Status = d.Status
		w.ProcessedBy = &processedBy
		w.ProcessedAt = &now
		if d.TransactionID != "" {
			w.TransactionID = d.TransactionID
		}
		if d.Status == domain.WithdrawalPaid {
			w.CompletedAt = &now
		}
		if err = s.repo.UpdateWithdrawal(ctx, w); err != nil {
			return err
		}
		withdrawal = w
		return nil
	})
	if err != nil {
		zap.L().Error("failed to decide withdrawal", zap.Int("withdrawalID", id), zap.String("status", d.Status), zap.Error(err))
		return nil, err
	}

	s.notify(ctx, withdrawal)
	return withdrawal, nil
}

// Cancel lets the owner withdraw a request an admin has not looked at yet.
func (s *Service) Cancel(ctx context.Context, userID, id int) (*domain.Withdrawal, error) {
	var withdrawal *domain.Withdrawal
	err := s.tx.Begin(ctx, func(ctx context.Context) error {
		w, err := s.lock(ctx, id)
		if err != nil {
			return err
		}
		if w.UserID != userID {
			return fmt.Errorf("withdrawal %d: %w", id, domain.ErrNotFound)
		}
		if w.Status != domain.WithdrawalPending {
			return fmt.Errorf("withdrawal %d is %s: %w", id, w.Status, domain.ErrAlreadyProcessed)
		}
		if _, err = s.ledger.Restore(ctx, w.UserID, w.Breakdown()); err != nil {
			return err
		}
		w.Status = domain.WithdrawalCancelled
		if err = s.repo.UpdateWithdrawal(ctx, w); err != nil {
			return err
		}
		withdrawal = w
		return nil
	})
	if err != nil {
		zap.L().Error("failed to cancel withdrawal", zap.Int("withdrawalID", id), zap.Int("userID", userID), zap.Error(err))
		return nil, err
	}

	s.notify(ctx, withdrawal)
	return withdrawal, nil
}

func (s *Service) GetWithdrawals(ctx context.Context, userID int) ([]domain.Withdrawal, error) {
	withdrawals, err := s.repo.GetWithdrawalsByUserID(ctx, userID)
	if err != nil {
		zap.L().Error("failed to get withdrawals", zap.Int("userID", userID), zap.Error(err))
		return nil, err
	}
	return withdrawals, nil
}

func (s *Service) GetStats(ctx context.Context, userID int) ([]domain.WithdrawalStat, error) {
	stats, err := s.repo.StatsByUserID(ctx, userID)
	if err != nil {
		zap.L().Error("failed to get withdrawal stats", zap.Int("userID", userID), zap.Error(err))
		return nil, err
	}
	return stats, nil
}
