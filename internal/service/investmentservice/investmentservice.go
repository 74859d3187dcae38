package investmentservice

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/GlebRadaev/investledger/internal/domain"
	"github.com/GlebRadaev/investledger/internal/notify"
	"github.com/GlebRadaev/investledger/internal/pg"
	"github.com/GlebRadaev/investledger/internal/plans"
	"github.com/GlebRadaev/investledger/internal/service/ledgerservice"
)

//go:generate mockgen -source=investmentservice.go -destination=mock_investmentservice.go -package=investmentservice

type Repo interface {
	Create(ctx context.Context, inv *domain.Investment) (*domain.Investment, error)
	GetByID(ctx context.Context, id int) (*domain.Investment, error)
	GetForUpdate(ctx context.Context, id int) (*domain.Investment, error)
	FindByUserID(ctx context.Context, userID int) ([]domain.Investment, error)
	Update(ctx context.Context, inv *domain.Investment) error
}

type ReferralPoster interface {
	PostCommission(ctx context.Context, inv *domain.Investment) (*domain.ReferralCommission, error)
}

type PlanRegistry interface {
	Current() *plans.Table
	Update(name string, patch plans.Patch) (*plans.Table, error)
}

// AccrualSettler posts whatever part of the profit the daily accruals have
// not covered yet, so a completed investment has accrued exactly Profit().
type AccrualSettler interface {
	SettleRemainder(ctx context.Context, inv *domain.Investment, now time.Time) error
}

type Service struct {
	repo      Repo
	ledger    ledgerservice.Ledger
	referrals ReferralPoster
	plans     PlanRegistry
	settler   AccrualSettler
	tx        pg.TXManager
	notifier  notify.Notifier
	now       func() time.Time
}

func New(repo Repo, ledger ledgerservice.Ledger, referrals ReferralPoster, plans PlanRegistry, settler AccrualSettler, tx pg.TXManager, notifier notify.Notifier) *Service {
	return &Service{
		repo:      repo,
		ledger:    ledger,
		referrals: referrals,
		plans:     plans,
		settler:   settler,
		tx:        tx,
		notifier:  notifier,
		now:       time.Now,
	}
}

// CreateInvestment records a deposit request against the plan whose range
// holds amount in the current plan table.
func (s *Service) CreateInvestment(ctx context.Context, userID int, amount decimal.Decimal, paymentMethod string) (*domain.Investment, error) {
	if !amount.IsPositive() {
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidAmount, amount)
	}
	if !domain.IsPaymentMethod(paymentMethod) {
		return nil, fmt.Errorf("%w: unsupported payment method %q", domain.ErrInvalidRequest, paymentMethod)
	}

	table := s.plans.Current()
	plan, err := table.Lookup(amount)
	if err != nil {
		return nil, err
	}

	inv := &domain.Investment{
		UserID:         userID,
		PlanName:       plan.Name,
		PlanVersion:    table.Version,
		Amount:         amount,
		ReturnsPercent: plan.ReturnsPercent,
		DurationDays:   plan.DurationDays,
		ExpectedReturn: domain.ExpectedReturn(amount, plan.ReturnsPercent),
		PaymentMethod:  paymentMethod,
		PaymentStatus:  domain.PaymentPending,
		Status:         domain.InvestmentPending,
	}
	created, err := s.repo.Create(ctx, inv)
	if err != nil {
		zap.L().Error("failed to create investment", zap.Int("userID", userID), zap.Error(err))
		return nil, err
	}
	return created, nil
}

func (s *Service) lock(ctx context.Context, id int) (*domain.Investment, error) {
	inv, err := s.repo.GetForUpdate(ctx, id)
	if err != nil {
		return nil, err
	}
	if inv == nil {
		return nil, fmt.Errorf("investment %d: %w", id, domain.ErrNotFound)
	}
	return inv, nil
}

// ConfirmPayment applies an admin decision to a pending deposit. A
// confirmation activates the investment, credits totalInvested and pays the
// referral commission in the same transaction.
func (s *Service) ConfirmPayment(ctx context.Context, id int, decision domain.PaymentDecision) (*domain.Investment, error) {
	if decision.Status != domain.PaymentConfirmed && decision.Status != domain.PaymentRejected {
		return nil, fmt.Errorf("%w: payment status %q", domain.ErrInvalidRequest, decision.Status)
	}

	var (
		inv        *domain.Investment
		commission *domain.ReferralCommission
	)
	err := s.tx.Begin(ctx, func(ctx context.Context) error {
		var err error
		inv, err = s.lock(ctx, id)
		if err != nil {
			return err
		}
		if inv.PaymentStatus != domain.PaymentPending {
			return fmt.Errorf("investment %d payment is %s: %w", id, inv.PaymentStatus, domain.ErrAlreadyProcessed)
		}

		if decision.Status == domain.PaymentRejected {
			inv.PaymentStatus = domain.PaymentRejected
			inv.RejectionReason = decision.Reason
			return s.repo.Update(ctx, inv)
		}

		start := s.now().UTC()
		end := start.AddDate(0, 0, inv.DurationDays)
		inv.PaymentStatus = domain.PaymentConfirmed
		inv.Status = domain.InvestmentActive
		inv.StartDate = &start
		inv.EndDate = &end
		if err = s.repo.Update(ctx, inv); err != nil {
			return err
		}
		if _, err = s.ledger.Apply(ctx, inv.UserID, domain.Credit(domain.FieldTotalInvested, inv.Amount)); err != nil {
			return err
		}
		commission, err = s.referrals.PostCommission(ctx, inv)
		return err
	})
	if err != nil {
		zap.L().Error("failed to confirm payment", zap.Int("investmentID", id), zap.Error(err))
		return nil, err
	}

	event := notify.Event{
		Type:     notify.EventInvestmentConfirmed,
		UserID:   inv.UserID,
		EntityID: inv.ID,
		Amount:   inv.Amount.String(),
		Status:   inv.Status,
	}
	if inv.PaymentStatus == domain.PaymentRejected {
		event.Type = notify.EventInvestmentRejected
		event.Reason = inv.RejectionReason
	}
	s.notifier.Notify(ctx, event)
	if commission != nil {
		s.notifier.Notify(ctx, notify.Event{
			Type:     notify.EventReferralCommission,
			UserID:   commission.ReferrerID,
			EntityID: inv.ID,
			Amount:   commission.Amount.String(),
		})
	}
	return inv, nil
}

func completionEntries(inv *domain.Investment) []domain.Entry {
	return []domain.Entry{
		domain.Credit(domain.FieldTotalEarned, inv.Profit()),
		domain.Credit(domain.FieldBalance, inv.ExpectedReturn),
	}
}

func (s *Service) complete(ctx context.Context, inv *domain.Investment, now time.Time) error {
	if err := s.settler.SettleRemainder(ctx, inv, now); err != nil {
		return err
	}
	if _, err := s.ledger.Apply(ctx, inv.UserID, completionEntries(inv)...); err != nil {
		return err
	}
	inv.Status = domain.InvestmentCompleted
	inv.CompletedAt = &now
	return s.repo.Update(ctx, inv)
}

// CompleteMatured settles an active investment whose end date has passed.
// It reports false, without error, when the investment is not due, so a
// repeated sweep never pays twice.
func (s *Service) CompleteMatured(ctx context.Context, id int, now time.Time) (bool, error) {
	var (
		inv  *domain.Investment
		done bool
	)
	err := s.tx.Begin(ctx, func(ctx context.Context) error {
		done = false
		var err error
		inv, err = s.lock(ctx, id)
		if err != nil {
			return err
		}
		if inv.Status != domain.InvestmentActive || inv.EndDate == nil || inv.EndDate.After(now) {
			return nil
		}
		if err = s.complete(ctx, inv, now); err != nil {
			return err
		}
		done = true
		return nil
	})
	if err != nil {
		return false, err
	}
	if done {
		s.notifier.Notify(ctx, notify.Event{
			Type:     notify.EventInvestmentStatus,
			UserID:   inv.UserID,
			EntityID: inv.ID,
			Amount:   inv.ExpectedReturn.String(),
			Status:   inv.Status,
		})
	}
	return done, nil
}

// SetStatus is the admin override of the investment lifecycle. Each allowed
// move posts the ledger entries that keep the account consistent with it.
func (s *Service) SetStatus(ctx context.Context, id int, status string) (*domain.Investment, error) {
	var inv *domain.Investment
	err := s.tx.Begin(ctx, func(ctx context.Context) error {
		var err error
		inv, err = s.lock(ctx, id)
		if err != nil {
			return err
		}
		now := s.now().UTC()

		switch {
		case inv.Status == domain.InvestmentPending && status == domain.InvestmentCancelled:
			inv.Status = domain.InvestmentCancelled
			return s.repo.Update(ctx, inv)

		case inv.Status == domain.InvestmentActive && status == domain.InvestmentCancelled:
			if _, err = s.ledger.Apply(ctx, inv.UserID, domain.Debit(domain.FieldTotalInvested, inv.Amount)); err != nil {
				return err
			}
			inv.Status = domain.InvestmentCancelled
			return s.repo.Update(ctx, inv)

		case inv.Status == domain.InvestmentActive && status == domain.InvestmentCompleted:
			return s.complete(ctx, inv, now)

		case inv.Status == domain.InvestmentCompleted && status == domain.InvestmentCancelled:
			_, err = s.ledger.Apply(ctx, inv.UserID,
				domain.Debit(domain.FieldTotalEarned, inv.Profit()),
				domain.Debit(domain.FieldBalance, inv.ExpectedReturn),
				domain.Debit(domain.FieldTotalInvested, inv.Amount),
			)
			if err != nil {
				return err
			}
			inv.Status = domain.InvestmentCancelled
			return s.repo.Update(ctx, inv)
		}
		return fmt.Errorf("investment %d from %s to %s: %w", id, inv.Status, status, domain.ErrInvalidTransition)
	})
	if err != nil {
		zap.L().Error("failed to set investment status", zap.Int("investmentID", id), zap.String("status", status), zap.Error(err))
		return nil, err
	}

	s.notifier.Notify(ctx, notify.Event{
		Type:     notify.EventInvestmentStatus,
		UserID:   inv.UserID,
		EntityID: inv.ID,
		Status:   inv.Status,
	})
	return inv, nil
}

// GetInvestment returns an investment owned by userID.
func (s *Service) GetInvestment(ctx context.Context, userID, id int) (*domain.Investment, error) {
	inv, err := s.repo.GetByID(ctx, id)
	if err != nil {
		zap.L().Error("failed to get investment", zap.Int("investmentID", id), zap.Error(err))
		return nil, err
	}
	if inv == nil || inv.UserID != userID {
		return nil, fmt.Errorf("investment %d: %w", id, domain.ErrNotFound)
	}
	return inv, nil
}

func (s *Service) GetUserInvestments(ctx context.Context, userID int) ([]domain.Investment, error) {
	investments, err := s.repo.FindByUserID(ctx, userID)
	if err != nil {
		zap.L().Error("failed to get investments", zap.Int("userID", userID), zap.Error(err))
		return nil, err
	}
	return investments, nil
}

func (s *Service) Plans() *plans.Table {
	return s.plans.Current()
}

func (s *Service) UpdatePlan(name string, patch plans.Patch) (*plans.Table, error) {
	table, err := s.plans.Update(name, patch)
	if err != nil {
		zap.L().Error("failed to update plan", zap.String("plan", name), zap.Error(err))
		return nil, err
	}
	zap.L().Info("plan table updated", zap.String("plan", name), zap.Int("version", table.Version))
	return table, nil
}
