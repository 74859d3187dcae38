package settlement

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/GlebRadaev/investledger/internal/domain"
	"github.com/GlebRadaev/investledger/internal/service/ledgerservice"
)

// Poster books accruals under the configured policy. Callers hold the
// investment row lock.
type Poster struct {
	accruals AccrualRepo
	ledger   ledgerservice.Ledger
	policy   Policy
	holdDays int
}

func NewPoster(accruals AccrualRepo, ledger ledgerservice.Ledger, policy Policy, holdDays int) *Poster {
	if policy == "" {
		policy = PolicyHeld
	}
	return &Poster{
		accruals: accruals,
		ledger:   ledger,
		policy:   policy,
		holdDays: holdDays,
	}
}

// post records one accrual and credits it. It reports false when an accrual
// with the same key already exists.
func (p *Poster) post(ctx context.Context, inv *domain.Investment, amount decimal.Decimal, now time.Time, final bool) (bool, error) {
	accrual := &domain.EarningAccrual{
		InvestmentID: inv.ID,
		UserID:       inv.UserID,
		Amount:       amount,
		AccrualDate:  accrualDay(now),
		Final:        final,
	}
	entries := []domain.Entry{
		domain.Credit(domain.FieldTotalEarned, amount),
		domain.Credit(domain.FieldTotalRoiEarned, amount),
	}
	switch p.policy {
	case PolicyImmediate:
		releasedAt := now
		accrual.Status = domain.AccrualReleased
		accrual.ReleaseDate = now
		accrual.ReleasedAt = &releasedAt
		entries = append(entries, domain.Credit(domain.FieldWithdrawableBalance, amount))
	default:
		accrual.Status = domain.AccrualPending
		accrual.ReleaseDate = now.AddDate(0, 0, p.holdDays)
		entries = append(entries, domain.Credit(domain.FieldPendingBalance, amount))
	}

	created, err := p.accruals.Create(ctx, accrual)
	if err != nil || !created {
		return false, err
	}
	if _, err = p.ledger.Apply(ctx, inv.UserID, entries...); err != nil {
		return false, err
	}
	return true, nil
}

// SettleRemainder books the part of the plan profit that daily accruals
// have not covered, for example after a missed run, as the investment's
// final accrual. Nothing is written when the accruals already add up.
func (p *Poster) SettleRemainder(ctx context.Context, inv *domain.Investment, now time.Time) error {
	_, accrued, err := p.accruals.SumByInvestment(ctx, inv.ID)
	if err != nil {
		return err
	}
	rest := domain.Remainder(inv, accrued)
	if !rest.IsPositive() {
		return nil
	}
	if _, err = p.post(ctx, inv, rest, now.UTC(), true); err != nil {
		return err
	}
	zap.L().Info("remaining return accrued at completion",
		zap.Int("investmentID", inv.ID), zap.String("amount", rest.String()))
	return nil
}
