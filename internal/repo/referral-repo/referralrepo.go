package referralrepo

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/GlebRadaev/investledger/internal/domain"
	"github.com/GlebRadaev/investledger/internal/pg"
)

type Repository struct {
	db pg.Database
}

func New(db pg.Database) *Repository {
	return &Repository{
		db: db,
	}
}

// CreateCommission records a commission once per referrer and investment.
// A false result means the commission was already recorded.
func (r *Repository) CreateCommission(ctx context.Context, c *domain.ReferralCommission) (bool, error) {
	query := `
        INSERT INTO referral_commissions (referrer_id, referee_id, investment_id, amount, percentage_earned, status)
        VALUES ($1, $2, $3, $4, $5, $6)
        ON CONFLICT (referrer_id, investment_id) DO NOTHING
        RETURNING id, created_at
    `
	err := r.db.QueryRow(ctx, query,
		c.ReferrerID, c.RefereeID, c.InvestmentID, c.Amount, c.PercentageEarned, c.Status,
	).Scan(&c.ID, &c.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		zap.L().Error("can't save referral commission", zap.Int("investmentID", c.InvestmentID), zap.Error(err))
		return false, err
	}
	return true, nil
}

func (r *Repository) FindByReferrer(ctx context.Context, referrerID int) ([]domain.ReferralCommission, error) {
	query := `
        SELECT id, referrer_id, referee_id, investment_id, amount, percentage_earned, status, created_at
        FROM referral_commissions
        WHERE referrer_id = $1
        ORDER BY created_at DESC
    `
	rows, err := r.db.Query(ctx, query, referrerID)
	if err != nil {
		zap.L().Error("can't get referral commissions", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var commissions []domain.ReferralCommission
	for rows.Next() {
		var c domain.ReferralCommission
		err := rows.Scan(&c.ID, &c.ReferrerID, &c.RefereeID, &c.InvestmentID, &c.Amount, &c.PercentageEarned, &c.Status, &c.CreatedAt)
		if err != nil {
			zap.L().Error("can't scan referral commission row", zap.Error(err))
			return nil, err
		}
		commissions = append(commissions, c)
	}
	return commissions, nil
}
