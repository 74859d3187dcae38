package accrualrepo

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
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

// Create inserts the accrual unless one already exists for the same
// investment and accrual date, or a final one exists for the investment.
// It reports whether a row was written.
func (r *Repository) Create(ctx context.Context, accrual *domain.EarningAccrual) (bool, error) {
	query := `
        INSERT INTO earning_accruals (investment_id, user_id, amount, status, accrual_date, release_date, released_at, final)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
        ON CONFLICT DO NOTHING
        RETURNING id, created_at
    `
	err := r.db.QueryRow(ctx, query,
		accrual.InvestmentID, accrual.UserID, accrual.Amount, accrual.Status,
		accrual.AccrualDate, accrual.ReleaseDate, accrual.ReleasedAt, accrual.Final,
	).Scan(&accrual.ID, &accrual.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		zap.L().Error("can't save accrual", zap.Int("investmentID", accrual.InvestmentID), zap.Error(err))
		return false, err
	}
	return true, nil
}

// SumByInvestment returns how many accruals an investment has and their total.
func (r *Repository) SumByInvestment(ctx context.Context, investmentID int) (int, decimal.Decimal, error) {
	query := `
        SELECT COUNT(*), COALESCE(SUM(amount), 0)
        FROM earning_accruals
        WHERE investment_id = $1
    `
	var (
		count int
		total decimal.Decimal
	)
	if err := r.db.QueryRow(ctx, query, investmentID).Scan(&count, &total); err != nil {
		zap.L().Error("can't sum accruals", zap.Int("investmentID", investmentID), zap.Error(err))
		return 0, decimal.Zero, err
	}
	return count, total, nil
}

// FindReleasable pages through pending accruals whose release date has passed.
func (r *Repository) FindReleasable(ctx context.Context, now time.Time, afterID int, limit uint32) ([]domain.EarningAccrual, error) {
	query := `
        SELECT id, investment_id, user_id, amount, status, accrual_date, release_date, released_at, final, created_at
        FROM earning_accruals
        WHERE status = 'pending' AND release_date <= $1 AND id > $2
        ORDER BY id ASC
        LIMIT $3
    `
	rows, err := r.db.Query(ctx, query, now, afterID, int(limit))
	if err != nil {
		zap.L().Error("can't get releasable accruals", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var accruals []domain.EarningAccrual
	for rows.Next() {
		var a domain.EarningAccrual
		err := rows.Scan(&a.ID, &a.InvestmentID, &a.UserID, &a.Amount, &a.Status,
			&a.AccrualDate, &a.ReleaseDate, &a.ReleasedAt, &a.Final, &a.CreatedAt)
		if err != nil {
			zap.L().Error("can't scan accrual row", zap.Error(err))
			return nil, err
		}
		accruals = append(accruals, a)
	}
	if err := rows.Err(); err != nil {
		zap.L().Error("can't iterate accrual rows", zap.Error(err))
		return nil, err
	}
	return accruals, nil
}

// MarkReleased flips a pending accrual to released. False means another
// run got there first.
func (r *Repository) MarkReleased(ctx context.Context, id int, now time.Time) (bool, error) {
	query := `
        UPDATE earning_accruals
        SET status = 'released', released_at = $1
        WHERE id = $2 AND status = 'pending' AND release_date <= $1
    `
	tag, err := r.db.Exec(ctx, query, now, id)
	if err != nil {
		zap.L().Error("failed to release accrual", zap.Int("accrualID", id), zap.Error(err))
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}

// PendingTotal is the sum of a user's accruals still on hold.
func (r *Repository) PendingTotal(ctx context.Context, userID int) (decimal.Decimal, error) {
	query := `
        SELECT COALESCE(SUM(amount), 0)
        FROM earning_accruals
        WHERE user_id = $1 AND status = 'pending'
    `
	var total decimal.Decimal
	if err := r.db.QueryRow(ctx, query, userID).Scan(&total); err != nil {
		zap.L().Error("can't sum pending accruals", zap.Int("userID", userID), zap.Error(err))
		return decimal.Zero, err
	}
	return total, nil
}
