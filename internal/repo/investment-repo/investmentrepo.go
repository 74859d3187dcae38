package investmentrepo

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/GlebRadaev/investledger/internal/domain"
	"github.com/GlebRadaev/investledger/internal/pg"
)

const columns = `id, user_id, plan_name, plan_version, amount, returns_percent, duration_days, expected_return,
        payment_method, payment_status, status, rejection_reason, start_date, end_date, completed_at, created_at`

type Repository struct {
	db pg.Database
}

func New(db pg.Database) *Repository {
	return &Repository{
		db: db,
	}
}

func scanInvestment(row pgx.Row) (*domain.Investment, error) {
	var inv domain.Investment
	err := row.Scan(
		&inv.ID, &inv.UserID, &inv.PlanName, &inv.PlanVersion, &inv.Amount, &inv.ReturnsPercent,
		&inv.DurationDays, &inv.ExpectedReturn, &inv.PaymentMethod, &inv.PaymentStatus, &inv.Status,
		&inv.RejectionReason, &inv.StartDate, &inv.EndDate, &inv.CompletedAt, &inv.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &inv, nil
}

func (r *Repository) collect(rows pgx.Rows) ([]domain.Investment, error) {
	defer rows.Close()

	var investments []domain.Investment
	for rows.Next() {
		inv, err := scanInvestment(rows)
		if err != nil {
			zap.L().Error("can't scan investment row", zap.Error(err))
			return nil, err
		}
		investments = append(investments, *inv)
	}
	if err := rows.Err(); err != nil {
		zap.L().Error("can't iterate investment rows", zap.Error(err))
		return nil, err
	}
	return investments, nil
}

func (r *Repository) Create(ctx context.Context, inv *domain.Investment) (*domain.Investment, error) {
	query := `
        INSERT INTO investments (user_id, plan_name, plan_version, amount, returns_percent, duration_days,
                                 expected_return, payment_method, payment_status, status)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
        RETURNING id, created_at
    `
	err := r.db.QueryRow(ctx, query,
		inv.UserID, inv.PlanName, inv.PlanVersion, inv.Amount, inv.ReturnsPercent, inv.DurationDays,
		inv.ExpectedReturn, inv.PaymentMethod, inv.PaymentStatus, inv.Status,
	).Scan(&inv.ID, &inv.CreatedAt)
	if err != nil {
		zap.L().Error("can't save investment", zap.Error(err))
		return nil, err
	}
	return inv, nil
}

func (r *Repository) get(ctx context.Context, query string, id int) (*domain.Investment, error) {
	inv, err := scanInvestment(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		zap.L().Error("can't find investment", zap.Int("investmentID", id), zap.Error(err))
		return nil, err
	}
	return inv, nil
}

func (r *Repository) GetByID(ctx context.Context, id int) (*domain.Investment, error) {
	return r.get(ctx, `SELECT `+columns+` FROM investments WHERE id = $1`, id)
}

// GetForUpdate locks the row until the surrounding transaction ends.
func (r *Repository) GetForUpdate(ctx context.Context, id int) (*domain.Investment, error) {
	return r.get(ctx, `SELECT `+columns+` FROM investments WHERE id = $1 FOR UPDATE`, id)
}

func (r *Repository) FindByUserID(ctx context.Context, userID int) ([]domain.Investment, error) {
	query := `SELECT ` + columns + `
        FROM investments
        WHERE user_id = $1
        ORDER BY created_at DESC
    `
	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		zap.L().Error("can't get investments", zap.Error(err))
		return nil, err
	}
	return r.collect(rows)
}

func (r *Repository) Update(ctx context.Context, inv *domain.Investment) error {
	query := `
        UPDATE investments
        SET payment_status = $1, status = $2, rejection_reason = $3,
            start_date = $4, end_date = $5, completed_at = $6
        WHERE id = $7
    `
	_, err := r.db.Exec(ctx, query,
		inv.PaymentStatus, inv.Status, inv.RejectionReason, inv.StartDate, inv.EndDate, inv.CompletedAt, inv.ID,
	)
	if err != nil {
		zap.L().Error("failed to update investment", zap.Int("investmentID", inv.ID), zap.Error(err))
		return err
	}
	return nil
}

// FindAccruable pages through active investments whose window contains now.
func (r *Repository) FindAccruable(ctx context.Context, now time.Time, afterID int, limit uint32) ([]domain.Investment, error) {
	query := `SELECT ` + columns + `
        FROM investments
        WHERE status = 'active' AND start_date <= $1 AND end_date > $1 AND id > $2
        ORDER BY id ASC
        LIMIT $3
    `
	rows, err := r.db.Query(ctx, query, now, afterID, int(limit))
	if err != nil {
		zap.L().Error("can't get accruable investments", zap.Error(err))
		return nil, err
	}
	return r.collect(rows)
}

// FindMatured pages through active investments whose end date has passed.
func (r *Repository) FindMatured(ctx context.Context, now time.Time, afterID int, limit uint32) ([]domain.Investment, error) {
	query := `SELECT ` + columns + `
        FROM investments
        WHERE status = 'active' AND end_date <= $1 AND id > $2
        ORDER BY id ASC
        LIMIT $3
    `
	rows, err := r.db.Query(ctx, query, now, afterID, int(limit))
	if err != nil {
		zap.L().Error("can't get matured investments", zap.Error(err))
		return nil, err
	}
	return r.collect(rows)
}
