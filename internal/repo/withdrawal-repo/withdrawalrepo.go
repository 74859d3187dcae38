package withdrawalrepo

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/GlebRadaev/investledger/internal/domain"
	"github.com/GlebRadaev/investledger/internal/pg"
)

const columns = `id, user_id, amount, method, withdrawal_type, status, from_withdrawable, from_referral,
        destination, notes, reason, transaction_id, processed_by, processed_at, completed_at, created_at`

type Repository struct {
	db pg.Database
}

func New(db pg.Database) *Repository {
	return &Repository{
		db: db,
	}
}

func scanWithdrawal(row pgx.Row) (*domain.Withdrawal, error) {
	var (
		wd    domain.Withdrawal
		wtype string
	)
	err := row.Scan(
		&wd.ID, &wd.UserID, &wd.Amount, &wd.Method, &wtype, &wd.Status, &wd.FromWithdrawable, &wd.FromReferral,
		&wd.Destination, &wd.Notes, &wd.Reason, &wd.TransactionID, &wd.ProcessedBy, &wd.ProcessedAt,
		&wd.CompletedAt, &wd.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	wd.Type = domain.WithdrawalType(wtype)
	return &wd, nil
}

func (r *Repository) CreateWithdrawal(ctx context.Context, withdrawal *domain.Withdrawal) (*domain.Withdrawal, error) {
	query := `
		INSERT INTO withdrawals (user_id, amount, method, withdrawal_type, status, from_withdrawable, from_referral, destination, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at
	`
	err := r.db.QueryRow(ctx, query,
		withdrawal.UserID, withdrawal.Amount, withdrawal.Method, string(withdrawal.Type), withdrawal.Status,
		withdrawal.FromWithdrawable, withdrawal.FromReferral, withdrawal.Destination, withdrawal.Notes,
	).Scan(&withdrawal.ID, &withdrawal.CreatedAt)
	if err != nil {
		zap.L().Error("can't save withdrawal", zap.Error(err))
		return nil, err
	}
	return withdrawal, nil
}

func (r *Repository) GetForUpdate(ctx context.Context, id int) (*domain.Withdrawal, error) {
	query := `SELECT ` + columns + ` FROM withdrawals WHERE id = $1 FOR UPDATE`
	wd, err := scanWithdrawal(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		zap.L().Error("can't find withdrawal", zap.Int("withdrawalID", id), zap.Error(err))
		return nil, err
	}
	return wd, nil
}

func (r *Repository) UpdateWithdrawal(ctx context.Context, withdrawal *domain.Withdrawal) error {
	query := `
		UPDATE withdrawals
		SET status = $1, reason = $2, transaction_id = $3, processed_by = $4, processed_at = $5, completed_at = $6
		WHERE id = $7
	`
	_, err := r.db.Exec(ctx, query,
		withdrawal.Status, withdrawal.Reason, withdrawal.TransactionID, withdrawal.ProcessedBy,
		withdrawal.ProcessedAt, withdrawal.CompletedAt, withdrawal.ID,
	)
	if err != nil {
		zap.L().Error("failed to update withdrawal", zap.Int("withdrawalID", withdrawal.ID), zap.Error(err))
		return err
	}
	return nil
}

func (r *Repository) GetWithdrawalsByUserID(ctx context.Context, userID int) ([]domain.Withdrawal, error) {
	query := `SELECT ` + columns + `
        FROM withdrawals
        WHERE user_id = $1
        ORDER BY created_at DESC
    `
	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		zap.L().Error("failed to fetch withdrawals", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var withdrawals []domain.Withdrawal
	for rows.Next() {
		wd, err := scanWithdrawal(rows)
		if err != nil {
			zap.L().Error("failed to scan withdrawal row", zap.Error(err))
			return nil, err
		}
		withdrawals = append(withdrawals, *wd)
	}

	return withdrawals, nil
}

func (r *Repository) StatsByUserID(ctx context.Context, userID int) ([]domain.WithdrawalStat, error) {
	query := `
        SELECT status, COUNT(*), COALESCE(SUM(amount), 0)
        FROM withdrawals
        WHERE user_id = $1
        GROUP BY status
        ORDER BY status
    `
	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		zap.L().Error("failed to fetch withdrawal stats", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var stats []domain.WithdrawalStat
	for rows.Next() {
		var s domain.WithdrawalStat
		if err := rows.Scan(&s.Status, &s.Count, &s.Total); err != nil {
			zap.L().Error("failed to scan withdrawal stat row", zap.Error(err))
			return nil, err
		}
		stats = append(stats, s)
	}
	return stats, nil
}
