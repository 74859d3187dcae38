package accountrepo

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/GlebRadaev/investledger/internal/domain"
	"github.com/GlebRadaev/investledger/internal/pg"
)

type Repository struct {
	db        pg.Database
	txManager pg.TXManager
}

func New(db pg.Database, txManager pg.TXManager) *Repository {
	return &Repository{
		db:        db,
		txManager: txManager,
	}
}

func scanAccount(row pgx.Row) (*domain.Account, error) {
	var a domain.Account
	err := row.Scan(
		&a.ID, &a.UserID, &a.Balance, &a.TotalInvested, &a.TotalEarned, &a.TotalRoiEarned,
		&a.PendingBalance, &a.WithdrawableBalance, &a.ReferralBalance, &a.ReferralEarnings, &a.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *Repository) Get(ctx context.Context, userID int) (*domain.Account, error) {
	query := `
        SELECT id, user_id, balance, total_invested, total_earned, total_roi_earned,
               pending_balance, withdrawable_balance, referral_balance, referral_earnings, updated_at
        FROM accounts
        WHERE user_id = $1
    `
	account, err := scanAccount(r.db.QueryRow(ctx, query, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		zap.L().Error("failed to get account", zap.Int("userID", userID), zap.Error(err))
		return nil, err
	}
	return account, nil
}

func (r *Repository) Create(ctx context.Context, userID int) (*domain.Account, error) {
	query := `
        INSERT INTO accounts (user_id)
        VALUES ($1)
        RETURNING id, user_id, balance, total_invested, total_earned, total_roi_earned,
                  pending_balance, withdrawable_balance, referral_balance, referral_earnings, updated_at
    `
	account, err := scanAccount(r.db.QueryRow(ctx, query, userID))
	if err != nil {
		zap.L().Error("failed to create account", zap.Int("userID", userID), zap.Error(err))
		return nil, err
	}
	return account, nil
}

// Update locks the account row, lets fn change it in memory and writes every
// balance back in the same transaction. Nothing is written when fn fails.
func (r *Repository) Update(ctx context.Context, userID int, fn func(a *domain.Account) error) (*domain.Account, error) {
	selectQuery := `
        SELECT id, user_id, balance, total_invested, total_earned, total_roi_earned,
               pending_balance, withdrawable_balance, referral_balance, referral_earnings, updated_at
        FROM accounts
        WHERE user_id = $1
        FOR UPDATE
    `
	updateQuery := `
        UPDATE accounts
        SET balance = $1, total_invested = $2, total_earned = $3, total_roi_earned = $4,
            pending_balance = $5, withdrawable_balance = $6, referral_balance = $7, referral_earnings = $8,
            updated_at = NOW()
        WHERE user_id = $9
        RETURNING updated_at
    `
	var account *domain.Account
	err := r.txManager.Begin(ctx, func(ctx context.Context) error {
		var err error
		account, err = scanAccount(r.db.QueryRow(ctx, selectQuery, userID))
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return fmt.Errorf("account of user %d: %w", userID, domain.ErrNotFound)
			}
			zap.L().Error("failed to lock account", zap.Int("userID", userID), zap.Error(err))
			return err
		}

		if err := fn(account); err != nil {
			return err
		}

		err = r.db.QueryRow(ctx, updateQuery,
			account.Balance, account.TotalInvested, account.TotalEarned, account.TotalRoiEarned,
			account.PendingBalance, account.WithdrawableBalance, account.ReferralBalance, account.ReferralEarnings,
			userID,
		).Scan(&account.UpdatedAt)
		if err != nil {
			zap.L().Error("failed to update account", zap.Int("userID", userID), zap.Error(err))
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return account, nil
}
