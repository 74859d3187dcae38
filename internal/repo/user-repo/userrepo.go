package userrepo

import (
	"context"
	"errors"

	"github.com/GlebRadaev/investledger/internal/domain"
	"github.com/GlebRadaev/investledger/internal/pg"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

const columns = `id, login, password_hash, referral_code, referred_by, is_admin, created_at`

type Repository struct {
	db pg.Database
}

func New(db pg.Database) *Repository {
	return &Repository{
		db: db,
	}
}

func scanUser(row pgx.Row) (*domain.User, error) {
	var user domain.User
	err := row.Scan(&user.ID, &user.Login, &user.PasswordHash, &user.ReferralCode, &user.ReferredBy, &user.IsAdmin, &user.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (repo *Repository) findOne(ctx context.Context, query string, arg any) (*domain.User, error) {
	user, err := scanUser(repo.db.QueryRow(ctx, query, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		zap.L().Error("can't find user", zap.Error(err))
		return nil, err
	}
	return user, nil
}

func (repo *Repository) FindByLogin(ctx context.Context, login string) (*domain.User, error) {
	return repo.findOne(ctx, "SELECT "+columns+" FROM users WHERE login = $1", login)
}

func (repo *Repository) FindByID(ctx context.Context, id int) (*domain.User, error) {
	return repo.findOne(ctx, "SELECT "+columns+" FROM users WHERE id = $1", id)
}

func (repo *Repository) FindByReferralCode(ctx context.Context, code string) (*domain.User, error) {
	return repo.findOne(ctx, "SELECT "+columns+" FROM users WHERE referral_code = $1", code)
}

// FindReferees returns the users directly referred by any of referrerIDs.
func (repo *Repository) FindReferees(ctx context.Context, referrerIDs []int) ([]domain.User, error) {
	query := "SELECT " + columns + " FROM users WHERE referred_by = ANY($1) ORDER BY id"
	rows, err := repo.db.Query(ctx, query, referrerIDs)
	if err != nil {
		zap.L().Error("can't get referees", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var users []domain.User
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			zap.L().Error("can't scan referee row", zap.Error(err))
			return nil, err
		}
		users = append(users, *user)
	}
	return users, nil
}

func (repo *Repository) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	query := `
		INSERT INTO users (login, password_hash, referral_code, referred_by)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`
	err := repo.db.QueryRow(ctx, query, user.Login, user.PasswordHash, user.ReferralCode, user.ReferredBy).Scan(&user.ID, &user.CreatedAt)
	if err != nil {
		zap.L().Error("can't save user", zap.Error(err))
		return nil, err
	}
	return user, nil
}
