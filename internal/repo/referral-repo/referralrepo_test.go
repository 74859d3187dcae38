package referralrepo

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/GlebRadaev/investledger/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func NewMock(t *testing.T) (*Repository, pgxmock.PgxPoolIface) {
	mockDB, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mockDB.Close)

	return New(mockDB), mockDB
}

func TestRepository_CreateCommission(t *testing.T) {
	repo, mock := NewMock(t)
	now := time.Now()

	tests := []struct {
		name      string
		mockSetup func()
		created   bool
		expectErr bool
	}{
		{
			name: "First commission",
			mockSetup: func() {
				mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO referral_commissions`)).
					WithArgs(1, 2, 3, pgxmock.AnyArg(), pgxmock.AnyArg(), "paid").
					WillReturnRows(pgxmock.NewRows([]string{"id", "created_at"}).AddRow(10, now))
			},
			created: true,
		},
		{
			name: "Duplicate commission",
			mockSetup: func() {
				mock.ExpectQuery(regexp.QuoteMeta(`ON CONFLICT (referrer_id, investment_id) DO NOTHING`)).
					WithArgs(1, 2, 3, pgxmock.AnyArg(), pgxmock.AnyArg(), "paid").
					WillReturnError(pgx.ErrNoRows)
			},
			created: false,
		},
		{
			name: "Database error",
			mockSetup: func() {
				mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO referral_commissions`)).
					WillReturnError(errors.New("database error"))
			},
			expectErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()
			c := &domain.ReferralCommission{
				ReferrerID: 1, RefereeID: 2, InvestmentID: 3,
				Amount: decimal.NewFromInt(5), PercentageEarned: decimal.NewFromInt(5), Status: domain.CommissionPaid,
			}
			created, err := repo.CreateCommission(context.Background(), c)
			if tt.expectErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tt.created, created)
		})
	}
}

func TestRepository_FindByReferrer(t *testing.T) {
	repo, mock := NewMock(t)
	now := time.Now()
	cols := []string{"id", "referrer_id", "referee_id", "investment_id", "amount", "percentage_earned", "status", "created_at"}

	mock.ExpectQuery(regexp.QuoteMeta(`FROM referral_commissions WHERE referrer_id = $1`)).
		WithArgs(1).
		WillReturnRows(pgxmock.NewRows(cols).AddRow(10, 1, 2, 3, decimal.NewFromInt(5), decimal.NewFromInt(5), "paid", now))

	result, err := repo.FindByReferrer(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, result, 1)
	assert.Equal(t, "5", result[0].Amount.String())

	mock.ExpectQuery(regexp.QuoteMeta(`FROM referral_commissions WHERE referrer_id = $1`)).
		WithArgs(1).
		WillReturnError(errors.New("database error"))

	result, err = repo.FindByReferrer(context.Background(), 1)
	assert.Error(t, err)
	assert.Nil(t, result)
}
