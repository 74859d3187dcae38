package investmentrepo

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

var rowColumns = []string{
	"id", "user_id", "plan_name", "plan_version", "amount", "returns_percent", "duration_days", "expected_return",
	"payment_method", "payment_status", "status", "rejection_reason", "start_date", "end_date", "completed_at", "created_at",
}

func NewMock(t *testing.T) (*Repository, pgxmock.PgxPoolIface) {
	mockDB, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mockDB.Close)

	return New(mockDB), mockDB
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func activeRow(rows *pgxmock.Rows, id int, start, end time.Time) *pgxmock.Rows {
	return rows.AddRow(
		id, 7, "Gold", 1, dec("100"), dec("10"), 2, dec("110"),
		"USDT", domain.PaymentConfirmed, domain.InvestmentActive, "", &start, &end, nil, start,
	)
}

func TestRepository_Create(t *testing.T) {
	repo, mock := NewMock(t)
	now := time.Now()

	tests := []struct {
		name      string
		mockSetup func()
		expectErr bool
	}{
		{
			name: "Investment saved",
			mockSetup: func() {
				mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO investments (user_id, plan_name, plan_version`)).
					WithArgs(7, "Gold", 1, pgxmock.AnyArg(), pgxmock.AnyArg(), 2, pgxmock.AnyArg(), "USDT", "pending", "pending").
					WillReturnRows(pgxmock.NewRows([]string{"id", "created_at"}).AddRow(11, now))
			},
		},
		{
			name: "Database error",
			mockSetup: func() {
				mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO investments (user_id, plan_name, plan_version`)).
					WillReturnError(errors.New("database error"))
			},
			expectErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()
			inv := &domain.Investment{
				UserID: 7, PlanName: "Gold", PlanVersion: 1, Amount: dec("100"), ReturnsPercent: dec("10"),
				DurationDays: 2, ExpectedReturn: dec("110"), PaymentMethod: "USDT",
				PaymentStatus: domain.PaymentPending, Status: domain.InvestmentPending,
			}
			result, err := repo.Create(context.Background(), inv)
			if tt.expectErr {
				assert.Error(t, err)
				assert.Nil(t, result)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, 11, result.ID)
			assert.Equal(t, now, result.CreatedAt)
		})
	}
}

func TestRepository_GetForUpdate(t *testing.T) {
	repo, mock := NewMock(t)
	start := time.Date(2026, 1, 1, 10, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 0, 2)

	tests := []struct {
		name      string
		mockSetup func()
		expectErr bool
		expectNil bool
	}{
		{
			name: "Investment found",
			mockSetup: func() {
				mock.ExpectQuery(regexp.QuoteMeta(`FROM investments WHERE id = $1 FOR UPDATE`)).
					WithArgs(3).
					WillReturnRows(activeRow(pgxmock.NewRows(rowColumns), 3, start, end))
			},
		},
		{
			name: "Investment not found",
			mockSetup: func() {
				mock.ExpectQuery(regexp.QuoteMeta(`FROM investments WHERE id = $1 FOR UPDATE`)).
					WithArgs(3).
					WillReturnError(pgx.ErrNoRows)
			},
			expectNil: true,
		},
		{
			name: "Database error",
			mockSetup: func() {
				mock.ExpectQuery(regexp.QuoteMeta(`FROM investments WHERE id = $1 FOR UPDATE`)).
					WithArgs(3).
					WillReturnError(errors.New("database error"))
			},
			expectErr: true,
			expectNil: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()
			inv, err := repo.GetForUpdate(context.Background(), 3)
			if tt.expectErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			if tt.expectNil {
				assert.Nil(t, inv)
				return
			}
			require.NotNil(t, inv)
			assert.Equal(t, domain.InvestmentActive, inv.Status)
			assert.Equal(t, "110", inv.ExpectedReturn.String())
			require.NotNil(t, inv.EndDate)
			assert.Equal(t, end, *inv.EndDate)
			assert.Nil(t, inv.CompletedAt)
		})
	}
}

func TestRepository_FindMatured(t *testing.T) {
	repo, mock := NewMock(t)
	start := time.Date(2026, 1, 1, 10, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 0, 2)
	now := end.Add(time.Hour)

	tests := []struct {
		name      string
		mockSetup func()
		expectErr bool
		count     int
	}{
		{
			name: "Two matured investments",
			mockSetup: func() {
				rows := pgxmock.NewRows(rowColumns)
				activeRow(rows, 1, start, end)
				activeRow(rows, 2, start, end)
				mock.ExpectQuery(regexp.QuoteMeta(`WHERE status = 'active' AND end_date <= $1 AND id > $2`)).
					WithArgs(now, 0, 100).
					WillReturnRows(rows)
			},
			count: 2,
		},
		{
			name: "Scan error",
			mockSetup: func() {
				rows := pgxmock.NewRows(rowColumns).AddRow(
					1, 7, "Gold", 1, "invalid", dec("10"), 2, dec("110"),
					"USDT", "confirmed", "active", "", &start, &end, nil, start,
				)
				mock.ExpectQuery(regexp.QuoteMeta(`WHERE status = 'active' AND end_date <= $1 AND id > $2`)).
					WithArgs(now, 0, 100).
					WillReturnRows(rows)
			},
			expectErr: true,
		},
		{
			name: "Query error",
			mockSetup: func() {
				mock.ExpectQuery(regexp.QuoteMeta(`WHERE status = 'active' AND end_date <= $1 AND id > $2`)).
					WithArgs(now, 0, 100).
					WillReturnError(errors.New("database error"))
			},
			expectErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()
			result, err := repo.FindMatured(context.Background(), now, 0, 100)
			if tt.expectErr {
				assert.Error(t, err)
				assert.Nil(t, result)
				return
			}
			require.NoError(t, err)
			assert.Len(t, result, tt.count)
		})
	}
}

func TestRepository_FindAccruable(t *testing.T) {
	repo, mock := NewMock(t)
	start := time.Date(2026, 1, 1, 10, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 0, 2)
	now := start.Add(14 * time.Hour)

	mock.ExpectQuery(regexp.QuoteMeta(`WHERE status = 'active' AND start_date <= $1 AND end_date > $1 AND id > $2`)).
		WithArgs(now, 5, 10).
		WillReturnRows(activeRow(pgxmock.NewRows(rowColumns), 6, start, end))

	result, err := repo.FindAccruable(context.Background(), now, 5, 10)
	require.NoError(t, err)
	require.Len(t, result, 1)
	assert.Equal(t, 6, result[0].ID)
}

func TestRepository_Update(t *testing.T) {
	repo, mock := NewMock(t)
	start := time.Now()
	end := start.AddDate(0, 0, 2)
	inv := &domain.Investment{
		ID: 3, PaymentStatus: domain.PaymentConfirmed, Status: domain.InvestmentActive,
		StartDate: &start, EndDate: &end,
	}

	mock.ExpectExec(regexp.QuoteMeta(`UPDATE investments SET payment_status = $1, status = $2`)).
		WithArgs("confirmed", "active", "", &start, &end, (*time.Time)(nil), 3).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	assert.NoError(t, repo.Update(context.Background(), inv))

	mock.ExpectExec(regexp.QuoteMeta(`UPDATE investments SET payment_status = $1, status = $2`)).
		WillReturnError(errors.New("database error"))
	assert.Error(t, repo.Update(context.Background(), inv))
}
