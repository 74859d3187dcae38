package investmentservice

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gomock "go.uber.org/mock/gomock"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/GlebRadaev/investledger/internal/domain"
	"github.com/GlebRadaev/investledger/internal/notify"
	"github.com/GlebRadaev/investledger/internal/pg"
	"github.com/GlebRadaev/investledger/internal/plans"
	"github.com/GlebRadaev/investledger/internal/service/ledgerservice"
)

var fixedNow = time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

type mocks struct {
	repo      *MockRepo
	ledger    *ledgerservice.MockLedger
	referrals *MockReferralPoster
	plans     *MockPlanRegistry
	settler   *MockAccrualSettler
	tx        *pg.MockTXManager
	notifier  *notify.MockNotifier
}

func NewMock(t *testing.T) (*Service, *mocks) {
	ctrl := gomock.NewController(t)
	m := &mocks{
		repo:      NewMockRepo(ctrl),
		ledger:    ledgerservice.NewMockLedger(ctrl),
		referrals: NewMockReferralPoster(ctrl),
		plans:     NewMockPlanRegistry(ctrl),
		settler:   NewMockAccrualSettler(ctrl),
		tx:        pg.NewMockTXManager(ctrl),
		notifier:  notify.NewMockNotifier(ctrl),
	}
	service := New(m.repo, m.ledger, m.referrals, m.plans, m.settler, m.tx, m.notifier)
	service.now = func() time.Time { return fixedNow }
	return service, m
}

func (m *mocks) inTx() {
	m.tx.EXPECT().Begin(gomock.Any(), gomock.Any()).DoAndReturn(func(ctx context.Context, fn pg.TransactionalFn) error {
		return fn(ctx)
	})
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// applyTo checks the posted entries by running them against a scratch account.
func applyTo(t *testing.T, acc *domain.Account) func(context.Context, int, ...domain.Entry) (*domain.Account, error) {
	return func(_ context.Context, _ int, entries ...domain.Entry) (*domain.Account, error) {
		if err := acc.Apply(entries...); err != nil {
			return nil, err
		}
		return acc, nil
	}
}

func pendingInvestment() *domain.Investment {
	return &domain.Investment{
		ID:             7,
		UserID:         2,
		Amount:         dec("100"),
		ReturnsPercent: dec("10"),
		DurationDays:   5,
		ExpectedReturn: dec("110"),
		PaymentStatus:  domain.PaymentPending,
		Status:         domain.InvestmentPending,
	}
}

func activeInvestment(end time.Time) *domain.Investment {
	inv := pendingInvestment()
	start := end.AddDate(0, 0, -inv.DurationDays)
	inv.PaymentStatus = domain.PaymentConfirmed
	inv.Status = domain.InvestmentActive
	inv.StartDate = &start
	inv.EndDate = &end
	return inv
}

func TestCreateInvestment(t *testing.T) {
	tests := []struct {
		name        string
		amount      string
		method      string
		prepareMock func(m *mocks)
		expectedErr error
		plan        string
	}{
		{
			name:   "Gold plan chosen",
			amount: "100",
			method: "USDT",
			prepareMock: func(m *mocks) {
				m.plans.EXPECT().Current().Return(plans.Default())
				m.repo.EXPECT().Create(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, inv *domain.Investment) (*domain.Investment, error) {
						inv.ID = 1
						return inv, nil
					})
			},
			plan: "Gold",
		},
		{
			name:        "Amount outside every plan",
			amount:      "2",
			method:      "USDT",
			prepareMock: func(m *mocks) { m.plans.EXPECT().Current().Return(plans.Default()) },
			expectedErr: domain.ErrInvalidAmount,
		},
		{
			name:        "Non-positive amount",
			amount:      "0",
			method:      "USDT",
			prepareMock: func(m *mocks) {},
			expectedErr: domain.ErrInvalidAmount,
		},
		{
			name:        "Unknown payment method",
			amount:      "100",
			method:      "cash",
			prepareMock: func(m *mocks) {},
			expectedErr: domain.ErrInvalidRequest,
		},
		{
			name:   "Database error",
			amount: "100",
			method: "bitcoin",
			prepareMock: func(m *mocks) {
				m.plans.EXPECT().Current().Return(plans.Default())
				m.repo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil, errors.New("db error"))
			},
			expectedErr: errors.New("db error"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, m := NewMock(t)
			tt.prepareMock(m)

			inv, err := service.CreateInvestment(context.Background(), 2, dec(tt.amount), tt.method)
			if tt.expectedErr != nil {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.expectedErr.Error())
				assert.Nil(t, inv)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.plan, inv.PlanName)
			assert.Equal(t, 1, inv.PlanVersion)
			assert.Equal(t, "110", inv.ExpectedReturn.String())
			assert.Equal(t, 2, inv.DurationDays)
			assert.Equal(t, domain.PaymentPending, inv.PaymentStatus)
			assert.Equal(t, domain.InvestmentPending, inv.Status)
		})
	}
}

func TestConfirmPayment(t *testing.T) {
	tests := []struct {
		name        string
		decision    domain.PaymentDecision
		prepareMock func(m *mocks, acc *domain.Account)
		expectedErr error
		check       func(t *testing.T, inv *domain.Investment, acc *domain.Account)
	}{
		{
			name:     "Confirmed with referral",
			decision: domain.PaymentDecision{Status: domain.PaymentConfirmed},
			prepareMock: func(m *mocks, acc *domain.Account) {
				m.inTx()
				m.repo.EXPECT().GetForUpdate(gomock.Any(), 7).Return(pendingInvestment(), nil)
				m.repo.EXPECT().Update(gomock.Any(), gomock.Any()).Return(nil)
				m.ledger.EXPECT().Apply(gomock.Any(), 2, gomock.Any()).DoAndReturn(applyTo(t, acc))
				m.referrals.EXPECT().PostCommission(gomock.Any(), gomock.Any()).
					Return(&domain.ReferralCommission{ReferrerID: 1, Amount: dec("5")}, nil)
				m.notifier.EXPECT().Notify(gomock.Any(), gomock.Any()).
					Do(func(_ context.Context, e notify.Event) {
						assert.Equal(t, notify.EventInvestmentConfirmed, e.Type)
					})
				m.notifier.EXPECT().Notify(gomock.Any(), gomock.Any()).
					Do(func(_ context.Context, e notify.Event) {
						assert.Equal(t, notify.EventReferralCommission, e.Type)
						assert.Equal(t, 1, e.UserID)
					})
			},
			check: func(t *testing.T, inv *domain.Investment, acc *domain.Account) {
				assert.Equal(t, domain.InvestmentActive, inv.Status)
				assert.Equal(t, domain.PaymentConfirmed, inv.PaymentStatus)
				require.NotNil(t, inv.StartDate)
				require.NotNil(t, inv.EndDate)
				assert.Equal(t, fixedNow, *inv.StartDate)
				assert.Equal(t, fixedNow.AddDate(0, 0, 5), *inv.EndDate)
				assert.Equal(t, "100", acc.TotalInvested.String())
			},
		},
		{
			name:     "Rejected",
			decision: domain.PaymentDecision{Status: domain.PaymentRejected, Reason: "no funds received"},
			prepareMock: func(m *mocks, acc *domain.Account) {
				m.inTx()
				m.repo.EXPECT().GetForUpdate(gomock.Any(), 7).Return(pendingInvestment(), nil)
				m.repo.EXPECT().Update(gomock.Any(), gomock.Any()).Return(nil)
				m.notifier.EXPECT().Notify(gomock.Any(), gomock.Any()).
					Do(func(_ context.Context, e notify.Event) {
						assert.Equal(t, notify.EventInvestmentRejected, e.Type)
						assert.Equal(t, "no funds received", e.Reason)
					})
			},
			check: func(t *testing.T, inv *domain.Investment, acc *domain.Account) {
				assert.Equal(t, domain.InvestmentPending, inv.Status)
				assert.Equal(t, domain.PaymentRejected, inv.PaymentStatus)
				assert.Nil(t, inv.StartDate)
				assert.True(t, acc.TotalInvested.IsZero())
			},
		},
		{
			name:     "Already processed",
			decision: domain.PaymentDecision{Status: domain.PaymentConfirmed},
			prepareMock: func(m *mocks, acc *domain.Account) {
				m.inTx()
				inv := pendingInvestment()
				inv.PaymentStatus = domain.PaymentConfirmed
				m.repo.EXPECT().GetForUpdate(gomock.Any(), 7).Return(inv, nil)
			},
			expectedErr: domain.ErrAlreadyProcessed,
		},
		{
			name:     "Not found",
			decision: domain.PaymentDecision{Status: domain.PaymentConfirmed},
			prepareMock: func(m *mocks, acc *domain.Account) {
				m.inTx()
				m.repo.EXPECT().GetForUpdate(gomock.Any(), 7).Return(nil, nil)
			},
			expectedErr: domain.ErrNotFound,
		},
		{
			name:        "Unknown decision",
			decision:    domain.PaymentDecision{Status: "maybe"},
			prepareMock: func(m *mocks, acc *domain.Account) {},
			expectedErr: domain.ErrInvalidRequest,
		},
		{
			name:     "Commission failure aborts confirmation",
			decision: domain.PaymentDecision{Status: domain.PaymentConfirmed},
			prepareMock: func(m *mocks, acc *domain.Account) {
				m.inTx()
				m.repo.EXPECT().GetForUpdate(gomock.Any(), 7).Return(pendingInvestment(), nil)
				m.repo.EXPECT().Update(gomock.Any(), gomock.Any()).Return(nil)
				m.ledger.EXPECT().Apply(gomock.Any(), 2, gomock.Any()).DoAndReturn(applyTo(t, acc))
				m.referrals.EXPECT().PostCommission(gomock.Any(), gomock.Any()).Return(nil, domain.ErrTransactionAborted)
			},
			expectedErr: domain.ErrTransactionAborted,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, m := NewMock(t)
			acc := &domain.Account{UserID: 2}
			tt.prepareMock(m, acc)

			inv, err := service.ConfirmPayment(context.Background(), 7, tt.decision)
			if tt.expectedErr != nil {
				assert.ErrorIs(t, err, tt.expectedErr)
				assert.Nil(t, inv)
				return
			}
			require.NoError(t, err)
			tt.check(t, inv, acc)
		})
	}
}

func TestCompleteMatured(t *testing.T) {
	now := fixedNow

	tests := []struct {
		name        string
		inv         func() *domain.Investment
		expectDone  bool
		expectedErr error
		ledgerErr   error
		settleErr   error
	}{
		{
			name:       "Matured investment completed",
			inv:        func() *domain.Investment { return activeInvestment(now.Add(-time.Minute)) },
			expectDone: true,
		},
		{
			name:       "End date equal to now",
			inv:        func() *domain.Investment { return activeInvestment(now) },
			expectDone: true,
		},
		{
			name: "Not yet matured",
			inv:  func() *domain.Investment { return activeInvestment(now.Add(time.Minute)) },
		},
		{
			name: "Already completed",
			inv: func() *domain.Investment {
				inv := activeInvestment(now.Add(-time.Hour))
				inv.Status = domain.InvestmentCompleted
				return inv
			},
		},
		{
			name:        "Ledger failure",
			inv:         func() *domain.Investment { return activeInvestment(now.Add(-time.Minute)) },
			ledgerErr:   domain.ErrTransactionAborted,
			expectedErr: domain.ErrTransactionAborted,
		},
		{
			name:        "Remainder accrual failure",
			inv:         func() *domain.Investment { return activeInvestment(now.Add(-time.Minute)) },
			settleErr:   errors.New("database error"),
			expectedErr: errors.New("database error"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, m := NewMock(t)
			acc := &domain.Account{UserID: 2}
			inv := tt.inv()

			m.inTx()
			m.repo.EXPECT().GetForUpdate(gomock.Any(), 7).Return(inv, nil)
			if tt.settleErr != nil {
				m.settler.EXPECT().SettleRemainder(gomock.Any(), inv, now).Return(tt.settleErr)
			}
			if tt.expectDone || tt.ledgerErr != nil {
				m.settler.EXPECT().SettleRemainder(gomock.Any(), inv, now).Return(nil)
				if tt.ledgerErr != nil {
					m.ledger.EXPECT().Apply(gomock.Any(), 2, gomock.Any()).Return(nil, tt.ledgerErr)
				} else {
					m.ledger.EXPECT().Apply(gomock.Any(), 2, gomock.Any()).DoAndReturn(applyTo(t, acc))
					m.repo.EXPECT().Update(gomock.Any(), inv).Return(nil)
					m.notifier.EXPECT().Notify(gomock.Any(), gomock.Any())
				}
			}

			done, err := service.CompleteMatured(context.Background(), 7, now)
			if tt.expectedErr != nil {
				assert.ErrorContains(t, err, tt.expectedErr.Error())
				assert.False(t, done)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expectDone, done)
			if tt.expectDone {
				assert.Equal(t, domain.InvestmentCompleted, inv.Status)
				require.NotNil(t, inv.CompletedAt)
				assert.Equal(t, "10", acc.TotalEarned.String())
				assert.Equal(t, "110", acc.Balance.String())
			} else {
				assert.True(t, acc.Balance.IsZero())
			}
		})
	}
}

func TestCompleteMatured_Twice(t *testing.T) {
	service, m := NewMock(t)
	acc := &domain.Account{UserID: 2}
	inv := activeInvestment(fixedNow.Add(-time.Hour))

	m.tx.EXPECT().Begin(gomock.Any(), gomock.Any()).DoAndReturn(func(ctx context.Context, fn pg.TransactionalFn) error {
		return fn(ctx)
	}).Times(2)
	m.repo.EXPECT().GetForUpdate(gomock.Any(), 7).Return(inv, nil).Times(2)
	m.settler.EXPECT().SettleRemainder(gomock.Any(), inv, fixedNow).Return(nil).Times(1)
	m.ledger.EXPECT().Apply(gomock.Any(), 2, gomock.Any()).DoAndReturn(applyTo(t, acc)).Times(1)
	m.repo.EXPECT().Update(gomock.Any(), inv).Return(nil).Times(1)
	m.notifier.EXPECT().Notify(gomock.Any(), gomock.Any()).Times(1)

	first, err := service.CompleteMatured(context.Background(), 7, fixedNow)
	require.NoError(t, err)
	second, err := service.CompleteMatured(context.Background(), 7, fixedNow)
	require.NoError(t, err)

	assert.True(t, first)
	assert.False(t, second)
	assert.Equal(t, "10", acc.TotalEarned.String())
}

func TestCompleteMatured_RetriedAttemptNotDue(t *testing.T) {
	service, m := NewMock(t)
	acc := &domain.Account{UserID: 2}
	first := activeInvestment(fixedNow.Add(-time.Hour))
	second := activeInvestment(fixedNow.Add(-time.Hour))
	second.Status = domain.InvestmentCompleted

	m.tx.EXPECT().Begin(gomock.Any(), gomock.Any()).DoAndReturn(func(ctx context.Context, fn pg.TransactionalFn) error {
		require.NoError(t, fn(ctx))
		// the first attempt is rolled back by a serialization failure and retried
		return fn(ctx)
	})
	gomock.InOrder(
		m.repo.EXPECT().GetForUpdate(gomock.Any(), 7).Return(first, nil),
		m.repo.EXPECT().GetForUpdate(gomock.Any(), 7).Return(second, nil),
	)
	m.settler.EXPECT().SettleRemainder(gomock.Any(), first, fixedNow).Return(nil)
	m.ledger.EXPECT().Apply(gomock.Any(), 2, gomock.Any()).DoAndReturn(applyTo(t, acc))
	m.repo.EXPECT().Update(gomock.Any(), first).Return(nil)
	m.notifier.EXPECT().Notify(gomock.Any(), gomock.Any()).Times(0)

	done, err := service.CompleteMatured(context.Background(), 7, fixedNow)
	require.NoError(t, err)
	assert.False(t, done)
}

func TestSetStatus(t *testing.T) {
	completed := func() *domain.Investment {
		inv := activeInvestment(fixedNow.Add(-time.Hour))
		inv.Status = domain.InvestmentCompleted
		return inv
	}

	tests := []struct {
		name        string
		inv         func() *domain.Investment
		status      string
		account     domain.Account
		postsLedger bool
		settles     bool
		expectedErr error
		check       func(t *testing.T, acc *domain.Account)
	}{
		{
			name:   "Pending to cancelled",
			inv:    pendingInvestment,
			status: domain.InvestmentCancelled,
		},
		{
			name:        "Active to cancelled",
			inv:         func() *domain.Investment { return activeInvestment(fixedNow.Add(time.Hour)) },
			status:      domain.InvestmentCancelled,
			account:     domain.Account{TotalInvested: dec("100")},
			postsLedger: true,
			check: func(t *testing.T, acc *domain.Account) {
				assert.True(t, acc.TotalInvested.IsZero())
			},
		},
		{
			name:        "Active to completed",
			inv:         func() *domain.Investment { return activeInvestment(fixedNow.Add(time.Hour)) },
			status:      domain.InvestmentCompleted,
			postsLedger: true,
			settles:     true,
			check: func(t *testing.T, acc *domain.Account) {
				assert.Equal(t, "110", acc.Balance.String())
				assert.Equal(t, "10", acc.TotalEarned.String())
			},
		},
		{
			name:        "Completed reversed",
			inv:         completed,
			status:      domain.InvestmentCancelled,
			account:     domain.Account{TotalInvested: dec("100"), TotalEarned: dec("12"), Balance: dec("110")},
			postsLedger: true,
			check: func(t *testing.T, acc *domain.Account) {
				assert.True(t, acc.TotalInvested.IsZero())
				assert.Equal(t, "2", acc.TotalEarned.String())
				assert.True(t, acc.Balance.IsZero())
			},
		},
		{
			name:        "Reversal without funds",
			inv:         completed,
			status:      domain.InvestmentCancelled,
			account:     domain.Account{TotalInvested: dec("100"), TotalEarned: dec("10"), Balance: dec("50")},
			postsLedger: true,
			expectedErr: domain.ErrInsufficientFunds,
		},
		{
			name:        "Cancelled is terminal",
			inv:         func() *domain.Investment { i := pendingInvestment(); i.Status = domain.InvestmentCancelled; return i },
			status:      domain.InvestmentActive,
			expectedErr: domain.ErrInvalidTransition,
		},
		{
			name:        "Pending cannot complete",
			inv:         pendingInvestment,
			status:      domain.InvestmentCompleted,
			expectedErr: domain.ErrInvalidTransition,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, m := NewMock(t)
			acc := tt.account
			inv := tt.inv()

			m.inTx()
			m.repo.EXPECT().GetForUpdate(gomock.Any(), 7).Return(inv, nil)
			if tt.settles {
				m.settler.EXPECT().SettleRemainder(gomock.Any(), inv, fixedNow).Return(nil)
			}
			if tt.postsLedger {
				m.ledger.EXPECT().Apply(gomock.Any(), 2, gomock.Any()).DoAndReturn(applyTo(t, &acc))
			}
			if tt.expectedErr == nil {
				m.repo.EXPECT().Update(gomock.Any(), inv).Return(nil)
				m.notifier.EXPECT().Notify(gomock.Any(), gomock.Any())
			}

			got, err := service.SetStatus(context.Background(), 7, tt.status)
			if tt.expectedErr != nil {
				assert.ErrorIs(t, err, tt.expectedErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.status, got.Status)
			if tt.check != nil {
				tt.check(t, &acc)
			}
		})
	}
}

func TestGetInvestment(t *testing.T) {
	service, m := NewMock(t)

	m.repo.EXPECT().GetByID(gomock.Any(), 7).Return(pendingInvestment(), nil)
	inv, err := service.GetInvestment(context.Background(), 2, 7)
	require.NoError(t, err)
	assert.Equal(t, 7, inv.ID)

	m.repo.EXPECT().GetByID(gomock.Any(), 7).Return(pendingInvestment(), nil)
	_, err = service.GetInvestment(context.Background(), 3, 7)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	m.repo.EXPECT().GetByID(gomock.Any(), 8).Return(nil, nil)
	_, err = service.GetInvestment(context.Background(), 2, 8)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestGetUserInvestments(t *testing.T) {
	service, m := NewMock(t)

	m.repo.EXPECT().FindByUserID(gomock.Any(), 2).Return([]domain.Investment{*pendingInvestment()}, nil)
	investments, err := service.GetUserInvestments(context.Background(), 2)
	require.NoError(t, err)
	assert.Len(t, investments, 1)

	m.repo.EXPECT().FindByUserID(gomock.Any(), 2).Return(nil, errors.New("db error"))
	_, err = service.GetUserInvestments(context.Background(), 2)
	assert.Error(t, err)
}

func TestPlans(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	restore := zap.ReplaceGlobals(zap.New(core))
	defer restore()

	service, m := NewMock(t)
	table := plans.Default()
	days := 4

	m.plans.EXPECT().Current().Return(table)
	assert.Equal(t, table, service.Plans())

	bumped, err := plans.NewTable(2, table.Plans())
	require.NoError(t, err)
	m.plans.EXPECT().Update("Gold", plans.Patch{DurationDays: &days}).Return(bumped, nil)
	got, err := service.UpdatePlan("Gold", plans.Patch{DurationDays: &days})
	require.NoError(t, err)
	assert.Equal(t, 2, got.Version)
	assert.Equal(t, 1, logs.FilterMessage("plan table updated").Len())

	m.plans.EXPECT().Update("Nope", gomock.Any()).Return(nil, domain.ErrNotFound)
	_, err = service.UpdatePlan("Nope", plans.Patch{})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
