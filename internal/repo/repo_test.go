package repo

import (
	"testing"

	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	gomock "go.uber.org/mock/gomock"

	"github.com/GlebRadaev/investledger/internal/pg"
	accountrepo "github.com/GlebRadaev/investledger/internal/repo/account-repo"
	accrualrepo "github.com/GlebRadaev/investledger/internal/repo/accrual-repo"
	investmentrepo "github.com/GlebRadaev/investledger/internal/repo/investment-repo"
	referralrepo "github.com/GlebRadaev/investledger/internal/repo/referral-repo"
	userrepo "github.com/GlebRadaev/investledger/internal/repo/user-repo"
	withdrawalrepo "github.com/GlebRadaev/investledger/internal/repo/withdrawal-repo"
)

func NewMock(t *testing.T) (*Repositories, pgxmock.PgxPoolIface, *pg.MockTXManager) {
	ctrl := gomock.NewController(t)
	mockDB, err := pgxmock.NewPool()
	assert.NoError(t, err)
	t.Cleanup(mockDB.Close)

	mockTxManager := pg.NewMockTXManager(ctrl)
	return New(mockDB, mockTxManager), mockDB, mockTxManager
}

func TestNew(t *testing.T) {
	repo, mock, txManager := NewMock(t)

	assert.IsType(t, &userrepo.Repository{}, repo.UserRepo)
	assert.IsType(t, &accountrepo.Repository{}, repo.AccountRepo)
	assert.IsType(t, &investmentrepo.Repository{}, repo.InvestmentRepo)
	assert.IsType(t, &accrualrepo.Repository{}, repo.AccrualRepo)
	assert.IsType(t, &withdrawalrepo.Repository{}, repo.WithdrawalRepo)
	assert.IsType(t, &referralrepo.Repository{}, repo.ReferralRepo)
	assert.Same(t, txManager, repo.TxManager)

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("there were unmet expectations: %v", err)
	}
}
