package repo

import (
	"github.com/GlebRadaev/investledger/internal/pg"
	accountrepo "github.com/GlebRadaev/investledger/internal/repo/account-repo"
	accrualrepo "github.com/GlebRadaev/investledger/internal/repo/accrual-repo"
	investmentrepo "github.com/GlebRadaev/investledger/internal/repo/investment-repo"
	referralrepo "github.com/GlebRadaev/investledger/internal/repo/referral-repo"
	userrepo "github.com/GlebRadaev/investledger/internal/repo/user-repo"
	withdrawalrepo "github.com/GlebRadaev/investledger/internal/repo/withdrawal-repo"
	"github.com/GlebRadaev/investledger/internal/service/authservice"
	"github.com/GlebRadaev/investledger/internal/service/balanceservice"
	"github.com/GlebRadaev/investledger/internal/service/investmentservice"
	"github.com/GlebRadaev/investledger/internal/service/ledgerservice"
	"github.com/GlebRadaev/investledger/internal/service/referralservice"
	"github.com/GlebRadaev/investledger/internal/service/withdrawalservice"
	"github.com/GlebRadaev/investledger/internal/settlement"
)

type UserRepo interface {
	authservice.Repo
	referralservice.UserRepo
}

type InvestmentRepo interface {
	investmentservice.Repo
	settlement.InvestmentRepo
}

type AccrualRepo interface {
	settlement.AccrualRepo
	balanceservice.AccrualRepo
}

type Repositories struct {
	UserRepo       UserRepo
	AccountRepo    ledgerservice.AccountRepo
	InvestmentRepo InvestmentRepo
	AccrualRepo    AccrualRepo
	WithdrawalRepo withdrawalservice.Repo
	ReferralRepo   referralservice.Repo
	TxManager      pg.TXManager
}

func New(conn pg.Database, txManager pg.TXManager) *Repositories {
	return &Repositories{
		UserRepo:       userrepo.New(conn),
		AccountRepo:    accountrepo.New(conn, txManager),
		InvestmentRepo: investmentrepo.New(conn),
		AccrualRepo:    accrualrepo.New(conn),
		WithdrawalRepo: withdrawalrepo.New(conn),
		ReferralRepo:   referralrepo.New(conn),
		TxManager:      txManager,
	}
}
