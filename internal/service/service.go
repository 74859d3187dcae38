package service

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/GlebRadaev/investledger/internal/domain"
	"github.com/GlebRadaev/investledger/internal/notify"
	"github.com/GlebRadaev/investledger/internal/plans"
	"github.com/GlebRadaev/investledger/internal/repo"
	"github.com/GlebRadaev/investledger/internal/service/authservice"
	"github.com/GlebRadaev/investledger/internal/service/balanceservice"
	"github.com/GlebRadaev/investledger/internal/service/investmentservice"
	"github.com/GlebRadaev/investledger/internal/service/ledgerservice"
	"github.com/GlebRadaev/investledger/internal/service/referralservice"
	"github.com/GlebRadaev/investledger/internal/service/withdrawalservice"
	"github.com/GlebRadaev/investledger/internal/settlement"
	pkgauth "github.com/GlebRadaev/investledger/pkg/auth"
)

type Options struct {
	ReferralPercent  decimal.Decimal
	ReferralMaxDepth int
	Minimums         domain.Minimums
	Plans            *plans.Registry
	Settlement       settlement.Options
	Schedule         settlement.Schedule
	JobTimeout       time.Duration
	Locker           settlement.Locker
	Notifier         notify.Notifier
	JWTService       pkgauth.JWTServiceInterface
}

type Services struct {
	AuthService       *authservice.Service
	LedgerService     *ledgerservice.Service
	BalanceService    *balanceservice.Service
	InvestmentService *investmentservice.Service
	WithdrawalService *withdrawalservice.Service
	ReferralService   *referralservice.Service
	Settlement        *settlement.Engine
	Scheduler         *settlement.Scheduler
}

func New(repo *repo.Repositories, opts Options) *Services {
	if opts.Notifier == nil {
		opts.Notifier = notify.Nop{}
	}
	if opts.Plans == nil {
		opts.Plans = plans.NewRegistry(plans.Default())
	}
	if opts.Minimums == nil {
		opts.Minimums = domain.DefaultMinimums()
	}
	if opts.Locker == nil {
		opts.Locker = settlement.NewLocalLocker()
	}

	ledgerService := ledgerservice.New(repo.AccountRepo)
	referralService := referralservice.New(repo.ReferralRepo, repo.UserRepo, ledgerService, repo.TxManager, opts.ReferralPercent, opts.ReferralMaxDepth)
	poster := settlement.NewPoster(repo.AccrualRepo, ledgerService, opts.Settlement.Policy, opts.Settlement.HoldDays)
	investmentService := investmentservice.New(repo.InvestmentRepo, ledgerService, referralService, opts.Plans, poster, repo.TxManager, opts.Notifier)
	withdrawalService := withdrawalservice.New(repo.WithdrawalRepo, ledgerService, repo.TxManager, opts.Notifier, opts.Minimums)
	balanceService := balanceservice.New(ledgerService, repo.AccrualRepo)
	authService := authservice.New(repo.UserRepo, ledgerService, repo.TxManager, &pkgauth.HashService{}, opts.JWTService)

	engine := settlement.New(repo.InvestmentRepo, repo.AccrualRepo, ledgerService, investmentService, repo.TxManager, opts.Settlement)
	scheduler := settlement.NewScheduler(engine, opts.Locker, opts.Schedule, opts.JobTimeout)

	return &Services{
		AuthService:       authService,
		LedgerService:     ledgerService,
		BalanceService:    balanceService,
		InvestmentService: investmentService,
		WithdrawalService: withdrawalService,
		ReferralService:   referralService,
		Settlement:        engine,
		Scheduler:         scheduler,
	}
}
