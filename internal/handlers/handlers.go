package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "github.com/GlebRadaev/investledger/docs"
	adminhandlers "github.com/GlebRadaev/investledger/internal/handlers/admin"
	authhandlers "github.com/GlebRadaev/investledger/internal/handlers/auth"
	balancehandlers "github.com/GlebRadaev/investledger/internal/handlers/balance"
	investmenthandlers "github.com/GlebRadaev/investledger/internal/handlers/investments"
	referralhandlers "github.com/GlebRadaev/investledger/internal/handlers/referrals"
	withdrawalhandlers "github.com/GlebRadaev/investledger/internal/handlers/withdrawals"
	"github.com/GlebRadaev/investledger/internal/metrics"
	"github.com/GlebRadaev/investledger/internal/service"
	"github.com/GlebRadaev/investledger/pkg/auth"
)

//go:generate mockgen -source=handlers.go -destination=mock_handlers.go -package=handlers

type AuthHandler interface {
	Register(w http.ResponseWriter, r *http.Request)
	Login(w http.ResponseWriter, r *http.Request)
}

type BalanceHandler interface {
	GetBalance(w http.ResponseWriter, r *http.Request)
}

type InvestmentHandler interface {
	GetPlans(w http.ResponseWriter, r *http.Request)
	CreateInvestment(w http.ResponseWriter, r *http.Request)
	GetInvestments(w http.ResponseWriter, r *http.Request)
	GetInvestment(w http.ResponseWriter, r *http.Request)
}

type WithdrawalHandler interface {
	RequestWithdrawal(w http.ResponseWriter, r *http.Request)
	GetWithdrawals(w http.ResponseWriter, r *http.Request)
	GetStats(w http.ResponseWriter, r *http.Request)
	CancelWithdrawal(w http.ResponseWriter, r *http.Request)
}

type ReferralHandler interface {
	GetTree(w http.ResponseWriter, r *http.Request)
	GetCommissions(w http.ResponseWriter, r *http.Request)
}

type AdminHandler interface {
	ConfirmPayment(w http.ResponseWriter, r *http.Request)
	SetInvestmentStatus(w http.ResponseWriter, r *http.Request)
	DecideWithdrawal(w http.ResponseWriter, r *http.Request)
	UpdatePlan(w http.ResponseWriter, r *http.Request)
	RunJob(w http.ResponseWriter, r *http.Request)
}

type Handlers struct {
	AuthHandler       AuthHandler
	BalanceHandler    BalanceHandler
	InvestmentHandler InvestmentHandler
	WithdrawalHandler WithdrawalHandler
	ReferralHandler   ReferralHandler
	AdminHandler      AdminHandler

	jwtService auth.JWTServiceInterface
}

func New(s *service.Services, jwtService auth.JWTServiceInterface) *Handlers {
	return &Handlers{
		AuthHandler:       authhandlers.New(s.AuthService),
		BalanceHandler:    balancehandlers.New(s.BalanceService),
		InvestmentHandler: investmenthandlers.New(s.InvestmentService),
		WithdrawalHandler: withdrawalhandlers.New(s.WithdrawalService),
		ReferralHandler:   referralhandlers.New(s.ReferralService),
		AdminHandler:      adminhandlers.New(s.InvestmentService, s.WithdrawalService, s.Scheduler),
		jwtService:        jwtService,
	}
}

func (h *Handlers) InitRoutes(r chi.Router) chi.Router {
	r.Use(
		middleware.RealIP,
		middleware.Recoverer,
		middleware.Logger,
		metrics.Middleware,
	)
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("doc.json"),
	))
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/user", func(r chi.Router) {
		r.Post("/register", h.AuthHandler.Register)
		r.Post("/login", h.AuthHandler.Login)

		r.Group(func(r chi.Router) {
			r.Use(auth.AuthMiddleware(h.jwtService))
			r.Get("/balance", h.BalanceHandler.GetBalance)
			r.Get("/plans", h.InvestmentHandler.GetPlans)
			r.Route("/investments", func(r chi.Router) {
				r.Post("/", h.InvestmentHandler.CreateInvestment)
				r.Get("/", h.InvestmentHandler.GetInvestments)
				r.Get("/{id}", h.InvestmentHandler.GetInvestment)
			})
			r.Route("/withdrawals", func(r chi.Router) {
				r.Post("/", h.WithdrawalHandler.RequestWithdrawal)
				r.Get("/", h.WithdrawalHandler.GetWithdrawals)
				r.Get("/stats", h.WithdrawalHandler.GetStats)
				r.Post("/{id}/cancel", h.WithdrawalHandler.CancelWithdrawal)
			})
			r.Route("/referrals", func(r chi.Router) {
				r.Get("/", h.ReferralHandler.GetTree)
				r.Get("/commissions", h.ReferralHandler.GetCommissions)
			})
		})
	})

	r.Route("/api/admin", func(r chi.Router) {
		r.Use(auth.AuthMiddleware(h.jwtService), auth.AdminMiddleware)
		r.Put("/investments/{id}/payment", h.AdminHandler.ConfirmPayment)
		r.Put("/investments/{id}/status", h.AdminHandler.SetInvestmentStatus)
		r.Put("/withdrawals/{id}", h.AdminHandler.DecideWithdrawal)
		r.Put("/plans/{name}", h.AdminHandler.UpdatePlan)
		r.Post("/jobs/{job}", h.AdminHandler.RunJob)
	})

	return r
}
