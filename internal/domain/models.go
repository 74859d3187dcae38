package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type User struct {
	ID           int       `db:"id"`
	Login        string    `db:"login"`
	PasswordHash string    `db:"password_hash"`
	ReferralCode string    `db:"referral_code"`
	ReferredBy   *int      `db:"referred_by"`
	IsAdmin      bool      `db:"is_admin"`
	CreatedAt    time.Time `db:"created_at"`
}

// Account holds every balance of a single user. It is mutated only through Apply.
type Account struct {
	ID                  int             `db:"id"`
	UserID              int             `db:"user_id"`
	Balance             decimal.Decimal `db:"balance"`
	TotalInvested       decimal.Decimal `db:"total_invested"`
	TotalEarned         decimal.Decimal `db:"total_earned"`
	TotalRoiEarned      decimal.Decimal `db:"total_roi_earned"`
	PendingBalance      decimal.Decimal `db:"pending_balance"`
	WithdrawableBalance decimal.Decimal `db:"withdrawable_balance"`
	ReferralBalance     decimal.Decimal `db:"referral_balance"`
	ReferralEarnings    decimal.Decimal `db:"referral_earnings"`
	UpdatedAt           time.Time       `db:"updated_at"`
}

const (
	PaymentPending   = "pending"
	PaymentConfirmed = "confirmed"
	PaymentRejected  = "rejected"
)

const (
	InvestmentPending   = "pending"
	InvestmentActive    = "active"
	InvestmentCompleted = "completed"
	InvestmentCancelled = "cancelled"
)

type Investment struct {
	ID              int             `db:"id"`
	UserID          int             `db:"user_id"`
	PlanName        string          `db:"plan_name"`
	PlanVersion     int             `db:"plan_version"`
	Amount          decimal.Decimal `db:"amount"`
	ReturnsPercent  decimal.Decimal `db:"returns_percent"`
	DurationDays    int             `db:"duration_days"`
	ExpectedReturn  decimal.Decimal `db:"expected_return"`
	PaymentMethod   string          `db:"payment_method"`
	PaymentStatus   string          `db:"payment_status"`
	Status          string          `db:"status"`
	RejectionReason string          `db:"rejection_reason"`
	StartDate       *time.Time      `db:"start_date"`
	EndDate         *time.Time      `db:"end_date"`
	CompletedAt     *time.Time      `db:"completed_at"`
	CreatedAt       time.Time       `db:"created_at"`
}

// Profit is the part of the expected return above the principal.
func (i *Investment) Profit() decimal.Decimal {
	return i.ExpectedReturn.Sub(i.Amount)
}

// PaymentDecision is what an admin submits when reviewing a deposit.
type PaymentDecision struct {
	Status string
	Reason string
}

const (
	AccrualPending   = "pending"
	AccrualReleased  = "released"
	AccrualWithdrawn = "withdrawn"
)

type EarningAccrual struct {
	ID           int             `db:"id"`
	InvestmentID int             `db:"investment_id"`
	UserID       int             `db:"user_id"`
	Amount       decimal.Decimal `db:"amount"`
	Status       string          `db:"status"`
	AccrualDate  time.Time       `db:"accrual_date"`
	ReleaseDate  time.Time       `db:"release_date"`
	ReleasedAt   *time.Time      `db:"released_at"`
	Final        bool            `db:"final"`
	CreatedAt    time.Time       `db:"created_at"`
}

const (
	WithdrawalPending   = "pending"
	WithdrawalApproved  = "approved"
	WithdrawalRejected  = "rejected"
	WithdrawalCompleted = "completed"
	WithdrawalPaid      = "paid"
	WithdrawalCancelled = "cancelled"
)

type Withdrawal struct {
	ID               int             `db:"id"`
	UserID           int             `db:"user_id"`
	Amount           decimal.Decimal `db:"amount"`
	Method           string          `db:"method"`
	Type             WithdrawalType  `db:"withdrawal_type"`
	Status           string          `db:"status"`
	FromWithdrawable decimal.Decimal `db:"from_withdrawable"`
	FromReferral     decimal.Decimal `db:"from_referral"`
	Destination      string          `db:"destination"`
	Notes            string          `db:"notes"`
	Reason           string          `db:"reason"`
	TransactionID    string          `db:"transaction_id"`
	ProcessedBy      *int            `db:"processed_by"`
	ProcessedAt      *time.Time      `db:"processed_at"`
	CompletedAt      *time.Time      `db:"completed_at"`
	CreatedAt        time.Time       `db:"created_at"`
}

// Breakdown returns the reservation persisted with the withdrawal.
func (w *Withdrawal) Breakdown() Breakdown {
	return Breakdown{
		FromWithdrawable: w.FromWithdrawable,
		FromReferral:     w.FromReferral,
	}
}

type WithdrawalRequest struct {
	UserID      int
	Amount      decimal.Decimal
	Method      string
	Type        WithdrawalType
	Destination string
	Notes       string
}

type WithdrawalDecision struct {
	Status        string
	ProcessedBy   int
	TransactionID string
	Reason        string
}

type WithdrawalStat struct {
	Status string          `db:"status"`
	Count  int             `db:"count"`
	Total  decimal.Decimal `db:"total"`
}

const CommissionPaid = "paid"

type ReferralCommission struct {
	ID               int             `db:"id"`
	ReferrerID       int             `db:"referrer_id"`
	RefereeID        int             `db:"referee_id"`
	InvestmentID     int             `db:"investment_id"`
	Amount           decimal.Decimal `db:"amount"`
	PercentageEarned decimal.Decimal `db:"percentage_earned"`
	Status           string          `db:"status"`
	CreatedAt        time.Time       `db:"created_at"`
}

// ReferralNode is one user in a referral tree, Level 1 being a direct referee.
type ReferralNode struct {
	UserID     int
	Login      string
	ReferredBy int
	Level      int
	JoinedAt   time.Time
}

// BalanceOverview is the account plus figures derived from accruals.
type BalanceOverview struct {
	Account           Account
	TotalPendingRoi   decimal.Decimal
	TotalWithdrawable decimal.Decimal
}
