package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Field names one balance column of an Account.
type Field string

const (
	FieldBalance             Field = "balance"
	FieldTotalInvested       Field = "total_invested"
	FieldTotalEarned         Field = "total_earned"
	FieldTotalRoiEarned      Field = "total_roi_earned"
	FieldPendingBalance      Field = "pending_balance"
	FieldWithdrawableBalance Field = "withdrawable_balance"
	FieldReferralBalance     Field = "referral_balance"
	FieldReferralEarnings    Field = "referral_earnings"
)

// Entry is a signed change to one field.
type Entry struct {
	Field Field
	Delta decimal.Decimal
}

func Credit(field Field, amount decimal.Decimal) Entry {
	return Entry{Field: field, Delta: amount}
}

func Debit(field Field, amount decimal.Decimal) Entry {
	return Entry{Field: field, Delta: amount.Neg()}
}

func (a *Account) field(f Field) (*decimal.Decimal, error) {
	switch f {
	case FieldBalance:
		return &a.Balance, nil
	case FieldTotalInvested:
		return &a.TotalInvested, nil
	case FieldTotalEarned:
		return &a.TotalEarned, nil
	case FieldTotalRoiEarned:
		return &a.TotalRoiEarned, nil
	case FieldPendingBalance:
		return &a.PendingBalance, nil
	case FieldWithdrawableBalance:
		return &a.WithdrawableBalance, nil
	case FieldReferralBalance:
		return &a.ReferralBalance, nil
	case FieldReferralEarnings:
		return &a.ReferralEarnings, nil
	}
	return nil, fmt.Errorf("%w: unknown account field %q", ErrInvalidRequest, f)
}

// Value returns the current value of f, zero for unknown fields.
func (a *Account) Value(f Field) decimal.Decimal {
	p, err := a.field(f)
	if err != nil {
		return decimal.Zero
	}
	return *p
}

// Apply applies all entries or none of them. A field that would end up
// negative fails the whole set with ErrInsufficientFunds.
func (a *Account) Apply(entries ...Entry) error {
	next := make(map[Field]decimal.Decimal, len(entries))
	for _, e := range entries {
		cur, ok := next[e.Field]
		if !ok {
			p, err := a.field(e.Field)
			if err != nil {
				return err
			}
			cur = *p
		}
		next[e.Field] = cur.Add(e.Delta)
	}
	for f, v := range next {
		if v.IsNegative() {
			return fmt.Errorf("%w: %s", ErrInsufficientFunds, f)
		}
	}
	for f, v := range next {
		p, _ := a.field(f)
		*p = v
	}
	return nil
}

type WithdrawalType string

const (
	WithdrawalMain     WithdrawalType = "main"
	WithdrawalReferral WithdrawalType = "referral"
	WithdrawalCombined WithdrawalType = "combined"
)

func (t WithdrawalType) Valid() bool {
	switch t {
	case WithdrawalMain, WithdrawalReferral, WithdrawalCombined:
		return true
	}
	return false
}

// Breakdown is how a reserved withdrawal amount was split across balances.
type Breakdown struct {
	FromWithdrawable decimal.Decimal
	FromReferral     decimal.Decimal
}

func (b Breakdown) Total() decimal.Decimal {
	return b.FromWithdrawable.Add(b.FromReferral)
}

func (b Breakdown) Debits() []Entry {
	var entries []Entry
	if b.FromWithdrawable.IsPositive() {
		entries = append(entries, Debit(FieldWithdrawableBalance, b.FromWithdrawable))
	}
	if b.FromReferral.IsPositive() {
		entries = append(entries, Debit(FieldReferralBalance, b.FromReferral))
	}
	return entries
}

func (b Breakdown) Credits() []Entry {
	var entries []Entry
	if b.FromWithdrawable.IsPositive() {
		entries = append(entries, Credit(FieldWithdrawableBalance, b.FromWithdrawable))
	}
	if b.FromReferral.IsPositive() {
		entries = append(entries, Credit(FieldReferralBalance, b.FromReferral))
	}
	return entries
}

// Available is what a withdrawal of type t may draw from a.
func Available(a *Account, t WithdrawalType) decimal.Decimal {
	switch t {
	case WithdrawalMain:
		return a.WithdrawableBalance
	case WithdrawalReferral:
		return a.ReferralBalance
	case WithdrawalCombined:
		return a.WithdrawableBalance.Add(a.ReferralBalance)
	}
	return decimal.Zero
}

// SplitReservation decides which balances cover total. Combined withdrawals
// drain the withdrawable balance first and take the rest from referral.
func SplitReservation(a *Account, t WithdrawalType, total decimal.Decimal) (Breakdown, error) {
	if !t.Valid() {
		return Breakdown{}, fmt.Errorf("%w: unknown withdrawal type %q", ErrInvalidRequest, t)
	}
	if !total.IsPositive() {
		return Breakdown{}, ErrInvalidAmount
	}
	if Available(a, t).LessThan(total) {
		return Breakdown{}, ErrInsufficientFunds
	}

	switch t {
	case WithdrawalMain:
		return Breakdown{FromWithdrawable: total, FromReferral: decimal.Zero}, nil
	case WithdrawalReferral:
		return Breakdown{FromWithdrawable: decimal.Zero, FromReferral: total}, nil
	}
	fromWithdrawable := decimal.Min(a.WithdrawableBalance, total)
	return Breakdown{
		FromWithdrawable: fromWithdrawable,
		FromReferral:     total.Sub(fromWithdrawable),
	}, nil
}
