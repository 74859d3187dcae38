package domain

import (
	"github.com/shopspring/decimal"
)

// MoneyScale is the number of decimal places kept for accrued amounts.
const MoneyScale = 6

var hundred = decimal.NewFromInt(100)

func percentOf(amount, percent decimal.Decimal) decimal.Decimal {
	return amount.Mul(percent).Div(hundred)
}

// ExpectedReturn is principal plus the plan's total return.
func ExpectedReturn(amount, returnsPercent decimal.Decimal) decimal.Decimal {
	return amount.Add(percentOf(amount, returnsPercent))
}

// PeriodReturn is the amount accrued for one day of the investment.
func PeriodReturn(inv *Investment) decimal.Decimal {
	if inv.DurationDays <= 0 {
		return decimal.Zero
	}
	return percentOf(inv.Amount, inv.ReturnsPercent).
		Div(decimal.NewFromInt(int64(inv.DurationDays))).
		Round(MoneyScale)
}

// Remainder is the plan profit not yet covered by `accrued`.
func Remainder(inv *Investment, accrued decimal.Decimal) decimal.Decimal {
	return percentOf(inv.Amount, inv.ReturnsPercent).Sub(accrued)
}

// NextAccrual returns the amount of the accrual following `posted` earlier
// ones that summed to `accrued`. The last period absorbs the rounding
// remainder so the lifetime total equals the plan profit. ok is false once
// every period has been accrued.
func NextAccrual(inv *Investment, posted int, accrued decimal.Decimal) (amount decimal.Decimal, ok bool) {
	if posted >= inv.DurationDays {
		return decimal.Zero, false
	}
	if posted == inv.DurationDays-1 {
		rest := Remainder(inv, accrued)
		if rest.IsNegative() {
			return decimal.Zero, true
		}
		return rest, true
	}
	return PeriodReturn(inv), true
}

// Commission is the referral reward for an investment amount.
func Commission(amount, percent decimal.Decimal) decimal.Decimal {
	return percentOf(amount, percent).Round(MoneyScale)
}
