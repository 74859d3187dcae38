package domain

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Canonical withdrawal method classes.
const (
	MethodCrypto       = "crypto"
	MethodBank         = "bank"
	MethodMobileWallet = "mobile_wallet"
	MethodPayPal       = "paypal"
	MethodDefault      = "default"
)

var methodAliases = map[string]string{
	"usdt":         MethodCrypto,
	"crypto":       MethodCrypto,
	"bitcoin":      MethodCrypto,
	"ethereum":     MethodCrypto,
	"litecoin":     MethodCrypto,
	"banktransfer": MethodBank,
	"bank":         MethodBank,
	"jazzcash":     MethodMobileWallet,
	"easypaisa":    MethodMobileWallet,
	"mobilewallet": MethodMobileWallet,
	"paypal":       MethodPayPal,
}

// NormalizeMethod maps a user supplied method name to its class. Unknown
// names fall into MethodDefault.
func NormalizeMethod(method string) string {
	key := strings.ToLower(strings.NewReplacer(" ", "", "_", "", "-", "").Replace(method))
	if m, ok := methodAliases[key]; ok {
		return m
	}
	return MethodDefault
}

// Minimums is the withdrawal floor per method class.
type Minimums map[string]decimal.Decimal

func DefaultMinimums() Minimums {
	return Minimums{
		MethodCrypto:       decimal.NewFromInt(20),
		MethodBank:         decimal.NewFromInt(50),
		MethodMobileWallet: decimal.NewFromInt(10),
		MethodPayPal:       decimal.NewFromInt(15),
		MethodDefault:      decimal.NewFromInt(10),
	}
}

func (m Minimums) For(method string) decimal.Decimal {
	if v, ok := m[NormalizeMethod(method)]; ok {
		return v
	}
	if v, ok := m[MethodDefault]; ok {
		return v
	}
	return decimal.Zero
}

// Deposit payment methods.
var PaymentMethods = []string{"Bitcoin", "Ethereum", "Litecoin", "USDT", "Easypaisa", "JazzCash"}

func IsPaymentMethod(method string) bool {
	for _, m := range PaymentMethods {
		if strings.EqualFold(m, method) {
			return true
		}
	}
	return false
}
