package checkout

import (
	"github.com/shopspring/decimal"
)

// Policy - параметры расчёта итогов заказа
type Policy struct {
	Shipping int64           // фиксированная доставка в минимальных единицах
	TaxRate  decimal.Decimal // доля, например 0.18
}

// DefaultPolicy: доставка ₹100 и GST 18%
var DefaultPolicy = Policy{
	Shipping: 10000,
	TaxRate:  decimal.RequireFromString("0.18"),
}

type Totals struct {
	Subtotal int64 `json:"subtotal"`
	Shipping int64 `json:"shipping"`
	Tax      int64 `json:"tax"`
	Total    int64 `json:"total"`
}

// ComputeTotals считает налог как round-half-up(subtotal * rate) в целых
// минимальных единицах. Умножение идёт в decimal, без ошибок float64
// на границе .5.
func ComputeTotals(subtotal int64, policy Policy) Totals {
	tax := decimal.NewFromInt(subtotal).Mul(policy.TaxRate).Round(0).IntPart()

	return Totals{
		Subtotal: subtotal,
		Shipping: policy.Shipping,
		Tax:      tax,
		Total:    subtotal + policy.Shipping + tax,
	}
}
