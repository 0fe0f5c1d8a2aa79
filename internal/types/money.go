// README: Common money value object used across modules.
package types

import "strconv"

type Money struct {
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
}

var currencySymbols = map[string]string{
	"INR": "₹",
}

// String renders whole-unit amounts, e.g. "₹40" or "40 USD" for currencies
// without a known symbol.
func (m Money) String() string {
	if sym, ok := currencySymbols[m.Currency]; ok {
		return sym + strconv.FormatInt(m.Amount, 10)
	}
	if m.Currency == "" {
		return strconv.FormatInt(m.Amount, 10)
	}
	return strconv.FormatInt(m.Amount, 10) + " " + m.Currency
}
