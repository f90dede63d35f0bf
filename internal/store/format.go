package store

import (
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// currencySymbols maps the lowercase ISO codes the backend uses to the symbol
// shown before the amount.
var currencySymbols = map[string]string{
	"usd": "$",
	"eur": "€",
	"gbp": "£",
	"aud": "A$",
	"cad": "CA$",
	"nzd": "NZ$",
	"sgd": "SGD",
	"hkd": "HK$",
	"jpy": "¥",
}

var pricePrinter = message.NewPrinter(language.AmericanEnglish)

// FormatPrice renders an amount given in minor currency units with the
// currency symbol and exactly two fractional digits, e.g.
// FormatPrice(1050, "usd") returns "$10.50". Codes without a known symbol
// fall back to "amount CODE".
func (s *Store) FormatPrice(amount int64, currency string) string {
	code := strings.ToLower(currency)
	value := float64(amount) / 100

	symbol, ok := currencySymbols[code]
	if !ok {
		return pricePrinter.Sprintf("%.2f %s", value, strings.ToUpper(code))
	}
	return pricePrinter.Sprintf("%s%.2f", symbol, value)
}
