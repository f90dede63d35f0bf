package checkout

import (
	"fmt"
	"slices"
	"strings"

	"github.com/levankh14/stripe/internal/domain"
)

// VisibleMethods filters the method catalog down to what the selector should
// offer. Card is always visible; any other method must be enabled for the
// store and support both the configured country and currency.
func VisibleMethods(enabled []string, country, currency string) []string {
	currency = strings.ToLower(currency)

	var visible []string
	for _, m := range domain.Methods() {
		if m.ID == "card" ||
			(slices.Contains(enabled, m.ID) &&
				slices.Contains(m.Countries, country) &&
				slices.Contains(m.Currencies, currency)) {
			visible = append(visible, m.ID)
		}
	}
	return visible
}

// ShowTabs reports whether the method tabs should be rendered at all; with a
// single visible method they are hidden entirely.
func ShowTabs(visible []string) bool {
	return len(visible) > 1
}

// ButtonLabel builds the submit button text for the selected method.
func ButtonLabel(methodID, formattedAmount string) string {
	if methodID == "card" {
		return fmt.Sprintf("Pay %s", formattedAmount)
	}
	m, ok := domain.MethodByID(methodID)
	if !ok {
		return fmt.Sprintf("Pay %s", formattedAmount)
	}
	return fmt.Sprintf("Pay %s with %s", formattedAmount, m.Name)
}
