package domain

// PaymentMethod is the static metadata the checkout needs to decide whether
// a method can be offered and how to label it.
type PaymentMethod struct {
	ID         string
	Name       string
	Flow       SourceFlow
	Countries  []string
	Currencies []string
}

// methods lists every payment method this checkout knows about, card first.
// Card has no country or currency restrictions and is always offered.
var methods = []PaymentMethod{
	{ID: "card", Name: "Card", Flow: FlowNone},
	{
		ID: "alipay", Name: "Alipay", Flow: FlowRedirect,
		Countries:  []string{"CN", "HK", "SG", "JP"},
		Currencies: []string{"aud", "cad", "eur", "gbp", "hkd", "jpy", "nzd", "sgd", "usd"},
	},
	{
		ID: "bancontact", Name: "Bancontact", Flow: FlowRedirect,
		Countries:  []string{"BE"},
		Currencies: []string{"eur"},
	},
	{
		ID: "eps", Name: "EPS", Flow: FlowRedirect,
		Countries:  []string{"AT"},
		Currencies: []string{"eur"},
	},
	{
		ID: "ideal", Name: "iDEAL", Flow: FlowRedirect,
		Countries:  []string{"NL"},
		Currencies: []string{"eur"},
	},
	{
		ID: "giropay", Name: "Giropay", Flow: FlowRedirect,
		Countries:  []string{"DE"},
		Currencies: []string{"eur"},
	},
	{
		ID: "multibanco", Name: "Multibanco", Flow: FlowReceiver,
		Countries:  []string{"PT"},
		Currencies: []string{"eur"},
	},
	{
		ID: "sepa_debit", Name: "SEPA Direct Debit", Flow: FlowNone,
		Countries:  []string{"AT", "BE", "DE", "ES", "FI", "FR", "IE", "IT", "LU", "NL", "PT"},
		Currencies: []string{"eur"},
	},
	{
		ID: "sofort", Name: "SOFORT", Flow: FlowRedirect,
		Countries:  []string{"AT", "DE"},
		Currencies: []string{"eur"},
	},
	{
		ID: "wechat", Name: "WeChat Pay", Flow: FlowNone,
		Countries:  []string{"CN"},
		Currencies: []string{"aud", "cad", "eur", "gbp", "hkd", "jpy", "sgd", "usd"},
	},
}

// Methods returns the known payment methods in display order.
func Methods() []PaymentMethod {
	return methods
}

// MethodByID looks up a payment method by its selector value.
func MethodByID(id string) (PaymentMethod, bool) {
	for _, m := range methods {
		if m.ID == id {
			return m, true
		}
	}
	return PaymentMethod{}, false
}
