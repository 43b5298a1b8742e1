package aging

import "strings"

// CurrencyRule maps a set of keywords to a normalized currency code.
// Rules are evaluated in order; the first family with a keyword hit wins,
// so adding a currency means appending a rule, not touching match logic.
type CurrencyRule struct {
	Code     string
	Keywords []string
}

// RuleSet is an ordered list of currency rules.
type RuleSet []CurrencyRule

// Match returns the code of the first rule with a keyword contained in
// text (case-insensitive), or "" when nothing matches.
func (rs RuleSet) Match(text string) string {
	if text == "" {
		return ""
	}
	t := strings.ToLower(strings.TrimSpace(text))
	for _, rule := range rs {
		for _, kw := range rule.Keywords {
			if strings.Contains(t, kw) {
				return rule.Code
			}
		}
	}
	return ""
}

var (
	// normalizeRules interprets short currency labels such as the invoice
	// currency or a bank account's currency field.
	normalizeRules = RuleSet{
		{Code: "CRC", Keywords: []string{"colon", "crc"}},
		{Code: "USD", Keywords: []string{"dolar", "dólar", "usd"}},
	}

	// detectRules scans free-text notes. USD keywords take priority over
	// CRC ones when a note mentions both.
	detectRules = RuleSet{
		{Code: "USD", Keywords: []string{"dolar", "dólar", "usd"}},
		{Code: "CRC", Keywords: []string{"colon", "crc"}},
	}
)

// NormalizeCurrency converts a currency label to USD/CRC, or "" when the
// label is unrecognized.
func NormalizeCurrency(label string) string {
	return normalizeRules.Match(label)
}

// DetectCurrencyInNotes looks for currency keywords inside an arbitrary
// notes string.
func DetectCurrencyInNotes(text string) string {
	return detectRules.Match(text)
}
