// This file normalizes DART-reported account names onto the canonical
// LineItems keys the calculation engines consume.
package ingest

import (
	"strconv"
	"strings"

	"findash/pkg/core/calc"
)

// accountAliases maps DART account_nm strings (Korean statement labels) to
// canonical keys. Labels not listed here are ignored: the engines treat
// missing accounts as zero, so an unrecognized line item is harmless.
var accountAliases = map[string]string{
	"자산총계":      calc.KeyTotalAssets,
	"유동자산":      calc.KeyCurrentAssets,
	"비유동자산":     calc.KeyNonCurrentAssets,
	"부채총계":      calc.KeyTotalLiabilities,
	"유동부채":      calc.KeyCurrentLiabilities,
	"비유동부채":     calc.KeyNonCurrentLiabilities,
	"자본총계":      calc.KeyTotalEquity,
	"매출액":       calc.KeyRevenue,
	"수익(매출액)":   calc.KeyRevenue,
	"영업이익":      calc.KeyOperatingIncome,
	"영업이익(손실)":  calc.KeyOperatingIncome,
	"당기순이익":     calc.KeyNetIncome,
	"당기순이익(손실)": calc.KeyNetIncome,
	"단기차입금":     calc.KeyShortTermDebt,
	"장기차입금":     calc.KeyLongTermDebt,
	"사채":        calc.KeyBonds,
	"현금및현금성자산":  calc.KeyCashAndEquivalents,
	"감가상각비":     calc.KeyDepreciation,
}

// CanonicalKey resolves a reported account name to its canonical key.
func CanonicalKey(accountName string) (string, bool) {
	key, ok := accountAliases[strings.TrimSpace(accountName)]
	return key, ok
}

// ParseAmount converts a DART amount string ("1,234,567" or "-1234") to a
// number. Unparseable or empty amounts become 0, mirroring the missing-key
// convention of LineItems.
func ParseAmount(s string) float64 {
	s = strings.TrimSpace(strings.ReplaceAll(s, ",", ""))
	if s == "" || s == "-" {
		return 0
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}

// LineItemsFromAccounts builds the canonical statement map from raw DART
// accounts. Later duplicates win, matching the consolidated-first ordering
// of the fnlttSinglAcntAll response.
func LineItemsFromAccounts(accounts []StatementAccount) calc.LineItems {
	items := make(calc.LineItems, len(accountAliases))
	for _, acc := range accounts {
		key, ok := CanonicalKey(acc.AccountName)
		if !ok {
			continue
		}
		items[key] = ParseAmount(acc.Amount)
	}
	return items
}
