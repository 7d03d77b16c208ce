package calc

// =============================================================================
// STATEMENT RATIO ENGINE
// =============================================================================

// ComputeRatios derives the four statement ratios from normalized line items.
// Missing accounts default to 0 before the formulas apply; a non-positive
// denominator makes that ratio undefined without affecting the others.
func ComputeRatios(li LineItems) RatioSet {
	return RatioSet{
		DebtRatio:    DebtRatio(li.Get(KeyTotalLiabilities), li.Get(KeyTotalEquity)),
		EquityRatio:  EquityRatio(li.Get(KeyTotalEquity), li.Get(KeyTotalAssets)),
		CurrentRatio: CurrentRatio(li.Get(KeyCurrentAssets), li.Get(KeyCurrentLiabilities)),
		ROE:          ReturnOnEquity(li.Get(KeyNetIncome), li.Get(KeyTotalEquity)),
	}
}

// DebtRatio calculates leverage against owner capital.
//
// FORMULA: Total Liabilities / Total Equity x 100
func DebtRatio(totalLiabilities, totalEquity float64) Metric {
	return pctOf(totalLiabilities, totalEquity)
}

// EquityRatio calculates the owner-capital share of the balance sheet.
//
// FORMULA: Total Equity / Total Assets x 100
func EquityRatio(totalEquity, totalAssets float64) Metric {
	return pctOf(totalEquity, totalAssets)
}

// CurrentRatio calculates short-term coverage.
//
// FORMULA: Current Assets / Current Liabilities x 100
func CurrentRatio(currentAssets, currentLiabilities float64) Metric {
	return pctOf(currentAssets, currentLiabilities)
}

// ReturnOnEquity calculates profitability on owner capital. A loss-making
// company yields a defined negative ROE, not the undefined sentinel.
//
// FORMULA: Net Income / Total Equity x 100
func ReturnOnEquity(netIncome, totalEquity float64) Metric {
	return pctOf(netIncome, totalEquity)
}

// pctOf returns numerator/denominator as a percentage, undefined when the
// denominator is not strictly positive.
func pctOf(numerator, denominator float64) Metric {
	if denominator <= 0 {
		return Undefined()
	}
	return Defined(numerator / denominator * 100)
}
