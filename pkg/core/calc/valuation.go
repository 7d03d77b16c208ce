// This file implements the valuation multiple engine: per-share figures,
// price multiples, and the enterprise-value family.
package calc

// =============================================================================
// VALUATION MULTIPLE ENGINE
// =============================================================================

// ComputeAllMetrics derives every valuation multiple from statement and
// market inputs. Each metric is computed independently; division by a zero or
// non-positive denominator yields the undefined sentinel, never 0 or NaN.
// Calling twice with identical inputs yields identical output.
func ComputeAllMetrics(f Financials, m MarketData) ValuationMetrics {
	marketCap := MarketCap(m)

	eps := EPS(f.NetIncome, m.TotalShares)
	bps := BPS(f.Equity, m.TotalShares)

	ev := EnterpriseValue(marketCap.Value, f.Debt, f.Cash)
	ebitda := EBITDA(f.OperatingIncome, f.Depreciation)

	return ValuationMetrics{
		EPS:           eps,
		BPS:           bps,
		PER:           PER(m.StockPrice, eps, marketCap.Value, f.NetIncome),
		PBR:           PBR(m.StockPrice, bps, marketCap.Value, f.Equity),
		PSR:           PSR(marketCap.Value, f.Revenue),
		EV:            ev,
		EBITDA:        ebitda,
		EVToEBITDA:    EVToEBITDA(ev.Value, ebitda.Value),
		DividendYield: DividendYield(m.DividendPerShare, m.StockPrice),
		PayoutRatio:   PayoutRatio(m.DividendPerShare, eps),
		MarketCap:     marketCap,
	}
}

// MarketCap returns the supplied market capitalization, or price x shares
// when none was provided.
func MarketCap(m MarketData) Metric {
	if m.MarketCap > 0 {
		return Defined(m.MarketCap)
	}
	return Defined(m.StockPrice * m.TotalShares)
}

// EPS calculates earnings per share.
//
// FORMULA: Net Income / Shares Outstanding
func EPS(netIncome, shares float64) Metric {
	if shares <= 0 {
		return Undefined()
	}
	return Defined(netIncome / shares)
}

// BPS calculates book value per share.
//
// FORMULA: Total Equity / Shares Outstanding
func BPS(equity, shares float64) Metric {
	if shares <= 0 {
		return Undefined()
	}
	return Defined(equity / shares)
}

// PER calculates the price-to-earnings ratio. Two computation paths exist:
// the per-share path when EPS is defined and positive, and the aggregate
// path (market cap over net income) when it is not. EPS may be undefined
// while net income is still usable directly, so both paths are kept.
//
// FORMULA: Stock Price / EPS, or Market Cap / Net Income
func PER(stockPrice float64, eps Metric, marketCap, netIncome float64) Metric {
	if eps.Positive() {
		return Defined(stockPrice / eps.Value)
	}
	if netIncome > 0 {
		return Defined(marketCap / netIncome)
	}
	return Undefined()
}

// PBR calculates the price-to-book ratio, with the same two-path structure
// as PER.
//
// FORMULA: Stock Price / BPS, or Market Cap / Total Equity
func PBR(stockPrice float64, bps Metric, marketCap, equity float64) Metric {
	if bps.Positive() {
		return Defined(stockPrice / bps.Value)
	}
	if equity > 0 {
		return Defined(marketCap / equity)
	}
	return Undefined()
}

// PSR calculates the price-to-sales ratio.
//
// FORMULA: Market Cap / Revenue
func PSR(marketCap, revenue float64) Metric {
	if revenue <= 0 {
		return Undefined()
	}
	return Defined(marketCap / revenue)
}

// EnterpriseValue calculates EV from market cap and net debt. Net debt may be
// negative (a net cash position); it is not clamped to zero.
//
// FORMULA: Market Cap + (Total Debt - Cash)
func EnterpriseValue(marketCap, debt, cash float64) Metric {
	return Defined(marketCap + (debt - cash))
}

// EBITDA approximates earnings before interest, taxes, depreciation and
// amortization. Depreciation defaults to 0 when the source statements do not
// break it out, so the figure then degrades to plain operating income. That
// is a known approximation inherited from the data source, not a defect.
//
// FORMULA: Operating Income + Depreciation
func EBITDA(operatingIncome, depreciation float64) Metric {
	return Defined(operatingIncome + depreciation)
}

// EVToEBITDA calculates the enterprise multiple.
//
// FORMULA: EV / EBITDA
func EVToEBITDA(ev, ebitda float64) Metric {
	if ebitda <= 0 {
		return Undefined()
	}
	return Defined(ev / ebitda)
}

// DividendYield calculates the dividend return on the current price. A zero
// dividend produces a defined yield of 0, not the undefined sentinel.
//
// FORMULA: Dividend Per Share / Stock Price x 100
func DividendYield(dividendPerShare, stockPrice float64) Metric {
	if stockPrice <= 0 {
		return Undefined()
	}
	return Defined(dividendPerShare / stockPrice * 100)
}

// PayoutRatio calculates the share of earnings paid out as dividends.
//
// FORMULA: Dividend Per Share / EPS x 100
func PayoutRatio(dividendPerShare float64, eps Metric) Metric {
	if !eps.Positive() {
		return Undefined()
	}
	return Defined(dividendPerShare / eps.Value * 100)
}
