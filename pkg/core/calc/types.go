// Package calc provides deterministic financial calculations over
// single-period statement data: balance-sheet ratios and valuation multiples.
// This file defines core data types shared by both engines.
package calc

import (
	"bytes"
	"encoding/json"
)

// =============================================================================
// OPTIONAL METRIC VALUE
// =============================================================================

// Metric is a computed indicator that may be undefined. A metric is undefined
// when its denominator is zero or non-positive; this is distinct from a
// computed value of zero and must not be collapsed to 0 before the display
// boundary. Marshals to a JSON number, or null when undefined.
type Metric struct {
	Value float64
	Valid bool
}

// Defined returns a metric carrying v.
func Defined(v float64) Metric {
	return Metric{Value: v, Valid: true}
}

// Undefined returns the undefined sentinel.
func Undefined() Metric {
	return Metric{}
}

// Positive reports whether the metric is defined and strictly positive.
func (m Metric) Positive() bool {
	return m.Valid && m.Value > 0
}

// Or returns the metric's value, or def when the metric is undefined.
func (m Metric) Or(def float64) float64 {
	if !m.Valid {
		return def
	}
	return m.Value
}

// Ptr returns the value as a pointer, or nil when undefined.
func (m Metric) Ptr() *float64 {
	if !m.Valid {
		return nil
	}
	v := m.Value
	return &v
}

func (m Metric) MarshalJSON() ([]byte, error) {
	if !m.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(m.Value)
}

func (m *Metric) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*m = Metric{}
		return nil
	}
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*m = Defined(v)
	return nil
}

// =============================================================================
// STATEMENT LINE ITEMS
// =============================================================================

// Canonical account keys for LineItems. The ingest layer normalizes reported
// account names (DART account_nm strings) onto these.
const (
	KeyTotalAssets           = "total_assets"
	KeyCurrentAssets         = "current_assets"
	KeyNonCurrentAssets      = "non_current_assets"
	KeyTotalLiabilities      = "total_liabilities"
	KeyCurrentLiabilities    = "current_liabilities"
	KeyNonCurrentLiabilities = "non_current_liabilities"
	KeyTotalEquity           = "total_equity"
	KeyRevenue               = "revenue"
	KeyOperatingIncome       = "operating_income"
	KeyNetIncome             = "net_income"
	KeyShortTermDebt         = "short_term_debt"
	KeyLongTermDebt          = "long_term_debt"
	KeyBonds                 = "bonds"
	KeyCashAndEquivalents    = "cash_and_equivalents"
	KeyDepreciation          = "depreciation"
)

// LineItems maps canonical account keys to reported amounts (KRW).
// Missing keys mean "zero or unknown", never an error. A LineItems map is
// built once per query and read-only afterward.
type LineItems map[string]float64

// Get returns the amount for key, defaulting to 0 when absent.
func (li LineItems) Get(key string) float64 {
	return li[key]
}

// =============================================================================
// ENGINE INPUTS & OUTPUTS
// =============================================================================

// Financials bundles the statement fields the valuation engine consumes.
type Financials struct {
	NetIncome       float64 `json:"net_income"`
	Equity          float64 `json:"equity"`
	Revenue         float64 `json:"revenue"`
	OperatingIncome float64 `json:"operating_income"`
	Debt            float64 `json:"debt"` // total borrowings: short + long term + bonds
	Cash            float64 `json:"cash"`
	Depreciation    float64 `json:"depreciation"` // 0 when unknown; EBITDA then approximates to operating income
}

// FinancialsFromLineItems projects a statement map onto the valuation inputs.
func FinancialsFromLineItems(li LineItems) Financials {
	return Financials{
		NetIncome:       li.Get(KeyNetIncome),
		Equity:          li.Get(KeyTotalEquity),
		Revenue:         li.Get(KeyRevenue),
		OperatingIncome: li.Get(KeyOperatingIncome),
		Debt:            li.Get(KeyShortTermDebt) + li.Get(KeyLongTermDebt) + li.Get(KeyBonds),
		Cash:            li.Get(KeyCashAndEquivalents),
		Depreciation:    li.Get(KeyDepreciation),
	}
}

// MarketData bundles caller-supplied market inputs. DividendPerShare of 0 is
// a valid input (no dividend), not missing data.
type MarketData struct {
	StockPrice       float64 `json:"stock_price"`
	TotalShares      float64 `json:"total_shares"`
	DividendPerShare float64 `json:"dividend_per_share"`
	MarketCap        float64 `json:"market_cap"` // optional; computed from price x shares when 0
}

// RatioSet holds the four statement ratios, each a percentage or undefined.
// Each ratio is computed independently; one failing denominator never blocks
// the others. Negative defined values are preserved (the health scorer needs
// the raw sign); only presentation collapses them to "-".
type RatioSet struct {
	DebtRatio    Metric `json:"debt_ratio"`
	EquityRatio  Metric `json:"equity_ratio"`
	CurrentRatio Metric `json:"current_ratio"`
	ROE          Metric `json:"roe"`
}

// ValuationMetrics holds the per-share and enterprise multiples. Every field
// is individually nullable and computed from its own inputs: an undefined EPS
// does not poison PBR, PSR or the EV family.
type ValuationMetrics struct {
	EPS           Metric `json:"eps"`
	BPS           Metric `json:"bps"`
	PER           Metric `json:"per"`
	PBR           Metric `json:"pbr"`
	PSR           Metric `json:"psr"`
	EV            Metric `json:"ev"`
	EBITDA        Metric `json:"ebitda"`
	EVToEBITDA    Metric `json:"ev_to_ebitda"`
	DividendYield Metric `json:"dividend_yield"`
	PayoutRatio   Metric `json:"payout_ratio"`
	MarketCap     Metric `json:"market_cap"`
}
