// Package analysis orchestrates one full company analysis: statements and
// quote in, ratios, multiples, ratings and health score out.
package analysis

import (
	"time"

	"findash/pkg/core/calc"
	"findash/pkg/core/health"
	"findash/pkg/core/rating"
)

// Report is the complete derived view for one company and fiscal year.
type Report struct {
	CorpName  string `json:"corp_name"`
	CorpCode  string `json:"corp_code"`
	StockCode string `json:"stock_code"`
	Year      int    `json:"year"`

	LineItems calc.LineItems        `json:"line_items"`
	Market    calc.MarketData       `json:"market"`
	Ratios    calc.RatioSet         `json:"ratios"`
	Metrics   calc.ValuationMetrics `json:"metrics"`

	// Ratings classifies each multiple onto its bucket, keyed by metric name
	// (per, pbr, psr, ev_to_ebitda, dividend_yield).
	Ratings map[string]rating.Bucket `json:"ratings"`

	Health health.Score `json:"health"`

	GeneratedAt time.Time `json:"generated_at"`
}
