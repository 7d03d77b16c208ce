package analysis

import (
	"context"
	"fmt"
	"time"

	"findash/pkg/core/calc"
	"findash/pkg/core/health"
	"findash/pkg/core/rating"
	"findash/pkg/models"
)

// CorpDirectory resolves company names to directory entries.
type CorpDirectory interface {
	FindByName(ctx context.Context, name string) (*models.Company, error)
}

// FinancialDataProvider fetches normalized statement line items.
type FinancialDataProvider interface {
	Statements(ctx context.Context, corpCode string, year int) (calc.LineItems, error)
}

// MarketDataProvider fetches the current market snapshot.
type MarketDataProvider interface {
	Quote(ctx context.Context, stockName string) (*models.Quote, error)
}

// Engine wires the data providers to the calculation pipeline.
type Engine struct {
	Directory  CorpDirectory
	Financials FinancialDataProvider
	Market     MarketDataProvider
	Classifier *rating.Classifier
}

func NewEngine(dir CorpDirectory, fin FinancialDataProvider, mkt MarketDataProvider) *Engine {
	return &Engine{
		Directory:  dir,
		Financials: fin,
		Market:     mkt,
		Classifier: rating.Default(),
	}
}

// ratedMetrics maps rating table names to their source multiple.
func ratedMetrics(m calc.ValuationMetrics) map[string]calc.Metric {
	return map[string]calc.Metric{
		"per":            m.PER,
		"pbr":            m.PBR,
		"psr":            m.PSR,
		"ev_to_ebitda":   m.EVToEBITDA,
		"dividend_yield": m.DividendYield,
	}
}

// BuildReport runs the full derivation pipeline over already-fetched inputs.
// It is pure: no I/O, no clock reads besides the generation timestamp.
func BuildReport(company *models.Company, year int, items calc.LineItems, quote *models.Quote, classifier *rating.Classifier) *Report {
	market := calc.MarketData{
		StockPrice:       quote.StockPrice,
		TotalShares:      quote.TotalShares,
		DividendPerShare: quote.DividendPerShare,
		MarketCap:        quote.MarketCap,
	}

	ratios := calc.ComputeRatios(items)
	metrics := calc.ComputeAllMetrics(calc.FinancialsFromLineItems(items), market)

	ratings := make(map[string]rating.Bucket)
	for name, m := range ratedMetrics(metrics) {
		ratings[name] = classifier.Classify(name, m.Ptr())
	}

	// The health scorer is the one place undefined metrics collapse to zero:
	// its tier ladders treat non-positive inputs as "no data" and score them
	// at the floor.
	score := health.Calculate(health.Input{
		ROE:          ratios.ROE.Or(0),
		DebtRatio:    ratios.DebtRatio.Or(0),
		CurrentRatio: ratios.CurrentRatio.Or(0),
		PER:          metrics.PER.Or(0),
		PBR:          metrics.PBR.Or(0),
	})

	return &Report{
		CorpName:    company.CorpName,
		CorpCode:    company.CorpCode,
		StockCode:   company.StockCode,
		Year:        year,
		LineItems:   items,
		Market:      market,
		Ratios:      ratios,
		Metrics:     metrics,
		Ratings:     ratings,
		Health:      *score,
		GeneratedAt: time.Now(),
	}
}

// Analyze resolves a company by name, pulls statements and the market quote,
// and builds the report. Statement year defaults to the latest filed annual
// report (previous calendar year), falling back one more year when the filing
// season has not reached the company yet.
func (e *Engine) Analyze(ctx context.Context, corpName string) (*Report, error) {
	company, err := e.Directory.FindByName(ctx, corpName)
	if err != nil {
		return nil, fmt.Errorf("company lookup failed: %w", err)
	}
	fmt.Printf("[ANALYSIS] %s (%s / %s)\n", company.CorpName, company.CorpCode, company.StockCode)

	year := time.Now().Year() - 1
	items, err := e.Financials.Statements(ctx, company.CorpCode, year)
	if err != nil {
		fmt.Printf("[ANALYSIS] No %d statements for %s, trying %d: %v\n", year, company.CorpName, year-1, err)
		year--
		items, err = e.Financials.Statements(ctx, company.CorpCode, year)
		if err != nil {
			return nil, fmt.Errorf("statement fetch failed: %w", err)
		}
	}

	quote, err := e.Market.Quote(ctx, company.CorpName)
	if err != nil {
		return nil, fmt.Errorf("quote fetch failed: %w", err)
	}

	report := BuildReport(company, year, items, quote, e.Classifier)
	fmt.Printf("[ANALYSIS] %s: health %d (%s), %s\n",
		company.CorpName, report.Health.TotalScore, report.Health.Grade, report.Health.Recommendation.Rating)
	return report, nil
}
