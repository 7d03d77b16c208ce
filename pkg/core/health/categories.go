// This file implements the four category scorers. Each is a tier ladder:
// fixed breakpoints award fixed points, recorded per sub-metric in Details.
package health

import "math"

// =============================================================================
// PROFITABILITY (max 30): ROE + operating margin
// =============================================================================

func profitabilityScore(in Input) CategoryScore {
	var score int
	var details []Detail

	// ROE ladder (15 points)
	roe := in.ROE
	switch {
	case roe >= 20:
		score += 15
		details = append(details, Detail{Metric: "ROE", Value: roe, Score: 15, Rating: "very good"})
	case roe >= 15:
		score += 12
		details = append(details, Detail{Metric: "ROE", Value: roe, Score: 12, Rating: "good"})
	case roe >= 10:
		score += 9
		details = append(details, Detail{Metric: "ROE", Value: roe, Score: 9, Rating: "fair"})
	case roe >= 5:
		score += 5
		details = append(details, Detail{Metric: "ROE", Value: roe, Score: 5, Rating: "average"})
	default:
		score += 2
		details = append(details, Detail{Metric: "ROE", Value: roe, Score: 2, Rating: "poor"})
	}

	// Operating margin ladder (15 points)
	margin := operatingMargin(in)
	switch {
	case margin >= 15:
		score += 15
		details = append(details, Detail{Metric: "operating margin", Value: margin, Score: 15, Rating: "very good"})
	case margin >= 10:
		score += 12
		details = append(details, Detail{Metric: "operating margin", Value: margin, Score: 12, Rating: "good"})
	case margin >= 5:
		score += 9
		details = append(details, Detail{Metric: "operating margin", Value: margin, Score: 9, Rating: "fair"})
	case margin >= 0:
		score += 5
		details = append(details, Detail{Metric: "operating margin", Value: margin, Score: 5, Rating: "average"})
	default:
		details = append(details, Detail{Metric: "operating margin", Value: margin, Score: 0, Rating: "deficit"})
	}

	return CategoryScore{
		Score:         score,
		MaxScore:      30,
		Percentage:    pct(score, 30),
		Details:       details,
		Summary:       profitabilitySummary(score),
		DataAvailable: true,
	}
}

// operatingMargin returns the supplied margin, or an estimate of ROE x 0.8.
// The estimate is an acknowledged proxy for missing income-statement detail;
// a caller with the real margin passes it through Input and the heuristic
// steps aside.
func operatingMargin(in Input) float64 {
	if in.OperatingMargin != 0 {
		return in.OperatingMargin
	}
	if in.ROE > 0 {
		return in.ROE * 0.8
	}
	return 0
}

func profitabilitySummary(score int) string {
	switch {
	case score >= 25:
		return "excellent profitability"
	case score >= 20:
		return "good profitability"
	case score >= 15:
		return "average profitability"
	case score >= 10:
		return "profitability needs improvement"
	default:
		return "low profitability"
	}
}

// =============================================================================
// STABILITY (max 30): debt ratio (inverse ladder) + current ratio
// =============================================================================

func stabilityScore(in Input) CategoryScore {
	var score int
	var details []Detail

	// Debt ratio ladder (15 points), lower is better
	debt := in.DebtRatio
	switch {
	case debt < 50:
		score += 15
		details = append(details, Detail{Metric: "debt ratio", Value: debt, Score: 15, Rating: "very stable"})
	case debt < 100:
		score += 12
		details = append(details, Detail{Metric: "debt ratio", Value: debt, Score: 12, Rating: "stable"})
	case debt < 150:
		score += 9
		details = append(details, Detail{Metric: "debt ratio", Value: debt, Score: 9, Rating: "fair"})
	case debt < 200:
		score += 5
		details = append(details, Detail{Metric: "debt ratio", Value: debt, Score: 5, Rating: "caution"})
	default:
		score += 2
		details = append(details, Detail{Metric: "debt ratio", Value: debt, Score: 2, Rating: "at risk"})
	}

	// Current ratio ladder (15 points), higher is better
	cur := in.CurrentRatio
	switch {
	case cur >= 200:
		score += 15
		details = append(details, Detail{Metric: "current ratio", Value: cur, Score: 15, Rating: "very stable"})
	case cur >= 150:
		score += 12
		details = append(details, Detail{Metric: "current ratio", Value: cur, Score: 12, Rating: "stable"})
	case cur >= 100:
		score += 9
		details = append(details, Detail{Metric: "current ratio", Value: cur, Score: 9, Rating: "fair"})
	case cur >= 80:
		score += 5
		details = append(details, Detail{Metric: "current ratio", Value: cur, Score: 5, Rating: "caution"})
	default:
		score += 2
		details = append(details, Detail{Metric: "current ratio", Value: cur, Score: 2, Rating: "at risk"})
	}

	return CategoryScore{
		Score:         score,
		MaxScore:      30,
		Percentage:    pct(score, 30),
		Details:       details,
		Summary:       stabilitySummary(score),
		DataAvailable: true,
	}
}

func stabilitySummary(score int) string {
	switch {
	case score >= 25:
		return "excellent financial stability"
	case score >= 20:
		return "good financial stability"
	case score >= 15:
		return "average financial stability"
	case score >= 10:
		return "financial stability needs improvement"
	default:
		return "low financial stability"
	}
}

// =============================================================================
// GROWTH (max 20): estimated asset growth + ROE-based growth
// =============================================================================

func growthScore(in Input) CategoryScore {
	var score int
	var details []Detail

	// Asset growth ladder (10 points)
	growth := assetGrowth(in)
	switch {
	case growth >= 15:
		score += 10
		details = append(details, Detail{Metric: "asset growth (est.)", Value: growth, Score: 10, Rating: "high growth"})
	case growth >= 10:
		score += 8
		details = append(details, Detail{Metric: "asset growth (est.)", Value: growth, Score: 8, Rating: "growing"})
	case growth >= 5:
		score += 6
		details = append(details, Detail{Metric: "asset growth (est.)", Value: growth, Score: 6, Rating: "steady growth"})
	case growth >= 0:
		score += 3
		details = append(details, Detail{Metric: "asset growth (est.)", Value: growth, Score: 3, Rating: "low growth"})
	default:
		details = append(details, Detail{Metric: "asset growth (est.)", Value: growth, Score: 0, Rating: "contraction"})
	}

	// ROE-based growth ladder (10 points)
	roe := in.ROE
	switch {
	case roe >= 15:
		score += 10
		details = append(details, Detail{Metric: "ROE growth", Value: roe, Score: 10, Rating: "good"})
	case roe >= 10:
		score += 7
		details = append(details, Detail{Metric: "ROE growth", Value: roe, Score: 7, Rating: "fair"})
	case roe >= 5:
		score += 4
		details = append(details, Detail{Metric: "ROE growth", Value: roe, Score: 4, Rating: "average"})
	default:
		score += 1
		details = append(details, Detail{Metric: "ROE growth", Value: roe, Score: 1, Rating: "poor"})
	}

	return CategoryScore{
		Score:         score,
		MaxScore:      20,
		Percentage:    pct(score, 20),
		Details:       details,
		Summary:       growthSummary(score),
		DataAvailable: true,
	}
}

// assetGrowth returns the supplied growth rate, or an estimate of ROE x 0.6
// when ROE exceeds 5. A proxy for missing multi-year data: the pipeline is
// single-period, so real historical growth is a drop-in replacement behind
// this function once a time-series source exists.
func assetGrowth(in Input) float64 {
	if in.AssetGrowth != 0 {
		return in.AssetGrowth
	}
	if in.ROE > 5 {
		return in.ROE * 0.6
	}
	return 0
}

func growthSummary(score int) string {
	switch {
	case score >= 17:
		return "excellent growth"
	case score >= 13:
		return "good growth"
	case score >= 10:
		return "average growth"
	case score >= 7:
		return "growth needs improvement"
	default:
		return "low growth"
	}
}

// =============================================================================
// VALUATION (max 20): PER + PBR
// =============================================================================

func valuationScore(in Input) CategoryScore {
	var score int
	var details []Detail

	// PER ladder (10 points), lower is cheaper. Zero or negative PER scores
	// 0: loss-making and not-yet-computed collapse into the same tier here,
	// while DataAvailable below tracks availability separately. The
	// asymmetry is deliberate and must stay.
	per := in.PER
	if per > 0 {
		switch {
		case per < 10:
			score += 10
			details = append(details, Detail{Metric: "PER", Value: per, Score: 10, Rating: "deeply undervalued"})
		case per < 15:
			score += 8
			details = append(details, Detail{Metric: "PER", Value: per, Score: 8, Rating: "undervalued"})
		case per < 20:
			score += 6
			details = append(details, Detail{Metric: "PER", Value: per, Score: 6, Rating: "fair"})
		case per < 30:
			score += 3
			details = append(details, Detail{Metric: "PER", Value: per, Score: 3, Rating: "overvalued"})
		default:
			score += 1
			details = append(details, Detail{Metric: "PER", Value: per, Score: 1, Rating: "deeply overvalued"})
		}
	} else {
		details = append(details, Detail{Metric: "PER", Value: per, Score: 0, Rating: "deficit/unavailable"})
	}

	// PBR ladder (10 points)
	pbr := in.PBR
	if pbr > 0 {
		switch {
		case pbr < 0.8:
			score += 10
			details = append(details, Detail{Metric: "PBR", Value: pbr, Score: 10, Rating: "deeply undervalued"})
		case pbr < 1.0:
			score += 8
			details = append(details, Detail{Metric: "PBR", Value: pbr, Score: 8, Rating: "undervalued"})
		case pbr < 1.5:
			score += 6
			details = append(details, Detail{Metric: "PBR", Value: pbr, Score: 6, Rating: "fair"})
		case pbr < 2.0:
			score += 3
			details = append(details, Detail{Metric: "PBR", Value: pbr, Score: 3, Rating: "overvalued"})
		default:
			score += 1
			details = append(details, Detail{Metric: "PBR", Value: pbr, Score: 1, Rating: "deeply overvalued"})
		}
	} else {
		details = append(details, Detail{Metric: "PBR", Value: pbr, Score: 0, Rating: "impaired/unavailable"})
	}

	available := per > 0 || pbr > 0

	summary := valuationSummary(score)
	if !available {
		// Without any usable multiple, the banded summary would read as
		// "deeply overvalued"; force an explicit no-data string instead.
		summary = "no data"
	}

	return CategoryScore{
		Score:         score,
		MaxScore:      20,
		Percentage:    pct(score, 20),
		Details:       details,
		Summary:       summary,
		DataAvailable: available,
	}
}

func valuationSummary(score int) string {
	switch {
	case score >= 17:
		return "deeply undervalued"
	case score >= 13:
		return "undervalued"
	case score >= 10:
		return "fairly priced"
	case score >= 7:
		return "overvalued"
	default:
		return "deeply overvalued"
	}
}

func pct(score, max int) int {
	return int(math.Round(float64(score) / float64(max) * 100))
}
