// Package health scores overall financial condition on a 100-point scale
// across four categories: profitability (30), stability (30), growth (20)
// and valuation (20). Scoring is pure and total: every missing or invalid
// input degrades to the lowest tier for that sub-metric instead of aborting.
package health

import "fmt"

// Input bundles the pre-computed indicators the scorer consumes. Callers
// collapse undefined ratios/multiples to 0 here; that is scoring policy
// (the zero lands in the lowest tier), not error suppression.
type Input struct {
	ROE          float64 `json:"roe"`
	DebtRatio    float64 `json:"debt_ratio"`
	CurrentRatio float64 `json:"current_ratio"`
	PER          float64 `json:"per"`
	PBR          float64 `json:"pbr"`

	// OperatingMargin overrides the ROE-based estimate when non-zero.
	// A true 0% margin therefore routes through the estimate; acceptable
	// for a heuristic that only feeds a 15-point tier ladder.
	OperatingMargin float64 `json:"operating_margin,omitempty"`
	// AssetGrowth overrides the ROE-based growth estimate when non-zero.
	AssetGrowth float64 `json:"asset_growth,omitempty"`
}

// Detail records how a single sub-metric scored.
type Detail struct {
	Metric string  `json:"metric"`
	Value  float64 `json:"value"`
	Score  int     `json:"score"`
	Rating string  `json:"rating"`
}

// CategoryScore is one category's result. DataAvailable reports whether the
// category saw any usable input; only the valuation category can run dry
// (PER and PBR both non-positive), the others always score something.
type CategoryScore struct {
	Score         int      `json:"score"`
	MaxScore      int      `json:"max_score"`
	Percentage    int      `json:"percentage"`
	Details       []Detail `json:"details"`
	Summary       string   `json:"summary"`
	DataAvailable bool     `json:"data_available"`
}

// Categories groups the four category results.
type Categories struct {
	Profitability CategoryScore `json:"profitability"`
	Stability     CategoryScore `json:"stability"`
	Growth        CategoryScore `json:"growth"`
	Valuation     CategoryScore `json:"valuation"`
}

// Insight is one line of generated analysis.
type Insight struct {
	Type    string `json:"type"` // strength | weakness | overall
	Message string `json:"message"`
}

// Recommendation is the 5-way investment stance derived from the score.
type Recommendation struct {
	Rating string `json:"rating"` // strong buy | buy | hold | watch | sell
	Reason string `json:"reason"`
}

// Score is the composite result. TotalScore is always the exact sum of the
// four category scores.
type Score struct {
	TotalScore     int            `json:"total_score"`
	Grade          string         `json:"grade"`
	Category       Categories     `json:"category"`
	Analysis       []Insight      `json:"analysis"`
	Recommendation Recommendation `json:"recommendation"`
}

// Calculate produces the composite health score.
func Calculate(in Input) *Score {
	cats := Categories{
		Profitability: profitabilityScore(in),
		Stability:     stabilityScore(in),
		Growth:        growthScore(in),
		Valuation:     valuationScore(in),
	}

	total := cats.Profitability.Score + cats.Stability.Score + cats.Growth.Score + cats.Valuation.Score

	return &Score{
		TotalScore:     total,
		Grade:          Grade(total),
		Category:       cats,
		Analysis:       generateAnalysis(total, cats),
		Recommendation: recommend(total, cats),
	}
}

// Grade maps a total score to a letter grade.
func Grade(total int) string {
	switch {
	case total >= 90:
		return "S"
	case total >= 80:
		return "A+"
	case total >= 70:
		return "A"
	case total >= 60:
		return "B+"
	case total >= 50:
		return "B"
	case total >= 40:
		return "C+"
	case total >= 30:
		return "C"
	case total >= 20:
		return "D"
	default:
		return "F"
	}
}

// GradeColor returns the severity color for a grade.
func GradeColor(grade string) string {
	colors := map[string]string{
		"S":  "#06ffa5",
		"A+": "#28a745",
		"A":  "#5cb85c",
		"B+": "#5bc0de",
		"B":  "#4361ee",
		"C+": "#ffc107",
		"C":  "#ff9800",
		"D":  "#ff5722",
		"F":  "#dc3545",
	}
	if c, ok := colors[grade]; ok {
		return c
	}
	return "#6c757d"
}

func generateAnalysis(total int, cats Categories) []Insight {
	named := []struct {
		name string
		cat  CategoryScore
	}{
		{"profitability", cats.Profitability},
		{"stability", cats.Stability},
		{"growth", cats.Growth},
		{"valuation", cats.Valuation},
	}

	var analysis []Insight

	var strengths, weaknesses []string
	for _, n := range named {
		if n.cat.Percentage >= 70 {
			strengths = append(strengths, n.name)
		}
		if n.cat.Percentage < 50 {
			weaknesses = append(weaknesses, n.name)
		}
	}

	if len(strengths) > 0 {
		analysis = append(analysis, Insight{
			Type:    "strength",
			Message: fmt.Sprintf("strengths: strong results in %s", joinNames(strengths)),
		})
	}
	if len(weaknesses) > 0 {
		analysis = append(analysis, Insight{
			Type:    "weakness",
			Message: fmt.Sprintf("weaknesses: improvement needed in %s", joinNames(weaknesses)),
		})
	}

	var overall string
	switch {
	case total >= 80:
		overall = "Financially very sound. Suitable for long-term investment."
	case total >= 60:
		overall = "Financially sound. A stable investment candidate."
	case total >= 40:
		overall = "Average financial condition. Approach with care."
	default:
		overall = "Weak financial condition. Caution advised before investing."
	}
	analysis = append(analysis, Insight{Type: "overall", Message: overall})

	return analysis
}

// recommend picks the stance. Strong buy requires both a high total and a
// reasonable valuation percentage; otherwise it degrades to plain buy even
// at a high total.
func recommend(total int, cats Categories) Recommendation {
	switch {
	case total >= 80 && cats.Valuation.Percentage >= 60:
		return Recommendation{Rating: "strong buy", Reason: "excellent financial health at a reasonable valuation"}
	case total >= 70:
		return Recommendation{Rating: "buy", Reason: "good financial health"}
	case total >= 50:
		return Recommendation{Rating: "hold", Reason: "average financial condition"}
	case total >= 30:
		return Recommendation{Rating: "watch", Reason: "financial health needs improvement"}
	default:
		return Recommendation{Rating: "sell", Reason: "poor financial health"}
	}
}

func joinNames(names []string) string {
	out := ""
	for i, n := range names {
		if i > 0 {
			out += ", "
		}
		out += n
	}
	return out
}
