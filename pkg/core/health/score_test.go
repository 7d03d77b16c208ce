package health

import "testing"

func TestCalculateKnownScenario(t *testing.T) {
	// ROE 18: >=15 tier => 12. Operating margin est. 18*0.8=14.4: >=10 => 12.
	// Profitability = 24.
	// Debt 40: <50 => 15. Current 180: >=150 => 12. Stability = 27.
	// Asset growth est. 18*0.6=10.8: >=10 => 8. ROE growth 18: >=15 => 10.
	// Growth = 18.
	// PER 12: <15 => 8. PBR 0.9: <1.0 => 8. Valuation = 16.
	// Total = 24+27+18+16 = 85 => A+.
	in := Input{ROE: 18, DebtRatio: 40, CurrentRatio: 180, PER: 12, PBR: 0.9}

	s := Calculate(in)

	if s.Category.Profitability.Score != 24 {
		t.Errorf("Expected profitability 24, got %d", s.Category.Profitability.Score)
	}
	if s.Category.Stability.Score != 27 {
		t.Errorf("Expected stability 27, got %d", s.Category.Stability.Score)
	}
	if s.Category.Growth.Score != 18 {
		t.Errorf("Expected growth 18, got %d", s.Category.Growth.Score)
	}
	if s.Category.Valuation.Score != 16 {
		t.Errorf("Expected valuation 16, got %d", s.Category.Valuation.Score)
	}
	if s.TotalScore != 85 {
		t.Errorf("Expected total 85, got %d", s.TotalScore)
	}
	if s.Grade != "A+" {
		t.Errorf("Expected grade A+, got %s", s.Grade)
	}
	// 85 with valuation at 80% clears the strong-buy gate.
	if s.Recommendation.Rating != "strong buy" {
		t.Errorf("Expected strong buy, got %s", s.Recommendation.Rating)
	}
}

func TestTotalIsSumOfCategories(t *testing.T) {
	inputs := []Input{
		{},
		{ROE: -20, DebtRatio: 500, CurrentRatio: 10, PER: -3, PBR: -1},
		{ROE: 25, DebtRatio: 10, CurrentRatio: 400, PER: 5, PBR: 0.5},
		{ROE: 7.3, DebtRatio: 120, CurrentRatio: 95, PER: 22, PBR: 1.7},
		{ROE: 12, DebtRatio: 80, CurrentRatio: 140, PER: 0, PBR: 0},
	}
	for _, in := range inputs {
		s := Calculate(in)
		sum := s.Category.Profitability.Score + s.Category.Stability.Score +
			s.Category.Growth.Score + s.Category.Valuation.Score
		if s.TotalScore != sum {
			t.Errorf("Input %+v: total %d != category sum %d", in, s.TotalScore, sum)
		}
	}
}

func TestCategoryScoresStayInBounds(t *testing.T) {
	for _, in := range []Input{{}, {ROE: 1000, DebtRatio: -50, CurrentRatio: 1e9, PER: 1e6, PBR: 1e6}} {
		s := Calculate(in)
		for name, c := range map[string]CategoryScore{
			"profitability": s.Category.Profitability,
			"stability":     s.Category.Stability,
			"growth":        s.Category.Growth,
			"valuation":     s.Category.Valuation,
		} {
			if c.Score < 0 || c.Score > c.MaxScore {
				t.Errorf("%s score %d outside [0,%d]", name, c.Score, c.MaxScore)
			}
		}
	}
}

func TestGradeMonotonicity(t *testing.T) {
	rank := map[string]int{"F": 0, "D": 1, "C": 2, "C+": 3, "B": 4, "B+": 5, "A": 6, "A+": 7, "S": 8}
	prev := rank[Grade(0)]
	for score := 1; score <= 100; score++ {
		cur := rank[Grade(score)]
		if cur < prev {
			t.Fatalf("Grade rank dropped from %d to %d at score %d", prev, cur, score)
		}
		prev = cur
	}
}

func TestGradeBoundaries(t *testing.T) {
	cases := map[int]string{100: "S", 90: "S", 89: "A+", 80: "A+", 70: "A", 60: "B+", 50: "B", 40: "C+", 30: "C", 20: "D", 19: "F", 0: "F"}
	for score, want := range cases {
		if got := Grade(score); got != want {
			t.Errorf("Grade(%d) = %s, want %s", score, got, want)
		}
	}
}

func TestValuationNoDataSummary(t *testing.T) {
	// Both multiples non-positive: category scores 0 and the summary must say
	// so explicitly instead of reading as "deeply overvalued".
	s := Calculate(Input{ROE: 12, DebtRatio: 80, CurrentRatio: 140, PER: 0, PBR: -2})
	v := s.Category.Valuation
	if v.DataAvailable {
		t.Error("Expected DataAvailable=false with no positive multiple")
	}
	if v.Score != 0 {
		t.Errorf("Expected valuation score 0, got %d", v.Score)
	}
	if v.Summary != "no data" {
		t.Errorf("Expected no-data summary, got %q", v.Summary)
	}
	// A single positive multiple flips the flag even if the other is junk.
	s2 := Calculate(Input{PER: 8, PBR: -2})
	if !s2.Category.Valuation.DataAvailable {
		t.Error("Expected DataAvailable=true with one positive multiple")
	}
}

func TestStrongBuyRequiresValuation(t *testing.T) {
	// High total but expensive valuation: PER 40 and PBR 3 score 1+1 = 10%,
	// which fails the >=60% gate, degrading strong buy to buy.
	in := Input{ROE: 25, DebtRatio: 20, CurrentRatio: 300, PER: 40, PBR: 3}
	s := Calculate(in)
	if s.TotalScore < 80 {
		t.Fatalf("Scenario should reach 80+, got %d", s.TotalScore)
	}
	if s.Recommendation.Rating != "buy" {
		t.Errorf("Expected buy (gate failed), got %s", s.Recommendation.Rating)
	}
}

func TestSuppliedMarginOverridesEstimate(t *testing.T) {
	// ROE 18 alone estimates margin 14.4 (12 pts); a real margin of 20
	// reaches the top tier (15 pts).
	base := Calculate(Input{ROE: 18})
	withMargin := Calculate(Input{ROE: 18, OperatingMargin: 20})
	if withMargin.Category.Profitability.Score != base.Category.Profitability.Score+3 {
		t.Errorf("Expected supplied margin to add 3 points: base %d, got %d",
			base.Category.Profitability.Score, withMargin.Category.Profitability.Score)
	}
}

func TestAnalysisStrengthsAndWeaknesses(t *testing.T) {
	// All categories strong: one strength insight, no weakness, one overall.
	s := Calculate(Input{ROE: 25, DebtRatio: 20, CurrentRatio: 300, PER: 5, PBR: 0.5})
	var strengths, weaknesses int
	for _, a := range s.Analysis {
		switch a.Type {
		case "strength":
			strengths++
		case "weakness":
			weaknesses++
		}
	}
	if strengths != 1 || weaknesses != 0 {
		t.Errorf("Expected 1 strength / 0 weakness insights, got %d/%d", strengths, weaknesses)
	}
	if s.Analysis[len(s.Analysis)-1].Type != "overall" {
		t.Error("Expected trailing overall insight")
	}
}
