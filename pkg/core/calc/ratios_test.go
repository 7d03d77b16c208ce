package calc

import (
	"math"
	"testing"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 0.005
}

func TestComputeRatios(t *testing.T) {
	// Assets 1000, Liabilities 400, Equity 600 => Debt 66.67%, Equity 60%
	// Current 500 / 250 => 200%. Net Income 90 / Equity 600 => ROE 15%.
	li := LineItems{
		KeyTotalAssets:        1000,
		KeyTotalLiabilities:   400,
		KeyTotalEquity:        600,
		KeyCurrentAssets:      500,
		KeyCurrentLiabilities: 250,
		KeyNetIncome:          90,
	}

	r := ComputeRatios(li)

	if !r.DebtRatio.Valid || !almostEqual(r.DebtRatio.Value, 66.67) {
		t.Errorf("Expected debt ratio 66.67, got %+v", r.DebtRatio)
	}
	if !r.EquityRatio.Valid || !almostEqual(r.EquityRatio.Value, 60.0) {
		t.Errorf("Expected equity ratio 60.0, got %+v", r.EquityRatio)
	}
	if !r.CurrentRatio.Valid || !almostEqual(r.CurrentRatio.Value, 200.0) {
		t.Errorf("Expected current ratio 200.0, got %+v", r.CurrentRatio)
	}
	if !r.ROE.Valid || !almostEqual(r.ROE.Value, 15.0) {
		t.Errorf("Expected ROE 15.0, got %+v", r.ROE)
	}
}

func TestComputeRatiosZeroEquity(t *testing.T) {
	// With no equity, debt ratio and ROE are undefined but the other two
	// ratios are computed independently.
	li := LineItems{
		KeyTotalAssets:        1000,
		KeyTotalLiabilities:   1000,
		KeyTotalEquity:        0,
		KeyCurrentAssets:      300,
		KeyCurrentLiabilities: 200,
		KeyNetIncome:          50,
	}

	r := ComputeRatios(li)

	if r.DebtRatio.Valid {
		t.Errorf("Expected undefined debt ratio, got %+v", r.DebtRatio)
	}
	if r.ROE.Valid {
		t.Errorf("Expected undefined ROE, got %+v", r.ROE)
	}
	if !r.EquityRatio.Valid || !almostEqual(r.EquityRatio.Value, 0) {
		t.Errorf("Expected equity ratio 0, got %+v", r.EquityRatio)
	}
	if !r.CurrentRatio.Valid || !almostEqual(r.CurrentRatio.Value, 150.0) {
		t.Errorf("Expected current ratio 150.0, got %+v", r.CurrentRatio)
	}
}

func TestNegativeROEPreserved(t *testing.T) {
	// A loss keeps ROE defined with its raw sign. Collapsing negative values
	// to "-" is a presentation concern, not a calculation one.
	roe := ReturnOnEquity(-60, 600)
	if !roe.Valid {
		t.Fatal("Expected defined ROE for loss-making company")
	}
	if !almostEqual(roe.Value, -10.0) {
		t.Errorf("Expected ROE -10.0, got %f", roe.Value)
	}
}

func TestComputeRatiosEmptyItems(t *testing.T) {
	// Every missing line item defaults to 0: all denominators are 0, so all
	// four ratios come back undefined, and nothing panics.
	r := ComputeRatios(LineItems{})
	if r.DebtRatio.Valid || r.EquityRatio.Valid || r.CurrentRatio.Valid || r.ROE.Valid {
		t.Errorf("Expected all ratios undefined for empty items, got %+v", r)
	}
}
