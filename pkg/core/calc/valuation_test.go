package calc

import (
	"testing"
)

func TestComputeAllMetricsBasic(t *testing.T) {
	// price 100, shares 10 => market cap 1000
	// net income 50 / 10 shares => EPS 5; equity 200 / 10 => BPS 20
	// PER = 100/5 = 20; PBR = 100/20 = 5; yield = 5/100*100 = 5%
	f := Financials{NetIncome: 50, Equity: 200}
	m := MarketData{StockPrice: 100, TotalShares: 10, DividendPerShare: 5}

	v := ComputeAllMetrics(f, m)

	if !v.EPS.Valid || !almostEqual(v.EPS.Value, 5.0) {
		t.Errorf("Expected EPS 5.0, got %+v", v.EPS)
	}
	if !v.BPS.Valid || !almostEqual(v.BPS.Value, 20.0) {
		t.Errorf("Expected BPS 20.0, got %+v", v.BPS)
	}
	if !v.PER.Valid || !almostEqual(v.PER.Value, 20.0) {
		t.Errorf("Expected PER 20.0, got %+v", v.PER)
	}
	if !v.PBR.Valid || !almostEqual(v.PBR.Value, 5.0) {
		t.Errorf("Expected PBR 5.0, got %+v", v.PBR)
	}
	if !v.DividendYield.Valid || !almostEqual(v.DividendYield.Value, 5.0) {
		t.Errorf("Expected dividend yield 5.0, got %+v", v.DividendYield)
	}
	if !v.MarketCap.Valid || !almostEqual(v.MarketCap.Value, 1000) {
		t.Errorf("Expected market cap 1000, got %+v", v.MarketCap)
	}
	// payout = 5 / 5 * 100 = 100%
	if !v.PayoutRatio.Valid || !almostEqual(v.PayoutRatio.Value, 100.0) {
		t.Errorf("Expected payout ratio 100, got %+v", v.PayoutRatio)
	}
}

func TestComputeAllMetricsNoShares(t *testing.T) {
	// With zero shares the per-share figures are undefined, but metrics with
	// their own inputs still compute: PSR, EV, EV/EBITDA, and PER/PBR via
	// the aggregate fallback path.
	f := Financials{
		NetIncome:       50,
		Equity:          200,
		Revenue:         500,
		OperatingIncome: 80,
		Debt:            100,
		Cash:            40,
	}
	m := MarketData{StockPrice: 100, TotalShares: 0, MarketCap: 1000}

	v := ComputeAllMetrics(f, m)

	if v.EPS.Valid {
		t.Errorf("Expected undefined EPS, got %+v", v.EPS)
	}
	if v.BPS.Valid {
		t.Errorf("Expected undefined BPS, got %+v", v.BPS)
	}
	// Fallback: PER = 1000/50 = 20, PBR = 1000/200 = 5
	if !v.PER.Valid || !almostEqual(v.PER.Value, 20.0) {
		t.Errorf("Expected fallback PER 20.0, got %+v", v.PER)
	}
	if !v.PBR.Valid || !almostEqual(v.PBR.Value, 5.0) {
		t.Errorf("Expected fallback PBR 5.0, got %+v", v.PBR)
	}
	if !v.PSR.Valid || !almostEqual(v.PSR.Value, 2.0) {
		t.Errorf("Expected PSR 2.0, got %+v", v.PSR)
	}
	// EV = 1000 + (100-40) = 1060; EBITDA = 80; EV/EBITDA = 13.25
	if !v.EV.Valid || !almostEqual(v.EV.Value, 1060) {
		t.Errorf("Expected EV 1060, got %+v", v.EV)
	}
	if !v.EVToEBITDA.Valid || !almostEqual(v.EVToEBITDA.Value, 13.25) {
		t.Errorf("Expected EV/EBITDA 13.25, got %+v", v.EVToEBITDA)
	}
	// Payout depends on EPS and stays undefined.
	if v.PayoutRatio.Valid {
		t.Errorf("Expected undefined payout ratio, got %+v", v.PayoutRatio)
	}
}

func TestNetCashPositionNotClamped(t *testing.T) {
	// Cash above debt means negative net debt: EV drops below market cap.
	ev := EnterpriseValue(1000, 50, 300)
	if !almostEqual(ev.Value, 750) {
		t.Errorf("Expected EV 750 with net cash, got %f", ev.Value)
	}
}

func TestZeroDividendYieldIsDefined(t *testing.T) {
	// No dividend is a valid yield of 0, not missing data.
	y := DividendYield(0, 100)
	if !y.Valid || y.Value != 0 {
		t.Errorf("Expected defined yield 0, got %+v", y)
	}
	// An unknown price, however, makes the yield undefined.
	if DividendYield(5, 0).Valid {
		t.Error("Expected undefined yield for zero price")
	}
}

func TestLossMakerPERUndefined(t *testing.T) {
	// Negative earnings: per-share path rejects EPS <= 0, aggregate path
	// rejects net income <= 0, so PER is undefined.
	f := Financials{NetIncome: -50, Equity: 200}
	m := MarketData{StockPrice: 100, TotalShares: 10}
	v := ComputeAllMetrics(f, m)
	if v.PER.Valid {
		t.Errorf("Expected undefined PER for loss maker, got %+v", v.PER)
	}
	// PBR is unaffected by the loss.
	if !v.PBR.Valid || !almostEqual(v.PBR.Value, 5.0) {
		t.Errorf("Expected PBR 5.0, got %+v", v.PBR)
	}
}

func TestComputeAllMetricsIdempotent(t *testing.T) {
	f := Financials{NetIncome: 50, Equity: 200, Revenue: 500, OperatingIncome: 80, Debt: 100, Cash: 40}
	m := MarketData{StockPrice: 100, TotalShares: 10, DividendPerShare: 2}

	a := ComputeAllMetrics(f, m)
	b := ComputeAllMetrics(f, m)
	if a != b {
		t.Errorf("Expected bit-identical output on identical input:\n%+v\n%+v", a, b)
	}
}
