package report

import (
	"strings"
	"testing"

	"findash/pkg/core/analysis"
	"findash/pkg/core/calc"
	"findash/pkg/core/rating"
	"findash/pkg/models"
)

func sampleReport() *analysis.Report {
	items := calc.LineItems{
		calc.KeyTotalAssets:        1000e8,
		calc.KeyCurrentAssets:      500e8,
		calc.KeyTotalLiabilities:   400e8,
		calc.KeyCurrentLiabilities: 250e8,
		calc.KeyTotalEquity:        600e8,
		calc.KeyRevenue:            800e8,
		calc.KeyOperatingIncome:    120e8,
		calc.KeyNetIncome:          90e8,
	}
	quote := &models.Quote{StockPrice: 50000, TotalShares: 2e7, DividendPerShare: 1000}
	company := &models.Company{CorpCode: "00126380", CorpName: "삼성전자", StockCode: "005930"}
	return analysis.BuildReport(company, 2024, items, quote, rating.Default())
}

func TestFormatKRW(t *testing.T) {
	cases := map[float64]string{
		2.5e12: "2.5조원",
		3e8:    "3억원",
		1234:   "1,234원",
		-5e8:   "-5억원",
		0:      "0원",
	}
	for in, want := range cases {
		if got := FormatKRW(in); got != want {
			t.Errorf("FormatKRW(%v) = %q, want %q", in, got, want)
		}
	}
}

func TestMarkdownContainsSections(t *testing.T) {
	md := Markdown(sampleReport())

	for _, want := range []string{
		"# 삼성전자 (005930) 분석 리포트",
		"## 재무 비율",
		"## 투자 지표",
		"재무 건전성",
		"투자 의견",
		"| PER |",
		"| 부채비율 | 66.7% |",
	} {
		if !strings.Contains(md, want) {
			t.Errorf("Markdown missing %q", want)
		}
	}
}

func TestMarkdownUndefinedRendersDash(t *testing.T) {
	// No shares and no aggregates: per-share metrics are undefined and must
	// print as "-" rather than 0.
	company := &models.Company{CorpName: "테스트", StockCode: "000000"}
	quote := &models.Quote{StockPrice: 1000}
	r := analysis.BuildReport(company, 2024, calc.LineItems{}, quote, rating.Default())

	md := Markdown(r)
	if !strings.Contains(md, "| EPS | - | |") {
		t.Error("Expected undefined EPS to render as dash")
	}
	if strings.Contains(md, "| ROE | 0.0% |") {
		t.Error("Undefined ROE must not render as 0")
	}
}

func TestHTMLRendersTables(t *testing.T) {
	html, err := HTML(sampleReport())
	if err != nil {
		t.Fatalf("HTML failed: %v", err)
	}
	if !strings.Contains(html, "<table>") {
		t.Error("Expected GFM table in HTML output")
	}
	if !strings.Contains(html, "<h1") {
		t.Error("Expected heading in HTML output")
	}
}
