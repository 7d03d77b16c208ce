// Package report renders an analysis report as Markdown or HTML.
package report

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"findash/pkg/core/analysis"
	"findash/pkg/core/calc"
)

// FormatKRW renders a won amount in the customary 조/억 units. Amounts below
// one 억 print raw with thousand separators.
func FormatKRW(v float64) string {
	neg := v < 0
	if neg {
		v = -v
	}
	var s string
	switch {
	case v >= 1e12:
		s = fmt.Sprintf("%.1f조원", v/1e12)
	case v >= 1e8:
		s = fmt.Sprintf("%.0f억원", v/1e8)
	default:
		s = fmt.Sprintf("%s원", comma(v))
	}
	if neg {
		return "-" + s
	}
	return s
}

func comma(v float64) string {
	s := fmt.Sprintf("%.0f", v)
	var b strings.Builder
	for i, c := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(c)
	}
	return b.String()
}

// cell renders an optional metric for a table: value with unit, or "-".
func cell(m calc.Metric, format string) string {
	if !m.Valid {
		return "-"
	}
	return fmt.Sprintf(format, m.Value)
}

// Markdown renders the full report.
func Markdown(r *analysis.Report) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# %s (%s) 분석 리포트\n\n", r.CorpName, r.StockCode)
	fmt.Fprintf(&b, "- 사업연도: %d\n", r.Year)
	fmt.Fprintf(&b, "- 주가: %s (시가총액 %s)\n", comma(r.Market.StockPrice)+"원", FormatKRW(marketCapOf(r)))
	fmt.Fprintf(&b, "- 생성일시: %s\n\n", r.GeneratedAt.Format("2006-01-02 15:04"))

	b.WriteString("## 재무 비율\n\n")
	b.WriteString("| 지표 | 값 |\n|---|---|\n")
	fmt.Fprintf(&b, "| 부채비율 | %s |\n", cell(r.Ratios.DebtRatio, "%.1f%%"))
	fmt.Fprintf(&b, "| 자기자본비율 | %s |\n", cell(r.Ratios.EquityRatio, "%.1f%%"))
	fmt.Fprintf(&b, "| 유동비율 | %s |\n", cell(r.Ratios.CurrentRatio, "%.1f%%"))
	fmt.Fprintf(&b, "| ROE | %s |\n\n", cell(r.Ratios.ROE, "%.1f%%"))

	b.WriteString("## 투자 지표\n\n")
	b.WriteString("| 지표 | 값 | 평가 |\n|---|---|---|\n")
	rows := []struct {
		label  string
		metric calc.Metric
		key    string
		format string
	}{
		{"PER", r.Metrics.PER, "per", "%.2f"},
		{"PBR", r.Metrics.PBR, "pbr", "%.2f"},
		{"PSR", r.Metrics.PSR, "psr", "%.2f"},
		{"EV/EBITDA", r.Metrics.EVToEBITDA, "ev_to_ebitda", "%.2f"},
		{"배당수익률", r.Metrics.DividendYield, "dividend_yield", "%.2f%%"},
	}
	for _, row := range rows {
		rated := r.Ratings[row.key]
		fmt.Fprintf(&b, "| %s | %s | %s |\n", row.label, cell(row.metric, row.format), rated.Message)
	}
	fmt.Fprintf(&b, "| EPS | %s | |\n", cell(r.Metrics.EPS, "%.0f원"))
	fmt.Fprintf(&b, "| BPS | %s | |\n\n", cell(r.Metrics.BPS, "%.0f원"))

	h := r.Health
	fmt.Fprintf(&b, "## 재무 건전성: %d점 (%s)\n\n", h.TotalScore, h.Grade)
	b.WriteString("| 항목 | 점수 | 평가 |\n|---|---|---|\n")
	fmt.Fprintf(&b, "| 수익성 | %d/%d | %s |\n", h.Category.Profitability.Score, h.Category.Profitability.MaxScore, h.Category.Profitability.Summary)
	fmt.Fprintf(&b, "| 안정성 | %d/%d | %s |\n", h.Category.Stability.Score, h.Category.Stability.MaxScore, h.Category.Stability.Summary)
	fmt.Fprintf(&b, "| 성장성 | %d/%d | %s |\n", h.Category.Growth.Score, h.Category.Growth.MaxScore, h.Category.Growth.Summary)
	fmt.Fprintf(&b, "| 밸류에이션 | %d/%d | %s |\n\n", h.Category.Valuation.Score, h.Category.Valuation.MaxScore, h.Category.Valuation.Summary)

	for _, a := range h.Analysis {
		fmt.Fprintf(&b, "- %s\n", a.Message)
	}
	fmt.Fprintf(&b, "\n**투자 의견: %s** (%s)\n", h.Recommendation.Rating, h.Recommendation.Reason)

	return b.String()
}

func marketCapOf(r *analysis.Report) float64 {
	if r.Metrics.MarketCap.Valid {
		return r.Metrics.MarketCap.Value
	}
	return r.Market.MarketCap
}

// HTML renders the report Markdown to an HTML fragment with table support.
func HTML(r *analysis.Report) (string, error) {
	md := goldmark.New(goldmark.WithExtensions(extension.GFM))
	var buf bytes.Buffer
	if err := md.Convert([]byte(Markdown(r)), &buf); err != nil {
		return "", fmt.Errorf("markdown render failed: %w", err)
	}
	return buf.String(), nil
}
