package ingest

import (
	"testing"

	"findash/pkg/core/calc"
)

func TestParseAmount(t *testing.T) {
	cases := map[string]float64{
		"1,234,567": 1234567,
		"-1234":     -1234,
		"0":         0,
		"":          0,
		"-":         0,
		"garbage":   0,
		"12.5":      12.5,
	}
	for in, want := range cases {
		if got := ParseAmount(in); got != want {
			t.Errorf("ParseAmount(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestLineItemsFromAccounts(t *testing.T) {
	accounts := []StatementAccount{
		{AccountName: "자산총계", Amount: "500,000"},
		{AccountName: "부채총계", Amount: "200,000"},
		{AccountName: "자본총계", Amount: "300,000"},
		{AccountName: "수익(매출액)", Amount: "450,000"},
		{AccountName: "당기순이익(손실)", Amount: "-12,000"},
		{AccountName: "기타포괄손익", Amount: "999"}, // unrecognized, dropped
	}

	items := LineItemsFromAccounts(accounts)

	if got := items.Get(calc.KeyTotalAssets); got != 500000 {
		t.Errorf("Expected total assets 500000, got %v", got)
	}
	if got := items.Get(calc.KeyRevenue); got != 450000 {
		t.Errorf("Expected revenue 450000 via alias, got %v", got)
	}
	if got := items.Get(calc.KeyNetIncome); got != -12000 {
		t.Errorf("Expected net income -12000, got %v", got)
	}
	// Missing accounts read as zero.
	if got := items.Get(calc.KeyShortTermDebt); got != 0 {
		t.Errorf("Expected missing short-term debt to read 0, got %v", got)
	}
	if len(items) != 5 {
		t.Errorf("Expected 5 recognized accounts, got %d", len(items))
	}
}

func TestLineItemsLaterDuplicateWins(t *testing.T) {
	accounts := []StatementAccount{
		{AccountName: "영업이익", Amount: "100"},
		{AccountName: "영업이익(손실)", Amount: "250"},
	}
	items := LineItemsFromAccounts(accounts)
	if got := items.Get(calc.KeyOperatingIncome); got != 250 {
		t.Errorf("Expected later duplicate to win (250), got %v", got)
	}
}

func TestDecodeLenientRepairsMalformedJSON(t *testing.T) {
	// Trailing comma, as the gateways occasionally emit.
	raw := []byte(`{"status": "000", "message": "ok",}`)

	var resp statementResponse
	if err := decodeLenient(raw, &resp); err != nil {
		t.Fatalf("decodeLenient failed on repairable input: %v", err)
	}
	if resp.Status != "000" {
		t.Errorf("Expected status 000, got %q", resp.Status)
	}
}

func TestDecodeLenientValidJSON(t *testing.T) {
	raw := []byte(`{"status":"013","message":"no data","list":[]}`)
	var resp statementResponse
	if err := decodeLenient(raw, &resp); err != nil {
		t.Fatalf("decodeLenient failed on valid input: %v", err)
	}
	if resp.Status != "013" {
		t.Errorf("Expected status 013, got %q", resp.Status)
	}
}

func TestMaybeUnzipPassthrough(t *testing.T) {
	plain := []byte("<result><list></list></result>")
	out, err := maybeUnzip(plain)
	if err != nil {
		t.Fatalf("maybeUnzip failed on plain XML: %v", err)
	}
	if string(out) != string(plain) {
		t.Error("Expected plain payload to pass through unchanged")
	}
}
