package rating

import (
	"os"
	"path/filepath"
	"testing"
)

func fp(v float64) *float64 { return &v }

func TestClassifyNilValue(t *testing.T) {
	got := Classify(MetricPER, nil)
	if got != Insufficient {
		t.Errorf("Expected Insufficient bucket, got %+v", got)
	}
	// The no-data bucket must be distinguishable from every threshold bucket.
	for _, bands := range defaultTables {
		for _, b := range bands {
			if b.Bucket == Insufficient {
				t.Errorf("Threshold bucket collides with Insufficient: %+v", b)
			}
		}
	}
}

func TestClassifyPERBands(t *testing.T) {
	cases := []struct {
		value  float64
		rating string
	}{
		{5, "deeply undervalued"},
		{14.99, "deeply undervalued"},
		{15, "fair"}, // bounds are exclusive: value < max
		{19.9, "fair"},
		{25, "somewhat overvalued"},
		{100, "overvalued"},
	}
	for _, tc := range cases {
		got := Classify(MetricPER, fp(tc.value))
		if got.Rating != tc.rating {
			t.Errorf("PER %v: expected %q, got %q", tc.value, tc.rating, got.Rating)
		}
	}
}

func TestClassifyNegativeFallsInFirstBand(t *testing.T) {
	// A negative PER (loss maker) lands in the first ascending band, the same
	// bucket as a low positive PER. Economically misleading, but that is how
	// the tables are defined; callers filter loss makers upstream.
	neg := Classify(MetricPER, fp(-5))
	pos := Classify(MetricPER, fp(5))
	if neg != pos {
		t.Errorf("Expected -5 and 5 to share a bucket, got %+v vs %+v", neg, pos)
	}
}

func TestClassifyUnknownMetric(t *testing.T) {
	got := Classify("roic", fp(10))
	if got != Unrated {
		t.Errorf("Expected Unrated bucket for unknown metric, got %+v", got)
	}
}

func TestClassifyDividendYield(t *testing.T) {
	if got := Classify(MetricDividendYield, fp(4.2)); got.Rating != "good" {
		t.Errorf("Expected good yield rating, got %q", got.Rating)
	}
	if got := Classify(MetricDividendYield, fp(7.5)); got.Rating != "excellent" {
		t.Errorf("Expected excellent yield rating, got %q", got.Rating)
	}
}

func TestLoadTablesOverride(t *testing.T) {
	// Hjson: comments and unquoted keys allowed. A max of 0 means unbounded.
	content := `
{
  # tighter PER bands for a low-rate regime
  per: [
    {max: 10, bucket: {rating: "cheap", color: "#dc3545", message: "low PER"}}
    {max: 0,  bucket: {rating: "rich",  color: "#06ffa5", message: "high PER"}}
  ]
}
`
	path := filepath.Join(t.TempDir(), "tables.hjson")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	c, err := LoadTables(path)
	if err != nil {
		t.Fatalf("LoadTables failed: %v", err)
	}

	if got := c.Classify(MetricPER, fp(5)); got.Rating != "cheap" {
		t.Errorf("Expected overridden rating cheap, got %q", got.Rating)
	}
	if got := c.Classify(MetricPER, fp(500)); got.Rating != "rich" {
		t.Errorf("Expected unbounded last band rich, got %q", got.Rating)
	}
	// Metrics absent from the file keep their defaults.
	if got := c.Classify(MetricPBR, fp(0.5)); got.Rating != "undervalued" {
		t.Errorf("Expected default PBR table intact, got %q", got.Rating)
	}
}
