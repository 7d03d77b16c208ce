// Package rating classifies valuation metrics into qualitative buckets via
// ordered threshold tables: ascending upper bounds, first match wins.
package rating

import (
	"math"
	"os"

	hjson "github.com/hjson/hjson-go/v4"
)

// Metric names with built-in threshold tables.
const (
	MetricPER           = "per"
	MetricPBR           = "pbr"
	MetricPSR           = "psr"
	MetricEVToEBITDA    = "ev_to_ebitda"
	MetricDividendYield = "dividend_yield"
)

// Bucket is a qualitative assessment of a metric value.
type Bucket struct {
	Rating  string `json:"rating"`
	Color   string `json:"color"`
	Message string `json:"message"`
}

// Band pairs an exclusive upper bound with the bucket awarded below it.
// The last band of every table is unbounded so the scan is total over all
// defined values.
type Band struct {
	Max    float64 `json:"max"`
	Bucket Bucket  `json:"bucket"`
}

// Insufficient is returned when the metric value is nil. It is distinct from
// every threshold bucket so callers can tell "no data" apart from "worst
// tier".
var Insufficient = Bucket{Rating: "N/A", Color: "gray", Message: "insufficient data"}

// Unrated is returned for metric names without a threshold table.
var Unrated = Bucket{Rating: "N/A", Color: "gray", Message: "no rating criteria"}

// Classifier holds the per-metric threshold tables.
type Classifier struct {
	tables map[string][]Band
}

// Default returns a classifier with the built-in tables.
func Default() *Classifier {
	return &Classifier{tables: defaultTables}
}

// Classify maps a metric value to its bucket. A nil value yields the
// Insufficient bucket. Values below the first upper bound fall into the first
// band by construction; that includes negative values, so a negative PER
// (loss-making company) classifies the same as a very low positive one.
func (c *Classifier) Classify(metric string, value *float64) Bucket {
	if value == nil {
		return Insufficient
	}
	bands, ok := c.tables[metric]
	if !ok {
		return Unrated
	}
	for _, b := range bands {
		if *value < b.Max {
			return b.Bucket
		}
	}
	// Unreachable: the last band is unbounded.
	return Unrated
}

// Classify maps a metric value to its bucket using the built-in tables.
func Classify(metric string, value *float64) Bucket {
	return Default().Classify(metric, value)
}

// LoadTables builds a classifier from an Hjson file mapping metric names to
// band lists. Tables in the file replace the built-in table for that metric
// wholesale; metrics absent from the file keep their defaults. A band with
// max 0 is treated as unbounded (Hjson has no infinity literal).
func LoadTables(path string) (*Classifier, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var loaded map[string][]Band
	if err := hjson.Unmarshal(data, &loaded); err != nil {
		return nil, err
	}

	tables := make(map[string][]Band, len(defaultTables))
	for k, v := range defaultTables {
		tables[k] = v
	}
	for metric, bands := range loaded {
		for i := range bands {
			if bands[i].Max == 0 {
				bands[i].Max = math.Inf(1)
			}
		}
		tables[metric] = bands
	}
	return &Classifier{tables: tables}, nil
}
