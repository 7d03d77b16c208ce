package rating

import "math"

// Built-in threshold tables. Static configuration, not derived state: bands
// are scanned in ascending order and the first upper bound above the value
// wins. Colors are the severity palette used by report rendering.
var defaultTables = map[string][]Band{
	MetricPER: {
		{Max: 15, Bucket: Bucket{Rating: "deeply undervalued", Color: "#dc3545", Message: "very low PER, possible undervaluation"}},
		{Max: 20, Bucket: Bucket{Rating: "fair", Color: "#ffc107", Message: "PER in a fair range"}},
		{Max: 30, Bucket: Bucket{Rating: "somewhat overvalued", Color: "#28a745", Message: "somewhat elevated PER"}},
		{Max: math.Inf(1), Bucket: Bucket{Rating: "overvalued", Color: "#06ffa5", Message: "very high PER, possible overvaluation"}},
	},
	MetricPBR: {
		{Max: 1, Bucket: Bucket{Rating: "undervalued", Color: "#dc3545", Message: "trading below book value"}},
		{Max: 2, Bucket: Bucket{Rating: "fair", Color: "#ffc107", Message: "PBR in a fair range"}},
		{Max: 3, Bucket: Bucket{Rating: "somewhat overvalued", Color: "#28a745", Message: "somewhat elevated PBR"}},
		{Max: math.Inf(1), Bucket: Bucket{Rating: "overvalued", Color: "#06ffa5", Message: "high PBR"}},
	},
	MetricPSR: {
		{Max: 1, Bucket: Bucket{Rating: "undervalued", Color: "#dc3545", Message: "undervalued against revenue"}},
		{Max: 2, Bucket: Bucket{Rating: "fair", Color: "#ffc107", Message: "PSR in a fair range"}},
		{Max: 4, Bucket: Bucket{Rating: "somewhat overvalued", Color: "#28a745", Message: "somewhat elevated PSR"}},
		{Max: math.Inf(1), Bucket: Bucket{Rating: "overvalued", Color: "#06ffa5", Message: "high PSR"}},
	},
	MetricEVToEBITDA: {
		{Max: 8, Bucket: Bucket{Rating: "undervalued", Color: "#dc3545", Message: "low EV/EBITDA"}},
		{Max: 12, Bucket: Bucket{Rating: "fair", Color: "#ffc107", Message: "EV/EBITDA in a fair range"}},
		{Max: 15, Bucket: Bucket{Rating: "somewhat overvalued", Color: "#28a745", Message: "somewhat elevated EV/EBITDA"}},
		{Max: math.Inf(1), Bucket: Bucket{Rating: "overvalued", Color: "#06ffa5", Message: "high EV/EBITDA"}},
	},
	MetricDividendYield: {
		{Max: 2, Bucket: Bucket{Rating: "low", Color: "#dc3545", Message: "low dividend yield"}},
		{Max: 3, Bucket: Bucket{Rating: "average", Color: "#ffc107", Message: "average dividend yield"}},
		{Max: 5, Bucket: Bucket{Rating: "good", Color: "#28a745", Message: "good dividend yield"}},
		{Max: math.Inf(1), Bucket: Bucket{Rating: "excellent", Color: "#06ffa5", Message: "high dividend yield"}},
	},
}
