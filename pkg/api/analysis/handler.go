package analysis

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	core "findash/pkg/core/analysis"
	"findash/pkg/core/health"
	"findash/pkg/core/report"
	"findash/pkg/core/store"
)

var engine *core.Engine
var snapshots *store.SnapshotRepo

// InitHandler wires the analysis engine. snapRepo may be nil when running
// without a database; reports are then served live only.
func InitHandler(e *core.Engine, snapRepo *store.SnapshotRepo) {
	engine = e
	snapshots = snapRepo
}

type AnalysisRequest struct {
	CorpName string `json:"corp_name"`
}

type ScoreRequest struct {
	ROE             float64 `json:"roe"`
	DebtRatio       float64 `json:"debt_ratio"`
	CurrentRatio    float64 `json:"current_ratio"`
	PER             float64 `json:"per"`
	PBR             float64 `json:"pbr"`
	OperatingMargin float64 `json:"operating_margin"`
	AssetGrowth     float64 `json:"asset_growth"`
}

func cors(w http.ResponseWriter, r *http.Request) bool {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
	if r.Method == "OPTIONS" {
		w.WriteHeader(http.StatusOK)
		return true
	}
	return false
}

// HandleReport runs a full analysis and returns the report JSON.
func HandleReport(w http.ResponseWriter, r *http.Request) {
	if cors(w, r) {
		return
	}

	var req AnalysisRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	name := strings.TrimSpace(req.CorpName)
	if name == "" {
		http.Error(w, "corp_name is required", http.StatusBadRequest)
		return
	}
	fmt.Printf("[API] Analysis request: %s\n", name)

	rep, err := engine.Analyze(r.Context(), name)
	if err != nil {
		http.Error(w, fmt.Sprintf("Analysis failed: %v", err), http.StatusNotFound)
		return
	}

	// Snapshot persistence is best-effort; a storage failure never blocks the
	// response.
	if snapshots != nil {
		if err := snapshots.Save(r.Context(), rep); err != nil {
			fmt.Printf("[WARNING] Snapshot save failed for %s: %v\n", rep.CorpCode, err)
		}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(rep)
}

// HandleReportHTML runs a full analysis and returns a rendered HTML fragment.
func HandleReportHTML(w http.ResponseWriter, r *http.Request) {
	if cors(w, r) {
		return
	}

	var req AnalysisRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	rep, err := engine.Analyze(r.Context(), strings.TrimSpace(req.CorpName))
	if err != nil {
		http.Error(w, fmt.Sprintf("Analysis failed: %v", err), http.StatusNotFound)
		return
	}

	html, err := report.HTML(rep)
	if err != nil {
		http.Error(w, fmt.Sprintf("Render failed: %v", err), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	fmt.Fprint(w, html)
}

// HandleScore scores caller-supplied indicators directly, without any data
// fetching. Useful for what-if inputs from the frontend.
func HandleScore(w http.ResponseWriter, r *http.Request) {
	if cors(w, r) {
		return
	}

	var req ScoreRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	score := health.Calculate(health.Input{
		ROE:             req.ROE,
		DebtRatio:       req.DebtRatio,
		CurrentRatio:    req.CurrentRatio,
		PER:             req.PER,
		PBR:             req.PBR,
		OperatingMargin: req.OperatingMargin,
		AssetGrowth:     req.AssetGrowth,
	})

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(score)
}

// HandleSnapshots lists stored analysis snapshots.
func HandleSnapshots(w http.ResponseWriter, r *http.Request) {
	if cors(w, r) {
		return
	}
	if snapshots == nil {
		http.Error(w, "snapshot storage not configured", http.StatusServiceUnavailable)
		return
	}

	reports, err := snapshots.List(r.Context(), 50)
	if err != nil {
		http.Error(w, fmt.Sprintf("Snapshot list failed: %v", err), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(reports)
}
