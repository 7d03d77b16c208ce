package watchlist

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	core "findash/pkg/core/analysis"
	wl "findash/pkg/core/watchlist"
)

var manager *wl.Manager
var engine *core.Engine

// InitHandler wires the watchlist manager and the analysis engine used by the
// refresh endpoint.
func InitHandler(m *wl.Manager, e *core.Engine) {
	manager = m
	engine = e
}

type addRequest struct {
	CorpCode  string `json:"corp_code"`
	CorpName  string `json:"corp_name"`
	StockCode string `json:"stock_code"`
}

type alertRequest struct {
	CorpCode  string  `json:"corp_code"`
	Kind      string  `json:"kind"`
	Threshold float64 `json:"threshold"`
	AlertID   string  `json:"alert_id"`
}

func cors(w http.ResponseWriter, r *http.Request) bool {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "POST, GET, DELETE, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
	if r.Method == "OPTIONS" {
		w.WriteHeader(http.StatusOK)
		return true
	}
	return false
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}

// HandleList returns the full watchlist, with optional ?tag= filtering.
func HandleList(w http.ResponseWriter, r *http.Request) {
	if cors(w, r) {
		return
	}
	if tag := r.URL.Query().Get("tag"); tag != "" {
		writeJSON(w, manager.ByTag(tag))
		return
	}
	if r.URL.Query().Get("bookmarked") == "true" {
		writeJSON(w, manager.Bookmarked())
		return
	}
	writeJSON(w, manager.All())
}

// HandleAdd registers a company on the watchlist.
func HandleAdd(w http.ResponseWriter, r *http.Request) {
	if cors(w, r) {
		return
	}

	var req addRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(req.CorpCode) == "" {
		http.Error(w, "corp_code is required", http.StatusBadRequest)
		return
	}

	item, err := manager.Add(req.CorpCode, req.CorpName, req.StockCode)
	if err != nil {
		http.Error(w, fmt.Sprintf("Add failed: %v", err), http.StatusInternalServerError)
		return
	}
	fmt.Printf("[WATCHLIST] Added %s (%s)\n", item.CorpName, item.CorpCode)
	writeJSON(w, item)
}

// HandleRemove drops a company from the watchlist.
func HandleRemove(w http.ResponseWriter, r *http.Request) {
	if cors(w, r) {
		return
	}

	corpCode := r.URL.Query().Get("corp_code")
	if corpCode == "" {
		http.Error(w, "corp_code is required", http.StatusBadRequest)
		return
	}
	if err := manager.Remove(corpCode); err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleAlert adds, removes or toggles an alert depending on the fields set.
func HandleAlert(w http.ResponseWriter, r *http.Request) {
	if cors(w, r) {
		return
	}

	var req alertRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	switch r.Method {
	case http.MethodDelete:
		if err := manager.RemoveAlert(req.CorpCode, req.AlertID); err != nil {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	case http.MethodPost:
		if req.AlertID != "" {
			enabled, err := manager.ToggleAlert(req.CorpCode, req.AlertID)
			if err != nil {
				http.Error(w, err.Error(), http.StatusNotFound)
				return
			}
			writeJSON(w, map[string]bool{"enabled": enabled})
			return
		}
		alert, err := manager.AddAlert(req.CorpCode, req.Kind, req.Threshold)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		writeJSON(w, alert)
	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

// HandleHistory returns the triggered-alert history.
func HandleHistory(w http.ResponseWriter, r *http.Request) {
	if cors(w, r) {
		return
	}
	h := manager.HistoryView()
	writeJSON(w, map[string]interface{}{
		"entries": h.Entries,
		"unread":  h.UnreadCount(),
	})
}

// HandleMarkRead marks one history entry (or all, with all=true) as read.
func HandleMarkRead(w http.ResponseWriter, r *http.Request) {
	if cors(w, r) {
		return
	}
	if r.URL.Query().Get("all") == "true" {
		if err := manager.MarkAllAlertsRead(); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusNoContent)
		return
	}
	id := r.URL.Query().Get("id")
	if err := manager.MarkAlertRead(id); err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleRefresh re-analyzes every watched company, updates stored values and
// returns any triggered alerts. Failures on individual companies are reported
// but do not abort the sweep.
func HandleRefresh(w http.ResponseWriter, r *http.Request) {
	if cors(w, r) {
		return
	}

	var allFired []wl.TriggeredAlert
	var failed []string
	for _, item := range manager.All() {
		rep, err := engine.Analyze(r.Context(), item.CorpName)
		if err != nil {
			fmt.Printf("[WATCHLIST] Refresh failed for %s: %v\n", item.CorpName, err)
			failed = append(failed, item.CorpName)
			continue
		}
		fired, err := manager.UpdateFinancialData(item.CorpCode, rep.Market.StockPrice, rep.Health.TotalScore)
		if err != nil {
			failed = append(failed, item.CorpName)
			continue
		}
		allFired = append(allFired, fired...)
	}

	writeJSON(w, map[string]interface{}{
		"triggered": allFired,
		"failed":    failed,
	})
}
