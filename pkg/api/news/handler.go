package news

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	core "findash/pkg/core/analysis"
	newscore "findash/pkg/core/news"
)

var client *newscore.Client
var directory core.CorpDirectory

// InitHandler wires the news client and the corp directory used to resolve
// company names.
func InitHandler(c *newscore.Client, dir core.CorpDirectory) {
	client = c
	directory = dir
}

func cors(w http.ResponseWriter, r *http.Request) bool {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
	if r.Method == "OPTIONS" {
		w.WriteHeader(http.StatusOK)
		return true
	}
	return false
}

func limitParam(r *http.Request, def int) int {
	if s := r.URL.Query().Get("limit"); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n > 0 {
			return n
		}
	}
	return def
}

// HandleDisclosures returns recent DART filings for ?corp_name=.
func HandleDisclosures(w http.ResponseWriter, r *http.Request) {
	if cors(w, r) {
		return
	}

	name := r.URL.Query().Get("corp_name")
	if name == "" {
		http.Error(w, "corp_name is required", http.StatusBadRequest)
		return
	}
	company, err := directory.FindByName(r.Context(), name)
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}

	days := 30
	if s := r.URL.Query().Get("days"); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n > 0 {
			days = n
		}
	}

	items, err := client.Disclosures(r.Context(), company.CorpCode, days, limitParam(r, 20))
	if err != nil {
		http.Error(w, fmt.Sprintf("Disclosure fetch failed: %v", err), http.StatusBadGateway)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(items)
}

// HandleSearch returns recent news articles for ?query=.
func HandleSearch(w http.ResponseWriter, r *http.Request) {
	if cors(w, r) {
		return
	}

	query := r.URL.Query().Get("query")
	if query == "" {
		http.Error(w, "query is required", http.StatusBadRequest)
		return
	}

	items, err := client.Search(r.Context(), query, limitParam(r, 10))
	if err != nil {
		http.Error(w, fmt.Sprintf("News search failed: %v", err), http.StatusBadGateway)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(items)
}
