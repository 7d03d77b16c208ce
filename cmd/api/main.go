package main

import (
	"context"
	"fmt"
	"net/http"
	"os"

	analysisapi "findash/pkg/api/analysis"
	newsapi "findash/pkg/api/news"
	watchlistapi "findash/pkg/api/watchlist"
	"findash/pkg/core/analysis"
	"findash/pkg/core/ingest"
	"findash/pkg/core/news"
	"findash/pkg/core/rating"
	"findash/pkg/core/store"
	"findash/pkg/core/watchlist"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v2"
)

// serverConfig is read from config/server.yaml; environment variables fill in
// the API keys.
type serverConfig struct {
	Listen        string `yaml:"listen"`
	CacheDir      string `yaml:"cache_dir"`
	WatchlistPath string `yaml:"watchlist_path"`
	RatingTables  string `yaml:"rating_tables"`
}

func main() {
	// Load environment variables
	godotenv.Load()

	cfg := serverConfig{
		Listen:        ":8080",
		CacheDir:      ".cache",
		WatchlistPath: "data/watchlist.yaml",
	}
	if configData, err := os.ReadFile("config/server.yaml"); err == nil {
		yaml.Unmarshal(configData, &cfg)
	}

	dartKey := os.Getenv("DART_API_KEY")
	marketKey := os.Getenv("DATA_GO_KR_API_KEY")
	if dartKey == "" || marketKey == "" {
		fmt.Println("[FATAL] DART_API_KEY and DATA_GO_KR_API_KEY must be set")
		os.Exit(1)
	}

	// Wire the analysis engine
	dart := ingest.NewDARTClient(dartKey, cfg.CacheDir)
	market := ingest.NewMarketClient(marketKey)
	engine := analysis.NewEngine(dart, dart, market)

	if cfg.RatingTables != "" {
		classifier, err := rating.LoadTables(cfg.RatingTables)
		if err != nil {
			fmt.Printf("[WARNING] Failed to load rating tables from %s: %v\n", cfg.RatingTables, err)
			fmt.Println("  Falling back to built-in thresholds")
		} else {
			engine.Classifier = classifier
			fmt.Printf("[RATING] Loaded threshold overrides from %s\n", cfg.RatingTables)
		}
	}

	// Storage: Postgres when DATABASE_URL is set, YAML file otherwise
	var snapRepo *store.SnapshotRepo
	var wlRepo watchlist.Repository = watchlist.NewFileRepository(cfg.WatchlistPath)
	if os.Getenv("DATABASE_URL") != "" {
		if err := store.InitDB(context.Background()); err != nil {
			fmt.Printf("[FATAL] Database init failed: %v\n", err)
			os.Exit(1)
		}
		defer store.Close()
		snapRepo = store.NewSnapshotRepo()
		wlRepo = store.NewWatchlistRepo()
		fmt.Println("[STORE] Using Postgres storage")
	} else {
		fmt.Printf("[STORE] No DATABASE_URL, using file storage at %s\n", cfg.WatchlistPath)
	}

	wlManager, err := watchlist.NewManager(wlRepo)
	if err != nil {
		fmt.Printf("[FATAL] Watchlist init failed: %v\n", err)
		os.Exit(1)
	}

	// Analysis endpoints
	analysisapi.InitHandler(engine, snapRepo)
	http.HandleFunc("/api/analysis/report", analysisapi.HandleReport)
	http.HandleFunc("/api/analysis/report-html", analysisapi.HandleReportHTML)
	http.HandleFunc("/api/analysis/score", analysisapi.HandleScore)
	http.HandleFunc("/api/analysis/snapshots", analysisapi.HandleSnapshots)

	// News and disclosure endpoints
	newsClient := news.NewClient(dartKey,
		os.Getenv("NEWS_API_BASE_URL"),
		os.Getenv("NEWS_CLIENT_ID"),
		os.Getenv("NEWS_CLIENT_SECRET"))
	newsapi.InitHandler(newsClient, dart)
	http.HandleFunc("/api/news/disclosures", newsapi.HandleDisclosures)
	http.HandleFunc("/api/news/search", newsapi.HandleSearch)

	// Watchlist endpoints
	watchlistapi.InitHandler(wlManager, engine)
	http.HandleFunc("/api/watchlist", watchlistapi.HandleList)
	http.HandleFunc("/api/watchlist/add", watchlistapi.HandleAdd)
	http.HandleFunc("/api/watchlist/remove", watchlistapi.HandleRemove)
	http.HandleFunc("/api/watchlist/alert", watchlistapi.HandleAlert)
	http.HandleFunc("/api/watchlist/history", watchlistapi.HandleHistory)
	http.HandleFunc("/api/watchlist/read", watchlistapi.HandleMarkRead)
	http.HandleFunc("/api/watchlist/refresh", watchlistapi.HandleRefresh)

	fmt.Printf("API server starting on %s...\n", cfg.Listen)
	fmt.Println("  - POST /api/analysis/report")
	fmt.Println("  - POST /api/analysis/report-html")
	fmt.Println("  - POST /api/analysis/score")
	fmt.Println("  - GET  /api/analysis/snapshots")
	fmt.Println("  - GET  /api/news/disclosures")
	fmt.Println("  - GET  /api/news/search")
	fmt.Println("  - GET  /api/watchlist")
	fmt.Println("  - POST /api/watchlist/add")
	fmt.Println("  - POST /api/watchlist/refresh")

	if err := http.ListenAndServe(cfg.Listen, nil); err != nil {
		fmt.Printf("[FATAL] Server failed to start: %v\n", err)
		os.Exit(1)
	}
}
