// Package models defines the shared DTOs passed between ingest, analysis and
// the API layer.
package models

// Company is one entry from the DART corp-code directory. Only listed
// companies (non-empty stock code) are kept.
type Company struct {
	CorpCode   string `json:"corp_code"`
	CorpName   string `json:"corp_name"`
	StockCode  string `json:"stock_code"`
	ModifyDate string `json:"modify_date"`
}

// Quote is the combined market snapshot for one listed company: price info,
// issued shares and dividend, merged from the three public endpoints.
type Quote struct {
	StockCode        string  `json:"stock_code"`
	StockName        string  `json:"stock_name"`
	StockPrice       float64 `json:"stock_price"`
	MarketCap        float64 `json:"market_cap"`
	ListedShares     float64 `json:"listed_shares"`
	TotalShares      float64 `json:"total_shares"`
	DividendPerShare float64 `json:"dividend_per_share"`
	PriceDate        string  `json:"price_date"`
}

// Disclosure is one DART filing entry.
type Disclosure struct {
	ReportName  string `json:"report_name"`
	CorpName    string `json:"corp_name"`
	FilerName   string `json:"filer_name"`
	ReceiptNo   string `json:"receipt_no"`
	ReceiptDate string `json:"receipt_date"`
	URL         string `json:"url"`
}

// NewsItem is one company news search result.
type NewsItem struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Link        string `json:"link"`
	PubDate     string `json:"pub_date"`
	Source      string `json:"source"`
}
