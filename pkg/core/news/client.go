// Package news collects recent company context: DART disclosure filings and
// news search results.
package news

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"findash/pkg/models"
)

const (
	dartListURL       = "https://opendart.fss.or.kr/api/list.json"
	disclosureViewURL = "https://dart.fss.or.kr/dsaf001/main.do?rcpNo="
)

// Client fetches disclosures and news. newsBaseURL points at the news search
// gateway (a Naver-compatible proxy); leave newsClientID empty to disable
// news search.
type Client struct {
	dartAPIKey   string
	newsBaseURL  string
	newsClientID string
	newsSecret   string
	httpClient   *http.Client
}

func NewClient(dartAPIKey, newsBaseURL, newsClientID, newsSecret string) *Client {
	return &Client{
		dartAPIKey:   dartAPIKey,
		newsBaseURL:  newsBaseURL,
		newsClientID: newsClientID,
		newsSecret:   newsSecret,
		httpClient:   &http.Client{Timeout: 15 * time.Second},
	}
}

type disclosureResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	List    []struct {
		ReportName  string `json:"report_nm"`
		CorpName    string `json:"corp_name"`
		FilerName   string `json:"flr_nm"`
		ReceiptNo   string `json:"rcept_no"`
		ReceiptDate string `json:"rcept_dt"`
	} `json:"list"`
}

// Disclosures returns the most recent filings for a company, newest first.
// Status "013" (no data in period) yields an empty list, not an error.
func (c *Client) Disclosures(ctx context.Context, corpCode string, days, limit int) ([]models.Disclosure, error) {
	end := time.Now()
	begin := end.AddDate(0, 0, -days)

	params := url.Values{}
	params.Set("crtfc_key", c.dartAPIKey)
	params.Set("corp_code", corpCode)
	params.Set("bgn_de", begin.Format("20060102"))
	params.Set("end_de", end.Format("20060102"))
	params.Set("page_count", fmt.Sprintf("%d", limit))

	req, err := http.NewRequestWithContext(ctx, "GET", dartListURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("disclosure fetch failed: %w", err)
	}
	defer resp.Body.Close()

	var parsed disclosureResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("disclosure decode failed: %w", err)
	}
	if parsed.Status == "013" {
		return nil, nil
	}
	if parsed.Status != "000" {
		return nil, fmt.Errorf("DART returned status %s: %s", parsed.Status, parsed.Message)
	}

	out := make([]models.Disclosure, 0, len(parsed.List))
	for _, d := range parsed.List {
		out = append(out, models.Disclosure{
			ReportName:  d.ReportName,
			CorpName:    d.CorpName,
			FilerName:   d.FilerName,
			ReceiptNo:   d.ReceiptNo,
			ReceiptDate: d.ReceiptDate,
			URL:         disclosureViewURL + d.ReceiptNo,
		})
	}
	return out, nil
}

type newsResponse struct {
	Items []struct {
		Title       string `json:"title"`
		Description string `json:"description"`
		Link        string `json:"link"`
		PubDate     string `json:"pubDate"`
	} `json:"items"`
}

// Search queries the news gateway for recent articles mentioning the company.
func (c *Client) Search(ctx context.Context, query string, limit int) ([]models.NewsItem, error) {
	if c.newsClientID == "" || c.newsBaseURL == "" {
		return nil, fmt.Errorf("news search not configured")
	}

	params := url.Values{}
	params.Set("query", query)
	params.Set("display", fmt.Sprintf("%d", limit))
	params.Set("sort", "date")

	req, err := http.NewRequestWithContext(ctx, "GET", c.newsBaseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("X-Naver-Client-Id", c.newsClientID)
	req.Header.Set("X-Naver-Client-Secret", c.newsSecret)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("news fetch failed: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("news gateway returned status %d", resp.StatusCode)
	}

	var parsed newsResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("news decode failed: %w", err)
	}

	out := make([]models.NewsItem, 0, len(parsed.Items))
	for _, it := range parsed.Items {
		out = append(out, models.NewsItem{
			Title:       StripHTML(it.Title),
			Description: StripHTML(it.Description),
			Link:        it.Link,
			PubDate:     it.PubDate,
			Source:      sourceFromLink(it.Link),
		})
	}
	return out, nil
}

// StripHTML removes markup and entities from a news fragment. Search results
// wrap matched terms in <b> tags and escape quotes.
func StripHTML(s string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(s))
	if err != nil {
		return s
	}
	return strings.TrimSpace(doc.Text())
}

func sourceFromLink(link string) string {
	u, err := url.Parse(link)
	if err != nil || u.Host == "" {
		return ""
	}
	return strings.TrimPrefix(u.Host, "www.")
}
