// This file implements the DART (opendart.fss.or.kr) client: corp-code
// directory with local caching, company lookup, and single-company full
// financial statements.
package ingest

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/json"
	"encoding/xml"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"findash/pkg/core/calc"
	"findash/pkg/models"
)

const (
	dartBaseURL       = "https://opendart.fss.or.kr/api"
	corpCodeEndpoint  = "/corpCode.xml"
	statementEndpoint = "/fnlttSinglAcntAll.json"

	// AnnualReport is the reprt_code for the business (annual) report.
	AnnualReport = "11011"

	corpListCacheTTL = 24 * time.Hour
)

// DARTClient talks to the DART open API.
type DARTClient struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
	cacheDir   string // optional; corp list cached here for 24h

	companies []models.Company
	expiry    time.Time
}

// NewDARTClient creates a client. cacheDir may be empty to disable the
// on-disk corp-list cache.
func NewDARTClient(apiKey, cacheDir string) *DARTClient {
	return &DARTClient{
		apiKey:     apiKey,
		baseURL:    dartBaseURL,
		httpClient: newHTTPClient(),
		cacheDir:   cacheDir,
	}
}

// StatementAccount is one raw line of a DART financial statement response.
type StatementAccount struct {
	AccountName string `json:"account_nm"`
	Amount      string `json:"thstrm_amount"`
	StatementID string `json:"sj_div"`
}

type statementResponse struct {
	Status  string             `json:"status"`
	Message string             `json:"message"`
	List    []StatementAccount `json:"list"`
}

// Statements fetches the annual consolidated statements for one company and
// returns them as canonical line items. Missing accounts are simply absent
// from the map; the engines default them to zero.
func (c *DARTClient) Statements(ctx context.Context, corpCode string, year int) (calc.LineItems, error) {
	params := url.Values{}
	params.Set("crtfc_key", c.apiKey)
	params.Set("corp_code", corpCode)
	params.Set("bsns_year", fmt.Sprintf("%d", year))
	params.Set("reprt_code", AnnualReport)
	params.Set("fs_div", "CFS")

	body, err := fetch(ctx, c.httpClient, c.baseURL+statementEndpoint+"?"+params.Encode())
	if err != nil {
		return nil, fmt.Errorf("DART statement fetch failed: %w", err)
	}

	var resp statementResponse
	if err := decodeLenient(body, &resp); err != nil {
		return nil, fmt.Errorf("DART statement decode failed: %w", err)
	}
	if resp.Status != "000" {
		return nil, fmt.Errorf("DART returned status %s: %s", resp.Status, resp.Message)
	}

	return LineItemsFromAccounts(resp.List), nil
}

// =============================================================================
// CORP DIRECTORY
// =============================================================================

type corpListXML struct {
	List []struct {
		CorpCode   string `xml:"corp_code"`
		CorpName   string `xml:"corp_name"`
		StockCode  string `xml:"stock_code"`
		ModifyDate string `xml:"modify_date"`
	} `xml:"list"`
}

// CompanyList returns the listed-company directory, from the in-memory or
// on-disk cache when fresh, otherwise downloaded from DART.
func (c *DARTClient) CompanyList(ctx context.Context, forceRefresh bool) ([]models.Company, error) {
	if !forceRefresh && c.companies != nil && time.Now().Before(c.expiry) {
		return c.companies, nil
	}

	if !forceRefresh {
		if cached, ok := c.loadCorpListCache(); ok {
			c.companies = cached
			c.expiry = time.Now().Add(corpListCacheTTL)
			return cached, nil
		}
	}

	fmt.Println("[INGEST] Downloading DART corp directory...")
	body, err := fetch(ctx, c.httpClient, c.baseURL+corpCodeEndpoint+"?crtfc_key="+url.QueryEscape(c.apiKey))
	if err != nil {
		return nil, fmt.Errorf("DART corp list fetch failed: %w", err)
	}

	xmlData, err := maybeUnzip(body)
	if err != nil {
		return nil, fmt.Errorf("DART corp list unzip failed: %w", err)
	}

	var parsed corpListXML
	if err := xml.Unmarshal(xmlData, &parsed); err != nil {
		return nil, fmt.Errorf("DART corp list decode failed: %w", err)
	}

	companies := make([]models.Company, 0, len(parsed.List))
	for _, e := range parsed.List {
		// Only listed companies carry a stock code.
		if strings.TrimSpace(e.StockCode) == "" {
			continue
		}
		companies = append(companies, models.Company{
			CorpCode:   e.CorpCode,
			CorpName:   e.CorpName,
			StockCode:  strings.TrimSpace(e.StockCode),
			ModifyDate: e.ModifyDate,
		})
	}

	c.companies = companies
	c.expiry = time.Now().Add(corpListCacheTTL)
	c.saveCorpListCache(companies)
	fmt.Printf("[INGEST] Corp directory loaded: %d listed companies\n", len(companies))

	return companies, nil
}

// FindByName locates a company by exact name, falling back to the first
// prefix match.
func (c *DARTClient) FindByName(ctx context.Context, name string) (*models.Company, error) {
	companies, err := c.CompanyList(ctx, false)
	if err != nil {
		return nil, err
	}

	name = strings.TrimSpace(name)
	for i := range companies {
		if companies[i].CorpName == name {
			return &companies[i], nil
		}
	}
	for i := range companies {
		if strings.HasPrefix(companies[i].CorpName, name) {
			return &companies[i], nil
		}
	}
	return nil, fmt.Errorf("company not found: %s", name)
}

// maybeUnzip extracts the first file when the payload is a zip archive.
// DART serves corpCode.xml zipped; a proxy may serve it as plain XML.
func maybeUnzip(data []byte) ([]byte, error) {
	if len(data) < 4 || data[0] != 'P' || data[1] != 'K' {
		return data, nil
	}
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, err
	}
	if len(zr.File) == 0 {
		return nil, fmt.Errorf("empty archive")
	}
	f, err := zr.File[0].Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(f)
}

func (c *DARTClient) corpListCachePath() string {
	return filepath.Join(c.cacheDir, "dart_corp_list.json")
}

func (c *DARTClient) loadCorpListCache() ([]models.Company, bool) {
	if c.cacheDir == "" {
		return nil, false
	}
	info, err := os.Stat(c.corpListCachePath())
	if err != nil || time.Since(info.ModTime()) > corpListCacheTTL {
		return nil, false
	}
	data, err := os.ReadFile(c.corpListCachePath())
	if err != nil {
		return nil, false
	}
	var companies []models.Company
	if err := json.Unmarshal(data, &companies); err != nil {
		return nil, false
	}
	return companies, true
}

func (c *DARTClient) saveCorpListCache(companies []models.Company) {
	if c.cacheDir == "" {
		return
	}
	data, err := json.Marshal(companies)
	if err != nil {
		return
	}
	os.MkdirAll(c.cacheDir, 0755)
	if err := os.WriteFile(c.corpListCachePath(), data, 0644); err != nil {
		fmt.Printf("[WARNING] Failed to cache corp list: %v\n", err)
	}
}
