// This file implements the data.go.kr market client: stock price, issued
// shares and dividend lookups, merged into one Quote.
package ingest

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"findash/pkg/models"
)

const (
	priceBaseURL    = "https://apis.data.go.kr/1160100/service/GetStockSecuritiesInfoService"
	dividendBaseURL = "https://apis.data.go.kr/1160100/service/GetStocDiviInfoService"

	priceEndpoint    = "/getStockPriceInfo"
	issueEndpoint    = "/getStockIssuInfo"
	dividendEndpoint = "/getStkDivi"
)

// MarketClient talks to the data.go.kr stock information services.
type MarketClient struct {
	apiKey     string
	priceBase  string
	diviBase   string
	httpClient *http.Client
}

func NewMarketClient(apiKey string) *MarketClient {
	return &MarketClient{
		apiKey:     apiKey,
		priceBase:  priceBaseURL,
		diviBase:   dividendBaseURL,
		httpClient: newHTTPClient(),
	}
}

// Every data.go.kr response nests items under response.body.items.item and
// reports all numbers as strings.
type marketResponse struct {
	Response struct {
		Header struct {
			ResultCode string `json:"resultCode"`
			ResultMsg  string `json:"resultMsg"`
		} `json:"header"`
		Body struct {
			Items struct {
				Item []map[string]string `json:"item"`
			} `json:"items"`
			TotalCount int `json:"totalCount"`
		} `json:"body"`
	} `json:"response"`
}

func (c *MarketClient) query(ctx context.Context, base, endpoint string, params url.Values) ([]map[string]string, error) {
	params.Set("serviceKey", c.apiKey)
	params.Set("resultType", "json")
	params.Set("numOfRows", "10")

	body, err := fetch(ctx, c.httpClient, base+endpoint+"?"+params.Encode())
	if err != nil {
		return nil, err
	}

	var resp marketResponse
	if err := decodeLenient(body, &resp); err != nil {
		return nil, fmt.Errorf("market response decode failed: %w", err)
	}
	if rc := resp.Response.Header.ResultCode; rc != "" && rc != "00" {
		return nil, fmt.Errorf("market API returned %s: %s", rc, resp.Response.Header.ResultMsg)
	}
	return resp.Response.Body.Items.Item, nil
}

// StockPrice returns the latest price record matching the stock name.
func (c *MarketClient) StockPrice(ctx context.Context, stockName string) (map[string]string, error) {
	params := url.Values{}
	params.Set("likeItmsNm", stockName)
	items, err := c.query(ctx, c.priceBase, priceEndpoint, params)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, fmt.Errorf("no price data for %s", stockName)
	}
	// Records are ordered newest first; prefer the exact name match.
	for _, it := range items {
		if it["itmsNm"] == stockName {
			return it, nil
		}
	}
	return items[0], nil
}

// StockIssue returns issued-share info by corporate registration number.
func (c *MarketClient) StockIssue(ctx context.Context, crno string) (map[string]string, error) {
	params := url.Values{}
	params.Set("crno", crno)
	items, err := c.query(ctx, c.priceBase, issueEndpoint, params)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, fmt.Errorf("no issue data for crno %s", crno)
	}
	return items[0], nil
}

// StockDividend returns the latest cash dividend record.
func (c *MarketClient) StockDividend(ctx context.Context, crno string) (map[string]string, error) {
	params := url.Values{}
	params.Set("crno", crno)
	items, err := c.query(ctx, c.diviBase, dividendEndpoint, params)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, fmt.Errorf("no dividend data for crno %s", crno)
	}
	return items[0], nil
}

// Quote assembles the full market snapshot for a listed company. The price
// record is required; issued shares and dividend degrade gracefully since the
// valuation engine can fall back to listed shares and a zero dividend.
func (c *MarketClient) Quote(ctx context.Context, stockName string) (*models.Quote, error) {
	price, err := c.StockPrice(ctx, stockName)
	if err != nil {
		return nil, fmt.Errorf("price lookup failed: %w", err)
	}

	q := &models.Quote{
		StockCode:    price["srtnCd"],
		StockName:    price["itmsNm"],
		StockPrice:   ParseAmount(price["clpr"]),
		MarketCap:    ParseAmount(price["mrktTotAmt"]),
		ListedShares: ParseAmount(price["lstgStCnt"]),
		PriceDate:    price["basDt"],
	}
	q.TotalShares = q.ListedShares

	crno := price["crno"]
	if crno != "" {
		if issue, err := c.StockIssue(ctx, crno); err == nil {
			if n := ParseAmount(issue["stckIssuCnt"]); n > 0 {
				q.TotalShares = n
			}
		} else {
			fmt.Printf("[INGEST] Issue info unavailable for %s, using listed shares: %v\n", stockName, err)
		}

		if divi, err := c.StockDividend(ctx, crno); err == nil {
			q.DividendPerShare = ParseAmount(divi["cashDvdPayAmt"])
		} else {
			fmt.Printf("[INGEST] Dividend info unavailable for %s, assuming none: %v\n", stockName, err)
		}
	}

	return q, nil
}
