// Package ingest integrates the Korean public financial-data APIs: DART
// (opendart.fss.or.kr) for corp directory and statements, and data.go.kr for
// market quotes. This file holds the shared HTTP plumbing.
package ingest

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	jsonrepair "github.com/RealAlexandreAI/json-repair"
)

// UserAgent identifies the client to the public data gateways.
const UserAgent = "findash/1.0 (financial analysis; contact: admin@findash.local)"

func newHTTPClient() *http.Client {
	return &http.Client{Timeout: 30 * time.Second}
}

// fetch downloads url and returns the raw body.
func fetch(ctx context.Context, client *http.Client, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", UserAgent)

	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("upstream returned status %d for %s", resp.StatusCode, url)
	}

	return io.ReadAll(resp.Body)
}

// decodeLenient unmarshals JSON, falling back to automatic repair for the
// occasionally malformed payloads the public gateways emit (BOM prefixes,
// trailing commas, bare keys).
func decodeLenient(data []byte, v interface{}) error {
	if err := json.Unmarshal(data, v); err == nil {
		return nil
	}
	repaired, err := jsonrepair.RepairJSON(string(data))
	if err != nil {
		return fmt.Errorf("JSON repair failed: %v", err)
	}
	if err := json.Unmarshal([]byte(repaired), v); err != nil {
		return fmt.Errorf("unmarshal after repair: %w", err)
	}
	return nil
}
