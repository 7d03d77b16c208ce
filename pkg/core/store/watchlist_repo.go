package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"findash/pkg/core/watchlist"
)

// WatchlistRepo implements watchlist.Repository on Postgres. The whole state
// lives in one JSONB row, matching the snapshot layout and keeping the file
// and database backends interchangeable.
type WatchlistRepo struct{}

func NewWatchlistRepo() *WatchlistRepo {
	return &WatchlistRepo{}
}

func (r *WatchlistRepo) Load() (*watchlist.State, error) {
	pool := GetPool()
	if pool == nil {
		return nil, fmt.Errorf("database pool not initialized")
	}

	query := `SELECT state_json FROM watchlist_state WHERE id = 1`

	var jsonData []byte
	err := pool.QueryRow(context.Background(), query).Scan(&jsonData)
	if err != nil {
		if err == pgx.ErrNoRows {
			return &watchlist.State{}, nil
		}
		return nil, fmt.Errorf("failed to load watchlist: %w", err)
	}

	var state watchlist.State
	if err := json.Unmarshal(jsonData, &state); err != nil {
		return nil, fmt.Errorf("failed to unmarshal watchlist: %w", err)
	}
	return &state, nil
}

func (r *WatchlistRepo) Save(state *watchlist.State) error {
	pool := GetPool()
	if pool == nil {
		return fmt.Errorf("database pool not initialized")
	}

	jsonData, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("failed to marshal watchlist: %w", err)
	}

	query := `
		INSERT INTO watchlist_state (id, state_json, updated_at)
		VALUES (1, $1, $2)
		ON CONFLICT (id)
		DO UPDATE SET
			state_json = EXCLUDED.state_json,
			updated_at = EXCLUDED.updated_at;
	`

	_, err = pool.Exec(context.Background(), query, jsonData, time.Now())
	if err != nil {
		return fmt.Errorf("failed to save watchlist: %w", err)
	}
	return nil
}
