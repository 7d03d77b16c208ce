// Package watchlist manages the tracked-company list: membership, bookmarks,
// memos, tags, price/score alerts and alert history.
package watchlist

import (
	"encoding/json"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Item is one tracked company.
type Item struct {
	ID         string    `json:"id" yaml:"id"`
	CorpCode   string    `json:"corp_code" yaml:"corp_code"`
	CorpName   string    `json:"corp_name" yaml:"corp_name"`
	StockCode  string    `json:"stock_code" yaml:"stock_code"`
	AddedAt    time.Time `json:"added_at" yaml:"added_at"`
	Bookmarked bool      `json:"bookmarked" yaml:"bookmarked"`
	Memo       string    `json:"memo" yaml:"memo"`
	Tags       []string  `json:"tags" yaml:"tags"`
	Alerts     []Alert   `json:"alerts" yaml:"alerts"`

	// Last observed values, refreshed by UpdateFinancialData.
	LastPrice       float64   `json:"last_price" yaml:"last_price"`
	LastHealthScore int       `json:"last_health_score" yaml:"last_health_score"`
	LastUpdated     time.Time `json:"last_updated" yaml:"last_updated"`
}

// Repository persists the watchlist state.
type Repository interface {
	Load() (*State, error)
	Save(*State) error
}

// State is the full persisted watchlist: items plus alert history.
type State struct {
	Items   []Item  `json:"items" yaml:"items"`
	History History `json:"history" yaml:"history"`
}

// Manager holds the watchlist in memory and writes through to the repository
// after every mutation. Safe for concurrent use.
type Manager struct {
	mu    sync.RWMutex
	repo  Repository
	items map[string]*Item // keyed by corp code
	hist  History
}

// NewManager loads existing state from repo. A missing state file is treated
// as an empty watchlist.
func NewManager(repo Repository) (*Manager, error) {
	m := &Manager{repo: repo, items: make(map[string]*Item)}
	state, err := repo.Load()
	if err != nil {
		return nil, fmt.Errorf("watchlist load failed: %w", err)
	}
	if state != nil {
		for i := range state.Items {
			it := state.Items[i]
			m.items[it.CorpCode] = &it
		}
		m.hist = state.History
	}
	return m, nil
}

func (m *Manager) persist() error {
	state := &State{Items: m.snapshot(), History: m.hist}
	return m.repo.Save(state)
}

func (m *Manager) snapshot() []Item {
	items := make([]Item, 0, len(m.items))
	for _, it := range m.items {
		items = append(items, *it)
	}
	sort.Slice(items, func(i, j int) bool { return items[i].AddedAt.Before(items[j].AddedAt) })
	return items
}

// Add registers a company. Adding an existing corp code is a no-op returning
// the existing item.
func (m *Manager) Add(corpCode, corpName, stockCode string) (Item, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if existing, ok := m.items[corpCode]; ok {
		return *existing, nil
	}
	it := &Item{
		ID:        uuid.NewString(),
		CorpCode:  corpCode,
		CorpName:  corpName,
		StockCode: stockCode,
		AddedAt:   time.Now(),
	}
	m.items[corpCode] = it
	if err := m.persist(); err != nil {
		delete(m.items, corpCode)
		return Item{}, err
	}
	return *it, nil
}

// Remove drops a company and its alerts.
func (m *Manager) Remove(corpCode string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.items[corpCode]; !ok {
		return fmt.Errorf("not on watchlist: %s", corpCode)
	}
	delete(m.items, corpCode)
	return m.persist()
}

func (m *Manager) Has(corpCode string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.items[corpCode]
	return ok
}

func (m *Manager) Get(corpCode string) (Item, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	it, ok := m.items[corpCode]
	if !ok {
		return Item{}, false
	}
	return *it, true
}

// All returns every item ordered by time added.
func (m *Manager) All() []Item {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.snapshot()
}

func (m *Manager) ToggleBookmark(corpCode string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	it, ok := m.items[corpCode]
	if !ok {
		return false, fmt.Errorf("not on watchlist: %s", corpCode)
	}
	it.Bookmarked = !it.Bookmarked
	return it.Bookmarked, m.persist()
}

func (m *Manager) UpdateMemo(corpCode, memo string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	it, ok := m.items[corpCode]
	if !ok {
		return fmt.Errorf("not on watchlist: %s", corpCode)
	}
	it.Memo = memo
	return m.persist()
}

func (m *Manager) AddTag(corpCode, tag string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	it, ok := m.items[corpCode]
	if !ok {
		return fmt.Errorf("not on watchlist: %s", corpCode)
	}
	for _, t := range it.Tags {
		if t == tag {
			return nil
		}
	}
	it.Tags = append(it.Tags, tag)
	return m.persist()
}

func (m *Manager) RemoveTag(corpCode, tag string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	it, ok := m.items[corpCode]
	if !ok {
		return fmt.Errorf("not on watchlist: %s", corpCode)
	}
	for i, t := range it.Tags {
		if t == tag {
			it.Tags = append(it.Tags[:i], it.Tags[i+1:]...)
			return m.persist()
		}
	}
	return nil
}

// Bookmarked returns only bookmarked items.
func (m *Manager) Bookmarked() []Item {
	var out []Item
	for _, it := range m.All() {
		if it.Bookmarked {
			out = append(out, it)
		}
	}
	return out
}

// ByTag returns items carrying the tag.
func (m *Manager) ByTag(tag string) []Item {
	var out []Item
	for _, it := range m.All() {
		for _, t := range it.Tags {
			if t == tag {
				out = append(out, it)
				break
			}
		}
	}
	return out
}

// AllTags returns the distinct tags in use, sorted.
func (m *Manager) AllTags() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	seen := make(map[string]bool)
	for _, it := range m.items {
		for _, t := range it.Tags {
			seen[t] = true
		}
	}
	tags := make([]string, 0, len(seen))
	for t := range seen {
		tags = append(tags, t)
	}
	sort.Strings(tags)
	return tags
}

// Export serializes the full state as JSON for backup.
func (m *Manager) Export() ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return json.MarshalIndent(&State{Items: m.snapshot(), History: m.hist}, "", "  ")
}

// Import replaces the current state with a previously exported backup.
func (m *Manager) Import(data []byte) error {
	var state State
	if err := json.Unmarshal(data, &state); err != nil {
		return fmt.Errorf("import decode failed: %w", err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.items = make(map[string]*Item, len(state.Items))
	for i := range state.Items {
		it := state.Items[i]
		if it.ID == "" {
			it.ID = uuid.NewString()
		}
		m.items[it.CorpCode] = &it
	}
	m.hist = state.History
	return m.persist()
}
