// This file holds the alert rules and the triggered-alert history.
package watchlist

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"findash/pkg/core/health"
)

// Alert condition kinds.
const (
	AlertPriceAbove  = "price_above"
	AlertPriceBelow  = "price_below"
	AlertScoreAbove  = "score_above"
	AlertScoreBelow  = "score_below"
	AlertGradeChange = "grade_change"
)

// Alert is one standing condition on a watched company.
type Alert struct {
	ID        string    `json:"id" yaml:"id"`
	Kind      string    `json:"kind" yaml:"kind"`
	Threshold float64   `json:"threshold" yaml:"threshold"`
	Enabled   bool      `json:"enabled" yaml:"enabled"`
	CreatedAt time.Time `json:"created_at" yaml:"created_at"`
}

// TriggeredAlert records one alert firing.
type TriggeredAlert struct {
	ID          string    `json:"id" yaml:"id"`
	AlertID     string    `json:"alert_id" yaml:"alert_id"`
	CorpCode    string    `json:"corp_code" yaml:"corp_code"`
	CorpName    string    `json:"corp_name" yaml:"corp_name"`
	Kind        string    `json:"kind" yaml:"kind"`
	Message     string    `json:"message" yaml:"message"`
	Value       float64   `json:"value" yaml:"value"`
	Threshold   float64   `json:"threshold" yaml:"threshold"`
	TriggeredAt time.Time `json:"triggered_at" yaml:"triggered_at"`
	Read        bool      `json:"read" yaml:"read"`
}

// historyLimit caps retained triggered alerts; oldest entries roll off.
const historyLimit = 100

// History is the rolling record of triggered alerts, newest first.
type History struct {
	Entries []TriggeredAlert `json:"entries" yaml:"entries"`
}

func (h *History) add(t TriggeredAlert) {
	h.Entries = append([]TriggeredAlert{t}, h.Entries...)
	if len(h.Entries) > historyLimit {
		h.Entries = h.Entries[:historyLimit]
	}
}

// Recent returns up to n newest entries.
func (h *History) Recent(n int) []TriggeredAlert {
	if n > len(h.Entries) {
		n = len(h.Entries)
	}
	out := make([]TriggeredAlert, n)
	copy(out, h.Entries[:n])
	return out
}

func (h History) UnreadCount() int {
	var n int
	for _, e := range h.Entries {
		if !e.Read {
			n++
		}
	}
	return n
}

func (h *History) MarkRead(id string) bool {
	for i := range h.Entries {
		if h.Entries[i].ID == id {
			h.Entries[i].Read = true
			return true
		}
	}
	return false
}

func (h *History) MarkAllRead() {
	for i := range h.Entries {
		h.Entries[i].Read = true
	}
}

// AddAlert attaches a condition to a watched company.
func (m *Manager) AddAlert(corpCode, kind string, threshold float64) (Alert, error) {
	switch kind {
	case AlertPriceAbove, AlertPriceBelow, AlertScoreAbove, AlertScoreBelow, AlertGradeChange:
	default:
		return Alert{}, fmt.Errorf("unknown alert kind: %s", kind)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	it, ok := m.items[corpCode]
	if !ok {
		return Alert{}, fmt.Errorf("not on watchlist: %s", corpCode)
	}
	a := Alert{
		ID:        uuid.NewString(),
		Kind:      kind,
		Threshold: threshold,
		Enabled:   true,
		CreatedAt: time.Now(),
	}
	it.Alerts = append(it.Alerts, a)
	return a, m.persist()
}

func (m *Manager) RemoveAlert(corpCode, alertID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	it, ok := m.items[corpCode]
	if !ok {
		return fmt.Errorf("not on watchlist: %s", corpCode)
	}
	for i, a := range it.Alerts {
		if a.ID == alertID {
			it.Alerts = append(it.Alerts[:i], it.Alerts[i+1:]...)
			return m.persist()
		}
	}
	return fmt.Errorf("alert not found: %s", alertID)
}

// ToggleAlert flips an alert's enabled flag and returns the new state.
func (m *Manager) ToggleAlert(corpCode, alertID string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	it, ok := m.items[corpCode]
	if !ok {
		return false, fmt.Errorf("not on watchlist: %s", corpCode)
	}
	for i := range it.Alerts {
		if it.Alerts[i].ID == alertID {
			it.Alerts[i].Enabled = !it.Alerts[i].Enabled
			return it.Alerts[i].Enabled, m.persist()
		}
	}
	return false, fmt.Errorf("alert not found: %s", alertID)
}

// UpdateFinancialData records the latest price and health score for a watched
// company, evaluates its enabled alerts against the new values, appends any
// firings to the history, and returns them.
func (m *Manager) UpdateFinancialData(corpCode string, price float64, healthScore int) ([]TriggeredAlert, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	it, ok := m.items[corpCode]
	if !ok {
		return nil, fmt.Errorf("not on watchlist: %s", corpCode)
	}

	prevScore := it.LastHealthScore
	it.LastPrice = price
	it.LastHealthScore = healthScore
	it.LastUpdated = time.Now()

	var fired []TriggeredAlert
	for _, a := range it.Alerts {
		if !a.Enabled {
			continue
		}
		var hit bool
		var value float64
		var msg string
		switch a.Kind {
		case AlertPriceAbove:
			hit, value = price > a.Threshold, price
			msg = fmt.Sprintf("%s price %.0f rose above %.0f", it.CorpName, price, a.Threshold)
		case AlertPriceBelow:
			hit, value = price < a.Threshold, price
			msg = fmt.Sprintf("%s price %.0f fell below %.0f", it.CorpName, price, a.Threshold)
		case AlertScoreAbove:
			hit, value = float64(healthScore) > a.Threshold, float64(healthScore)
			msg = fmt.Sprintf("%s health score %d rose above %.0f", it.CorpName, healthScore, a.Threshold)
		case AlertScoreBelow:
			hit, value = float64(healthScore) < a.Threshold, float64(healthScore)
			msg = fmt.Sprintf("%s health score %d fell below %.0f", it.CorpName, healthScore, a.Threshold)
		case AlertGradeChange:
			hit, value = health.Grade(healthScore) != health.Grade(prevScore) && prevScore != 0, float64(healthScore)
			msg = fmt.Sprintf("%s grade changed: %s to %s", it.CorpName, health.Grade(prevScore), health.Grade(healthScore))
		}
		if !hit {
			continue
		}
		t := TriggeredAlert{
			ID:          uuid.NewString(),
			AlertID:     a.ID,
			CorpCode:    it.CorpCode,
			CorpName:    it.CorpName,
			Kind:        a.Kind,
			Message:     msg,
			Value:       value,
			Threshold:   a.Threshold,
			TriggeredAt: time.Now(),
		}
		m.hist.add(t)
		fired = append(fired, t)
	}

	return fired, m.persist()
}

// HistoryView returns a copy of the alert history.
func (m *Manager) HistoryView() History {
	m.mu.RLock()
	defer m.mu.RUnlock()
	entries := make([]TriggeredAlert, len(m.hist.Entries))
	copy(entries, m.hist.Entries)
	return History{Entries: entries}
}

// MarkAlertRead marks one history entry as read.
func (m *Manager) MarkAlertRead(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.hist.MarkRead(id) {
		return fmt.Errorf("history entry not found: %s", id)
	}
	return m.persist()
}

// MarkAllAlertsRead marks the whole history as read.
func (m *Manager) MarkAllAlertsRead() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.hist.MarkAllRead()
	return m.persist()
}
