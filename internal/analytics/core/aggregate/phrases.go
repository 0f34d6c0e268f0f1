package aggregate

import (
	"errors"
	"slices"
	"strings"
	"time"

	"guild-analytics-service/internal/analytics/core/domain"
)

const (
	MinPhraseWindow = 1
	MaxPhraseWindow = 20
)

var ErrInvalidWindowSize = errors.New("phrase window size must be between 1 and 20")

// PhraseAggregator keeps the stripped text of every message per day and counts
// phrases on demand. Counts are never cached: a different window size yields a
// different phrase set.
type PhraseAggregator struct {
	texts  map[domain.Date][]string
	window *DateWindow
	loc    *time.Location
}

func NewPhraseAggregator(window *DateWindow, loc *time.Location) *PhraseAggregator {
	return &PhraseAggregator{
		texts:  make(map[domain.Date][]string),
		window: window,
		loc:    loc,
	}
}

// Ingest stores the stripped text of m. Deleted and empty messages are skipped.
func (a *PhraseAggregator) Ingest(m domain.MessageRecord) bool {
	day := domain.DateOf(m.EventTime(), a.loc)
	widened := a.window.Observe(day)
	a.Add(day, m.StrippedContent, m.IsDeleted())
	return widened
}

// Add stores text under day.
func (a *PhraseAggregator) Add(day domain.Date, text string, deleted bool) {
	if deleted || strings.TrimSpace(text) == "" {
		return
	}
	a.texts[day] = append(a.texts[day], text)
}

// Materialize counts every windowSize-token phrase of the texts stored for
// days in [from, to]. Rows come out in first-occurrence order.
func (a *PhraseAggregator) Materialize(from, to domain.Date, windowSize int) ([]domain.PhraseRow, error) {
	if windowSize < MinPhraseWindow || windowSize > MaxPhraseWindow {
		return nil, ErrInvalidWindowSize
	}

	days := make([]domain.Date, 0, len(a.texts))
	for d := range a.texts {
		if d.Within(from, to) {
			days = append(days, d)
		}
	}
	slices.SortFunc(days, domain.Date.Compare)

	index := make(map[string]int)
	var rows []domain.PhraseRow
	for _, d := range days {
		for _, text := range a.texts[d] {
			for _, phrase := range Phrases(text, windowSize) {
				if i, ok := index[phrase]; ok {
					rows[i].Hits++
					continue
				}
				index[phrase] = len(rows)
				rows = append(rows, domain.PhraseRow{Phrase: phrase, Hits: 1})
			}
		}
	}
	return rows, nil
}

// Phrases returns every run of windowSize consecutive whitespace-separated
// tokens of text, joined by single spaces.
func Phrases(text string, windowSize int) []string {
	tokens := strings.Fields(text)
	if windowSize <= 0 || len(tokens) < windowSize {
		return nil
	}
	out := make([]string, 0, len(tokens)-windowSize+1)
	for i := 0; i+windowSize <= len(tokens); i++ {
		out = append(out, strings.Join(tokens[i:i+windowSize], " "))
	}
	return out
}
