package aggregate

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserIngestCountsAndAverages(t *testing.T) {
	w := NewDateWindow()
	a := NewUserAggregator(w, time.UTC)

	a.Ingest(message("c1", "u1", "one two three", at(2025, time.May, 1, 9)))
	a.Ingest(message("c1", "u1", "four", at(2025, time.May, 1, 10)))
	a.Ingest(message("c2", "u2", "héllo", at(2025, time.May, 2, 8)))

	rows := a.Materialize(w.From(), w.To())
	require.Len(t, rows, 2)

	u1 := rows[0]
	assert.Equal(t, "u1", u1.ID)
	assert.Equal(t, int64(2), u1.TotalMessage)
	assert.Equal(t, int64(4), u1.TotalWord)
	assert.Equal(t, int64(17), u1.TotalChar)
	assert.Equal(t, int64(2), u1.AverageWord)
	assert.Equal(t, int64(8), u1.AverageChar)
	assert.Equal(t, at(2025, time.May, 1, 9), u1.FirstSeen)
	assert.Equal(t, at(2025, time.May, 1, 10), u1.LastSeen)

	// characters are counted as runes
	assert.Equal(t, int64(5), rows[1].TotalChar)
}

func TestUserAverageMatchesTotals(t *testing.T) {
	w := NewDateWindow()
	a := NewUserAggregator(w, time.UTC)

	texts := []string{"a", "b c", "d e f", "g h i j", "k l m n o"}
	for i, txt := range texts {
		a.Ingest(message("c1", "u1", txt, at(2025, time.May, 1+i%3, 10)))
	}

	for d := 1; d <= 3; d++ {
		s, ok := a.Day(day(2025, time.May, d), "u1")
		require.True(t, ok)
		assert.Equal(t, s.TotalWord/s.TotalMessage, s.AverageWord)
		assert.Equal(t, s.TotalChar/s.TotalMessage, s.AverageChar)
	}

	row := a.Materialize(w.From(), w.To())[0]
	assert.Equal(t, int64(15), row.TotalWord)
	assert.Equal(t, row.TotalWord/row.TotalMessage, row.AverageWord)
	assert.Equal(t, row.TotalChar/row.TotalMessage, row.AverageChar)
}

func TestUserIgnoresDeletions(t *testing.T) {
	w := NewDateWindow()
	a := NewUserAggregator(w, time.UTC)

	widened := a.Ingest(deletion("c1", "u1", at(2025, time.May, 1, 9), at(2025, time.May, 3, 9)))
	assert.True(t, widened)
	assert.Empty(t, a.Materialize(w.From(), w.To()))
	assert.Equal(t, day(2025, time.May, 3), w.End())
}

func TestUserMaterializeRespectsRange(t *testing.T) {
	w := NewDateWindow()
	a := NewUserAggregator(w, time.UTC)

	a.Ingest(message("c1", "u1", "x", at(2025, time.May, 1, 9)))
	a.Ingest(message("c1", "u1", "x", at(2025, time.May, 5, 9)))
	a.Ingest(message("c1", "u2", "x", at(2025, time.May, 9, 9)))

	rows := a.Materialize(day(2025, time.May, 2), day(2025, time.May, 6))
	require.Len(t, rows, 1)
	assert.Equal(t, "u1", rows[0].ID)
	assert.Equal(t, int64(1), rows[0].TotalMessage)
	assert.Equal(t, at(2025, time.May, 5, 9), rows[0].FirstSeen)
}

func TestUserNamesFollowLatestMessage(t *testing.T) {
	w := NewDateWindow()
	a := NewUserAggregator(w, time.UTC)

	late := message("c1", "u1", "x", at(2025, time.May, 4, 9))
	late.SenderDisplayName = "New Name"
	early := message("c1", "u1", "x", at(2025, time.May, 1, 9))
	early.SenderDisplayName = "Old Name"

	a.Ingest(late)
	a.Ingest(early)

	rows := a.Materialize(w.From(), w.To())
	require.Len(t, rows, 1)
	assert.Equal(t, "New Name", rows[0].DisplayName)
	assert.Equal(t, at(2025, time.May, 1, 9), rows[0].FirstSeen)
}
