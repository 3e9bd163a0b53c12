package aggregator

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/strrl/model-exploder/internal/db"
)

func writeCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "model_expanded.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func newAggregator(t *testing.T) *Aggregator {
	t.Helper()
	database, err := db.Open()
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })
	return NewAggregator(database)
}

func TestSummarize(t *testing.T) {
	path := writeCSV(t, "weather in seattle,GetWeather\n"+
		"weather in nyc,GetWeather\n"+
		"weather in nyc,GetWeather\n"+
		"is it raining,GetWeather\n"+
		"hello,Greet\n")

	summary, err := newAggregator(t).Summarize(context.Background(), path)
	require.NoError(t, err)

	assert.Equal(t, 5, summary.Rows)
	assert.Equal(t, []IntentSummary{
		{Intent: "GetWeather", Rows: 4, DistinctUtterances: 3, DuplicateRows: 1},
		{Intent: "Greet", Rows: 1, DistinctUtterances: 1, DuplicateRows: 0},
	}, summary.Intents)
	assert.Equal(t, 1, summary.DuplicateRows())
}

func TestSummarize_EmptyFile(t *testing.T) {
	path := writeCSV(t, "")

	summary, err := newAggregator(t).Summarize(context.Background(), path)
	require.NoError(t, err)
	assert.Zero(t, summary.Rows)
	assert.Empty(t, summary.Intents)
}

func TestSummarize_MissingFile(t *testing.T) {
	_, err := newAggregator(t).Summarize(context.Background(), filepath.Join(t.TempDir(), "nope.csv"))
	require.Error(t, err)
}
