package aggregator

import (
	"context"
	"database/sql"
	"fmt"
	"os"

	"github.com/strrl/model-exploder/internal/db"
)

type IntentSummary struct {
	Intent             string
	Rows               int
	DistinctUtterances int
	DuplicateRows      int
}

type Summary struct {
	Path    string
	Rows    int
	Intents []IntentSummary
}

// Aggregator summarizes an expanded CSV file per intent.
type Aggregator struct {
	db *sql.DB
}

func NewAggregator(database *sql.DB) *Aggregator {
	return &Aggregator{db: database}
}

// Summarize groups the rows of an expanded file by intent. Intents are
// ordered by row count, largest first, then by name.
func (a *Aggregator) Summarize(ctx context.Context, path string) (*Summary, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat %s: %w", path, err)
	}

	summary := &Summary{Path: path}
	if info.Size() == 0 {
		return summary, nil
	}

	query := fmt.Sprintf(`
		SELECT
			COALESCE(intent, '') AS intent,
			COUNT(*) AS row_count,
			COUNT(DISTINCT COALESCE(utterance, '')) AS distinct_count
		FROM read_csv(%s,
			header = false,
			delim = ',',
			quote = '"',
			escape = '"',
			auto_detect = false,
			columns = {'utterance': 'VARCHAR', 'intent': 'VARCHAR'},
			ignore_errors = true
		)
		GROUP BY 1
		ORDER BY row_count DESC, intent ASC
	`, db.QuoteLiteral(path))

	rows, err := a.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to summarize %s: %w", path, err)
	}
	defer rows.Close()

	for rows.Next() {
		var s IntentSummary
		if err := rows.Scan(&s.Intent, &s.Rows, &s.DistinctUtterances); err != nil {
			return nil, fmt.Errorf("failed to scan summary row: %w", err)
		}
		s.DuplicateRows = s.Rows - s.DistinctUtterances
		summary.Rows += s.Rows
		summary.Intents = append(summary.Intents, s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return summary, nil
}

func (s *Summary) DuplicateRows() int {
	total := 0
	for _, intent := range s.Intents {
		total += intent.DuplicateRows
	}
	return total
}
