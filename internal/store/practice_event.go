package store

import (
	"context"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"
)

type practiceEventRow struct {
	ID          int64  `sql:"id"`
	Sequence    int64  `sql:"sequence"`
	CreatedAt   int64  `sql:"created_at"`
	ProblemID   string `sql:"problem_id"`
	Action      string `sql:"action"`
	Category    string `sql:"category"`
	Subcategory string `sql:"subcategory"`
	Difficulty  string `sql:"difficulty"`
	Detail      string `sql:"detail"`
	Correct     bool   `sql:"correct"`
	Stars       int    `sql:"stars"`
}

func (r *eventRepo) AppendPracticeEvent(ctx context.Context, data PracticeEventData) error {
	if data.ProblemID == "" || data.Action == "" {
		return fmt.Errorf("practice event needs a problem ID and an action")
	}
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	query, args := builder().Insert(tablePracticeEvents).
		Columns("sequence", "created_at", "problem_id", "action", "category",
			"subcategory", "difficulty", "detail", "correct", "stars").
		Values(seqNum, time.Now().UnixMilli(), data.ProblemID, data.Action, data.Category,
			data.Subcategory, data.Difficulty, data.Detail, data.Correct, data.Stars).
		Query()
	if err := r.drv.Exec(ctx, query, args, nil); err != nil {
		return fmt.Errorf("save practice event: %w", err)
	}
	return nil
}

func (r *eventRepo) QueryPracticeEvents(ctx context.Context, opts QueryOpts) ([]PracticeEventRecord, error) {
	sel := builder().Select(
		"id", "sequence", "created_at", "problem_id", "action", "category",
		"subcategory", "difficulty", "detail", "correct", "stars",
	).From(entsql.Table(tablePracticeEvents))

	var rows []practiceEventRow
	if err := scanAll(ctx, r.drv, applyOpts(sel, opts), &rows); err != nil {
		return nil, fmt.Errorf("query practice events: %w", err)
	}

	records := make([]PracticeEventRecord, len(rows))
	for i, row := range rows {
		records[i] = PracticeEventRecord{
			ID:        row.ID,
			Sequence:  row.Sequence,
			Timestamp: time.UnixMilli(row.CreatedAt),
			PracticeEventData: PracticeEventData{
				ProblemID:   row.ProblemID,
				Action:      row.Action,
				Category:    row.Category,
				Subcategory: row.Subcategory,
				Difficulty:  row.Difficulty,
				Detail:      row.Detail,
				Correct:     row.Correct,
				Stars:       row.Stars,
			},
		}
	}
	return records, nil
}
