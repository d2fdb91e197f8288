package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"
)

// progressRepo keeps progress in a single row with id 1.
type progressRepo struct {
	drv *entsql.Driver
}

type progressRow struct {
	Stars             int    `sql:"stars"`
	Streak            int    `sql:"streak"`
	LastPracticeDate  string `sql:"last_practice_date"`
	CompletedProblems string `sql:"completed_problems"`
	Achievements      string `sql:"achievements"`
	UpdatedAt         int64  `sql:"updated_at"`
}

func (r *progressRepo) Load(ctx context.Context) (*ProgressData, error) {
	sel := builder().Select(
		"stars", "streak", "last_practice_date", "completed_problems", "achievements", "updated_at",
	).From(entsql.Table(tableProgress)).Where(entsql.EQ("id", 1))

	var rows []progressRow
	if err := scanAll(ctx, r.drv, sel, &rows); err != nil {
		return nil, fmt.Errorf("load progress: %w", err)
	}
	if len(rows) == 0 {
		return nil, nil
	}

	row := rows[0]
	data := &ProgressData{
		Stars:            row.Stars,
		Streak:           row.Streak,
		LastPracticeDate: row.LastPracticeDate,
		UpdatedAt:        time.UnixMilli(row.UpdatedAt),
	}
	if err := decodeList(row.CompletedProblems, &data.CompletedProblems); err != nil {
		return nil, fmt.Errorf("decode completed problems: %w", err)
	}
	if err := decodeList(row.Achievements, &data.Achievements); err != nil {
		return nil, fmt.Errorf("decode achievements: %w", err)
	}
	return data, nil
}

func (r *progressRepo) Save(ctx context.Context, data ProgressData) error {
	completed, err := encodeList(data.CompletedProblems)
	if err != nil {
		return fmt.Errorf("encode completed problems: %w", err)
	}
	achievements, err := encodeList(data.Achievements)
	if err != nil {
		return fmt.Errorf("encode achievements: %w", err)
	}
	updated := data.UpdatedAt
	if updated.IsZero() {
		updated = time.Now()
	}

	query, args := builder().Insert(tableProgress).
		Columns("id", "stars", "streak", "last_practice_date", "completed_problems", "achievements", "updated_at").
		Values(1, data.Stars, data.Streak, data.LastPracticeDate, completed, achievements, updated.UnixMilli()).
		OnConflict(entsql.ConflictColumns("id"), entsql.ResolveWithNewValues()).
		Query()
	if err := r.drv.Exec(ctx, query, args, nil); err != nil {
		return fmt.Errorf("save progress: %w", err)
	}
	return nil
}

func (r *progressRepo) Reset(ctx context.Context) error {
	query, args := builder().Delete(tableProgress).Where(entsql.EQ("id", 1)).Query()
	if err := r.drv.Exec(ctx, query, args, nil); err != nil {
		return fmt.Errorf("reset progress: %w", err)
	}
	return nil
}

func encodeList(items []string) (string, error) {
	if items == nil {
		items = []string{}
	}
	b, err := json.Marshal(items)
	return string(b), err
}

func decodeList(raw string, dst *[]string) error {
	if raw == "" {
		*dst = []string{}
		return nil
	}
	if err := json.Unmarshal([]byte(raw), dst); err != nil {
		return err
	}
	if *dst == nil {
		*dst = []string{}
	}
	return nil
}
