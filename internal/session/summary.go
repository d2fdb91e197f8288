package session

import (
	"sort"

	"github.com/abhisek/mathmentor/internal/store"
)

// CategorySummary aggregates practice activity for one category.
type CategorySummary struct {
	Category   string  `json:"category"`
	Served     int     `json:"served"`
	Solved     int     `json:"solved"`
	Revealed   int     `json:"revealed"`
	Hints      int     `json:"hints"`
	Steps      int     `json:"steps"`
	StepsRight int     `json:"stepsRight"`
	Stars      int     `json:"stars"`
	Accuracy   float64 `json:"accuracy"` // StepsRight / Steps
}

// Summary holds the data displayed by the stats command.
type Summary struct {
	Total      CategorySummary   `json:"total"`
	Categories []CategorySummary `json:"categories"`
}

// Summarize folds practice events into per-category totals, sorted by
// category name.
func Summarize(events []store.PracticeEventRecord) *Summary {
	byCat := map[string]*CategorySummary{}
	total := CategorySummary{Category: "all"}

	for _, e := range events {
		cs := byCat[e.Category]
		if cs == nil {
			cs = &CategorySummary{Category: e.Category}
			byCat[e.Category] = cs
		}
		for _, c := range []*CategorySummary{cs, &total} {
			switch e.Action {
			case store.ActionServed:
				c.Served++
			case store.ActionComplete:
				c.Solved++
				c.Stars += e.Stars
			case store.ActionReveal:
				c.Revealed++
			case store.ActionHint:
				c.Hints++
			case store.ActionStep:
				c.Steps++
				if e.Correct {
					c.StepsRight++
				}
			}
		}
	}

	s := &Summary{}
	for _, cs := range byCat {
		cs.Accuracy = accuracy(cs)
		s.Categories = append(s.Categories, *cs)
	}
	sort.Slice(s.Categories, func(i, j int) bool {
		return s.Categories[i].Category < s.Categories[j].Category
	})
	total.Accuracy = accuracy(&total)
	s.Total = total
	return s
}

func accuracy(c *CategorySummary) float64 {
	if c.Steps == 0 {
		return 0
	}
	return float64(c.StepsRight) / float64(c.Steps)
}
