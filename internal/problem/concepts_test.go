package problem

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/mathmentor/internal/markup"
)

func TestConceptFor(t *testing.T) {
	c, ok := ConceptFor("algebra", "quadratic")
	require.True(t, ok)
	assert.Equal(t, "Quadratic Equations", c.Title)
	assert.Len(t, c.KeyPoints, 3)

	_, ok = ConceptFor("geometry", "triangles")
	assert.False(t, ok)
	_, ok = ConceptFor("unknown", "linear")
	assert.False(t, ok)
}

func TestConcepts_KnownTopics(t *testing.T) {
	for category, cards := range Concepts {
		for sub, c := range cards {
			assert.True(t, hasTopic(Subcategories[category], sub), "%s/%s", category, sub)
			assert.NotEmpty(t, c.Title)
			assert.NotEmpty(t, c.Examples)
		}
	}
}

func TestConcepts_ExamplesTypeset(t *testing.T) {
	for category, cards := range Concepts {
		for sub, c := range cards {
			for _, ex := range c.Examples {
				for _, r := range markup.Render(markup.Partition(ex), markup.TerminalRenderer{}) {
					assert.Equal(t, markup.ModeMath, r.Mode, "%s/%s: %q", category, sub, ex)
				}
			}
		}
	}
}
