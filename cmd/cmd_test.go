package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/mathmentor/internal/sections"
)

func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	rootCmd.SetArgs(args)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	t.Cleanup(func() {
		rootCmd.SetArgs(nil)
		rootCmd.SetIn(nil)
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
	})
	err := rootCmd.Execute()
	return out.String(), err
}

func TestVersion(t *testing.T) {
	out, err := execute(t, "", "version")
	require.NoError(t, err)
	assert.Equal(t, "mathmentor "+version+"\n", out)
}

func TestNormalize_HideSolution(t *testing.T) {
	raw := "A triangle has base 6. Question: What is the area? Solution: Use the formula."
	out, err := execute(t, raw, "normalize", "--hide-solution=true", "-")
	require.NoError(t, err)
	assert.Contains(t, out, "triangle has base 6")
	assert.NotContains(t, out, "formula")
}

func TestNormalize_ReadsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "problem.txt")
	require.NoError(t, os.WriteFile(path, []byte("The costs are10dollars"), 0o644))

	out, err := execute(t, "", "normalize", "--hide-solution=false", path)
	require.NoError(t, err)
	assert.Contains(t, out, "costs are 10 dollars")
}

func TestNormalize_MissingFile(t *testing.T) {
	_, err := execute(t, "", "normalize", "--hide-solution=false", filepath.Join(t.TempDir(), "nope.txt"))
	assert.Error(t, err)
}

func TestSegment_JSON(t *testing.T) {
	out, err := execute(t, "Find x.\nQuestion: What is x?\nSolution: x is 4.", "segment")
	require.NoError(t, err)

	var sec sections.ProblemSections
	require.NoError(t, json.Unmarshal([]byte(out), &sec))
	assert.Contains(t, sec.Question, "What is x?")
	assert.Contains(t, sec.Solution, "x is 4")
}

func TestGeometry(t *testing.T) {
	raw := "Triangle with A (0,0), B (4, 0), C (2,3). Angle A is 45."

	out, err := execute(t, raw, "geometry", "--describe=false")
	require.NoError(t, err)
	var scene map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &scene))
	assert.Equal(t, "triangle", scene["kind"])

	out, err = execute(t, raw, "geometry", "--describe=true")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "Triangle"), out)
}

func TestFunctions(t *testing.T) {
	out, err := execute(t, "f(x) = x^2 - 4x + 3", "functions")
	require.NoError(t, err)
	var fns []string
	require.NoError(t, json.Unmarshal([]byte(out), &fns))
	assert.Equal(t, []string{"y = x^2 - 4x + 3"}, fns)

	out, err = execute(t, "", "functions")
	require.NoError(t, err)
	assert.Equal(t, "[]\n", out)
}

func TestAnalyze_HidesSolutionByDefault(t *testing.T) {
	raw := "Solve for x.\nQuestion: What is x if 2x + 3 = 7?\nSolution: Subtract 3 then divide."

	out, err := execute(t, raw, "analyze", "--category=algebra", "--show-solution=false", "--json=false")
	require.NoError(t, err)
	assert.Contains(t, out, "Question")
	assert.NotContains(t, out, "Subtract 3")

	out, err = execute(t, raw, "analyze", "--category=algebra", "--show-solution=true", "--json=false")
	require.NoError(t, err)
	assert.Contains(t, out, "Subtract 3")
}

func TestAnalyze_JSON(t *testing.T) {
	out, err := execute(t, "Question: What is 2 + 2?", "analyze", "--category=arithmetic", "--show-solution=false", "--json=true")
	require.NoError(t, err)
	var v map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &v))
}

func TestConcept(t *testing.T) {
	out, err := execute(t, "", "concept", "-c", "algebra", "-s", "quadratic", "--json=false")
	require.NoError(t, err)
	out = ansi.Strip(out)
	assert.Contains(t, out, "Quadratic Equations")
	assert.Contains(t, out, "• x² + 5x + 6 = 0")
	assert.Contains(t, out, "• Graph is a parabola")

	out, err = execute(t, "", "concept", "-c", "calculus", "-s", "integrals", "--json=true")
	require.NoError(t, err)
	var c map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &c))
	assert.Equal(t, "Integrals", c["title"])

	_, err = execute(t, "", "concept", "-c", "geometry", "-s", "circles", "--json=false")
	assert.ErrorContains(t, err, "no concept card for geometry/circles")
}

func TestLogLevel_Invalid(t *testing.T) {
	_, err := execute(t, "", "version", "--log-level=loud")
	assert.ErrorContains(t, err, "invalid --log-level")
	_, err = execute(t, "", "version", "--log-level=warn")
	assert.NoError(t, err)
}

func TestProgress_ShowAndReset(t *testing.T) {
	db := filepath.Join(t.TempDir(), "nested", "mathmentor.db")

	out, err := execute(t, "", "progress", "show", "--db="+db, "--json=false")
	require.NoError(t, err)
	assert.Contains(t, out, "Stars:          0")
	assert.Contains(t, out, "never")

	_, err = execute(t, "", "progress", "reset", "--db="+db, "--yes=false")
	assert.ErrorContains(t, err, "--yes")

	_, err = execute(t, "", "progress", "reset", "--db="+db, "--yes=true")
	require.NoError(t, err)
}

func TestLLM_EmptyStore(t *testing.T) {
	db := filepath.Join(t.TempDir(), "mathmentor.db")

	out, err := execute(t, "", "llm", "list", "--db="+db, "--purpose=", "--failed=false")
	require.NoError(t, err)
	assert.Contains(t, out, "No LLM events found.")

	out, err = execute(t, "", "llm", "stats", "--db="+db)
	require.NoError(t, err)
	assert.Contains(t, out, "No LLM usage recorded yet.")

	_, err = execute(t, "", "llm", "view", "7", "--db="+db)
	assert.ErrorContains(t, err, "not found")

	_, err = execute(t, "", "llm", "view", "abc", "--db="+db)
	assert.ErrorContains(t, err, "invalid ID")
}

func TestFormatCost(t *testing.T) {
	assert.Equal(t, "$0.0042", formatCost(0.0042))
	assert.Equal(t, "$1.50", formatCost(1.5))
	assert.Equal(t, "abc", truncate("abcdef", 3))
	assert.Equal(t, "ab", truncate("ab", 3))
}
