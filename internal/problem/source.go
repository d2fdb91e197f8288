package problem

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/abhisek/mathmentor/internal/llm"
)

// Source fetches problem text and tutoring help.
type Source interface {
	// Problem returns freshly generated problem text for p.
	Problem(ctx context.Context, p Params) (string, error)

	// Hint returns a hint for the step being worked on. Level starts at 1
	// and grows with every hint requested for the same problem.
	Hint(ctx context.Context, problem, currentStep string, level int) (string, error)

	// ValidateStep reports whether answer is a correct response to step.
	ValidateStep(ctx context.Context, problem, step, answer string) (bool, error)

	// FullSolution returns the worked solution, one step per line.
	FullSolution(ctx context.Context, problem string) ([]string, error)
}

// Config controls the behavior of the LLMSource.
type Config struct {
	// Validators run in order on every generated problem; the first failure
	// stops the pipeline.
	Validators []Validator

	// MaxTokens is the token budget for every response.
	MaxTokens int

	// Temperature controls LLM output randomness (0.0-1.0).
	Temperature float64

	// Structured asks for problems as {"problem": "..."} JSON. Turn it off
	// for models without structured output support.
	Structured bool

	// MaxAttempts bounds regeneration after a retryable validation failure.
	MaxAttempts int
}

// DefaultConfig returns a Config with the standard validator chain.
func DefaultConfig() Config {
	return Config{
		Validators: []Validator{
			&StructuralValidator{},
			&MarkupValidator{},
		},
		MaxTokens:   500,
		Temperature: 0.7,
		Structured:  true,
		MaxAttempts: 2,
	}
}

// Purpose labels recorded with every LLM request.
const (
	PurposeProblem      = "problem-gen"
	PurposeHint         = "hint"
	PurposeValidateStep = "validate-step"
	PurposeSolution     = "full-solution"
)

const (
	problemSystem  = "You are a mathematics teacher who creates clear, direct math problems."
	hintSystem     = "You are a helpful math tutor who provides progressive hints."
	validateSystem = `You are a mathematics validation system. Respond only with "true" or "false".`
	solutionSystem = "You are a mathematics teacher providing detailed step-by-step solutions."
)

// ProblemSchema is the structured output requested for problem generation.
var ProblemSchema = &llm.Schema{
	Name:        "practice-problem",
	Description: "A single math practice problem",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"problem": map[string]any{
				"type":        "string",
				"minLength":   1,
				"description": "The full problem text shown to the learner",
			},
		},
		"required":             []any{"problem"},
		"additionalProperties": false,
	},
}

// LLMSource implements Source on top of an llm.Provider.
type LLMSource struct {
	provider llm.Provider
	config   Config
}

// NewLLMSource creates an LLMSource with the given provider and config.
func NewLLMSource(provider llm.Provider, cfg Config) *LLMSource {
	if cfg.MaxAttempts < 1 {
		cfg.MaxAttempts = 1
	}
	return &LLMSource{provider: provider, config: cfg}
}

type problemOutput struct {
	Problem string `json:"problem"`
}

func (s *LLMSource) Problem(ctx context.Context, p Params) (string, error) {
	if err := p.Validate(); err != nil {
		return "", err
	}
	ctx = llm.WithPurpose(ctx, PurposeProblem)

	var lastErr error
	for attempt := 0; attempt < s.config.MaxAttempts; attempt++ {
		text, err := s.generateProblem(ctx, p)
		if err != nil {
			return "", err
		}
		verr := s.validate(text, p)
		if verr == nil {
			return text, nil
		}
		lastErr = verr
		if !verr.Retryable {
			break
		}
	}
	return "", lastErr
}

func (s *LLMSource) generateProblem(ctx context.Context, p Params) (string, error) {
	prompt := fmt.Sprintf("Generate a %s %s problem in the category of %s. "+
		"The problem should be clear, concise, and appropriate for the difficulty level. "+
		"Keep the response brief and direct.", p.Difficulty, p.Subcategory, p.Category)

	req := s.request(problemSystem, prompt)
	if s.config.Structured {
		req.Schema = ProblemSchema
	}

	resp, err := s.provider.Generate(ctx, req)
	if err != nil {
		return "", fmt.Errorf("LLM generation failed: %w", err)
	}
	if !s.config.Structured {
		return resp.Text(), nil
	}

	var out problemOutput
	if err := json.Unmarshal(resp.Content, &out); err != nil {
		return "", fmt.Errorf("failed to parse LLM response: %w", err)
	}
	return strings.TrimSpace(out.Problem), nil
}

// validate runs validators in order.
func (s *LLMSource) validate(text string, p Params) *ValidationError {
	for _, v := range s.config.Validators {
		if verr := v.Validate(text, p); verr != nil {
			return verr
		}
	}
	return nil
}

func (s *LLMSource) Hint(ctx context.Context, problem, currentStep string, level int) (string, error) {
	if level < 1 {
		level = 1
	}
	prompt := fmt.Sprintf("For the math problem: \"%s\" Current step: \"%s\" "+
		"Provide a level %d hint that guides without revealing the complete solution.",
		problem, currentStep, level)
	return s.text(llm.WithPurpose(ctx, PurposeHint), hintSystem, prompt)
}

func (s *LLMSource) ValidateStep(ctx context.Context, problem, step, answer string) (bool, error) {
	prompt := fmt.Sprintf("For the math problem: \"%s\" Step: \"%s\" User's answer: \"%s\" "+
		`Is this answer correct? Respond with only "true" or "false".`,
		problem, step, answer)
	reply, err := s.text(llm.WithPurpose(ctx, PurposeValidateStep), validateSystem, prompt)
	if err != nil {
		return false, err
	}
	return strings.Contains(strings.ToLower(reply), "true"), nil
}

func (s *LLMSource) FullSolution(ctx context.Context, problem string) ([]string, error) {
	prompt := fmt.Sprintf("For the math problem: \"%s\" Provide a detailed, step-by-step solution.", problem)
	reply, err := s.text(llm.WithPurpose(ctx, PurposeSolution), solutionSystem, prompt)
	if err != nil {
		return nil, err
	}
	lines := []string{}
	for _, line := range strings.Split(reply, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			lines = append(lines, line)
		}
	}
	if len(lines) == 0 {
		return nil, errors.New("empty solution")
	}
	return lines, nil
}

func (s *LLMSource) text(ctx context.Context, system, prompt string) (string, error) {
	resp, err := s.provider.Generate(ctx, s.request(system, prompt))
	if err != nil {
		return "", fmt.Errorf("LLM generation failed: %w", err)
	}
	return resp.Text(), nil
}

func (s *LLMSource) request(system, prompt string) llm.Request {
	req := llm.Prompt(system, prompt, s.config.MaxTokens)
	req.Temperature = s.config.Temperature
	return req
}
