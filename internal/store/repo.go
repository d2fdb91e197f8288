package store

import (
	"context"
	"time"
)

// QueryOpts configures event queries with filtering and pagination.
// Results are ordered newest first.
type QueryOpts struct {
	Limit  int       // max results (0 = unlimited)
	After  int64     // sequence > After
	Before int64     // sequence < Before
	From   time.Time // timestamp >= From
	To     time.Time // timestamp <= To
}

// LLMRequestEventData captures the data for a single LLM request event.
type LLMRequestEventData struct {
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
	RequestBody  string
	ResponseBody string
}

// LLMRequestRecord is a stored LLM request event.
type LLMRequestRecord struct {
	ID        int64
	Sequence  int64
	Timestamp time.Time
	LLMRequestEventData
}

// PurposeUsage aggregates LLM requests sharing a purpose label.
type PurposeUsage struct {
	Purpose      string `json:"purpose"`
	Calls        int    `json:"calls"`
	Failures     int    `json:"failures"`
	InputTokens  int    `json:"inputTokens"`
	OutputTokens int    `json:"outputTokens"`
	AvgLatencyMs int64  `json:"avgLatencyMs"`
}

// ModelUsage aggregates token usage per model.
type ModelUsage struct {
	Model        string `json:"model"`
	Calls        int    `json:"calls"`
	InputTokens  int    `json:"inputTokens"`
	OutputTokens int    `json:"outputTokens"`
}

// Practice actions recorded by PracticeEventData.Action.
const (
	ActionServed   = "served"
	ActionHint     = "hint"
	ActionStep     = "step"
	ActionReveal   = "reveal"
	ActionComplete = "complete"
)

// PracticeEventData records one learner interaction with a problem.
type PracticeEventData struct {
	ProblemID   string
	Action      string
	Category    string
	Subcategory string
	Difficulty  string
	// Detail holds the hint text, submitted step or problem text.
	Detail  string
	Correct bool
	Stars   int
}

// PracticeEventRecord is a stored practice event.
type PracticeEventRecord struct {
	ID        int64
	Sequence  int64
	Timestamp time.Time
	PracticeEventData
}

// EventRepo provides append and query access to events.
type EventRepo interface {
	// AppendLLMRequest records an LLM API call event.
	AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error
	QueryLLMEvents(ctx context.Context, opts QueryOpts) ([]LLMRequestRecord, error)
	// GetLLMEvent returns nil when no event has the ID.
	GetLLMEvent(ctx context.Context, id int64) (*LLMRequestRecord, error)
	LLMUsageByPurpose(ctx context.Context) ([]PurposeUsage, error)
	LLMUsageByModel(ctx context.Context) ([]ModelUsage, error)

	AppendPracticeEvent(ctx context.Context, data PracticeEventData) error
	QueryPracticeEvents(ctx context.Context, opts QueryOpts) ([]PracticeEventRecord, error)
}

// ProgressData is the persisted learner progress.
type ProgressData struct {
	Stars             int
	Streak            int
	LastPracticeDate  string
	CompletedProblems []string
	Achievements      []string
	UpdatedAt         time.Time
}

// ProgressRepo stores the single progress record.
type ProgressRepo interface {
	// Load returns nil when nothing has been saved yet.
	Load(ctx context.Context) (*ProgressData, error)
	Save(ctx context.Context, data ProgressData) error
	Reset(ctx context.Context) error
}
