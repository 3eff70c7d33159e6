//nolint:revive // types is a standard Go package name pattern
package types

import "time"

// SessionStatus is a session lifecycle state.
type SessionStatus string

// Session lifecycle states. Failed and completed are terminal.
const (
	StatusInitializing SessionStatus = "initializing"
	StatusInitialized  SessionStatus = "initialized"
	StatusInProgress   SessionStatus = "in_progress"
	StatusFailed       SessionStatus = "failed"
	StatusCompleted    SessionStatus = "completed"
)

// Interaction is one entry in a session's ordered agent interaction log.
type Interaction struct {
	Timestamp time.Time      `json:"timestamp"`
	Source    string         `json:"source"`
	Type      string         `json:"interaction_type"`
	Payload   map[string]any `json:"data,omitempty"`
}

// Session is one coaching engagement from initialization onwards. It owns a
// snapshot of the user profile and target job taken at creation time.
type Session struct {
	ID           string                `json:"session_id"`
	Status       SessionStatus         `json:"status"`
	CreatedAt    time.Time             `json:"created_at"`
	CompletedAt  *time.Time            `json:"completed_at,omitempty"`
	Profile      UserProfile           `json:"user_profile"`
	Requirements ExtractedRequirements `json:"extracted_requirements"`
	Plan         InterviewPlan         `json:"interview_plan"`
	Interactions []Interaction         `json:"agent_interactions"`
	Error        string                `json:"error,omitempty"`

	// Performance is attached between initialization and finalization.
	Performance *PerformanceAnalysis `json:"performance_analysis,omitempty"`
}
