//nolint:revive // types is a standard Go package name pattern
package types

import "time"

// Performance categories scored after a session. Weights sum to 1.0.
const (
	CategoryProblemSolving     = "problem_solving"
	CategoryTechnicalKnowledge = "technical_knowledge"
	CategoryCodeQuality        = "code_quality"
	CategoryCommunication      = "communication"
	CategorySystemDesign       = "system_design"
	CategoryTimeManagement     = "time_management"
)

// ScoringWeights are the fixed per-category weights used for the overall
// session score. They must sum to 1.0.
var ScoringWeights = map[string]float64{
	CategoryProblemSolving:     0.25,
	CategoryTechnicalKnowledge: 0.20,
	CategoryCodeQuality:        0.20,
	CategoryCommunication:      0.15,
	CategorySystemDesign:       0.15,
	CategoryTimeManagement:     0.05,
}

// PerformanceAnalysis holds the normalized per-category scores for one
// session. All scores are on the canonical 0-1 scale.
type PerformanceAnalysis struct {
	CategoryScores map[string]float64 `json:"category_scores"`
	OverallScore   float64            `json:"overall_score"`
}

// OverallScore computes the weighted overall score from category scores.
// Categories without a recorded score contribute zero.
func OverallScore(categoryScores map[string]float64) float64 {
	total := 0.0
	for category, weight := range ScoringWeights {
		total += categoryScores[category] * weight
	}
	return total
}

// NormalizeScore converts a raw 1-10 rubric mark to the canonical 0-1 scale,
// clamping out-of-range input. Values below 1 are already normalized and
// pass through; 1 itself is the lowest rubric mark, not a perfect score.
func NormalizeScore(raw float64) float64 {
	if raw < 0 {
		return 0
	}
	if raw < 1 {
		return raw
	}
	normalized := raw / 10.0
	if normalized > 1 {
		return 1
	}
	return normalized
}

// CategoryScore is a single stored performance metric row, used by the
// insight engine in chronological order.
type CategoryScore struct {
	SessionID  string    `json:"session_id"`
	Category   string    `json:"category"`
	Value      float64   `json:"metric_value"`
	RecordedAt time.Time `json:"recorded_at"`
}

// QuestionPerformance records scoring detail for a single question.
type QuestionPerformance struct {
	SessionID           string         `json:"session_id"`
	UserID              string         `json:"user_id"`
	QuestionID          string         `json:"question_id"`
	QuestionType        string         `json:"question_type"`
	Difficulty          Difficulty     `json:"question_difficulty"`
	TopicArea           string         `json:"topic_area"`
	ResponseTimeSeconds int            `json:"response_time_seconds"`
	AccuracyScore       float64        `json:"accuracy_score"`
	CompletenessScore   float64        `json:"completeness_score"`
	CommunicationScore  float64        `json:"communication_score"`
	Question            map[string]any `json:"question_data,omitempty"`
	Response            map[string]any `json:"response_data,omitempty"`
}

// AdaptationEvent records a derived adjustment to a user's plan or
// difficulty between sessions.
type AdaptationEvent struct {
	UserID             string    `json:"user_id"`
	SessionID          string    `json:"session_id"`
	Type               string    `json:"adaptation_type"`
	PreviousValue      string    `json:"previous_value"`
	NewValue           string    `json:"new_value"`
	Reason             string    `json:"reason"`
	EffectivenessScore float64   `json:"effectiveness_score"`
	CreatedAt          time.Time `json:"created_at"`
}

// Statistics aggregates a user's stored activity.
type Statistics struct {
	UserID                 string    `json:"user_id"`
	ProfileCreated         time.Time `json:"profile_created"`
	TotalSessions          int       `json:"total_sessions"`
	CompletedSessions      int       `json:"completed_sessions"`
	TotalQuestionsAnswered int       `json:"total_questions_answered"`
	AverageSessionScore    float64   `json:"average_session_score"`
	BestSessionScore       float64   `json:"best_session_score"`
	LastActivity           time.Time `json:"recent_activity"`
}
