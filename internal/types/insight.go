//nolint:revive // types is a standard Go package name pattern
package types

// Trend labels for a scored category over time.
const (
	TrendImproving = "improving"
	TrendDeclining = "declining"
	TrendStable    = "stable"
)

// CategoryTrend summarizes one category's score history.
type CategoryTrend struct {
	CurrentScore    float64 `json:"current_score"`
	AverageScore    float64 `json:"average_score"`
	Trend           string  `json:"trend"`
	SessionsTracked int     `json:"sessions_tracked"`
}

// LearningInsight is the derived analytics view over a user's performance
// history. It is recomputed on demand, never stored.
type LearningInsight struct {
	UserID            string                   `json:"user_id"`
	TotalSessions     int                      `json:"total_sessions"`
	PerformanceTrends map[string]CategoryTrend `json:"performance_trends"`
	StrongAreas       []string                 `json:"strong_areas"`
	ImprovementAreas  []string                 `json:"improvement_areas"`
	LearningVelocity  string                   `json:"learning_velocity"`
	Recommendations   []string                 `json:"recommendations"`
}
