// Package insight derives trends, strengths and recommendations from a
// user's stored performance history. All results are recomputed on demand.
package insight

import (
	"context"
	"fmt"
	"strings"

	"github.com/aminmotiwala/atic/internal/store"
	"github.com/aminmotiwala/atic/internal/types"
)

// Score bands and trend hysteresis. A category must move by more than the
// hysteresis between its first and latest score to leave "stable".
const (
	trendHysteresis      = 0.1
	strongAreaThreshold  = 0.7
	improvementThreshold = 0.5

	// Session counts steering the pacing recommendations.
	momentumSessionCount = 3
	advancedSessionCount = 5

	// recommendedImprovementAreas caps how many weak areas get a dedicated
	// recommendation.
	recommendedImprovementAreas = 3
)

// Engine computes learning insights from the store.
type Engine struct {
	store *store.Store
}

// NewEngine creates an Engine over the given store.
func NewEngine(st *store.Store) *Engine {
	return &Engine{store: st}
}

// ForUser loads the user's score history and completed-session count and
// computes insights. A user with no history gets an empty insight object,
// not an error.
func (e *Engine) ForUser(ctx context.Context, userID string) (*types.LearningInsight, error) {
	scores, err := e.store.ListCategoryScores(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load score history for %s: %w", userID, err)
	}

	totalSessions := 0
	if len(scores) > 0 {
		totalSessions, err = e.store.CountCompletedSessions(ctx, userID)
		if err != nil {
			return nil, fmt.Errorf("failed to count sessions for %s: %w", userID, err)
		}
	}

	insight := Compute(scores, totalSessions)
	insight.UserID = userID
	return insight, nil
}

// Compute derives insights from chronologically ordered category scores.
// Categories are evaluated in first-seen order so results are deterministic
// for a given history.
func Compute(scores []types.CategoryScore, totalSessions int) *types.LearningInsight {
	insight := &types.LearningInsight{
		PerformanceTrends: make(map[string]types.CategoryTrend),
		StrongAreas:       []string{},
		ImprovementAreas:  []string{},
		LearningVelocity:  "moderate",
		Recommendations:   []string{},
	}
	if len(scores) == 0 {
		return insight
	}
	insight.TotalSessions = totalSessions

	var categoryOrder []string
	history := make(map[string][]float64)
	for _, score := range scores {
		if _, seen := history[score.Category]; !seen {
			categoryOrder = append(categoryOrder, score.Category)
		}
		history[score.Category] = append(history[score.Category], score.Value)
	}

	for _, category := range categoryOrder {
		values := history[category]
		if len(values) < 2 {
			continue
		}

		sum := 0.0
		for _, v := range values {
			sum += v
		}
		average := sum / float64(len(values))

		delta := values[len(values)-1] - values[0]
		trend := types.TrendStable
		switch {
		case delta > trendHysteresis:
			trend = types.TrendImproving
		case delta < -trendHysteresis:
			trend = types.TrendDeclining
		}

		insight.PerformanceTrends[category] = types.CategoryTrend{
			CurrentScore:    values[len(values)-1],
			AverageScore:    average,
			Trend:           trend,
			SessionsTracked: len(values),
		}

		if average >= strongAreaThreshold {
			insight.StrongAreas = append(insight.StrongAreas, category)
		} else if average < improvementThreshold {
			insight.ImprovementAreas = append(insight.ImprovementAreas, category)
		}
	}

	insight.Recommendations = recommendations(insight)
	return insight
}

// recommendations builds the ordered recommendation list: improvement areas
// first, then session pacing, then leveraging the leading strength, with a
// generic fallback when nothing else applies.
func recommendations(insight *types.LearningInsight) []string {
	var recs []string

	areas := insight.ImprovementAreas
	if len(areas) > recommendedImprovementAreas {
		areas = areas[:recommendedImprovementAreas]
	}
	for _, area := range areas {
		recs = append(recs, fmt.Sprintf("Focus on improving %s skills", humanize(area)))
	}

	if insight.TotalSessions < momentumSessionCount {
		recs = append(recs, "Complete more practice sessions to build momentum")
	} else if insight.TotalSessions >= advancedSessionCount {
		recs = append(recs, "Consider tackling more advanced difficulty levels")
	}

	if len(insight.StrongAreas) > 0 {
		recs = append(recs, fmt.Sprintf("Leverage your strength in %s for complex problems",
			humanize(insight.StrongAreas[0])))
	}

	if len(recs) == 0 {
		recs = append(recs, "Continue regular practice to build and maintain skills")
	}
	return recs
}

func humanize(category string) string {
	return strings.ReplaceAll(category, "_", " ")
}
