package store

import (
	"context"
	"time"

	"github.com/aminmotiwala/atic/internal/types"
)

// Driver is the interface a storage backend must implement. It contains the
// raw persistence operations over the five relations: user_profiles,
// sessions, performance_metrics, learning_adaptations and
// question_performance.
type Driver interface {
	Close() error

	// User profile methods.
	UpsertProfile(ctx context.Context, profile *types.UserProfile) error
	GetProfile(ctx context.Context, userID string) (*types.UserProfile, error)

	// Session methods. CompleteSession must atomically update the session
	// row and fan out its performance metrics: all rows visible or none.
	CreateSession(ctx context.Context, session *types.Session) error
	CompleteSession(ctx context.Context, session *types.Session) error
	ListCompletedSessions(ctx context.Context, userID string, limit int) ([]*types.Session, error)
	CountCompletedSessions(ctx context.Context, userID string) (int, error)

	// Performance metric methods.
	ListCategoryScores(ctx context.Context, userID string) ([]types.CategoryScore, error)
	GetStatistics(ctx context.Context, userID string) (*types.Statistics, error)
	SaveQuestionPerformance(ctx context.Context, qp *types.QuestionPerformance) error

	// Learning adaptation methods.
	RecordAdaptation(ctx context.Context, ev *types.AdaptationEvent) error
	ListAdaptations(ctx context.Context, userID string) ([]types.AdaptationEvent, error)

	// Purge deletes performance metrics and completed sessions older than
	// the cutoff. Profiles and in-progress sessions are never purged.
	Purge(ctx context.Context, cutoff time.Time) (int64, error)
}
