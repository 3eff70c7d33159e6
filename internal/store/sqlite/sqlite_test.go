package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aminmotiwala/atic/internal/store"
	"github.com/aminmotiwala/atic/internal/types"
)

func newTestStore(t *testing.T) *store.Store {
	t.Helper()
	db, err := NewDB(context.Background(), filepath.Join(t.TempDir(), "atic.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return store.New(db)
}

func testProfile(userID string) *types.UserProfile {
	return &types.UserProfile{
		UserID: userID,
		Experience: types.Experience{
			Years:       4,
			Field:       "backend development",
			CurrentRole: "Software Engineer",
			Level:       types.LevelMid,
			SelfAssessment: map[string]int{
				"api_design": 4,
				"databases":  3,
			},
		},
		DifficultyLevel: types.DifficultyIntermediate,
	}
}

func testPerformance() *types.PerformanceAnalysis {
	scores := map[string]float64{
		types.CategoryProblemSolving:     0.8,
		types.CategoryTechnicalKnowledge: 0.7,
		types.CategoryCodeQuality:        0.6,
		types.CategoryCommunication:      0.75,
		types.CategorySystemDesign:       0.5,
		types.CategoryTimeManagement:     0.9,
	}
	return &types.PerformanceAnalysis{
		CategoryScores: scores,
		OverallScore:   types.OverallScore(scores),
	}
}

func TestUpsertProfile_RoundTrip(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	profile := testProfile("user_backend_test")
	require.NoError(t, s.UpsertProfile(ctx, profile))

	got, err := s.GetProfile(ctx, "user_backend_test")
	require.NoError(t, err)
	assert.Equal(t, 4, got.Experience.Years)
	assert.Equal(t, "backend development", got.Experience.Field)
	assert.Equal(t, "Software Engineer", got.Experience.CurrentRole)
	assert.Equal(t, types.LevelMid, got.Experience.Level)
	assert.Equal(t, 4, got.Experience.SelfAssessment["api_design"])
	assert.False(t, got.CreatedAt.IsZero())
	assert.False(t, got.LastUpdated.IsZero())
}

func TestGetProfile_NotFound(t *testing.T) {
	s := newTestStore(t)

	_, err := s.GetProfile(context.Background(), "user_missing")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestUpsertProfile_UpdateAdvancesLastUpdated(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	profile := testProfile("user_backend_test")
	require.NoError(t, s.UpsertProfile(ctx, profile))

	first, err := s.GetProfile(ctx, "user_backend_test")
	require.NoError(t, err)

	time.Sleep(2 * time.Millisecond)
	profile.Experience.Years = 5
	require.NoError(t, s.UpsertProfile(ctx, profile))

	second, err := s.GetProfile(ctx, "user_backend_test")
	require.NoError(t, err)
	assert.Equal(t, 5, second.Experience.Years)
	assert.True(t, second.LastUpdated.After(first.LastUpdated),
		"last_updated should advance on update")
	assert.Equal(t, first.CreatedAt, second.CreatedAt,
		"created_at should be preserved on update")
}

func TestUpsertProfile_GeneratesUserID(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	profile := testProfile("")
	require.NoError(t, s.UpsertProfile(ctx, profile))
	assert.Contains(t, profile.UserID, "user_backend-development_")

	got, err := s.GetProfile(ctx, profile.UserID)
	require.NoError(t, err)
	assert.Equal(t, profile.UserID, got.UserID)
}

func TestCompleteSession_FansOutMetrics(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	session := &types.Session{
		ID:        "atic_20260101_120000_abcd1234",
		Status:    types.StatusInitialized,
		CreatedAt: time.Now().UTC(),
		Profile:   *testProfile("user_backend_test"),
	}
	require.NoError(t, s.CreateSession(ctx, session))

	session.Performance = testPerformance()
	require.NoError(t, s.CompleteSession(ctx, session))

	scores, err := s.ListCategoryScores(ctx, "user_backend_test")
	require.NoError(t, err)
	assert.Len(t, scores, 6, "one row per scored category")
	for _, score := range scores {
		assert.Equal(t, session.ID, score.SessionID)
		assert.False(t, score.RecordedAt.IsZero())
	}

	count, err := s.CountCompletedSessions(ctx, "user_backend_test")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestCompleteSession_RecoversUnpersistedSession(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	// Simulates fail-soft initialization where the session row was never
	// written but the interview still ran to completion.
	profile := testProfile("user_backend_test")
	require.NoError(t, s.UpsertProfile(ctx, profile))

	session := &types.Session{
		ID:          "atic_20260101_120000_abcd1234",
		Status:      types.StatusInitialized,
		CreatedAt:   time.Now().UTC(),
		Profile:     *profile,
		Performance: testPerformance(),
	}
	require.NoError(t, s.CompleteSession(ctx, session))

	history, err := s.GetHistory(ctx, "user_backend_test", 10)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, session.ID, history[0].ID)
	assert.Equal(t, types.StatusCompleted, history[0].Status)
}

func TestGetHistory_NewestFirstWithLimit(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	base := time.Now().UTC().Add(-time.Hour)
	for i, id := range []string{"atic_s1", "atic_s2", "atic_s3"} {
		completedAt := base.Add(time.Duration(i) * time.Minute)
		session := &types.Session{
			ID:          id,
			Status:      types.StatusInitialized,
			CreatedAt:   completedAt.Add(-30 * time.Minute),
			CompletedAt: &completedAt,
			Profile:     *testProfile("user_backend_test"),
			Performance: testPerformance(),
		}
		require.NoError(t, s.CreateSession(ctx, session))
		require.NoError(t, s.CompleteSession(ctx, session))
	}

	history, err := s.GetHistory(ctx, "user_backend_test", 2)
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, "atic_s3", history[0].ID)
	assert.Equal(t, "atic_s2", history[1].ID)
}

func TestPurge_RemovesOldCompletedSessionsOnce(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	old := time.Now().UTC().Add(-48 * time.Hour)
	oldSession := &types.Session{
		ID:          "atic_old",
		Status:      types.StatusInitialized,
		CreatedAt:   old,
		CompletedAt: &old,
		Profile:     *testProfile("user_backend_test"),
		Performance: testPerformance(),
	}
	require.NoError(t, s.CreateSession(ctx, oldSession))
	require.NoError(t, s.CompleteSession(ctx, oldSession))

	fresh := &types.Session{
		ID:          "atic_fresh",
		Status:      types.StatusInitialized,
		CreatedAt:   time.Now().UTC(),
		Profile:     *testProfile("user_backend_test"),
		Performance: testPerformance(),
	}
	require.NoError(t, s.CreateSession(ctx, fresh))
	require.NoError(t, s.CompleteSession(ctx, fresh))

	// 1 old session row + 7 old metric rows.
	removed, err := s.Purge(ctx, 24*time.Hour)
	require.NoError(t, err)
	assert.Equal(t, int64(8), removed)

	removed, err = s.Purge(ctx, 24*time.Hour)
	require.NoError(t, err)
	assert.Zero(t, removed, "second purge with no new data removes nothing")

	history, err := s.GetHistory(ctx, "user_backend_test", 10)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, "atic_fresh", history[0].ID)

	// The profile survives purges.
	_, err = s.GetProfile(ctx, "user_backend_test")
	assert.NoError(t, err)
}

func TestGetStatistics_Aggregates(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	profile := testProfile("user_backend_test")
	require.NoError(t, s.UpsertProfile(ctx, profile))

	stats, err := s.GetStatistics(ctx, "user_backend_test")
	require.NoError(t, err)
	assert.Zero(t, stats.TotalSessions)
	assert.Zero(t, stats.AverageSessionScore)
	assert.False(t, stats.ProfileCreated.IsZero())

	session := &types.Session{
		ID:          "atic_stats",
		Status:      types.StatusInitialized,
		CreatedAt:   time.Now().UTC(),
		Profile:     *profile,
		Performance: testPerformance(),
	}
	require.NoError(t, s.CreateSession(ctx, session))
	require.NoError(t, s.CompleteSession(ctx, session))

	require.NoError(t, s.SaveQuestionPerformance(ctx, &types.QuestionPerformance{
		SessionID:     "atic_stats",
		UserID:        "user_backend_test",
		QuestionID:    "q1",
		QuestionType:  "coding",
		Difficulty:    types.DifficultyIntermediate,
		TopicArea:     "algorithms",
		AccuracyScore: 0.8,
	}))

	stats, err = s.GetStatistics(ctx, "user_backend_test")
	require.NoError(t, err)
	assert.Equal(t, 1, stats.TotalSessions)
	assert.Equal(t, 1, stats.CompletedSessions)
	assert.Equal(t, 1, stats.TotalQuestionsAnswered)
	assert.InDelta(t, session.Performance.OverallScore, stats.AverageSessionScore, 1e-9)
	assert.InDelta(t, session.Performance.OverallScore, stats.BestSessionScore, 1e-9)
	assert.False(t, stats.LastActivity.IsZero())
}

func TestAdaptations_RoundTrip(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.UpsertProfile(ctx, testProfile("user_backend_test")))

	events := []types.AdaptationEvent{
		{
			UserID:        "user_backend_test",
			SessionID:     "atic_s1",
			Type:          "difficulty",
			PreviousValue: "intermediate",
			NewValue:      "advanced",
			Reason:        "strong performance across sessions",
			CreatedAt:     time.Now().UTC().Add(-time.Minute),
		},
		{
			UserID:        "user_backend_test",
			SessionID:     "atic_s2",
			Type:          "focus_area",
			PreviousValue: "coding",
			NewValue:      "system_design",
			Reason:        "declining system design scores",
		},
	}
	for i := range events {
		require.NoError(t, s.RecordAdaptation(ctx, &events[i]))
	}

	got, err := s.ListAdaptations(ctx, "user_backend_test")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "difficulty", got[0].Type)
	assert.Equal(t, "focus_area", got[1].Type)
	assert.False(t, got[1].CreatedAt.IsZero(), "missing created_at gets filled in")
}
