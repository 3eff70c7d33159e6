package export

import (
	"bytes"
	"context"
	"encoding/json"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aminmotiwala/atic/internal/insight"
	"github.com/aminmotiwala/atic/internal/store"
	"github.com/aminmotiwala/atic/internal/store/sqlite"
	"github.com/aminmotiwala/atic/internal/types"
)

func newTestExporter(t *testing.T) (*Exporter, *store.Store) {
	t.Helper()
	db, err := sqlite.NewDB(context.Background(), filepath.Join(t.TempDir(), "atic.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	st := store.New(db)
	return New(st, insight.NewEngine(st)), st
}

func TestBuild_AggregatesAllSections(t *testing.T) {
	exporter, st := newTestExporter(t)
	ctx := context.Background()

	profile := &types.UserProfile{
		UserID: "user_export",
		Experience: types.Experience{
			Years: 4,
			Field: "back-end",
			Level: types.LevelMid,
		},
	}
	scores := map[string]float64{
		types.CategoryProblemSolving: 0.8,
		types.CategoryCommunication:  0.6,
	}
	completedAt := time.Now().UTC()
	session := &types.Session{
		ID:          "atic_export_1",
		Status:      types.StatusInitialized,
		CreatedAt:   completedAt.Add(-time.Hour),
		CompletedAt: &completedAt,
		Profile:     *profile,
		Performance: &types.PerformanceAnalysis{
			CategoryScores: scores,
			OverallScore:   types.OverallScore(scores),
		},
	}
	require.NoError(t, st.CreateSession(ctx, session))
	require.NoError(t, st.CompleteSession(ctx, session))

	doc, err := exporter.Build(ctx, "user_export")
	require.NoError(t, err)

	assert.Equal(t, "user_export", doc.Metadata.UserID)
	assert.Equal(t, "1.0", doc.Metadata.Version)
	require.NotNil(t, doc.Profile)
	assert.Equal(t, "back-end", doc.Profile.Experience.Field)
	require.Len(t, doc.History, 1)
	require.NotNil(t, doc.Insights)
	assert.Equal(t, 1, doc.Insights.TotalSessions)
	require.NotNil(t, doc.Statistics)
	assert.Equal(t, 1, doc.Statistics.CompletedSessions)
}

func TestBuild_UnknownUserStillExports(t *testing.T) {
	exporter, _ := newTestExporter(t)

	doc, err := exporter.Build(context.Background(), "user_unknown")
	require.NoError(t, err)
	assert.Nil(t, doc.Profile)
	assert.Empty(t, doc.History)
	assert.Zero(t, doc.Insights.TotalSessions)
}

func TestWrite_ProducesValidJSON(t *testing.T) {
	exporter, st := newTestExporter(t)
	ctx := context.Background()

	require.NoError(t, st.UpsertProfile(ctx, &types.UserProfile{
		UserID:     "user_export",
		Experience: types.Experience{Years: 2, Field: "qa", Level: types.LevelJunior},
	}))

	var buf bytes.Buffer
	require.NoError(t, exporter.Write(ctx, "user_export", &buf))

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Contains(t, decoded, "export_metadata")
	assert.Contains(t, decoded, "user_profile")
	assert.Contains(t, decoded, "learning_insights")
	assert.Contains(t, decoded, "user_statistics")
}
