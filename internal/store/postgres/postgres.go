// Package postgres implements the store driver on PostgreSQL for
// deployments that outgrow the embedded default.
package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/aminmotiwala/atic/internal/store"
	"github.com/aminmotiwala/atic/internal/types"
)

// DB implements store.Driver backed by a PostgreSQL connection pool.
type DB struct {
	pool *pgxpool.Pool
}

// NewDB establishes a connection pool and applies the schema.
func NewDB(ctx context.Context, databaseURL string) (*DB, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	d := &DB{pool: pool}
	if err := d.migrate(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return d, nil
}

// Close closes the connection pool.
func (d *DB) Close() error {
	d.pool.Close()
	return nil
}

func (d *DB) migrate(ctx context.Context) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS user_profiles (
			user_id TEXT PRIMARY KEY,
			created_at TIMESTAMPTZ NOT NULL,
			last_updated TIMESTAMPTZ NOT NULL,
			experience_years INTEGER,
			technical_field TEXT,
			current_role TEXT,
			skill_levels JSONB,
			profile_data JSONB
		)`,
		`CREATE TABLE IF NOT EXISTS sessions (
			session_id TEXT PRIMARY KEY,
			user_id TEXT REFERENCES user_profiles (user_id),
			created_at TIMESTAMPTZ NOT NULL,
			completed_at TIMESTAMPTZ,
			status TEXT,
			target_company TEXT,
			target_role TEXT,
			difficulty_level TEXT,
			session_data JSONB
		)`,
		`CREATE TABLE IF NOT EXISTS performance_metrics (
			metric_id BIGSERIAL PRIMARY KEY,
			session_id TEXT NOT NULL REFERENCES sessions (session_id) ON DELETE CASCADE,
			user_id TEXT NOT NULL REFERENCES user_profiles (user_id),
			recorded_at TIMESTAMPTZ NOT NULL,
			category TEXT,
			metric_name TEXT,
			metric_value DOUBLE PRECISION,
			additional_data JSONB
		)`,
		`CREATE TABLE IF NOT EXISTS learning_adaptations (
			adaptation_id BIGSERIAL PRIMARY KEY,
			user_id TEXT NOT NULL REFERENCES user_profiles (user_id),
			session_id TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL,
			adaptation_type TEXT,
			previous_value TEXT,
			new_value TEXT,
			reason TEXT,
			effectiveness_score DOUBLE PRECISION,
			adaptation_data JSONB
		)`,
		`CREATE TABLE IF NOT EXISTS question_performance (
			performance_id BIGSERIAL PRIMARY KEY,
			session_id TEXT NOT NULL,
			user_id TEXT NOT NULL REFERENCES user_profiles (user_id),
			question_id TEXT,
			question_type TEXT,
			question_difficulty TEXT,
			topic_area TEXT,
			response_time_seconds INTEGER,
			accuracy_score DOUBLE PRECISION,
			completeness_score DOUBLE PRECISION,
			communication_score DOUBLE PRECISION,
			question_data JSONB,
			response_data JSONB
		)`,
	}

	for _, statement := range statements {
		if _, err := d.pool.Exec(ctx, statement); err != nil {
			return fmt.Errorf("failed to apply schema: %w", err)
		}
	}
	return nil
}

// UpsertProfile inserts or updates a profile; created_at is preserved on
// update.
func (d *DB) UpsertProfile(ctx context.Context, profile *types.UserProfile) error {
	profileData, err := json.Marshal(profile)
	if err != nil {
		return fmt.Errorf("failed to marshal profile: %w", err)
	}
	skillLevels, err := json.Marshal(profile.Experience.SelfAssessment)
	if err != nil {
		return fmt.Errorf("failed to marshal skill levels: %w", err)
	}

	_, err = d.pool.Exec(ctx,
		`INSERT INTO user_profiles
			(user_id, created_at, last_updated, experience_years, technical_field, current_role, skill_levels, profile_data)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 ON CONFLICT (user_id) DO UPDATE SET
			last_updated = EXCLUDED.last_updated,
			experience_years = EXCLUDED.experience_years,
			technical_field = EXCLUDED.technical_field,
			current_role = EXCLUDED.current_role,
			skill_levels = EXCLUDED.skill_levels,
			profile_data = EXCLUDED.profile_data`,
		profile.UserID, profile.CreatedAt, profile.LastUpdated,
		profile.Experience.Years, profile.Experience.Field, profile.Experience.CurrentRole,
		skillLevels, profileData,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert profile: %w", err)
	}
	return nil
}

// GetProfile retrieves a profile by user id.
func (d *DB) GetProfile(ctx context.Context, userID string) (*types.UserProfile, error) {
	var createdAt, lastUpdated time.Time
	var profileData []byte
	err := d.pool.QueryRow(ctx,
		`SELECT created_at, last_updated, profile_data FROM user_profiles WHERE user_id = $1`,
		userID,
	).Scan(&createdAt, &lastUpdated, &profileData)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, store.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get profile %s: %w", userID, err)
	}

	var profile types.UserProfile
	if err := json.Unmarshal(profileData, &profile); err != nil {
		return nil, fmt.Errorf("failed to unmarshal profile %s: %w", userID, err)
	}
	profile.CreatedAt = createdAt.UTC()
	profile.LastUpdated = lastUpdated.UTC()
	return &profile, nil
}

// CreateSession persists an initialized session row.
func (d *DB) CreateSession(ctx context.Context, session *types.Session) error {
	sessionData, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}

	var company, role string
	if session.Profile.TargetJob != nil {
		company = session.Profile.TargetJob.Company
		role = session.Profile.TargetJob.Role
	}

	_, err = d.pool.Exec(ctx,
		`INSERT INTO sessions
			(session_id, user_id, created_at, status, target_company, target_role, difficulty_level, session_data)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 ON CONFLICT (session_id) DO UPDATE SET
			status = EXCLUDED.status,
			session_data = EXCLUDED.session_data`,
		session.ID, session.Profile.UserID, session.CreatedAt, string(session.Status),
		company, role, string(session.Profile.DifficultyLevel), sessionData,
	)
	if err != nil {
		return fmt.Errorf("failed to insert session: %w", err)
	}
	return nil
}

// CompleteSession updates the session row and fans out performance metrics
// in a single transaction.
func (d *DB) CompleteSession(ctx context.Context, session *types.Session) error {
	sessionData, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}

	completedAt := time.Now().UTC()
	if session.CompletedAt != nil {
		completedAt = *session.CompletedAt
	}

	tx, err := d.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	tag, err := tx.Exec(ctx,
		`UPDATE sessions SET completed_at = $1, status = $2, session_data = $3 WHERE session_id = $4`,
		completedAt, string(types.StatusCompleted), sessionData, session.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update session: %w", err)
	}
	if tag.RowsAffected() == 0 {
		var company, role string
		if session.Profile.TargetJob != nil {
			company = session.Profile.TargetJob.Company
			role = session.Profile.TargetJob.Role
		}
		_, err = tx.Exec(ctx,
			`INSERT INTO sessions
				(session_id, user_id, created_at, completed_at, status, target_company, target_role, difficulty_level, session_data)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
			session.ID, session.Profile.UserID, session.CreatedAt, completedAt,
			string(types.StatusCompleted), company, role, string(session.Profile.DifficultyLevel), sessionData,
		)
		if err != nil {
			return fmt.Errorf("failed to insert completed session: %w", err)
		}
	}

	if session.Performance != nil {
		categories := make([]string, 0, len(session.Performance.CategoryScores))
		for category := range session.Performance.CategoryScores {
			categories = append(categories, category)
		}
		sort.Strings(categories)

		for _, category := range categories {
			_, err = tx.Exec(ctx,
				`INSERT INTO performance_metrics
					(session_id, user_id, recorded_at, category, metric_name, metric_value)
				 VALUES ($1, $2, $3, $4, 'category_score', $5)`,
				session.ID, session.Profile.UserID, completedAt, category,
				session.Performance.CategoryScores[category],
			)
			if err != nil {
				return fmt.Errorf("failed to insert category score: %w", err)
			}
		}

		_, err = tx.Exec(ctx,
			`INSERT INTO performance_metrics
				(session_id, user_id, recorded_at, category, metric_name, metric_value)
			 VALUES ($1, $2, $3, 'overall', 'session_score', $4)`,
			session.ID, session.Profile.UserID, completedAt, session.Performance.OverallScore,
		)
		if err != nil {
			return fmt.Errorf("failed to insert overall score: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit session completion: %w", err)
	}
	return nil
}

// ListCompletedSessions returns completed sessions newest first.
func (d *DB) ListCompletedSessions(ctx context.Context, userID string, limit int) ([]*types.Session, error) {
	rows, err := d.pool.Query(ctx,
		`SELECT session_data FROM sessions
		 WHERE user_id = $1 AND status = $2
		 ORDER BY completed_at DESC
		 LIMIT $3`,
		userID, string(types.StatusCompleted), limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}
	defer rows.Close()

	var sessions []*types.Session
	for rows.Next() {
		var data []byte
		if err := rows.Scan(&data); err != nil {
			return nil, fmt.Errorf("failed to scan session: %w", err)
		}
		var session types.Session
		if err := json.Unmarshal(data, &session); err != nil {
			return nil, fmt.Errorf("failed to unmarshal session: %w", err)
		}
		sessions = append(sessions, &session)
	}
	return sessions, rows.Err()
}

// CountCompletedSessions returns the number of completed sessions for a user.
func (d *DB) CountCompletedSessions(ctx context.Context, userID string) (int, error) {
	var count int
	err := d.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM sessions WHERE user_id = $1 AND status = $2`,
		userID, string(types.StatusCompleted),
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count sessions: %w", err)
	}
	return count, nil
}

// ListCategoryScores returns all category_score rows for a user in
// chronological order.
func (d *DB) ListCategoryScores(ctx context.Context, userID string) ([]types.CategoryScore, error) {
	rows, err := d.pool.Query(ctx,
		`SELECT session_id, category, metric_value, recorded_at
		 FROM performance_metrics
		 WHERE user_id = $1 AND metric_name = 'category_score'
		 ORDER BY recorded_at ASC, metric_id ASC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list category scores: %w", err)
	}
	defer rows.Close()

	var scores []types.CategoryScore
	for rows.Next() {
		var score types.CategoryScore
		var recordedAt time.Time
		if err := rows.Scan(&score.SessionID, &score.Category, &score.Value, &recordedAt); err != nil {
			return nil, fmt.Errorf("failed to scan category score: %w", err)
		}
		score.RecordedAt = recordedAt.UTC()
		scores = append(scores, score)
	}
	return scores, rows.Err()
}

// GetStatistics aggregates session counts, score averages and activity.
func (d *DB) GetStatistics(ctx context.Context, userID string) (*types.Statistics, error) {
	stats := &types.Statistics{UserID: userID}

	var profileCreated *time.Time
	err := d.pool.QueryRow(ctx,
		`SELECT created_at FROM user_profiles WHERE user_id = $1`, userID,
	).Scan(&profileCreated)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("failed to read profile creation: %w", err)
	}
	if profileCreated != nil {
		stats.ProfileCreated = profileCreated.UTC()
	}

	err = d.pool.QueryRow(ctx,
		`SELECT COUNT(*), COALESCE(SUM(CASE WHEN status = $1 THEN 1 ELSE 0 END), 0)
		 FROM sessions WHERE user_id = $2`,
		string(types.StatusCompleted), userID,
	).Scan(&stats.TotalSessions, &stats.CompletedSessions)
	if err != nil {
		return nil, fmt.Errorf("failed to count sessions: %w", err)
	}

	var avgScore, bestScore *float64
	err = d.pool.QueryRow(ctx,
		`SELECT AVG(metric_value), MAX(metric_value)
		 FROM performance_metrics
		 WHERE user_id = $1 AND metric_name = 'session_score'`,
		userID,
	).Scan(&avgScore, &bestScore)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate scores: %w", err)
	}
	if avgScore != nil {
		stats.AverageSessionScore = *avgScore
	}
	if bestScore != nil {
		stats.BestSessionScore = *bestScore
	}

	err = d.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM question_performance WHERE user_id = $1`, userID,
	).Scan(&stats.TotalQuestionsAnswered)
	if err != nil {
		return nil, fmt.Errorf("failed to count questions: %w", err)
	}

	var lastActivity *time.Time
	err = d.pool.QueryRow(ctx,
		`SELECT MAX(completed_at) FROM sessions WHERE user_id = $1 AND status = $2`,
		userID, string(types.StatusCompleted),
	).Scan(&lastActivity)
	if err != nil {
		return nil, fmt.Errorf("failed to read last activity: %w", err)
	}
	if lastActivity != nil {
		stats.LastActivity = lastActivity.UTC()
	}

	return stats, nil
}

// SaveQuestionPerformance stores one per-question scoring row.
func (d *DB) SaveQuestionPerformance(ctx context.Context, qp *types.QuestionPerformance) error {
	questionData, err := json.Marshal(qp.Question)
	if err != nil {
		return fmt.Errorf("failed to marshal question data: %w", err)
	}
	responseData, err := json.Marshal(qp.Response)
	if err != nil {
		return fmt.Errorf("failed to marshal response data: %w", err)
	}

	_, err = d.pool.Exec(ctx,
		`INSERT INTO question_performance
			(session_id, user_id, question_id, question_type, question_difficulty, topic_area,
			 response_time_seconds, accuracy_score, completeness_score, communication_score,
			 question_data, response_data)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		qp.SessionID, qp.UserID, qp.QuestionID, qp.QuestionType, string(qp.Difficulty), qp.TopicArea,
		qp.ResponseTimeSeconds, qp.AccuracyScore, qp.CompletenessScore, qp.CommunicationScore,
		questionData, responseData,
	)
	if err != nil {
		return fmt.Errorf("failed to insert question performance: %w", err)
	}
	return nil
}

// RecordAdaptation stores a learning adaptation event.
func (d *DB) RecordAdaptation(ctx context.Context, ev *types.AdaptationEvent) error {
	_, err := d.pool.Exec(ctx,
		`INSERT INTO learning_adaptations
			(user_id, session_id, created_at, adaptation_type, previous_value, new_value, reason, effectiveness_score)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		ev.UserID, ev.SessionID, ev.CreatedAt, ev.Type,
		ev.PreviousValue, ev.NewValue, ev.Reason, ev.EffectivenessScore,
	)
	if err != nil {
		return fmt.Errorf("failed to insert adaptation: %w", err)
	}
	return nil
}

// ListAdaptations returns a user's adaptation events oldest first.
func (d *DB) ListAdaptations(ctx context.Context, userID string) ([]types.AdaptationEvent, error) {
	rows, err := d.pool.Query(ctx,
		`SELECT user_id, session_id, created_at, adaptation_type, previous_value, new_value, reason, effectiveness_score
		 FROM learning_adaptations
		 WHERE user_id = $1
		 ORDER BY created_at ASC, adaptation_id ASC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list adaptations: %w", err)
	}
	defer rows.Close()

	var events []types.AdaptationEvent
	for rows.Next() {
		var ev types.AdaptationEvent
		var createdAt time.Time
		if err := rows.Scan(&ev.UserID, &ev.SessionID, &createdAt, &ev.Type,
			&ev.PreviousValue, &ev.NewValue, &ev.Reason, &ev.EffectivenessScore); err != nil {
			return nil, fmt.Errorf("failed to scan adaptation: %w", err)
		}
		ev.CreatedAt = createdAt.UTC()
		events = append(events, ev)
	}
	return events, rows.Err()
}

// Purge deletes old performance metrics and old completed sessions in one
// transaction. Profiles and in-progress sessions survive.
func (d *DB) Purge(ctx context.Context, cutoff time.Time) (int64, error) {
	tx, err := d.pool.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	metricsTag, err := tx.Exec(ctx,
		`DELETE FROM performance_metrics WHERE recorded_at < $1`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to purge metrics: %w", err)
	}

	sessionsTag, err := tx.Exec(ctx,
		`DELETE FROM sessions WHERE created_at < $1 AND status = $2`,
		cutoff, string(types.StatusCompleted))
	if err != nil {
		return 0, fmt.Errorf("failed to purge sessions: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("failed to commit purge: %w", err)
	}
	return metricsTag.RowsAffected() + sessionsTag.RowsAffected(), nil
}
