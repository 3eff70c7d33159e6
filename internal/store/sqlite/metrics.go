package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/aminmotiwala/atic/internal/types"
)

// ListCategoryScores returns all category_score rows for a user in
// chronological order.
func (d *DB) ListCategoryScores(ctx context.Context, userID string) ([]types.CategoryScore, error) {
	rows, err := d.db.QueryContext(ctx,
		`SELECT session_id, category, metric_value, recorded_at
		 FROM performance_metrics
		 WHERE user_id = ? AND metric_name = 'category_score'
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
		var recordedAt string
		if err := rows.Scan(&score.SessionID, &score.Category, &score.Value, &recordedAt); err != nil {
			return nil, fmt.Errorf("failed to scan category score: %w", err)
		}
		score.RecordedAt = parseTime(recordedAt)
		scores = append(scores, score)
	}
	return scores, rows.Err()
}

// GetStatistics aggregates session counts, score averages and activity for
// a user. Users without any stored data get a zero-valued result.
func (d *DB) GetStatistics(ctx context.Context, userID string) (*types.Statistics, error) {
	stats := &types.Statistics{UserID: userID}

	var profileCreated sql.NullString
	err := d.db.QueryRowContext(ctx,
		`SELECT created_at FROM user_profiles WHERE user_id = ?`, userID,
	).Scan(&profileCreated)
	if err != nil && err != sql.ErrNoRows {
		return nil, fmt.Errorf("failed to read profile creation: %w", err)
	}
	if profileCreated.Valid {
		stats.ProfileCreated = parseTime(profileCreated.String)
	}

	err = d.db.QueryRowContext(ctx,
		`SELECT COUNT(*), COALESCE(SUM(CASE WHEN status = ? THEN 1 ELSE 0 END), 0)
		 FROM sessions WHERE user_id = ?`,
		string(types.StatusCompleted), userID,
	).Scan(&stats.TotalSessions, &stats.CompletedSessions)
	if err != nil {
		return nil, fmt.Errorf("failed to count sessions: %w", err)
	}

	var avgScore, bestScore sql.NullFloat64
	err = d.db.QueryRowContext(ctx,
		`SELECT AVG(metric_value), MAX(metric_value)
		 FROM performance_metrics
		 WHERE user_id = ? AND metric_name = 'session_score'`,
		userID,
	).Scan(&avgScore, &bestScore)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate scores: %w", err)
	}
	if avgScore.Valid {
		stats.AverageSessionScore = avgScore.Float64
		stats.BestSessionScore = bestScore.Float64
	}

	err = d.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM question_performance WHERE user_id = ?`, userID,
	).Scan(&stats.TotalQuestionsAnswered)
	if err != nil {
		return nil, fmt.Errorf("failed to count questions: %w", err)
	}

	var lastActivity sql.NullString
	err = d.db.QueryRowContext(ctx,
		`SELECT MAX(completed_at) FROM sessions WHERE user_id = ? AND status = ?`,
		userID, string(types.StatusCompleted),
	).Scan(&lastActivity)
	if err != nil {
		return nil, fmt.Errorf("failed to read last activity: %w", err)
	}
	if lastActivity.Valid {
		stats.LastActivity = parseTime(lastActivity.String)
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

	_, err = d.db.ExecContext(ctx,
		`INSERT INTO question_performance
			(session_id, user_id, question_id, question_type, question_difficulty, topic_area,
			 response_time_seconds, accuracy_score, completeness_score, communication_score,
			 question_data, response_data)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		qp.SessionID, qp.UserID, qp.QuestionID, qp.QuestionType, string(qp.Difficulty), qp.TopicArea,
		qp.ResponseTimeSeconds, qp.AccuracyScore, qp.CompletenessScore, qp.CommunicationScore,
		string(questionData), string(responseData),
	)
	if err != nil {
		return fmt.Errorf("failed to insert question performance: %w", err)
	}
	return nil
}

// RecordAdaptation stores a learning adaptation event.
func (d *DB) RecordAdaptation(ctx context.Context, ev *types.AdaptationEvent) error {
	_, err := d.db.ExecContext(ctx,
		`INSERT INTO learning_adaptations
			(user_id, session_id, created_at, adaptation_type, previous_value, new_value, reason, effectiveness_score)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		ev.UserID, ev.SessionID, formatTime(ev.CreatedAt), ev.Type,
		ev.PreviousValue, ev.NewValue, ev.Reason, ev.EffectivenessScore,
	)
	if err != nil {
		return fmt.Errorf("failed to insert adaptation: %w", err)
	}
	return nil
}

// ListAdaptations returns a user's adaptation events oldest first.
func (d *DB) ListAdaptations(ctx context.Context, userID string) ([]types.AdaptationEvent, error) {
	rows, err := d.db.QueryContext(ctx,
		`SELECT user_id, session_id, created_at, adaptation_type, previous_value, new_value, reason, effectiveness_score
		 FROM learning_adaptations
		 WHERE user_id = ?
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
		var createdAt string
		if err := rows.Scan(&ev.UserID, &ev.SessionID, &createdAt, &ev.Type,
			&ev.PreviousValue, &ev.NewValue, &ev.Reason, &ev.EffectivenessScore); err != nil {
			return nil, fmt.Errorf("failed to scan adaptation: %w", err)
		}
		ev.CreatedAt = parseTime(createdAt)
		events = append(events, ev)
	}
	return events, rows.Err()
}
