package sqlite

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/aminmotiwala/atic/internal/types"
)

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

	_, err = d.db.ExecContext(ctx,
		`INSERT INTO sessions
			(session_id, user_id, created_at, status, target_company, target_role, difficulty_level, session_data)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(session_id) DO UPDATE SET
			status = excluded.status,
			session_data = excluded.session_data`,
		session.ID,
		session.Profile.UserID,
		formatTime(session.CreatedAt),
		string(session.Status),
		company,
		role,
		string(session.Profile.DifficultyLevel),
		string(sessionData),
	)
	if err != nil {
		return fmt.Errorf("failed to insert session: %w", err)
	}
	return nil
}

// CompleteSession updates the session row to completed and fans out the
// per-category and overall scores into performance_metrics, all in one
// transaction.
func (d *DB) CompleteSession(ctx context.Context, session *types.Session) error {
	sessionData, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}

	completedAt := time.Now().UTC()
	if session.CompletedAt != nil {
		completedAt = *session.CompletedAt
	}

	tx, err := d.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	result, err := tx.ExecContext(ctx,
		`UPDATE sessions SET completed_at = ?, status = ?, session_data = ? WHERE session_id = ?`,
		formatTime(completedAt), string(types.StatusCompleted), string(sessionData), session.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update session: %w", err)
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		// Initialization-time persistence may have failed; recover by
		// inserting the row now rather than dropping the record.
		var company, role string
		if session.Profile.TargetJob != nil {
			company = session.Profile.TargetJob.Company
			role = session.Profile.TargetJob.Role
		}
		_, err = tx.ExecContext(ctx,
			`INSERT INTO sessions
				(session_id, user_id, created_at, completed_at, status, target_company, target_role, difficulty_level, session_data)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			session.ID, session.Profile.UserID, formatTime(session.CreatedAt), formatTime(completedAt),
			string(types.StatusCompleted), company, role, string(session.Profile.DifficultyLevel), string(sessionData),
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
			_, err = tx.ExecContext(ctx,
				`INSERT INTO performance_metrics
					(session_id, user_id, recorded_at, category, metric_name, metric_value)
				 VALUES (?, ?, ?, ?, 'category_score', ?)`,
				session.ID, session.Profile.UserID, formatTime(completedAt), category,
				session.Performance.CategoryScores[category],
			)
			if err != nil {
				return fmt.Errorf("failed to insert category score: %w", err)
			}
		}

		_, err = tx.ExecContext(ctx,
			`INSERT INTO performance_metrics
				(session_id, user_id, recorded_at, category, metric_name, metric_value)
			 VALUES (?, ?, ?, 'overall', 'session_score', ?)`,
			session.ID, session.Profile.UserID, formatTime(completedAt), session.Performance.OverallScore,
		)
		if err != nil {
			return fmt.Errorf("failed to insert overall score: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit session completion: %w", err)
	}
	return nil
}

// ListCompletedSessions returns completed sessions newest first.
func (d *DB) ListCompletedSessions(ctx context.Context, userID string, limit int) ([]*types.Session, error) {
	rows, err := d.db.QueryContext(ctx,
		`SELECT session_data FROM sessions
		 WHERE user_id = ? AND status = ?
		 ORDER BY completed_at DESC
		 LIMIT ?`,
		userID, string(types.StatusCompleted), limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}
	defer rows.Close()

	var sessions []*types.Session
	for rows.Next() {
		var data string
		if err := rows.Scan(&data); err != nil {
			return nil, fmt.Errorf("failed to scan session: %w", err)
		}
		var session types.Session
		if err := json.Unmarshal([]byte(data), &session); err != nil {
			return nil, fmt.Errorf("failed to unmarshal session: %w", err)
		}
		sessions = append(sessions, &session)
	}
	return sessions, rows.Err()
}

// CountCompletedSessions returns the number of completed sessions for a user.
func (d *DB) CountCompletedSessions(ctx context.Context, userID string) (int, error) {
	var count int
	err := d.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM sessions WHERE user_id = ? AND status = ?`,
		userID, string(types.StatusCompleted),
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count sessions: %w", err)
	}
	return count, nil
}

// Purge deletes old performance metrics and old completed sessions.
// Profiles and in-progress sessions survive.
func (d *DB) Purge(ctx context.Context, cutoff time.Time) (int64, error) {
	tx, err := d.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	metricsResult, err := tx.ExecContext(ctx,
		`DELETE FROM performance_metrics WHERE recorded_at < ?`, formatTime(cutoff))
	if err != nil {
		return 0, fmt.Errorf("failed to purge metrics: %w", err)
	}
	deletedMetrics, _ := metricsResult.RowsAffected()

	sessionsResult, err := tx.ExecContext(ctx,
		`DELETE FROM sessions WHERE created_at < ? AND status = ?`,
		formatTime(cutoff), string(types.StatusCompleted))
	if err != nil {
		return 0, fmt.Errorf("failed to purge sessions: %w", err)
	}
	deletedSessions, _ := sessionsResult.RowsAffected()

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit purge: %w", err)
	}
	return deletedMetrics + deletedSessions, nil
}
