// Package store provides durable keyed storage for user profiles, sessions,
// performance metrics, learning adaptations and per-question performance.
package store

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/aminmotiwala/atic/internal/types"
)

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = errors.New("record not found")

// Store provides access to all durable interview-coach data through a
// backend driver. It is constructed once at process start and handed by
// reference to the components that need it.
type Store struct {
	driver Driver

	// writeMu serializes completion fan-out against purge so that a purge
	// never observes a half-written session completion.
	writeMu sync.Mutex
}

// New creates a Store over the given driver.
func New(driver Driver) *Store {
	return &Store{driver: driver}
}

// Close releases the underlying driver.
func (s *Store) Close() error {
	return s.driver.Close()
}

// UpsertProfile inserts or updates a profile keyed by user id, generating an
// id from the technical field and current time when absent. last_updated is
// always advanced; created_at is preserved for existing rows.
func (s *Store) UpsertProfile(ctx context.Context, profile *types.UserProfile) error {
	now := time.Now().UTC()
	if profile.UserID == "" {
		profile.UserID = GenerateUserID(profile.Experience.Field, now)
	}
	if profile.CreatedAt.IsZero() {
		profile.CreatedAt = now
	}
	profile.LastUpdated = now
	if err := s.driver.UpsertProfile(ctx, profile); err != nil {
		return fmt.Errorf("failed to upsert profile %s: %w", profile.UserID, err)
	}
	return nil
}

// GetProfile retrieves a profile by user id, ErrNotFound when absent.
func (s *Store) GetProfile(ctx context.Context, userID string) (*types.UserProfile, error) {
	return s.driver.GetProfile(ctx, userID)
}

// CreateSession persists an initialized session. The owning profile is
// stored first so the session's foreign key resolves.
func (s *Store) CreateSession(ctx context.Context, session *types.Session) error {
	if err := s.UpsertProfile(ctx, &session.Profile); err != nil {
		return err
	}
	if err := s.driver.CreateSession(ctx, session); err != nil {
		return fmt.Errorf("failed to store session %s: %w", session.ID, err)
	}
	return nil
}

// CompleteSession marks a session completed and fans its performance
// analysis out into individual metric rows, atomically.
func (s *Store) CompleteSession(ctx context.Context, session *types.Session) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	if err := s.driver.CompleteSession(ctx, session); err != nil {
		return fmt.Errorf("failed to store completed session %s: %w", session.ID, err)
	}
	return nil
}

// GetHistory returns the user's completed sessions, newest first.
func (s *Store) GetHistory(ctx context.Context, userID string, limit int) ([]*types.Session, error) {
	if limit <= 0 {
		limit = 10
	}
	return s.driver.ListCompletedSessions(ctx, userID, limit)
}

// CountCompletedSessions returns the number of completed sessions for a user.
func (s *Store) CountCompletedSessions(ctx context.Context, userID string) (int, error) {
	return s.driver.CountCompletedSessions(ctx, userID)
}

// ListCategoryScores returns all category_score metric rows for a user in
// chronological order.
func (s *Store) ListCategoryScores(ctx context.Context, userID string) ([]types.CategoryScore, error) {
	return s.driver.ListCategoryScores(ctx, userID)
}

// GetStatistics aggregates the user's stored activity.
func (s *Store) GetStatistics(ctx context.Context, userID string) (*types.Statistics, error) {
	return s.driver.GetStatistics(ctx, userID)
}

// SaveQuestionPerformance stores scoring detail for a single question.
func (s *Store) SaveQuestionPerformance(ctx context.Context, qp *types.QuestionPerformance) error {
	if err := s.driver.SaveQuestionPerformance(ctx, qp); err != nil {
		return fmt.Errorf("failed to store question performance for %s: %w", qp.SessionID, err)
	}
	return nil
}

// RecordAdaptation stores a derived adaptation event.
func (s *Store) RecordAdaptation(ctx context.Context, ev *types.AdaptationEvent) error {
	if ev.CreatedAt.IsZero() {
		ev.CreatedAt = time.Now().UTC()
	}
	if err := s.driver.RecordAdaptation(ctx, ev); err != nil {
		return fmt.Errorf("failed to store adaptation for %s: %w", ev.UserID, err)
	}
	return nil
}

// ListAdaptations returns a user's adaptation events, oldest first.
func (s *Store) ListAdaptations(ctx context.Context, userID string) ([]types.AdaptationEvent, error) {
	return s.driver.ListAdaptations(ctx, userID)
}

// Purge irreversibly deletes performance metrics and completed sessions
// older than the given age. Running it twice in a row removes nothing extra.
func (s *Store) Purge(ctx context.Context, olderThan time.Duration) (int64, error) {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	cutoff := time.Now().UTC().Add(-olderThan)
	removed, err := s.driver.Purge(ctx, cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to purge records older than %s: %w", cutoff.Format(time.RFC3339), err)
	}
	return removed, nil
}

// GenerateUserID builds a user id from the technical field and a timestamp,
// with a uuid fragment to rule out same-second collisions. The external
// shape remains a plain string key.
func GenerateUserID(field string, now time.Time) string {
	if field == "" {
		field = "unknown"
	}
	field = strings.ReplaceAll(strings.ToLower(field), " ", "-")
	return fmt.Sprintf("user_%s_%s_%s", field, now.Format("20060102_150405"), uuid.NewString()[:8])
}
