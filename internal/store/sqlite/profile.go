package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/aminmotiwala/atic/internal/store"
	"github.com/aminmotiwala/atic/internal/types"
)

// UpsertProfile inserts a new profile or updates an existing one. The
// created_at of an existing row is preserved.
func (d *DB) UpsertProfile(ctx context.Context, profile *types.UserProfile) error {
	profileData, err := json.Marshal(profile)
	if err != nil {
		return fmt.Errorf("failed to marshal profile: %w", err)
	}
	skillLevels, err := json.Marshal(profile.Experience.SelfAssessment)
	if err != nil {
		return fmt.Errorf("failed to marshal skill levels: %w", err)
	}

	_, err = d.db.ExecContext(ctx,
		`INSERT INTO user_profiles
			(user_id, created_at, last_updated, experience_years, technical_field, current_role, skill_levels, profile_data)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(user_id) DO UPDATE SET
			last_updated = excluded.last_updated,
			experience_years = excluded.experience_years,
			technical_field = excluded.technical_field,
			current_role = excluded.current_role,
			skill_levels = excluded.skill_levels,
			profile_data = excluded.profile_data`,
		profile.UserID,
		formatTime(profile.CreatedAt),
		formatTime(profile.LastUpdated),
		profile.Experience.Years,
		profile.Experience.Field,
		profile.Experience.CurrentRole,
		string(skillLevels),
		string(profileData),
	)
	if err != nil {
		return fmt.Errorf("failed to upsert profile: %w", err)
	}
	return nil
}

// GetProfile retrieves a profile by user id.
func (d *DB) GetProfile(ctx context.Context, userID string) (*types.UserProfile, error) {
	var createdAt, lastUpdated, profileData string
	err := d.db.QueryRowContext(ctx,
		`SELECT created_at, last_updated, profile_data FROM user_profiles WHERE user_id = ?`,
		userID,
	).Scan(&createdAt, &lastUpdated, &profileData)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get profile %s: %w", userID, err)
	}

	var profile types.UserProfile
	if err := json.Unmarshal([]byte(profileData), &profile); err != nil {
		return nil, fmt.Errorf("failed to unmarshal profile %s: %w", userID, err)
	}
	// Column timestamps are authoritative over the serialized blob.
	profile.CreatedAt = parseTime(createdAt)
	profile.LastUpdated = parseTime(lastUpdated)
	return &profile, nil
}
