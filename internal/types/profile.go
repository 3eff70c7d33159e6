//nolint:revive // types is a standard Go package name pattern
package types

import "time"

// Experience captures a user's self-reported professional background.
// SelfAssessment maps skill names to a 1-5 confidence rating.
type Experience struct {
	Years              int             `json:"years" validate:"min=0"`
	Field              string          `json:"field" validate:"required"`
	CurrentRole        string          `json:"current_role"`
	CompanySize        string          `json:"company_size,omitempty"`
	PreviousInterviews string          `json:"previous_interviews,omitempty"`
	SelfAssessment     map[string]int  `json:"self_assessment" validate:"omitempty,dive,min=1,max=5"`
	ProficiencyAreas   []string        `json:"proficiency_areas,omitempty"`
	Level              ExperienceLevel `json:"experience_level"`
}

// TargetJob describes the position a session prepares for. Immutable once a
// session starts.
type TargetJob struct {
	Company           string    `json:"company"`
	Role              string    `json:"role"`
	Description       string    `json:"description"`
	Timeline          string    `json:"timeline,omitempty"`
	DescriptionLength int       `json:"description_length"`
	CollectedAt       time.Time `json:"collected_at"`
}

// UserProfile is the durable record of a user across sessions.
type UserProfile struct {
	UserID          string     `json:"user_id"`
	Experience      Experience `json:"experience"`
	TargetJob       *TargetJob `json:"target_job,omitempty"`
	DifficultyLevel Difficulty `json:"difficulty_level,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
	LastUpdated     time.Time  `json:"last_updated"`
}
