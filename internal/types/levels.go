// Package types provides type definitions for structured data used throughout the interview coach.
//
//nolint:revive // types is a standard Go package name pattern
package types

// ExperienceLevel is a coarse seniority bucket for a candidate or a role.
type ExperienceLevel string

// Experience levels in ascending order
const (
	LevelJunior ExperienceLevel = "junior"
	LevelMid    ExperienceLevel = "mid"
	LevelSenior ExperienceLevel = "senior"
)

// Ordinal returns the numeric rank of the level (junior=1, mid=2, senior=3).
// Unknown levels rank as mid.
func (l ExperienceLevel) Ordinal() int {
	switch l {
	case LevelJunior:
		return 1
	case LevelMid:
		return 2
	case LevelSenior:
		return 3
	default:
		return 2
	}
}

// Difficulty is a question or plan difficulty level.
type Difficulty string

// Difficulty levels in ascending order
const (
	DifficultyBeginner     Difficulty = "beginner"
	DifficultyIntermediate Difficulty = "intermediate"
	DifficultyAdvanced     Difficulty = "advanced"
)

// LevelForYears buckets years of professional experience into a level:
// 0-2 junior, 3-5 mid, 6+ senior.
func LevelForYears(years int) ExperienceLevel {
	switch {
	case years <= 2:
		return LevelJunior
	case years <= 5:
		return LevelMid
	default:
		return LevelSenior
	}
}
