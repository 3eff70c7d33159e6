// Package dialogue gathers the user-supplied context a session needs: the
// candidate's professional background and the target job description.
package dialogue

import (
	"context"

	"github.com/aminmotiwala/atic/internal/types"
)

// Provider supplies the two context-gathering steps of session
// initialization. Implementations may be interactive (terminal) or
// programmatic (tests, batch import).
type Provider interface {
	GatherExperience(ctx context.Context) (*types.Experience, error)
	GatherTargetJob(ctx context.Context) (*types.TargetJob, error)
}

// defaultSkillAreas is used when the technical field has no dedicated list.
var defaultSkillAreas = []string{
	"Problem Solving", "Algorithms", "Data Structures", "System Design", "Communication",
}

var fieldSkillAreas = map[string][]string{
	"front-end":    {"JavaScript/TypeScript", "React/Vue/Angular", "CSS/Styling", "Web Performance", "Testing"},
	"back-end":     {"System Design", "Database Design", "API Development", "Scalability", "Security"},
	"full-stack":   {"Frontend Development", "Backend Development", "Database Design", "System Architecture", "DevOps"},
	"data science": {"Machine Learning", "Statistics", "Python/R", "Data Processing", "Visualization"},
	"devops":       {"Infrastructure", "CI/CD", "Monitoring", "Cloud Platforms", "Automation"},
	"mobile":       {"iOS/Android Development", "Mobile UI/UX", "Performance", "Testing", "App Store"},
	"qa":           {"Test Automation", "Manual Testing", "Performance Testing", "Security Testing", "Tools"},
}

// SkillAreasForField returns the self-assessment skill areas relevant to a
// technical field, falling back to a general list for unknown fields.
func SkillAreasForField(field string) []string {
	if areas, ok := fieldSkillAreas[field]; ok {
		return areas
	}
	return defaultSkillAreas
}
