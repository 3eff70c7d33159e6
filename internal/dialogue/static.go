package dialogue

import (
	"context"
	"time"

	"github.com/aminmotiwala/atic/internal/types"
)

// Static returns pre-supplied answers instead of prompting. Used by tests
// and by batch flows that already hold the user's context.
type Static struct {
	Experience types.Experience
	TargetJob  types.TargetJob

	// ExperienceErr and TargetJobErr, when set, are returned instead of the
	// corresponding answer.
	ExperienceErr error
	TargetJobErr  error
}

// GatherExperience returns the configured experience answer.
func (s *Static) GatherExperience(_ context.Context) (*types.Experience, error) {
	if s.ExperienceErr != nil {
		return nil, s.ExperienceErr
	}
	experience := s.Experience
	if experience.Level == "" {
		experience.Level = types.LevelForYears(experience.Years)
	}
	return &experience, nil
}

// GatherTargetJob returns the configured target job answer.
func (s *Static) GatherTargetJob(_ context.Context) (*types.TargetJob, error) {
	if s.TargetJobErr != nil {
		return nil, s.TargetJobErr
	}
	job := s.TargetJob
	if job.DescriptionLength == 0 {
		job.DescriptionLength = len(job.Description)
	}
	if job.CollectedAt.IsZero() {
		job.CollectedAt = time.Now().UTC()
	}
	return &job, nil
}
