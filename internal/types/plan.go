//nolint:revive // types is a standard Go package name pattern
package types

// Interview phase names, appended in this fixed order when applicable.
const (
	PhaseCodingAssessment  = "coding_assessment"
	PhaseSystemDesign      = "system_design"
	PhaseTechnicalConcepts = "technical_concepts"
	PhaseBehavioral        = "behavioral"
	PhaseGeneralTechnical  = "general_technical"
)

// Phase is one segment of an interview plan.
type Phase struct {
	Name            string     `json:"phase"`
	DurationMinutes int        `json:"duration_minutes"`
	QuestionCount   int        `json:"question_count"`
	Difficulty      Difficulty `json:"difficulty"`
}

// PersonalizationFactors feed the adaptive difficulty parameters.
type PersonalizationFactors struct {
	ExperienceYears        int        `json:"experience_years"`
	FieldExpertise         string     `json:"field_expertise"`
	TargetRoleComplexity   Difficulty `json:"target_role_complexity"`
	SelfAssessedConfidence float64    `json:"self_assessed_confidence"`
}

// AdaptiveParameters control difficulty progression for a session.
type AdaptiveParameters struct {
	InitialDifficulty   Difficulty             `json:"initial_difficulty"`
	AdjustmentThreshold float64                `json:"adjustment_threshold"`
	MaxDifficultyJumps  int                    `json:"max_difficulty_jumps"`
	Personalization     PersonalizationFactors `json:"personalization_factors"`
}

// InterviewPlan is the phased structure derived for one session. Built once
// per session and immutable after creation.
type InterviewPlan struct {
	Phases             []Phase            `json:"session_structure"`
	EstimatedDuration  int                `json:"estimated_duration"`
	FocusAreas         []string           `json:"focus_areas"`
	QuestionCategories []string           `json:"question_categories"`
	Adaptive           AdaptiveParameters `json:"adaptive_parameters"`
}
