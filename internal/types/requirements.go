//nolint:revive // types is a standard Go package name pattern
package types

// Interview focus areas derived from an extracted job description.
const (
	FocusTechnicalKnowledge   = "technical_knowledge"
	FocusCodingProblems       = "coding_problems"
	FocusSystemDesign         = "system_design"
	FocusBehavioralLeadership = "behavioral_leadership"
	FocusGeneralTechnical     = "general_technical"
)

// Responsibility categories detected in a job description.
const (
	ResponsibilitySystemDesign  = "system_design"
	ResponsibilityCoding        = "coding"
	ResponsibilityCollaboration = "collaboration"
	ResponsibilityLeadership    = "leadership"
)

// ExtractedRequirements is the structured result of analyzing a job
// description. It is a deterministic function of the description text.
type ExtractedRequirements struct {
	TechnologyStack          []string        `json:"technology_stack"`
	RequiredTechnicalSkills  []string        `json:"required_technical_skills"`
	PreferredSkills          []string        `json:"preferred_skills"`
	SeniorityLevel           ExperienceLevel `json:"seniority_level"`
	SeniorityIndicators      []string        `json:"seniority_indicators"`
	ResponsibilityCategories []string        `json:"responsibility_categories"`
	SoftSkills               []string        `json:"soft_skills"`
	InterviewFocusAreas      []string        `json:"interview_focus_areas"`
	ComplexityLevel          Difficulty      `json:"complexity_level"`
}
