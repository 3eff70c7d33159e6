// Package extract converts free-text job descriptions into structured
// interview requirements using deterministic keyword matching.
package extract

import (
	"strings"

	"github.com/aminmotiwala/atic/internal/types"
)

// RequiredSkillCutoff is the fixed split point between required and
// preferred skills in the discovered technology stack.
const RequiredSkillCutoff = 6

// keywordCategory pairs a category name with its ordered keyword list.
// Slice order is significant: the technology stack preserves
// category-then-keyword discovery order.
type keywordCategory struct {
	name     string
	keywords []string
}

var technicalKeywords = []keywordCategory{
	{"programming_languages", []string{"python", "javascript", "java", "c++", "c#", "go", "rust", "typescript", "php", "ruby"}},
	{"frameworks", []string{"react", "angular", "vue", "django", "flask", "spring", "express", "laravel", "rails"}},
	{"databases", []string{"sql", "mysql", "postgresql", "mongodb", "redis", "elasticsearch", "dynamodb"}},
	{"cloud_platforms", []string{"aws", "azure", "gcp", "google cloud", "docker", "kubernetes", "terraform"}},
	{"tools", []string{"git", "jenkins", "ci/cd", "microservices", "api", "rest", "graphql"}},
}

// seniorityIndicators are tested in priority order; the first group with any
// match wins.
var seniorityIndicators = []struct {
	level      types.ExperienceLevel
	indicators []string
}{
	{types.LevelSenior, []string{"senior", "lead", "principal", "architect", "5+ years", "mentor", "leadership"}},
	{types.LevelMid, []string{"mid-level", "3-5 years", "experienced", "solid experience"}},
	{types.LevelJunior, []string{"junior", "entry-level", "0-2 years", "new graduate", "recent graduate"}},
}

var responsibilityKeywords = []struct {
	category string
	keywords []string
}{
	{types.ResponsibilitySystemDesign, []string{"system design", "architecture", "scalable", "distributed", "microservices"}},
	{types.ResponsibilityCoding, []string{"coding", "programming", "development", "implementation", "algorithms"}},
	{types.ResponsibilityCollaboration, []string{"collaborate", "team", "cross-functional", "communication"}},
	{types.ResponsibilityLeadership, []string{"mentor", "lead", "guide", "technical leadership"}},
}

// Extract analyzes a job description and returns structured requirements.
// The same input always produces the same output. Matching is intentionally
// naive substring matching; "go" matching inside a longer word is expected
// behavior, not a bug.
func Extract(description string) types.ExtractedRequirements {
	if strings.TrimSpace(description) == "" {
		return DefaultTemplate()
	}

	lower := strings.ToLower(description)

	result := types.ExtractedRequirements{
		SeniorityLevel:  types.LevelMid,
		ComplexityLevel: types.DifficultyIntermediate,
	}

	// Technology stack in category-then-keyword order; identical duplicates
	// across categories are dropped.
	seen := make(map[string]bool)
	for _, category := range technicalKeywords {
		for _, keyword := range category.keywords {
			if strings.Contains(lower, keyword) && !seen[keyword] {
				result.TechnologyStack = append(result.TechnologyStack, keyword)
				seen[keyword] = true
			}
		}
	}

	// Seniority: first matching group wins.
	for _, group := range seniorityIndicators {
		var matched []string
		for _, indicator := range group.indicators {
			if strings.Contains(lower, indicator) {
				matched = append(matched, indicator)
			}
		}
		if len(matched) > 0 {
			result.SeniorityLevel = group.level
			result.SeniorityIndicators = matched
			break
		}
	}

	// Responsibility categories are independent any-match tests.
	for _, group := range responsibilityKeywords {
		for _, keyword := range group.keywords {
			if strings.Contains(lower, keyword) {
				result.ResponsibilityCategories = append(result.ResponsibilityCategories, group.category)
				break
			}
		}
	}

	result.InterviewFocusAreas = deriveFocusAreas(result)
	result.ComplexityLevel = deriveComplexity(result.SeniorityLevel, len(result.ResponsibilityCategories))

	// Fixed required/preferred split at RequiredSkillCutoff.
	if len(result.TechnologyStack) > RequiredSkillCutoff {
		result.RequiredTechnicalSkills = result.TechnologyStack[:RequiredSkillCutoff]
		result.PreferredSkills = result.TechnologyStack[RequiredSkillCutoff:]
	} else {
		result.RequiredTechnicalSkills = result.TechnologyStack
	}

	return result
}

func deriveFocusAreas(req types.ExtractedRequirements) []string {
	var areas []string
	if len(req.TechnologyStack) > 0 {
		areas = append(areas, types.FocusTechnicalKnowledge)
	}
	if containsString(req.ResponsibilityCategories, types.ResponsibilityCoding) {
		areas = append(areas, types.FocusCodingProblems)
	}
	if containsString(req.ResponsibilityCategories, types.ResponsibilitySystemDesign) {
		areas = append(areas, types.FocusSystemDesign)
	}
	if containsString(req.ResponsibilityCategories, types.ResponsibilityLeadership) {
		areas = append(areas, types.FocusBehavioralLeadership)
	}
	if len(areas) == 0 {
		areas = []string{types.FocusGeneralTechnical}
	}
	return areas
}

func deriveComplexity(seniority types.ExperienceLevel, responsibilityCount int) types.Difficulty {
	switch {
	case seniority == types.LevelSenior || responsibilityCount > 3:
		return types.DifficultyAdvanced
	case seniority == types.LevelJunior:
		return types.DifficultyBeginner
	default:
		return types.DifficultyIntermediate
	}
}

// DefaultTemplate is returned for blank descriptions. The literal values
// mirror the generic technical role assumption.
func DefaultTemplate() types.ExtractedRequirements {
	return types.ExtractedRequirements{
		RequiredTechnicalSkills:  []string{"Problem Solving", "Programming", "System Design"},
		PreferredSkills:          []string{"Communication", "Teamwork"},
		SeniorityLevel:           types.LevelMid,
		SeniorityIndicators:      []string{"mid-level"},
		ResponsibilityCategories: []string{types.ResponsibilityCoding, types.ResponsibilityCollaboration},
		TechnologyStack:          []string{"General Programming"},
		SoftSkills:               []string{"Communication"},
		InterviewFocusAreas:      []string{types.FocusCodingProblems, types.FocusTechnicalKnowledge},
		ComplexityLevel:          types.DifficultyIntermediate,
	}
}

func containsString(list []string, target string) bool {
	for _, item := range list {
		if item == target {
			return true
		}
	}
	return false
}
