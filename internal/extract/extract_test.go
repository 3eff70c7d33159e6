package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/aminmotiwala/atic/internal/types"
)

func TestExtract_Deterministic(t *testing.T) {
	description := "Senior engineer: Python, React, AWS, Kubernetes, system design, mentoring a team."

	first := Extract(description)
	second := Extract(description)

	assert.Equal(t, first, second)
}

func TestExtract_BlankDescriptionReturnsDefaultTemplate(t *testing.T) {
	for _, input := range []string{"", "   ", "\n\t "} {
		result := Extract(input)
		assert.Equal(t, DefaultTemplate(), result)
	}

	template := DefaultTemplate()
	assert.Equal(t, types.LevelMid, template.SeniorityLevel)
	assert.Equal(t, types.DifficultyIntermediate, template.ComplexityLevel)
	assert.Equal(t, []string{types.FocusCodingProblems, types.FocusTechnicalKnowledge}, template.InterviewFocusAreas)
}

func TestExtract_TechnologyStackOrderAndSplit(t *testing.T) {
	description := "Stack: python, javascript, react, django, sql, redis, aws, docker, git, graphql"

	result := Extract(description)

	// required ++ preferred reassembles the stack and required caps at 6
	assert.LessOrEqual(t, len(result.RequiredTechnicalSkills), RequiredSkillCutoff)
	recombined := append([]string{}, result.RequiredTechnicalSkills...)
	recombined = append(recombined, result.PreferredSkills...)
	assert.Equal(t, result.TechnologyStack, recombined)

	// category order: languages before frameworks before databases etc.
	assert.Contains(t, result.TechnologyStack, "python")
	assert.Contains(t, result.TechnologyStack, "react")
	idxPython := indexOf(result.TechnologyStack, "python")
	idxReact := indexOf(result.TechnologyStack, "react")
	idxSQL := indexOf(result.TechnologyStack, "sql")
	assert.Less(t, idxPython, idxReact)
	assert.Less(t, idxReact, idxSQL)
}

func TestExtract_SubstringMatchingIsIntentionallyNaive(t *testing.T) {
	// "django" contains both "go" and "django"; "javascript" also matches "java".
	result := Extract("We build everything with Django and JavaScript.")

	assert.Contains(t, result.TechnologyStack, "go")
	assert.Contains(t, result.TechnologyStack, "django")
	assert.Contains(t, result.TechnologyStack, "javascript")
	assert.Contains(t, result.TechnologyStack, "java")
}

func TestExtract_SeniorityPriorityOrder(t *testing.T) {
	tests := []struct {
		name        string
		description string
		want        types.ExperienceLevel
	}{
		{"senior wins over junior mention", "Senior role open to junior applicants", types.LevelSenior},
		{"junior detected", "junior developer position with React", types.LevelJunior},
		{"mid detected", "mid-level engineer with solid experience", types.LevelMid},
		{"default is mid", "software engineer writing python", types.LevelMid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Extract(tt.description)
			assert.Equal(t, tt.want, result.SeniorityLevel)
		})
	}
}

func TestExtract_SeniorityIndicatorsRecorded(t *testing.T) {
	result := Extract("Principal architect who will mentor the team")

	assert.Equal(t, types.LevelSenior, result.SeniorityLevel)
	assert.Contains(t, result.SeniorityIndicators, "principal")
	assert.Contains(t, result.SeniorityIndicators, "architect")
	assert.Contains(t, result.SeniorityIndicators, "mentor")
}

func TestExtract_ResponsibilityCategoriesNotExclusive(t *testing.T) {
	result := Extract("You will design scalable architecture, write algorithms, collaborate with the team, and mentor juniors.")

	assert.Contains(t, result.ResponsibilityCategories, types.ResponsibilitySystemDesign)
	assert.Contains(t, result.ResponsibilityCategories, types.ResponsibilityCoding)
	assert.Contains(t, result.ResponsibilityCategories, types.ResponsibilityCollaboration)
	assert.Contains(t, result.ResponsibilityCategories, types.ResponsibilityLeadership)
}

func TestExtract_FocusAreasDerivation(t *testing.T) {
	result := Extract("python programming with algorithms and system design architecture")

	assert.Contains(t, result.InterviewFocusAreas, types.FocusTechnicalKnowledge)
	assert.Contains(t, result.InterviewFocusAreas, types.FocusCodingProblems)
	assert.Contains(t, result.InterviewFocusAreas, types.FocusSystemDesign)
	assert.NotContains(t, result.InterviewFocusAreas, types.FocusGeneralTechnical)
}

func TestExtract_GeneralTechnicalFallback(t *testing.T) {
	// No tech keywords, no responsibility keywords.
	result := Extract("An exciting opportunity at our company.")

	assert.Equal(t, []string{types.FocusGeneralTechnical}, result.InterviewFocusAreas)
	assert.Empty(t, result.TechnologyStack)
}

func TestExtract_ComplexityRules(t *testing.T) {
	senior := Extract("senior engineer writing python")
	assert.Equal(t, types.DifficultyAdvanced, senior.ComplexityLevel)

	junior := Extract("junior engineer writing python")
	assert.Equal(t, types.DifficultyBeginner, junior.ComplexityLevel)

	// All four responsibility categories but default (mid) seniority:
	// more than 3 categories forces advanced.
	busy := Extract("scalable distributed systems, algorithms development, cross-functional collaboration, guide new engineers")
	assert.Equal(t, types.LevelMid, busy.SeniorityLevel)
	assert.Greater(t, len(busy.ResponsibilityCategories), 3)
	assert.Equal(t, types.DifficultyAdvanced, busy.ComplexityLevel)

	mid := Extract("engineer writing python programs")
	assert.Equal(t, types.DifficultyIntermediate, mid.ComplexityLevel)
}

func TestExtract_ReactJuniorScenario(t *testing.T) {
	result := Extract("We are hiring a junior front-end developer who knows React.")

	assert.Equal(t, types.LevelJunior, result.SeniorityLevel)
	assert.Equal(t, types.DifficultyBeginner, result.ComplexityLevel)
	assert.Contains(t, result.TechnologyStack, "react")
}

func indexOf(list []string, target string) int {
	for i, item := range list {
		if item == target {
			return i
		}
	}
	return -1
}
