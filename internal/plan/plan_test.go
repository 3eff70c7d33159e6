package plan

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aminmotiwala/atic/internal/types"
)

func experienceWithYears(years int) types.Experience {
	return types.Experience{Years: years, Field: "back-end"}
}

func requirementsWith(complexity types.Difficulty, focusAreas ...string) types.ExtractedRequirements {
	return types.ExtractedRequirements{
		ComplexityLevel:     complexity,
		InterviewFocusAreas: focusAreas,
	}
}

func TestInitialDifficulty_Precedence(t *testing.T) {
	tests := []struct {
		name       string
		years      int
		complexity types.Difficulty
		want       types.Difficulty
	}{
		{"senior user advanced job", 8, types.DifficultyAdvanced, types.DifficultyAdvanced},
		{"junior user", 1, types.DifficultyAdvanced, types.DifficultyBeginner},
		{"beginner job", 4, types.DifficultyBeginner, types.DifficultyBeginner},
		{"senior user beginner job stays beginner via job rule", 8, types.DifficultyBeginner, types.DifficultyBeginner},
		{"senior user intermediate job", 8, types.DifficultyIntermediate, types.DifficultyIntermediate},
		{"mid user intermediate job", 4, types.DifficultyIntermediate, types.DifficultyIntermediate},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := InitialDifficulty(experienceWithYears(tt.years), requirementsWith(tt.complexity))
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestBuild_AllPhasesInFixedOrder(t *testing.T) {
	exp := experienceWithYears(4)
	req := requirementsWith(types.DifficultyAdvanced,
		types.FocusTechnicalKnowledge,
		types.FocusCodingProblems,
		types.FocusSystemDesign,
		types.FocusBehavioralLeadership,
	)

	p := Build(exp, req)

	require.Len(t, p.Phases, 4)
	assert.Equal(t, types.PhaseCodingAssessment, p.Phases[0].Name)
	assert.Equal(t, types.PhaseSystemDesign, p.Phases[1].Name)
	assert.Equal(t, types.PhaseTechnicalConcepts, p.Phases[2].Name)
	assert.Equal(t, types.PhaseBehavioral, p.Phases[3].Name)

	// Durations and counts are fixed per phase.
	assert.Equal(t, 30, p.Phases[0].DurationMinutes)
	assert.Equal(t, 2, p.Phases[0].QuestionCount)
	assert.Equal(t, 25, p.Phases[1].DurationMinutes)
	assert.Equal(t, 1, p.Phases[1].QuestionCount)
	assert.Equal(t, 15, p.Phases[2].DurationMinutes)
	assert.Equal(t, 3, p.Phases[2].QuestionCount)
	assert.Equal(t, 10, p.Phases[3].DurationMinutes)
	assert.Equal(t, 2, p.Phases[3].QuestionCount)

	assert.Equal(t, 30+25+15+10, p.EstimatedDuration)
}

func TestBuild_GapMatchingPicksHigherLevel(t *testing.T) {
	// Mid user, advanced job: coding phase should challenge at the job level.
	p := Build(experienceWithYears(4), requirementsWith(types.DifficultyAdvanced, types.FocusCodingProblems))
	require.NotEmpty(t, p.Phases)
	assert.Equal(t, types.DifficultyAdvanced, p.Phases[0].Difficulty)

	// Senior user, beginner job: coding phase stays at the user's level.
	p = Build(experienceWithYears(10), requirementsWith(types.DifficultyBeginner, types.FocusCodingProblems))
	require.NotEmpty(t, p.Phases)
	assert.Equal(t, types.DifficultyAdvanced, p.Phases[0].Difficulty)
}

func TestBuild_SystemDesignUsesJobLevel(t *testing.T) {
	p := Build(experienceWithYears(1), requirementsWith(types.DifficultyAdvanced, types.FocusSystemDesign))

	require.Len(t, p.Phases, 1)
	assert.Equal(t, types.PhaseSystemDesign, p.Phases[0].Name)
	assert.Equal(t, types.DifficultyAdvanced, p.Phases[0].Difficulty)
}

func TestBuild_BehavioralIncludedForMidAndSeniorUsers(t *testing.T) {
	// Mid user without behavioral focus still gets a behavioral phase.
	p := Build(experienceWithYears(4), requirementsWith(types.DifficultyIntermediate, types.FocusTechnicalKnowledge))
	names := phaseNames(p)
	assert.Contains(t, names, types.PhaseBehavioral)

	// Junior user without behavioral focus does not.
	p = Build(experienceWithYears(1), requirementsWith(types.DifficultyIntermediate, types.FocusTechnicalKnowledge))
	names = phaseNames(p)
	assert.NotContains(t, names, types.PhaseBehavioral)
}

func TestBuild_GeneralTechnicalOnlyYieldsNonEmptyPlan(t *testing.T) {
	// Junior user + general_technical focus matches no conditional phase;
	// the fallback must still yield a plan with at least one phase.
	p := Build(experienceWithYears(1), requirementsWith(types.DifficultyIntermediate, types.FocusGeneralTechnical))

	require.NotEmpty(t, p.Phases)
	assert.Equal(t, types.PhaseGeneralTechnical, p.Phases[0].Name)
	assert.Equal(t, types.DifficultyBeginner, p.Phases[0].Difficulty)
	assert.Equal(t, p.Phases[0].DurationMinutes, p.EstimatedDuration)
}

func TestBuild_Deterministic(t *testing.T) {
	exp := types.Experience{
		Years:          4,
		Field:          "full-stack",
		SelfAssessment: map[string]int{"Frontend Development": 4, "Backend Development": 3},
	}
	req := requirementsWith(types.DifficultyAdvanced, types.FocusCodingProblems, types.FocusSystemDesign)

	assert.Equal(t, Build(exp, req), Build(exp, req))
}

func TestBuild_AdaptiveParameters(t *testing.T) {
	exp := types.Experience{
		Years:          7,
		Field:          "devops",
		SelfAssessment: map[string]int{"Infrastructure": 5, "CI/CD": 3},
	}
	req := requirementsWith(types.DifficultyAdvanced, types.FocusTechnicalKnowledge)

	p := Build(exp, req)

	assert.Equal(t, types.DifficultyAdvanced, p.Adaptive.InitialDifficulty)
	assert.InDelta(t, AdjustmentThreshold, p.Adaptive.AdjustmentThreshold, 1e-9)
	assert.Equal(t, MaxDifficultyJumps, p.Adaptive.MaxDifficultyJumps)
	assert.Equal(t, 7, p.Adaptive.Personalization.ExperienceYears)
	assert.Equal(t, "devops", p.Adaptive.Personalization.FieldExpertise)
	assert.InDelta(t, (5+3)/2.0/5.0, p.Adaptive.Personalization.SelfAssessedConfidence, 1e-9)
}

func TestConfidenceScore_DefaultWithoutSelfAssessment(t *testing.T) {
	assert.InDelta(t, DefaultConfidence, ConfidenceScore(types.Experience{Years: 3}), 1e-9)
}

func TestBuild_QuestionCategoriesDeduplicated(t *testing.T) {
	req := requirementsWith(types.DifficultyIntermediate, types.FocusCodingProblems, types.FocusGeneralTechnical)

	p := Build(experienceWithYears(4), req)

	// coding_problems and general_technical share "algorithms" and
	// "problem_solving"; each appears once, first-seen order kept.
	assert.Equal(t, []string{"algorithms", "data_structures", "problem_solving", "concepts"}, p.QuestionCategories)
}

func TestAdjust_OneStepPerSession(t *testing.T) {
	tests := []struct {
		name    string
		current types.Difficulty
		score   float64
		want    types.Difficulty
		changed bool
	}{
		{"strong score raises one level", types.DifficultyBeginner, 0.85, types.DifficultyIntermediate, true},
		{"strong score never skips a level", types.DifficultyIntermediate, 0.95, types.DifficultyAdvanced, true},
		{"already advanced stays put", types.DifficultyAdvanced, 0.9, types.DifficultyAdvanced, false},
		{"weak score lowers one level", types.DifficultyAdvanced, 0.15, types.DifficultyIntermediate, true},
		{"already beginner stays put", types.DifficultyBeginner, 0.1, types.DifficultyBeginner, false},
		{"middle band leaves difficulty alone", types.DifficultyIntermediate, 0.6, types.DifficultyIntermediate, false},
		{"exactly at the threshold adjusts", types.DifficultyIntermediate, 0.8, types.DifficultyAdvanced, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			next, reason, changed := Adjust(tt.current, tt.score)
			assert.Equal(t, tt.want, next)
			assert.Equal(t, tt.changed, changed)
			if changed {
				assert.NotEmpty(t, reason)
			} else {
				assert.Empty(t, reason)
			}
		})
	}
}

func phaseNames(p types.InterviewPlan) []string {
	names := make([]string, 0, len(p.Phases))
	for _, phase := range p.Phases {
		names = append(names, phase.Name)
	}
	return names
}
