package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScoringWeights_SumToOne(t *testing.T) {
	total := 0.0
	for _, w := range ScoringWeights {
		total += w
	}
	assert.InDelta(t, 1.0, total, 1e-9)
}

func TestOverallScore_Weighted(t *testing.T) {
	scores := map[string]float64{
		CategoryProblemSolving:     0.8,
		CategoryTechnicalKnowledge: 0.6,
		CategoryCodeQuality:        0.5,
		CategoryCommunication:      0.9,
		CategorySystemDesign:       0.4,
		CategoryTimeManagement:     1.0,
	}

	expected := 0.8*0.25 + 0.6*0.20 + 0.5*0.20 + 0.9*0.15 + 0.4*0.15 + 1.0*0.05
	assert.InDelta(t, expected, OverallScore(scores), 1e-9)
}

func TestOverallScore_MissingCategoriesContributeZero(t *testing.T) {
	scores := map[string]float64{CategoryProblemSolving: 1.0}
	assert.InDelta(t, 0.25, OverallScore(scores), 1e-9)
}

func TestNormalizeScore(t *testing.T) {
	tests := []struct {
		name string
		raw  float64
		want float64
	}{
		{"already normalized", 0.75, 0.75},
		{"rubric scale", 7.0, 0.7},
		{"rubric max", 10.0, 1.0},
		{"above rubric max", 15.0, 1.0},
		{"negative clamps", -2.0, 0.0},
		{"lowest rubric mark", 1.0, 0.1},
		{"just under one passes through", 0.999, 0.999},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, NormalizeScore(tt.raw), 1e-9)
		})
	}
}

func TestLevelForYears(t *testing.T) {
	assert.Equal(t, LevelJunior, LevelForYears(0))
	assert.Equal(t, LevelJunior, LevelForYears(2))
	assert.Equal(t, LevelMid, LevelForYears(3))
	assert.Equal(t, LevelMid, LevelForYears(5))
	assert.Equal(t, LevelSenior, LevelForYears(6))
	assert.Equal(t, LevelSenior, LevelForYears(20))
}

func TestValidateExperience(t *testing.T) {
	valid := Experience{
		Years:          3,
		Field:          "back-end",
		SelfAssessment: map[string]int{"System Design": 4},
	}
	assert.NoError(t, ValidateExperience(valid))

	missingField := Experience{Years: 3}
	assert.Error(t, ValidateExperience(missingField))

	badAssessment := Experience{
		Years:          3,
		Field:          "back-end",
		SelfAssessment: map[string]int{"System Design": 9},
	}
	assert.Error(t, ValidateExperience(badAssessment))
}
