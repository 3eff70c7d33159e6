// Package plan derives a phased interview plan from a user's experience and
// the extracted job requirements.
package plan

import (
	"fmt"

	"github.com/aminmotiwala/atic/internal/types"
)

// Adaptive parameter constants.
const (
	AdjustmentThreshold = 0.3
	MaxDifficultyJumps  = 1

	// DefaultConfidence is used when no self-assessment exists.
	DefaultConfidence = 0.5
)

// questionCategories maps a focus area to its question categories.
var questionCategories = map[string][]string{
	types.FocusCodingProblems:       {"algorithms", "data_structures", "problem_solving"},
	types.FocusSystemDesign:         {"scalability", "architecture", "trade_offs"},
	types.FocusTechnicalKnowledge:   {"concepts", "best_practices", "tools"},
	types.FocusBehavioralLeadership: {"leadership", "teamwork", "communication"},
	types.FocusGeneralTechnical:     {"algorithms", "concepts", "problem_solving"},
}

// Build constructs the interview plan for one session. The output is fully
// deterministic for identical inputs.
func Build(exp types.Experience, req types.ExtractedRequirements) types.InterviewPlan {
	userLevel := types.LevelForYears(exp.Years)
	jobLevel := complexityToLevel(req.ComplexityLevel)
	focusAreas := req.InterviewFocusAreas
	if len(focusAreas) == 0 {
		focusAreas = []string{types.FocusGeneralTechnical}
	}

	var phases []types.Phase

	if containsString(focusAreas, types.FocusCodingProblems) {
		phases = append(phases, types.Phase{
			Name:            types.PhaseCodingAssessment,
			DurationMinutes: 30,
			QuestionCount:   2,
			Difficulty:      matchDifficultyToGap(userLevel, jobLevel),
		})
	}

	if containsString(focusAreas, types.FocusSystemDesign) {
		phases = append(phases, types.Phase{
			Name:            types.PhaseSystemDesign,
			DurationMinutes: 25,
			QuestionCount:   1,
			Difficulty:      levelToDifficulty(jobLevel),
		})
	}

	if containsString(focusAreas, types.FocusTechnicalKnowledge) {
		phases = append(phases, types.Phase{
			Name:            types.PhaseTechnicalConcepts,
			DurationMinutes: 15,
			QuestionCount:   3,
			Difficulty:      levelToDifficulty(userLevel),
		})
	}

	if containsString(focusAreas, types.FocusBehavioralLeadership) || userLevel == types.LevelMid || userLevel == types.LevelSenior {
		phases = append(phases, types.Phase{
			Name:            types.PhaseBehavioral,
			DurationMinutes: 10,
			QuestionCount:   2,
			Difficulty:      levelToDifficulty(userLevel),
		})
	}

	// A plan must never be empty: a junior user with a purely general job
	// description would otherwise match no phase at all.
	if len(phases) == 0 {
		phases = append(phases, types.Phase{
			Name:            types.PhaseGeneralTechnical,
			DurationMinutes: 20,
			QuestionCount:   3,
			Difficulty:      levelToDifficulty(userLevel),
		})
	}

	duration := 0
	for _, phase := range phases {
		duration += phase.DurationMinutes
	}

	return types.InterviewPlan{
		Phases:             phases,
		EstimatedDuration:  duration,
		FocusAreas:         focusAreas,
		QuestionCategories: mapFocusToCategories(focusAreas),
		Adaptive: types.AdaptiveParameters{
			InitialDifficulty:   InitialDifficulty(exp, req),
			AdjustmentThreshold: AdjustmentThreshold,
			MaxDifficultyJumps:  MaxDifficultyJumps,
			Personalization: types.PersonalizationFactors{
				ExperienceYears:        exp.Years,
				FieldExpertise:         exp.Field,
				TargetRoleComplexity:   req.ComplexityLevel,
				SelfAssessedConfidence: ConfidenceScore(exp),
			},
		},
	}
}

// InitialDifficulty derives the starting difficulty from the user's level and
// the job's complexity. The precedence is asymmetric: a senior user facing a
// beginner job still starts at intermediate.
func InitialDifficulty(exp types.Experience, req types.ExtractedRequirements) types.Difficulty {
	userLevel := types.LevelForYears(exp.Years)
	switch {
	case userLevel == types.LevelSenior && req.ComplexityLevel == types.DifficultyAdvanced:
		return types.DifficultyAdvanced
	case userLevel == types.LevelJunior || req.ComplexityLevel == types.DifficultyBeginner:
		return types.DifficultyBeginner
	default:
		return types.DifficultyIntermediate
	}
}

// Adjust proposes the difficulty for the next session given the overall
// score of the one just completed. It moves at most one level per session:
// up when the score sits AdjustmentThreshold above the 0.5 midpoint, down
// when it sits that far below. The second return value explains the move.
func Adjust(current types.Difficulty, overallScore float64) (types.Difficulty, string, bool) {
	switch {
	case overallScore-0.5 >= AdjustmentThreshold:
		if next := raiseDifficulty(current); next != current {
			return next, fmt.Sprintf("overall score %.2f warrants harder questions", overallScore), true
		}
	case 0.5-overallScore >= AdjustmentThreshold:
		if next := lowerDifficulty(current); next != current {
			return next, fmt.Sprintf("overall score %.2f warrants easier questions", overallScore), true
		}
	}
	return current, "", false
}

func raiseDifficulty(d types.Difficulty) types.Difficulty {
	switch d {
	case types.DifficultyBeginner:
		return types.DifficultyIntermediate
	case types.DifficultyIntermediate:
		return types.DifficultyAdvanced
	default:
		return d
	}
}

func lowerDifficulty(d types.Difficulty) types.Difficulty {
	switch d {
	case types.DifficultyAdvanced:
		return types.DifficultyIntermediate
	case types.DifficultyIntermediate:
		return types.DifficultyBeginner
	default:
		return d
	}
}

// ConfidenceScore is the mean self-assessment normalized to 0-1.
func ConfidenceScore(exp types.Experience) float64 {
	if len(exp.SelfAssessment) == 0 {
		return DefaultConfidence
	}
	total := 0
	for _, score := range exp.SelfAssessment {
		total += score
	}
	return float64(total) / float64(len(exp.SelfAssessment)) / 5.0
}

// matchDifficultyToGap picks the higher ordinal of the user and job levels:
// challenge the user with the target level when it exceeds their own.
func matchDifficultyToGap(userLevel, jobLevel types.ExperienceLevel) types.Difficulty {
	if jobLevel.Ordinal() > userLevel.Ordinal() {
		return levelToDifficulty(jobLevel)
	}
	return levelToDifficulty(userLevel)
}

// complexityToLevel maps job complexity onto the seniority scale used for
// gap matching.
func complexityToLevel(complexity types.Difficulty) types.ExperienceLevel {
	switch complexity {
	case types.DifficultyBeginner:
		return types.LevelJunior
	case types.DifficultyAdvanced:
		return types.LevelSenior
	default:
		return types.LevelMid
	}
}

func levelToDifficulty(level types.ExperienceLevel) types.Difficulty {
	switch level {
	case types.LevelJunior:
		return types.DifficultyBeginner
	case types.LevelSenior:
		return types.DifficultyAdvanced
	default:
		return types.DifficultyIntermediate
	}
}

// mapFocusToCategories flattens focus areas into question categories,
// deduplicated preserving first-seen order.
func mapFocusToCategories(focusAreas []string) []string {
	var categories []string
	seen := make(map[string]bool)
	for _, focus := range focusAreas {
		for _, category := range questionCategories[focus] {
			if !seen[category] {
				categories = append(categories, category)
				seen[category] = true
			}
		}
	}
	return categories
}

func containsString(list []string, target string) bool {
	for _, item := range list {
		if item == target {
			return true
		}
	}
	return false
}
