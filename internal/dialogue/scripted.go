package dialogue

import (
	"context"
	"fmt"

	"github.com/aminmotiwala/atic/internal/types"
)

// questionBank holds canned questions per phase, cycled in order. Used when
// no LLM is configured so the interview flow still works offline.
var questionBank = map[string][]string{
	types.PhaseCodingAssessment: {
		"Given an array of integers, find two numbers that add up to a target value. Walk through your approach and its complexity.",
		"Reverse a singly linked list in place. What are the edge cases?",
		"Find the longest substring without repeating characters. How would you test your solution?",
	},
	types.PhaseSystemDesign: {
		"Design a URL shortening service. Cover storage, id generation and read scaling.",
		"Design a rate limiter for a public API. Compare at least two algorithms.",
	},
	types.PhaseTechnicalConcepts: {
		"Explain the difference between optimistic and pessimistic locking and when you would use each.",
		"What happens between typing a URL and the page rendering? Focus on the layers you know best.",
		"How do database indexes speed up reads, and what do they cost?",
	},
	types.PhaseBehavioral: {
		"Tell me about a time you disagreed with a technical decision. How was it resolved?",
		"Describe a project that failed or slipped badly. What did you change afterwards?",
	},
	types.PhaseGeneralTechnical: {
		"Explain a recent technical problem you solved and the trade-offs you considered.",
		"How do you approach debugging an issue you cannot reproduce locally?",
		"Describe how you would review a large pull request from a teammate.",
	},
}

// Scripted is an offline Coach over a fixed question bank.
type Scripted struct{}

// NextQuestion returns the next unasked question for the phase, falling back
// to the general bank when the phase's questions are exhausted.
func (Scripted) NextQuestion(_ context.Context, _ *types.Session, phase types.Phase, asked []string) (string, error) {
	for _, bank := range [][]string{questionBank[phase.Name], questionBank[types.PhaseGeneralTechnical]} {
		for _, question := range bank {
			if !containsString(asked, question) {
				return question, nil
			}
		}
	}
	return "", fmt.Errorf("question bank exhausted for phase %s", phase.Name)
}

// Feedback returns a fixed self-review prompt; real evaluation needs the
// LLM-backed coach.
func (Scripted) Feedback(_ context.Context, _, _ string) (string, error) {
	return "Compare your answer against: correctness, edge cases, complexity, and how clearly you explained your reasoning.", nil
}

func (Scripted) Close() error { return nil }

func containsString(list []string, target string) bool {
	for _, item := range list {
		if item == target {
			return true
		}
	}
	return false
}
