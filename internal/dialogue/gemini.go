package dialogue

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"github.com/aminmotiwala/atic/internal/types"
)

// DefaultGeminiModel is used when no model is configured.
const DefaultGeminiModel = "gemini-2.5-flash-lite"

// Coach generates interview questions and feedback for a live session.
type Coach interface {
	// NextQuestion produces one question for the given phase, avoiding
	// repeats of already-asked questions.
	NextQuestion(ctx context.Context, session *types.Session, phase types.Phase, asked []string) (string, error)
	// Feedback evaluates a candidate answer against the question.
	Feedback(ctx context.Context, question, answer string) (string, error)
	Close() error
}

// Gemini implements Coach over the Gemini API.
type Gemini struct {
	client *genai.Client
	model  string
}

// NewGemini creates a Gemini coach. The model name falls back to
// DefaultGeminiModel when empty.
func NewGemini(ctx context.Context, apiKey, model string) (*Gemini, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("API key is required")
	}
	if model == "" {
		model = DefaultGeminiModel
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	return &Gemini{client: client, model: model}, nil
}

// NextQuestion asks the model for one phase-appropriate question.
func (g *Gemini) NextQuestion(ctx context.Context, session *types.Session, phase types.Phase, asked []string) (string, error) {
	prompt := questionPrompt(session, phase, asked)
	return g.generate(ctx, prompt)
}

// Feedback asks the model to evaluate an answer.
func (g *Gemini) Feedback(ctx context.Context, question, answer string) (string, error) {
	prompt := fmt.Sprintf(`You are a technical interview coach evaluating a candidate's answer.

Question:
%s

Candidate answer:
%s

Give concise feedback: what was strong, what was missing, and one concrete
way to improve the answer. Do not assign a numeric score.`, question, answer)
	return g.generate(ctx, prompt)
}

// Close releases the underlying client.
func (g *Gemini) Close() error {
	if g.client != nil {
		return g.client.Close()
	}
	return nil
}

func (g *Gemini) generate(ctx context.Context, prompt string) (string, error) {
	model := g.client.GenerativeModel(g.model)
	model.SetTemperature(0.4)

	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("failed to generate content: %w", err)
	}
	return extractText(resp)
}

func questionPrompt(session *types.Session, phase types.Phase, asked []string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "You are conducting a technical interview practice session.\n\n")
	fmt.Fprintf(&b, "Candidate: %s with %d years of experience in %s.\n",
		session.Profile.Experience.CurrentRole,
		session.Profile.Experience.Years,
		session.Profile.Experience.Field)
	if job := session.Profile.TargetJob; job != nil {
		fmt.Fprintf(&b, "Target role: %s at %s.\n", job.Role, job.Company)
	}
	if len(session.Requirements.TechnologyStack) > 0 {
		fmt.Fprintf(&b, "Relevant technologies: %s.\n",
			strings.Join(session.Requirements.TechnologyStack, ", "))
	}
	fmt.Fprintf(&b, "\nInterview phase: %s (difficulty %s).\n", phase.Name, phase.Difficulty)
	if len(asked) > 0 {
		fmt.Fprintf(&b, "Already asked, do not repeat:\n")
		for _, q := range asked {
			fmt.Fprintf(&b, "- %s\n", q)
		}
	}
	fmt.Fprintf(&b, "\nAsk exactly one question appropriate for this phase and difficulty. Reply with the question only.")
	return b.String()
}

func extractText(resp *genai.GenerateContentResponse) (string, error) {
	if len(resp.Candidates) == 0 {
		return "", fmt.Errorf("no candidates in response")
	}
	candidate := resp.Candidates[0]
	if candidate.Content == nil || len(candidate.Content.Parts) == 0 {
		return "", fmt.Errorf("no content in response")
	}

	var parts []string
	for _, part := range candidate.Content.Parts {
		if text, ok := part.(genai.Text); ok {
			parts = append(parts, string(text))
		}
	}
	if len(parts) == 0 {
		return "", fmt.Errorf("no text parts in response")
	}
	return strings.TrimSpace(strings.Join(parts, "")), nil
}
