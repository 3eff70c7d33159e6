package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/aminmotiwala/atic/internal/config"
	"github.com/aminmotiwala/atic/internal/dialogue"
	"github.com/aminmotiwala/atic/internal/logging"
	"github.com/aminmotiwala/atic/internal/plan"
	"github.com/aminmotiwala/atic/internal/session"
	"github.com/aminmotiwala/atic/internal/store"
	"github.com/aminmotiwala/atic/internal/types"
)

var interviewCmd = &cobra.Command{
	Use:   "interview",
	Short: "Run a full adaptive interview practice session",
	Long:  "Gathers your background and target job description, builds a personalized interview plan, asks questions per phase, then scores the session and stores the results.",
	RunE:  runInterview,
}

var skipQuestions bool

func init() {
	interviewCmd.Flags().BoolVar(&skipQuestions, "plan-only", false, "Build and store the plan without asking questions")
	rootCmd.AddCommand(interviewCmd)
}

func runInterview(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	cfg, log, st, err := openRuntime(ctx, false)
	if err != nil {
		return err
	}
	defer func() { _ = st.Close(); _ = log.Sync() }()

	fmt.Println("Starting Adaptive Technical Interview Coach (ATIC)")
	fmt.Println(strings.Repeat("=", 60))
	fmt.Println("Welcome! Let's personalize your interview preparation experience.")
	fmt.Println()

	manager := session.NewManager(st, dialogue.NewTerminal(os.Stdin, os.Stdout), log)
	sess := manager.Initialize(ctx)
	if sess.Status == types.StatusFailed {
		return fmt.Errorf("session initialization failed: %s", sess.Error)
	}

	printSessionSummary(sess)
	if skipQuestions {
		return nil
	}

	coach, err := newCoach(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() { _ = coach.Close() }()

	reader := bufio.NewReader(os.Stdin)
	if err := conductInterview(cmd, manager, st, coach, sess, reader); err != nil {
		return err
	}

	analysis, err := collectScores(reader)
	if err != nil {
		return err
	}
	manager.AttachPerformance(sess.ID, analysis)

	completed := manager.Finalize(ctx, sess.ID)
	if completed == nil {
		return fmt.Errorf("session %s is no longer active", sess.ID)
	}

	fmt.Printf("\nSession complete. Overall score: %.2f\n", completed.Performance.OverallScore)
	recordAdjustment(ctx, st, log, completed)
	fmt.Printf("Run 'atic insights' to see trends across your sessions.\n")
	return nil
}

// recordAdjustment stores a difficulty adaptation for the next session when
// the score warrants one. Storage failures are logged, not fatal.
func recordAdjustment(ctx context.Context, st *store.Store, log *logging.Logger, sess *types.Session) {
	next, reason, changed := plan.Adjust(sess.Profile.DifficultyLevel, sess.Performance.OverallScore)
	if !changed {
		return
	}
	ev := &types.AdaptationEvent{
		UserID:        sess.Profile.UserID,
		SessionID:     sess.ID,
		Type:          "difficulty_adjustment",
		PreviousValue: string(sess.Profile.DifficultyLevel),
		NewValue:      string(next),
		Reason:        reason,
	}
	if err := st.RecordAdaptation(ctx, ev); err != nil {
		log.Warn("failed to record difficulty adaptation", "session_id", sess.ID, "error", err)
		return
	}
	fmt.Printf("Next session difficulty: %s (%s)\n", next, reason)
}

func printSessionSummary(sess *types.Session) {
	fmt.Println("\nSession initialization complete.")
	fmt.Printf("Profile: %s developer with %d years experience\n",
		sess.Profile.Experience.Field, sess.Profile.Experience.Years)
	if job := sess.Profile.TargetJob; job != nil {
		fmt.Printf("Target role: %s at %s\n", job.Role, job.Company)
	}
	fmt.Printf("Initial difficulty: %s\n", sess.Profile.DifficultyLevel)
	fmt.Printf("Planned duration: ~%d minutes across %d phases\n",
		sess.Plan.EstimatedDuration, len(sess.Plan.Phases))
	fmt.Printf("Session ID: %s\n\n", sess.ID)
}

// newCoach prefers the Gemini coach and falls back to the built-in question
// bank when no API key is configured.
func newCoach(ctx context.Context, cfg *config.Config) (dialogue.Coach, error) {
	if cfg.GeminiAPIKey == "" {
		fmt.Println("No GEMINI_API_KEY configured; using the built-in question bank.")
		return dialogue.Scripted{}, nil
	}
	coach, err := dialogue.NewGemini(ctx, cfg.GeminiAPIKey, cfg.Model)
	if err != nil {
		return nil, fmt.Errorf("failed to create coach: %w", err)
	}
	return coach, nil
}

func conductInterview(cmd *cobra.Command, manager *session.Manager, st *store.Store, coach dialogue.Coach, sess *types.Session, reader *bufio.Reader) error {
	ctx := cmd.Context()
	manager.UpdateStatus(sess.ID, types.StatusInProgress)
	var asked []string

	for _, phase := range sess.Plan.Phases {
		fmt.Printf("\n--- Phase: %s (%d min, difficulty %s) ---\n",
			phase.Name, phase.DurationMinutes, phase.Difficulty)

		for i := 0; i < phase.QuestionCount; i++ {
			question, err := coach.NextQuestion(ctx, sess, phase, asked)
			if err != nil {
				return fmt.Errorf("failed to get question: %w", err)
			}
			asked = append(asked, question)

			fmt.Printf("\nQ%d: %s\n", i+1, question)
			fmt.Print("Your answer (finish with an empty line):\n> ")
			askedAt := time.Now()
			answer, err := readMultiline(reader)
			if err != nil {
				return err
			}

			manager.RecordInteraction(sess.ID, "interviewer", "question_asked",
				map[string]any{"phase": phase.Name, "question": question})
			manager.RecordInteraction(sess.ID, "candidate", "answer_given",
				map[string]any{"phase": phase.Name, "answer": answer})

			qp := &types.QuestionPerformance{
				SessionID:           sess.ID,
				UserID:              sess.Profile.UserID,
				QuestionID:          fmt.Sprintf("%s_q%d", phase.Name, i+1),
				QuestionType:        phase.Name,
				Difficulty:          phase.Difficulty,
				ResponseTimeSeconds: int(time.Since(askedAt).Seconds()),
				Question:            map[string]any{"text": question},
				Response:            map[string]any{"text": answer},
			}
			if err := st.SaveQuestionPerformance(ctx, qp); err != nil {
				fmt.Printf("warning: could not save question record: %v\n", err)
			}

			feedback, err := coach.Feedback(ctx, question, answer)
			if err != nil {
				return fmt.Errorf("failed to get feedback: %w", err)
			}
			fmt.Printf("\nFeedback: %s\n", feedback)
		}
	}
	return nil
}

func readMultiline(reader *bufio.Reader) (string, error) {
	var lines []string
	for {
		line, err := reader.ReadString('\n')
		if err != nil {
			return "", fmt.Errorf("failed to read answer: %w", err)
		}
		line = strings.TrimRight(line, "\r\n")
		if line == "" {
			break
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n"), nil
}

// collectScores prompts for a 1-10 self-rating per category and normalizes
// to the canonical 0-1 scale.
func collectScores(reader *bufio.Reader) (*types.PerformanceAnalysis, error) {
	fmt.Println("\nRate your performance in each category (1-10):")
	categories := []string{
		types.CategoryProblemSolving,
		types.CategoryTechnicalKnowledge,
		types.CategoryCodeQuality,
		types.CategoryCommunication,
		types.CategorySystemDesign,
		types.CategoryTimeManagement,
	}

	scores := make(map[string]float64, len(categories))
	for _, category := range categories {
		for {
			fmt.Printf("  %s: ", strings.ReplaceAll(category, "_", " "))
			line, err := reader.ReadString('\n')
			if err != nil {
				return nil, fmt.Errorf("failed to read score: %w", err)
			}
			raw, convErr := strconv.ParseFloat(strings.TrimSpace(line), 64)
			if convErr != nil || raw < 1 || raw > 10 {
				fmt.Println("  Please enter a number between 1 and 10.")
				continue
			}
			scores[category] = types.NormalizeScore(raw)
			break
		}
	}

	return &types.PerformanceAnalysis{
		CategoryScores: scores,
		OverallScore:   types.OverallScore(scores),
	}, nil
}
