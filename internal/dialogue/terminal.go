package dialogue

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/aminmotiwala/atic/internal/types"
)

const assessmentSkillLimit = 5

// Terminal gathers session context interactively. Input and output streams
// are injected so tests can drive the prompts.
type Terminal struct {
	scanner *bufio.Scanner
	out     io.Writer
}

// NewTerminal creates a Terminal over the given streams.
func NewTerminal(in io.Reader, out io.Writer) *Terminal {
	return &Terminal{scanner: bufio.NewScanner(in), out: out}
}

// GatherExperience prompts for the candidate's professional background and a
// 1-5 self-assessment of field-relevant skills.
func (t *Terminal) GatherExperience(ctx context.Context) (*types.Experience, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	fmt.Fprintln(t.out, "Please provide information about your professional background:")

	yearsInput, err := t.prompt("Years of professional experience: ")
	if err != nil {
		return nil, err
	}
	years, convErr := strconv.Atoi(strings.TrimSpace(yearsInput))
	if convErr != nil || years < 0 {
		years = 0
	}

	field, err := t.prompt("Primary technical field (e.g., front-end, back-end, data science, DevOps, full-stack): ")
	if err != nil {
		return nil, err
	}
	field = strings.ToLower(strings.TrimSpace(field))

	currentRole, err := t.prompt("Current job title: ")
	if err != nil {
		return nil, err
	}

	fmt.Fprintln(t.out, "\nOptional additional context:")
	companySize, err := t.prompt("Current company size (startup/mid-size/enterprise) [optional]: ")
	if err != nil {
		return nil, err
	}
	previousInterviews, err := t.prompt("Recent technical interviews attempted (number) [optional]: ")
	if err != nil {
		return nil, err
	}

	fmt.Fprintln(t.out, "\nQuick self-assessment (1-5 scale, 5 being expert):")
	skillAreas := SkillAreasForField(field)
	assessment := make(map[string]int)
	for _, skill := range skillAreas[:min(assessmentSkillLimit, len(skillAreas))] {
		score, err := t.promptScore(skill)
		if err != nil {
			return nil, err
		}
		assessment[skill] = score
	}

	return &types.Experience{
		Years:              years,
		Field:              field,
		CurrentRole:        strings.TrimSpace(currentRole),
		CompanySize:        strings.TrimSpace(companySize),
		PreviousInterviews: strings.TrimSpace(previousInterviews),
		SelfAssessment:     assessment,
		ProficiencyAreas:   skillAreas,
		Level:              types.LevelForYears(years),
	}, nil
}

// GatherTargetJob prompts for the target position and collects the job
// description as free text. The description ends on a line reading DONE or
// on two consecutive blank lines; an empty description falls back to a
// generic role template.
func (t *Terminal) GatherTargetJob(ctx context.Context) (*types.TargetJob, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	fmt.Fprintln(t.out, "Please provide details about your target position:")

	company, err := t.prompt("Company name: ")
	if err != nil {
		return nil, err
	}
	role, err := t.prompt("Job title: ")
	if err != nil {
		return nil, err
	}
	timeline, err := t.prompt("Expected interview timeline (e.g., '2 weeks', 'next month') [optional]: ")
	if err != nil {
		return nil, err
	}

	fmt.Fprintln(t.out, "\nPaste the complete job description below.")
	fmt.Fprintln(t.out, "Include requirements, responsibilities, and preferred qualifications.")
	fmt.Fprintln(t.out, "Press Enter twice when finished, or type 'DONE' on a new line:")

	var lines []string
	consecutiveEmpty := 0
	for t.scanner.Scan() {
		line := t.scanner.Text()
		if strings.EqualFold(strings.TrimSpace(line), "DONE") {
			break
		}
		if line == "" {
			consecutiveEmpty++
			if consecutiveEmpty >= 2 {
				break
			}
			continue
		}
		consecutiveEmpty = 0
		lines = append(lines, line)
	}
	if err := t.scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read job description: %w", err)
	}

	description := strings.Join(lines, "\n")
	if strings.TrimSpace(description) == "" {
		fmt.Fprintln(t.out, "No job description provided, using a generic technical role template.")
		description = fmt.Sprintf("Generic %s position requiring technical skills and problem-solving abilities.",
			strings.TrimSpace(role))
	}

	return &types.TargetJob{
		Company:           strings.TrimSpace(company),
		Role:              strings.TrimSpace(role),
		Description:       description,
		Timeline:          strings.TrimSpace(timeline),
		DescriptionLength: len(description),
		CollectedAt:       time.Now().UTC(),
	}, nil
}

func (t *Terminal) prompt(label string) (string, error) {
	fmt.Fprint(t.out, label)
	if !t.scanner.Scan() {
		if err := t.scanner.Err(); err != nil {
			return "", fmt.Errorf("failed to read input: %w", err)
		}
		return "", io.EOF
	}
	return t.scanner.Text(), nil
}

// promptScore reads a 1-5 rating, re-prompting on invalid input. A blank
// answer defaults to 3.
func (t *Terminal) promptScore(skill string) (int, error) {
	for {
		input, err := t.prompt(fmt.Sprintf("   %s (1-5): ", skill))
		if err != nil {
			return 0, err
		}
		input = strings.TrimSpace(input)
		if input == "" {
			return 3, nil
		}
		score, convErr := strconv.Atoi(input)
		if convErr != nil {
			fmt.Fprintln(t.out, "Please enter a valid number.")
			continue
		}
		if score < 1 || score > 5 {
			fmt.Fprintln(t.out, "Please enter a number between 1 and 5.")
			continue
		}
		return score, nil
	}
}
