// Package sandbox executes candidate code snippets for coding assessment.
// The denylist check is a policy gate against obvious filesystem and process
// escapes, not an isolation boundary; untrusted multi-tenant use needs a
// real sandbox around the process.
package sandbox

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"regexp"
	"strings"
	"time"
)

const (
	// DefaultTimeout bounds one program run.
	DefaultTimeout = 10 * time.Second

	// MaxCodeLength bounds submitted snippets.
	MaxCodeLength = 5000
)

var (
	pythonDenylist = []string{
		"import os", "import subprocess", "exec(", "eval(",
		"__import__", "open(", "file(", "delete", "remove",
	}
	javaDenylist = []string{
		"runtime.getruntime", "processbuilder", "system.exit",
		"new file(", "filewriter", "filereader", "delete", "remove",
	}

	javaPublicClassRe = regexp.MustCompile(`public\s+class\s+(\w+)`)
	javaClassRe       = regexp.MustCompile(`class\s+(\w+)`)
)

// TestResult is the outcome of one run against a single input.
type TestResult struct {
	TestCase int    `json:"test_case"`
	Input    string `json:"input"`
	Output   string `json:"output"`
	Stderr   string `json:"stderr"`
	Success  bool   `json:"success"`
}

// Result is the full outcome of executing a snippet.
type Result struct {
	Success           bool         `json:"success"`
	Language          string       `json:"language"`
	ExecutionTime     int64        `json:"execution_time_ms"`
	Stdout            string       `json:"stdout"`
	Stderr            string       `json:"stderr"`
	ReturnCode        int          `json:"return_code"`
	ErrorMessage      string       `json:"error_message,omitempty"`
	PolicyViolations  []string     `json:"security_violations,omitempty"`
	CompilationOutput string       `json:"compilation_output,omitempty"`
	TestResults       []TestResult `json:"test_results,omitempty"`
}

// Runner executes python and java snippets in temporary directories.
type Runner struct {
	timeout time.Duration
}

// NewRunner creates a Runner with the given per-run timeout; zero means
// DefaultTimeout.
func NewRunner(timeout time.Duration) *Runner {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Runner{timeout: timeout}
}

// Execute runs code in the given language against the optional test inputs.
// Policy violations and unsupported languages produce a failed Result, not
// an error; errors are reserved for environment failures.
func (r *Runner) Execute(ctx context.Context, code, language string, testInputs []string) (*Result, error) {
	result := &Result{Language: language, ReturnCode: -1}

	if len(code) > MaxCodeLength {
		result.ErrorMessage = fmt.Sprintf("code exceeds maximum length of %d characters", MaxCodeLength)
		return result, nil
	}
	if violations := CheckPolicy(code, language); len(violations) > 0 {
		result.PolicyViolations = violations
		result.ErrorMessage = "code contains policy violations"
		return result, nil
	}

	dir, err := os.MkdirTemp("", "atic-sandbox-*")
	if err != nil {
		return nil, fmt.Errorf("failed to create sandbox directory: %w", err)
	}
	defer os.RemoveAll(dir)

	started := time.Now()
	switch language {
	case "python":
		err = r.runPython(ctx, code, dir, testInputs, result)
	case "java":
		err = r.runJava(ctx, code, dir, testInputs, result)
	default:
		result.ErrorMessage = fmt.Sprintf("language %q not supported", language)
		return result, nil
	}
	result.ExecutionTime = time.Since(started).Milliseconds()
	if err != nil {
		return nil, err
	}
	return result, nil
}

// CheckPolicy returns the denylist patterns found in the code. Matching is
// case-insensitive substring search.
func CheckPolicy(code, language string) []string {
	denylist := pythonDenylist
	if language == "java" {
		denylist = javaDenylist
	}

	lower := strings.ToLower(code)
	var violations []string
	for _, pattern := range denylist {
		if strings.Contains(lower, pattern) {
			violations = append(violations, fmt.Sprintf("unsafe operation: %s", pattern))
		}
	}
	return violations
}

func (r *Runner) runPython(ctx context.Context, code, dir string, testInputs []string, result *Result) error {
	source := filepath.Join(dir, "solution.py")
	if err := os.WriteFile(source, []byte(code), 0o600); err != nil {
		return fmt.Errorf("failed to write source: %w", err)
	}
	r.runProgram(ctx, dir, []string{"python3", source}, testInputs, result)
	return nil
}

func (r *Runner) runJava(ctx context.Context, code, dir string, testInputs []string, result *Result) error {
	className := ExtractJavaClassName(code)
	if className == "" {
		className = "Solution"
	}
	source := filepath.Join(dir, className+".java")
	if err := os.WriteFile(source, []byte(code), 0o600); err != nil {
		return fmt.Errorf("failed to write source: %w", err)
	}

	compile := r.run(ctx, dir, "", "javac", source)
	result.CompilationOutput = compile.stderr
	if compile.returnCode != 0 {
		result.ErrorMessage = "compilation failed"
		result.Stderr = compile.stderr
		result.ReturnCode = compile.returnCode
		return nil
	}

	r.runProgram(ctx, dir, []string{"java", "-cp", dir, className}, testInputs, result)
	return nil
}

// runProgram executes the program once per test input, or once with no
// input. The first run sets the top-level stdout/stderr/return code;
// Success requires every run to exit zero.
func (r *Runner) runProgram(ctx context.Context, dir string, argv []string, testInputs []string, result *Result) {
	if len(testInputs) == 0 {
		run := r.run(ctx, dir, "", argv[0], argv[1:]...)
		result.Stdout = run.stdout
		result.Stderr = run.stderr
		result.ReturnCode = run.returnCode
		result.Success = run.returnCode == 0
		return
	}

	result.Success = true
	for i, input := range testInputs {
		run := r.run(ctx, dir, input, argv[0], argv[1:]...)
		result.TestResults = append(result.TestResults, TestResult{
			TestCase: i + 1,
			Input:    input,
			Output:   run.stdout,
			Stderr:   run.stderr,
			Success:  run.returnCode == 0,
		})
		if run.returnCode != 0 {
			result.Success = false
		}
		if i == 0 {
			result.Stdout = run.stdout
			result.Stderr = run.stderr
			result.ReturnCode = run.returnCode
		}
	}
}

type runOutput struct {
	stdout     string
	stderr     string
	returnCode int
}

func (r *Runner) run(ctx context.Context, dir, input, name string, args ...string) runOutput {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir
	if input != "" {
		cmd.Stdin = strings.NewReader(input)
	}

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	out := runOutput{stdout: stdout.String(), stderr: stderr.String()}
	switch {
	case errors.Is(ctx.Err(), context.DeadlineExceeded):
		out.stderr = fmt.Sprintf("execution timed out after %s", r.timeout)
		out.returnCode = -1
	case err != nil:
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			out.returnCode = exitErr.ExitCode()
		} else {
			out.stderr = fmt.Sprintf("execution error: %v", err)
			out.returnCode = -1
		}
	}
	return out
}

// ExtractJavaClassName returns the public class name from a Java source
// snippet, falling back to the first class declaration.
func ExtractJavaClassName(code string) string {
	if m := javaPublicClassRe.FindStringSubmatch(code); m != nil {
		return m[1]
	}
	if m := javaClassRe.FindStringSubmatch(code); m != nil {
		return m[1]
	}
	return ""
}
