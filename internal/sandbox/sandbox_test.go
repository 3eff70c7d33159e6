package sandbox

import (
	"context"
	"os/exec"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckPolicy_Python(t *testing.T) {
	tests := []struct {
		name string
		code string
		want int
	}{
		{"clean solution", "def add(a, b):\n    return a + b\n", 0},
		{"os import", "import os\nprint(os.listdir('/'))", 1},
		{"eval and exec", "eval('1+1')\nexec('pass')", 2},
		{"case insensitive", "IMPORT SUBPROCESS", 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			violations := CheckPolicy(tt.code, "python")
			assert.Len(t, violations, tt.want)
		})
	}
}

func TestCheckPolicy_Java(t *testing.T) {
	violations := CheckPolicy(`public class Main {
		public static void main(String[] args) {
			Runtime.getRuntime().exec("ls");
			System.exit(1);
		}
	}`, "java")
	require.Len(t, violations, 2)
	assert.Contains(t, violations[0], "runtime.getruntime")
}

func TestExtractJavaClassName(t *testing.T) {
	tests := []struct {
		name string
		code string
		want string
	}{
		{"public class", "public class TwoSum { }", "TwoSum"},
		{"package private class", "class Helper { }", "Helper"},
		{"public wins over first", "class Inner {}\npublic class Main {}", "Main"},
		{"no class declaration", "interface Runner {}", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractJavaClassName(tt.code))
		})
	}
}

func TestExecute_PolicyViolationFailsWithoutRunning(t *testing.T) {
	runner := NewRunner(time.Second)

	result, err := runner.Execute(context.Background(), "import os\n", "python", nil)
	require.NoError(t, err)
	assert.False(t, result.Success)
	assert.NotEmpty(t, result.PolicyViolations)
	assert.Equal(t, "code contains policy violations", result.ErrorMessage)
}

func TestExecute_RejectsOversizedCode(t *testing.T) {
	runner := NewRunner(time.Second)

	code := strings.Repeat("x = 1\n", MaxCodeLength)
	result, err := runner.Execute(context.Background(), code, "python", nil)
	require.NoError(t, err)
	assert.False(t, result.Success)
	assert.Contains(t, result.ErrorMessage, "maximum length")
}

func TestExecute_UnsupportedLanguage(t *testing.T) {
	runner := NewRunner(time.Second)

	result, err := runner.Execute(context.Background(), "puts 'hi'", "ruby", nil)
	require.NoError(t, err)
	assert.False(t, result.Success)
	assert.Contains(t, result.ErrorMessage, "not supported")
}

func TestExecute_AnyFailingInputFailsRun(t *testing.T) {
	if _, err := exec.LookPath("python3"); err != nil {
		t.Skip("python3 not available; skipping execution test")
	}

	code := "import sys\n" +
		"line = sys.stdin.readline().strip()\n" +
		"if line == 'bad':\n" +
		"    sys.exit(1)\n" +
		"print(line)\n"

	runner := NewRunner(0)
	result, err := runner.Execute(context.Background(), code, "python", []string{"good", "bad"})
	require.NoError(t, err)
	require.Len(t, result.TestResults, 2)

	assert.True(t, result.TestResults[0].Success)
	assert.False(t, result.TestResults[1].Success)
	assert.False(t, result.Success, "a failure on any input fails the run")
	assert.Equal(t, 0, result.ReturnCode, "top-level return code is the first run's")
}

func TestNewRunner_DefaultTimeout(t *testing.T) {
	assert.Equal(t, DefaultTimeout, NewRunner(0).timeout)
	assert.Equal(t, time.Second, NewRunner(time.Second).timeout)
}
