package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/aminmotiwala/atic/internal/sandbox"
)

var execCmd = &cobra.Command{
	Use:   "exec <source-file>",
	Short: "Run a coding-question solution in the practice sandbox",
	Long:  "Executes a python or java solution with the same policy checks and timeout used during coding assessment phases.",
	Args:  cobra.ExactArgs(1),
	RunE:  runExec,
}

var (
	execLang   string
	execInputs []string
)

func init() {
	execCmd.Flags().StringVarP(&execLang, "lang", "l", "python", "Language (python or java)")
	execCmd.Flags().StringArrayVarP(&execInputs, "input", "i", nil, "Test input fed to stdin (repeatable)")
	rootCmd.AddCommand(execCmd)
}

func runExec(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	code, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("failed to read source file: %w", err)
	}

	runner := sandbox.NewRunner(time.Duration(cfg.CodeTimeoutSeconds) * time.Second)
	result, err := runner.Execute(cmd.Context(), string(code), execLang, execInputs)
	if err != nil {
		return err
	}

	if len(result.PolicyViolations) > 0 {
		fmt.Println("Rejected by policy check:")
		for _, violation := range result.PolicyViolations {
			fmt.Printf("  - %s\n", violation)
		}
		return fmt.Errorf("code failed the policy check")
	}
	if result.ErrorMessage != "" {
		if result.CompilationOutput != "" {
			fmt.Println(result.CompilationOutput)
		}
		return fmt.Errorf("%s", result.ErrorMessage)
	}

	if len(result.TestResults) > 0 {
		for _, test := range result.TestResults {
			status := "FAIL"
			if test.Success {
				status = "ok"
			}
			fmt.Printf("test %d [%s]\n  input:  %q\n  output: %s\n", test.TestCase, status, test.Input, test.Output)
			if test.Stderr != "" {
				fmt.Printf("  stderr: %s\n", test.Stderr)
			}
		}
	} else {
		fmt.Print(result.Stdout)
		if result.Stderr != "" {
			fmt.Fprint(os.Stderr, result.Stderr)
		}
	}

	fmt.Printf("\nfinished in %dms (exit %d)\n", result.ExecutionTime, result.ReturnCode)
	if !result.Success {
		return fmt.Errorf("execution failed")
	}
	return nil
}
