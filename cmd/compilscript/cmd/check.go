package cmd

import (
	"fmt"
	"os"

	"github.com/compilscript/core/internal/diag"
	"github.com/compilscript/core/pkg/compilscript"
	"github.com/spf13/cobra"
)

var checkCmd = &cobra.Command{
	Use:   "check [program.json]",
	Short: "Run semantic analysis only and report diagnostics",
	Long: `Run semantic analysis (scope resolution, type checking, class layout)
without generating code. Exits 0 only if no error-severity diagnostic was
produced; warnings alone still exit 0.

Examples:
  compilscript check program.json`,
	Args: cobra.ExactArgs(1),
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

func runCheck(_ *cobra.Command, args []string) error {
	filename := args[0]
	program, err := loadProgram(filename)
	if err != nil {
		return err
	}

	source, _ := os.ReadFile(filename)
	report := compilscript.Compile(string(source), program, compilscript.Options{})

	errorCount := 0
	for _, d := range report.Diagnostics {
		fmt.Println(diag.FormatWithSource(d, string(source)))
		if d.Severity == diag.Error {
			errorCount++
		}
	}
	if errorCount > 0 {
		return fmt.Errorf("check failed with %d error(s)", errorCount)
	}
	return nil
}
