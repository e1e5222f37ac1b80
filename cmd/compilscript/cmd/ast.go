package cmd

import (
	"fmt"
	"os"

	"github.com/compilscript/core/internal/diag"
	"github.com/compilscript/core/pkg/compilscript"
	"github.com/spf13/cobra"
)

var astOutputFile string

var astCmd = &cobra.Command{
	Use:   "ast [program.json]",
	Short: "Dump the AST as a Graphviz DOT graph",
	Long: `Render the program's AST as a Graphviz DOT document. Semantic analysis
still runs first (so diagnostics are reported), but the graph is emitted
regardless of whether analysis succeeded.

Examples:
  compilscript ast program.json > program.dot
  dot -Tpng program.dot -o program.png`,
	Args: cobra.ExactArgs(1),
	RunE: runAST,
}

func init() {
	rootCmd.AddCommand(astCmd)
	astCmd.Flags().StringVarP(&astOutputFile, "output", "o", "", "output file (default: stdout)")
}

func runAST(_ *cobra.Command, args []string) error {
	filename := args[0]
	program, err := loadProgram(filename)
	if err != nil {
		return err
	}

	source, _ := os.ReadFile(filename)
	report := compilscript.Compile(string(source), program, compilscript.Options{ReturnASTDot: true})
	for _, d := range report.Diagnostics {
		fmt.Fprintln(os.Stderr, diag.FormatWithSource(d, string(source)))
	}
	if report.ASTDot == nil {
		return fmt.Errorf("no AST graph produced")
	}

	if astOutputFile == "" {
		fmt.Println(*report.ASTDot)
		return nil
	}
	if err := os.WriteFile(astOutputFile, []byte(*report.ASTDot+"\n"), 0644); err != nil {
		return fmt.Errorf("failed to write output file %s: %w", astOutputFile, err)
	}
	return nil
}
