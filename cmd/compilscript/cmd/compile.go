package cmd

import (
	"fmt"
	"os"

	"github.com/compilscript/core/pkg/compilscript"
	"github.com/spf13/cobra"
)

var (
	compileOutputFile  string
	compileAnnotateMem bool
	compileVerbose     bool
)

var compileCmd = &cobra.Command{
	Use:   "compile [program.json]",
	Short: "Run semantic analysis and generate three-address code",
	Long: `Run semantic analysis over a program and generate its three-address
code listing.

Examples:
  # Print the TAC listing to stdout
  compilscript compile program.json

  # Write the listing to a file instead
  compilscript compile program.json -o program.tac`,
	Args: cobra.ExactArgs(1),
	RunE: runCompile,
}

func init() {
	rootCmd.AddCommand(compileCmd)

	compileCmd.Flags().StringVarP(&compileOutputFile, "output", "o", "", "output file (default: stdout)")
	compileCmd.Flags().BoolVar(&compileAnnotateMem, "annotate-memory", true, "assign memory addresses before generating code")
	compileCmd.Flags().BoolVarP(&compileVerbose, "verbose", "v", false, "verbose output")
}

func runCompile(c *cobra.Command, args []string) error {
	filename := args[0]
	program, err := loadProgram(filename)
	if err != nil {
		return err
	}

	configPath, _ := c.Flags().GetString("config")
	opts := compilscript.Options{GenerateTAC: true, AnnotateMemory: compileAnnotateMem}
	loadConfig(&opts, configPath)

	source, _ := os.ReadFile(filename)
	report := compilscript.Compile(string(source), program, opts)

	if !report.OK {
		for _, d := range report.Diagnostics {
			fmt.Fprintf(os.Stderr, "%s error at %d:%d: %s\n", d.Kind, d.Line, d.Column, d.Message)
		}
		return fmt.Errorf("compilation failed with %d diagnostic(s)", len(report.Diagnostics))
	}

	listing := report.TAC.Listing()
	if compileOutputFile == "" {
		fmt.Println(listing)
		return nil
	}
	if err := os.WriteFile(compileOutputFile, []byte(listing+"\n"), 0644); err != nil {
		return fmt.Errorf("failed to write output file %s: %w", compileOutputFile, err)
	}
	if compileVerbose {
		fmt.Fprintf(os.Stderr, "TAC written to %s (%d instructions, %d temporaries)\n",
			compileOutputFile, report.TAC.InstructionCount, report.TAC.TemporariesUsed)
	}
	return nil
}
