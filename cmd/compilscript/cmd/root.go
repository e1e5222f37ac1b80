package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Version information (set by build flags)
	Version   = "0.1.0-dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "compilscript",
	Short: "CompilScript semantic analyzer and TAC generator",
	Long: `compilscript is the front-end core of the CompilScript toolchain.

It takes an already-parsed program (as JSON, since this module does not
include a lexer or parser) and runs:
  - semantic analysis: scope resolution, type checking, class layout
  - memory address annotation: global/stack/heap/param slots
  - three-address code generation

Input is a program.json file built by a parser elsewhere, or by hand for
small fixtures; see internal/astjson for its shape.`,
	Version: Version,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf(`{{with .Name}}{{printf "%%s " .}}{{end}}{{printf "version %%s" .Version}}
Commit: %s
Built:  %s
`, GitCommit, BuildDate))

	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().String("config", "compilscript.yaml", "project config file (defaults layered under CLI flags)")
}

func exitWithError(msg string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+msg+"\n", args...)
	os.Exit(1)
}
