package cmd

import (
	"fmt"
	"os"

	"github.com/compilscript/core/internal/ast"
	"github.com/compilscript/core/internal/astjson"
	"github.com/compilscript/core/pkg/compilscript"
)

// loadProgram reads and decodes the program.json named by path.
func loadProgram(path string) (*ast.Program, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	program, err := astjson.Load(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return program, nil
}

// loadConfig layers compilscript.yaml under whatever a subcommand's own
// flags already set, the way the reference's rootCmd persistent flags
// seed defaults subcommands can override.
func loadConfig(cmdFlags *compilscript.Options, configPath string) {
	fileOpts, err := compilscript.LoadOptions(configPath)
	if err != nil {
		return
	}
	if !cmdFlags.ReturnASTDot {
		cmdFlags.ReturnASTDot = fileOpts.ReturnASTDot
	}
	if !cmdFlags.GenerateTAC {
		cmdFlags.GenerateTAC = fileOpts.GenerateTAC
	}
	if !cmdFlags.AnnotateMemory {
		cmdFlags.AnnotateMemory = fileOpts.AnnotateMemory
	}
}
