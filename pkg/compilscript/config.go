package compilscript

import (
	"os"

	"github.com/goccy/go-yaml"
)

// fileOptions mirrors Options' fields with yaml tags; compilscript.yaml
// is a project-level convenience for seeding CLI defaults, the way a
// config file customarily overrides a tool's zero-value flags.
type fileOptions struct {
	ReturnASTDot   bool `yaml:"return_ast_dot"`
	GenerateTAC    bool `yaml:"generate_tac"`
	AnnotateMemory bool `yaml:"annotate_memory"`
}

// LoadOptions reads a compilscript.yaml file at path and returns the
// Options it describes. A missing file is not an error — it returns the
// zero-value Options, matching spec §6.2's fully-enumerated (so
// omittable) configuration.
func LoadOptions(path string) (Options, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return Options{}, nil
	}
	if err != nil {
		return Options{}, err
	}

	var f fileOptions
	if err := yaml.Unmarshal(data, &f); err != nil {
		return Options{}, err
	}
	return Options{
		ReturnASTDot:   f.ReturnASTDot,
		GenerateTAC:    f.GenerateTAC,
		AnnotateMemory: f.AnnotateMemory,
	}, nil
}
