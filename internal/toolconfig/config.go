// Package toolconfig locates the external programs the build pipeline drives.
//
// Values come from built-in defaults, then an optional HCL file, then
// environment variables, each layer overriding the previous one. The HCL
// file is evaluated with an "env" object so paths can reference the
// environment:
//
//	construction {
//	  interpreter = "perl"
//	  script      = "${env.GRAMTOOLS_HOME}/scripts/vcf_to_linear_prg.pl"
//	}
//	indexing {
//	  binary        = "/opt/gramtools/bin/gram"
//	  library_paths = ["/opt/gramtools/lib"]
//	}
package toolconfig

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"
)

// Environment variables consulted by Load.
const (
	EnvConfig      = "GRAMTOOLS_CONFIG"
	EnvInterpreter = "GRAMTOOLS_PERL"
	EnvScript      = "GRAMTOOLS_PRG_SCRIPT"
	EnvBinary      = "GRAMTOOLS_BINARY"
	EnvLibraryPath = "GRAMTOOLS_LIBRARY_PATH"
)

const (
	defaultInterpreter = "perl"
	scriptName         = "vcf_to_linear_prg.pl"
	binaryName         = "gram"
)

// Tools holds the resolved locations of the external programs.
type Tools struct {
	// Interpreter runs the construction script.
	Interpreter string
	// ConstructionScript builds a PRG from a VCF and a reference.
	ConstructionScript string
	// IndexingBinary is the native gram executable.
	IndexingBinary string
	// LibraryPaths are exported to the indexing binary as shared library
	// search paths.
	LibraryPaths []string
}

type fileConfig struct {
	Construction *constructionBlock `hcl:"construction,block"`
	Indexing     *indexingBlock     `hcl:"indexing,block"`
}

type constructionBlock struct {
	Interpreter *string `hcl:"interpreter,optional"`
	Script      *string `hcl:"script,optional"`
}

type indexingBlock struct {
	Binary       *string   `hcl:"binary,optional"`
	LibraryPaths *[]string `hcl:"library_paths,optional"`
}

// Environment is a snapshot of environment variables keyed by name.
type Environment map[string]string

// EnvironmentFrom parses KEY=VALUE pairs as returned by os.Environ.
func EnvironmentFrom(environ []string) Environment {
	env := make(Environment, len(environ))
	for _, kv := range environ {
		key, value, ok := strings.Cut(kv, "=")
		if !ok || key == "" {
			continue
		}
		env[key] = value
	}
	return env
}

// Defaults derives tool locations from the directory holding the running
// executable.
func Defaults(exeDir string) Tools {
	return Tools{
		Interpreter:        defaultInterpreter,
		ConstructionScript: filepath.Join(exeDir, "..", "share", "gramtools", scriptName),
		IndexingBinary:     filepath.Join(exeDir, binaryName),
		LibraryPaths:       []string{filepath.Clean(filepath.Join(exeDir, "..", "lib"))},
	}
}

// ExecutableDir returns the directory of the running binary, or "." when it
// cannot be determined.
func ExecutableDir() string {
	exe, err := os.Executable()
	if err != nil {
		return "."
	}
	if resolved, err := filepath.EvalSymlinks(exe); err == nil {
		exe = resolved
	}
	return filepath.Dir(exe)
}

// Load layers configPath (optional) and the environment over defaults.
func Load(defaults Tools, configPath string, env Environment) (Tools, error) {
	tools := defaults

	if configPath == "" {
		configPath = env[EnvConfig]
	}
	if configPath != "" {
		cfg, err := parseFile(configPath, env)
		if err != nil {
			return Tools{}, err
		}
		tools = cfg.apply(tools)
	}

	if v := env[EnvInterpreter]; v != "" {
		tools.Interpreter = v
	}
	if v := env[EnvScript]; v != "" {
		tools.ConstructionScript = v
	}
	if v := env[EnvBinary]; v != "" {
		tools.IndexingBinary = v
	}
	if v := env[EnvLibraryPath]; v != "" {
		tools.LibraryPaths = filepath.SplitList(v)
	}
	return tools, nil
}

func parseFile(path string, env Environment) (*fileConfig, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse tool config %s: %w", path, diags)
	}

	var cfg fileConfig
	if diags := gohcl.DecodeBody(file.Body, evalContext(env), &cfg); diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode tool config %s: %w", path, diags)
	}
	return &cfg, nil
}

func evalContext(env Environment) *hcl.EvalContext {
	vars := make(map[string]cty.Value, len(env))
	for k, v := range env {
		vars[k] = cty.StringVal(v)
	}
	return &hcl.EvalContext{
		Variables: map[string]cty.Value{
			"env": cty.ObjectVal(vars),
		},
	}
}

func (c *fileConfig) apply(tools Tools) Tools {
	if c.Construction != nil {
		if c.Construction.Interpreter != nil {
			tools.Interpreter = *c.Construction.Interpreter
		}
		if c.Construction.Script != nil {
			tools.ConstructionScript = *c.Construction.Script
		}
	}
	if c.Indexing != nil {
		if c.Indexing.Binary != nil {
			tools.IndexingBinary = *c.Indexing.Binary
		}
		if c.Indexing.LibraryPaths != nil {
			tools.LibraryPaths = append([]string{}, (*c.Indexing.LibraryPaths)...)
		}
	}
	return tools
}
