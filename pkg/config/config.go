package config

import (
	"bytes"
	_ "embed"
	stdjson "encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/santhosh-tekuri/jsonschema/v6"

	"github.com/panbanda/bubbles/pkg/identity"
)

// DefaultBaseDiffURL is used when base-diff-url is not configured.
const DefaultBaseDiffURL = "https://github.com/?/?/commit/"

// FileNames are the configuration files looked up in a target directory, in order.
var FileNames = []string{
	".commit-bubbles.yml",
	".commit-bubbles.yaml",
	".commit-bubbles.json",
	".commit-bubbles.toml",
}

// Keys that must be present in every configuration file.
const (
	KeySuffixes    = "testable-file-suffixes"
	KeyDescription = "description"
)

//go:embed schema.json
var schemaJSON []byte

// Config holds all configuration options for a bubbles run.
type Config struct {
	// Suffixes of files whose changed lines count toward testable lines.
	TestableFileSuffixes []string `koanf:"testable-file-suffixes" yaml:"testable-file-suffixes" toml:"testable-file-suffixes"`

	// Free text shown with every bucket.
	Description string `koanf:"description" yaml:"description" toml:"description"`

	// Author normalization
	Redactions []string `koanf:"redactions" yaml:"redactions" toml:"redactions"`
	Aliases    []string `koanf:"aliases" yaml:"aliases" toml:"aliases"`

	BaseDiffURL string `koanf:"base-diff-url" yaml:"base-diff-url" toml:"base-diff-url"`

	// Bucket every change-set, not only those with testable lines, and
	// write one JSON document per parsed change-set.
	WriteJSONDiffs bool `koanf:"write_json_diffs" yaml:"write_json_diffs" toml:"write_json_diffs"`

	MergeCommitParents    bool   `koanf:"merge-commit-parents" yaml:"merge-commit-parents" toml:"merge-commit-parents"`
	SourceCommitsFromFile string `koanf:"source-commits-from-file" yaml:"source-commits-from-file,omitempty" toml:"source-commits-from-file,omitempty"`

	// Shell out to git instead of reading the repository with go-git.
	NativeGit bool `koanf:"native-git" yaml:"native-git" toml:"native-git"`
}

// ConfigError reports a configuration problem. It is always fatal.
type ConfigError struct {
	Path string
	Key  string
	Err  error
}

func (e *ConfigError) Error() string {
	switch {
	case e.Key != "" && e.Path == "":
		return fmt.Sprintf("%q: %v", e.Key, e.Err)
	case e.Key != "":
		return fmt.Sprintf("%s: %q: %v", e.Path, e.Key, e.Err)
	case e.Path != "":
		return fmt.Sprintf("%s: %v", e.Path, e.Err)
	default:
		return e.Err.Error()
	}
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

var (
	// ErrNotFound is returned when no configuration file exists in a directory.
	ErrNotFound = errors.New("no configuration file found")
	// ErrMissingKey is wrapped by ConfigError when a required key is absent.
	ErrMissingKey = errors.New("required key is missing")
)

// DefaultConfig returns a config with every optional key at its default.
// Required keys are left empty.
func DefaultConfig() *Config {
	return &Config{
		Redactions:  []string{},
		Aliases:     []string{},
		BaseDiffURL: DefaultBaseDiffURL,
		NativeGit:   true,
	}
}

// Load loads and validates configuration from a file.
func Load(path string) (*Config, error) {
	k := koanf.New(".")
	cfg := DefaultConfig()

	if err := k.Load(file.Provider(path), parserFor(path)); err != nil {
		return nil, &ConfigError{Path: path, Err: err}
	}

	for _, key := range []string{KeySuffixes, KeyDescription} {
		if !k.Exists(key) {
			return nil, &ConfigError{Path: path, Key: key, Err: ErrMissingKey}
		}
	}

	if err := validateSchema(k.Raw()); err != nil {
		return nil, &ConfigError{Path: path, Err: err}
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, &ConfigError{Path: path, Err: err}
	}

	if _, err := identity.ParseAliasRules(cfg.Aliases); err != nil {
		return nil, &ConfigError{Path: path, Key: "aliases", Err: err}
	}

	return cfg, nil
}

// LoadFromDir loads the first configuration file found in dir.
func LoadFromDir(dir string) (*Config, error) {
	path, err := Find(dir)
	if err != nil {
		return nil, err
	}
	return Load(path)
}

// Find returns the path of the first configuration file present in dir.
func Find(dir string) (string, error) {
	for _, name := range FileNames {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
	}
	return "", &ConfigError{Path: dir, Err: ErrNotFound}
}

// AliasRules returns the parsed alias rules.
func (c *Config) AliasRules() ([]identity.AliasRule, error) {
	return identity.ParseAliasRules(c.Aliases)
}

func parserFor(path string) koanf.Parser {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return toml.Parser()
	case ".json":
		return json.Parser()
	default:
		return yaml.Parser()
	}
}

// validateSchema checks the raw document against the embedded JSON schema.
// The document is round-tripped through JSON so every parser's number and
// map types look the same to the validator.
func validateSchema(raw map[string]any) error {
	schemaDoc, err := jsonschema.UnmarshalJSON(bytes.NewReader(schemaJSON))
	if err != nil {
		return fmt.Errorf("loading schema: %w", err)
	}

	c := jsonschema.NewCompiler()
	if err := c.AddResource("commit-bubbles.schema.json", schemaDoc); err != nil {
		return fmt.Errorf("loading schema: %w", err)
	}
	sch, err := c.Compile("commit-bubbles.schema.json")
	if err != nil {
		return fmt.Errorf("compiling schema: %w", err)
	}

	data, err := stdjson.Marshal(raw)
	if err != nil {
		return err
	}
	inst, err := jsonschema.UnmarshalJSON(bytes.NewReader(data))
	if err != nil {
		return err
	}
	return sch.Validate(inst)
}
