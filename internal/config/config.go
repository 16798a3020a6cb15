// Package config resolves the effective settings for one fortitude run.
//
// Settings are layered with the following priority (highest to lowest):
//  1. CLI flags
//  2. Environment variables (FORTITUDE_* prefix)
//  3. Config file (closest fortitude.toml, .fortitude.toml or fpm.toml)
//  4. Built-in defaults
//
// Layering is field by field: a key absent from a layer leaves the value of
// the layer below untouched.
package config

import (
	"fmt"
	"slices"
	"strings"

	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix is the prefix for environment variables.
const EnvPrefix = "FORTITUDE_"

// DefaultExtensions are the file extensions checked when none are configured.
var DefaultExtensions = []string{
	"f90", "F90", "f95", "F95", "f03", "F03", "f08", "F08", "f18", "F18", "f23", "F23",
	"f", "F", "for", "FOR", "f77", "F77", "ftn", "FTN",
}

// DefaultExclude are the paths skipped during discovery unless exclude is
// set.
var DefaultExclude = []string{
	".git", ".hg", ".svn", ".venv", "venv", "_build", "build", "dist", "node_modules",
}

// DefaultSelect is the built-in rule selection.
var DefaultSelect = []string{"E", "F", "M", "S", "T"}

// OutputFormats lists the accepted values of output-format.
var OutputFormats = []string{
	"concise", "full", "json", "json-lines", "junit", "grouped",
	"github", "gitlab", "pylint", "rdjson", "azure", "sarif",
}

// ProgressBars lists the accepted values of progress-bar.
var ProgressBars = []string{"off", "fancy", "ascii"}

// FixMode controls which fixes are applied automatically.
type FixMode int

const (
	// FixModeOff never applies fixes.
	FixModeOff FixMode = iota
	// FixModeSafe applies safe fixes only.
	FixModeSafe
	// FixModeUnsafe applies safe and unsafe fixes.
	FixModeUnsafe
)

// String returns the string representation of the fix mode.
func (m FixMode) String() string {
	switch m {
	case FixModeSafe:
		return "safe"
	case FixModeUnsafe:
		return "unsafe"
	default:
		return "off"
	}
}

// Settings is the effective configuration for one run. It is built once and
// shared read-only by all per-file work.
type Settings struct {
	Select         []string `json:"select" koanf:"select" toml:"select"`
	Ignore         []string `json:"ignore" koanf:"ignore" toml:"ignore"`
	ExtendSelect   []string `json:"extend-select" koanf:"extend-select" toml:"extend-select"`
	LineLength     int      `json:"line-length" koanf:"line-length" toml:"line-length"`
	FileExtensions []string `json:"file-extensions" koanf:"file-extensions" toml:"file-extensions"`
	Exclude        []string `json:"exclude" koanf:"exclude" toml:"exclude"`
	ExtendExclude  []string `json:"extend-exclude" koanf:"extend-exclude" toml:"extend-exclude"`
	Fix            bool     `json:"fix" koanf:"fix" toml:"fix"`
	UnsafeFixes    bool     `json:"unsafe-fixes" koanf:"unsafe-fixes" toml:"unsafe-fixes"`
	ShowFixes      bool     `json:"show-fixes" koanf:"show-fixes" toml:"show-fixes"`
	FixOnly        bool     `json:"fix-only" koanf:"fix-only" toml:"fix-only"`
	Preview        bool     `json:"preview" koanf:"preview" toml:"preview"`
	OutputFormat   string   `json:"output-format" koanf:"output-format" toml:"output-format"`
	ProgressBar    string   `json:"progress-bar" koanf:"progress-bar" toml:"progress-bar"`

	// ConfigFile is the path of the config file that was loaded (if any).
	// This is metadata, not loaded from config.
	ConfigFile string `json:"-" koanf:"-" toml:"-"`
}

// Default returns the built-in settings.
func Default() *Settings {
	return &Settings{
		Select:         slices.Clone(DefaultSelect),
		LineLength:     100,
		FileExtensions: slices.Clone(DefaultExtensions),
		Exclude:        slices.Clone(DefaultExclude),
		OutputFormat:   "full",
		ProgressBar:    "off",
	}
}

// FixMode derives the fix mode from the fix flags. fix-only implies fix.
func (s *Settings) FixMode() FixMode {
	if !s.Fix && !s.FixOnly {
		return FixModeOff
	}
	if s.UnsafeFixes {
		return FixModeUnsafe
	}
	return FixModeSafe
}

// ExcludePatterns returns exclude followed by extend-exclude.
func (s *Settings) ExcludePatterns() []string {
	return slices.Concat(s.Exclude, s.ExtendExclude)
}

// Resolve merges defaults, the optional config file settings and the CLI
// overrides into the effective settings. overrides uses the same keys as the
// [check] table and must only contain flags the user actually set.
//
// Resolve is a pure function of its inputs apart from reading FORTITUDE_*
// environment variables.
func Resolve(file *FileSettings, overrides map[string]any) (*Settings, error) {
	k := koanf.New(".")

	// 1. Defaults
	if err := k.Load(structs.Provider(Default(), "koanf"), nil); err != nil {
		return nil, err
	}

	// 2. Config file
	var fileExtend []string
	if file != nil {
		if err := validateTable(file.Path, file.Check); err != nil {
			return nil, err
		}
		if err := k.Load(confmap.Provider(file.Check, ""), nil); err != nil {
			return nil, &Error{Source: file.Path, Err: err}
		}
		fileExtend = k.Strings("extend-select")
	}

	// 3. Environment
	if err := k.Load(env.Provider(".", env.Opt{
		Prefix:        EnvPrefix,
		TransformFunc: envKeyTransform,
	}), nil); err != nil {
		return nil, err
	}

	// 4. CLI flags
	if len(overrides) > 0 {
		if err := validateTable(SourceCLI, overrides); err != nil {
			return nil, err
		}
		if err := k.Load(confmap.Provider(overrides, ""), nil); err != nil {
			return nil, &Error{Source: SourceCLI, Err: err}
		}
	}

	var s Settings
	if err := k.Unmarshal("", &s); err != nil {
		return nil, &Error{Source: sourceName(file), Err: err}
	}

	// extend-select is additive across layers rather than overridden.
	s.ExtendSelect = slices.Clone(fileExtend)
	if cliExtend, ok := overrides["extend-select"]; ok {
		s.ExtendSelect = append(s.ExtendSelect, toStrings(cliExtend)...)
	}
	if file != nil {
		s.ConfigFile = file.Path
	}

	if err := s.validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

func (s *Settings) validate() error {
	for _, sel := range s.ExtendSelect {
		if strings.HasPrefix(sel, "-") || strings.HasPrefix(sel, "!") {
			return &Error{
				Source: SourceCLI,
				Field:  "extend-select",
				Err:    errExtendSelectRemoves(sel),
			}
		}
	}
	// File and CLI values are schema-checked on load; only the environment
	// can still carry an unknown format here.
	if !slices.Contains(OutputFormats, s.OutputFormat) {
		return &Error{
			Source: EnvPrefix + "OUTPUT_FORMAT",
			Field:  "output-format",
			Err:    fmt.Errorf("unknown output format %q", s.OutputFormat),
		}
	}
	return nil
}

// envKeyTransform converts environment variable names to config keys.
// FORTITUDE_OUTPUT_FORMAT -> output-format. Other variables are ignored.
func envKeyTransform(k, v string) (string, any) {
	key := strings.ToLower(strings.TrimPrefix(k, EnvPrefix))
	key = strings.ReplaceAll(key, "_", "-")
	if key != "output-format" {
		return "", nil
	}
	return key, v
}

func sourceName(file *FileSettings) string {
	if file == nil {
		return SourceCLI
	}
	return file.Path
}

func toStrings(v any) []string {
	switch vv := v.(type) {
	case []string:
		return slices.Clone(vv)
	case []any:
		out := make([]string, 0, len(vv))
		for _, item := range vv {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	case string:
		return []string{vv}
	default:
		return nil
	}
}
