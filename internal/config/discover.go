package config

import (
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"slices"

	"github.com/knadh/koanf/parsers/toml/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// ConfigFileNames defines the config file names to search for, in priority order.
var ConfigFileNames = []string{"fortitude.toml", ".fortitude.toml", "fpm.toml"}

// SharedManifest is the multi-tool manifest; fortitude settings live under
// [extra.fortitude] there.
const SharedManifest = "fpm.toml"

const (
	checkTable       = "check"
	sharedNamespace  = "extra.fortitude"
	sharedCheckTable = sharedNamespace + "." + checkTable
)

// FileSettings is the deserialized [check] table of one located config file.
type FileSettings struct {
	// Path is the file the settings were read from.
	Path string

	// Check holds the keys of the [check] table.
	Check map[string]any
}

// Discover finds the closest config file, starting at dir and walking up to
// the filesystem root. Within one directory the names in ConfigFileNames are
// tried in order; an fpm.toml only counts when it has an [extra.fortitude]
// table. Returns empty string if no config file is found.
func Discover(dir string) string {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return ""
	}
	if info, err := os.Stat(absDir); err == nil && !info.IsDir() {
		absDir = filepath.Dir(absDir)
	}

	for {
		for _, name := range ConfigFileNames {
			configPath := filepath.Join(absDir, name)
			if !fileExists(configPath) {
				continue
			}
			if name == SharedManifest && !hasSharedNamespace(configPath) {
				continue
			}
			return configPath
		}

		parent := filepath.Dir(absDir)
		if parent == absDir {
			break
		}
		absDir = parent
	}

	return ""
}

// Load reads and deserializes a config file. Parse failures are returned as
// *Error.
func Load(path string) (*FileSettings, error) {
	k := koanf.New(".")
	if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
		return nil, &Error{Source: path, Err: fmt.Errorf("parse TOML: %w", err)}
	}

	table := checkTable
	if filepath.Base(path) == SharedManifest {
		table = sharedCheckTable
	}

	check := map[string]any{}
	if k.Exists(table) {
		raw, ok := k.Get(table).(map[string]any)
		if !ok {
			return nil, &Error{Source: path, Field: table, Err: fmt.Errorf("[%s] must be a table", table)}
		}
		check = raw
	}
	return &FileSettings{Path: path, Check: check}, nil
}

func hasSharedNamespace(path string) bool {
	k := koanf.New(".")
	if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
		// A broken fpm.toml still belongs to the project; let Load report it.
		return true
	}
	return k.Exists(sharedNamespace)
}

// fileExists checks if a file exists and is not a directory.
func fileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}

func sortedKeys(m map[string]any) []string {
	return slices.Sorted(maps.Keys(m))
}
