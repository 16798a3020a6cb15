// Package discovery finds the Fortran sources named by the command line.
package discovery

import (
	"cmp"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// File is a source file selected for checking.
type File struct {
	// Path is the path as it should be displayed. Explicit inputs keep the
	// form the user typed; files found under a directory are joined onto it.
	Path string

	// ConfigRoot is the directory to start config discovery from.
	ConfigRoot string

	// Explicit is set for files named directly on the command line. They are
	// checked whatever their extension and are never excluded.
	Explicit bool
}

// Options configures file discovery behavior.
type Options struct {
	// Extensions are the file extensions, without the dot, of the files to
	// pick up from directories and globs. Matching is case sensitive.
	Extensions []string

	// ExcludePatterns are doublestar patterns matched against the file or
	// directory name and every trailing sub-path of it.
	ExcludePatterns []string
}

// Discover expands inputs into a sorted, duplicate-free list of files.
// Each input can be:
//   - a file path, always included
//   - a directory, searched recursively for files with a known extension
//   - a glob pattern, expanded with doublestar
func Discover(inputs []string, opts Options) ([]File, error) {
	d := &discoverer{
		opts:    opts,
		pattern: extensionPattern(opts.Extensions),
		seen:    make(map[string]bool),
	}
	for _, input := range inputs {
		if err := d.input(input); err != nil {
			return nil, err
		}
	}
	slices.SortFunc(d.files, func(a, b File) int {
		return cmp.Compare(a.Path, b.Path)
	})
	return d.files, nil
}

type discoverer struct {
	opts    Options
	pattern string
	seen    map[string]bool
	files   []File
}

func (d *discoverer) input(input string) error {
	// Glob characters make os.Stat fail on Windows; go straight to the glob.
	if containsGlobChars(input) {
		return d.glob(input)
	}
	info, err := os.Stat(input)
	switch {
	case err == nil && info.IsDir():
		return d.directory(input)
	case err == nil:
		return d.add(input, true)
	case os.IsNotExist(err):
		return d.glob(input)
	default:
		return err
	}
}

func (d *discoverer) directory(root string) error {
	return filepath.WalkDir(root, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if path != root && d.excluded(path) {
			if entry.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if entry.IsDir() || !d.matchesExtension(path) {
			return nil
		}
		return d.add(path, false)
	})
}

func (d *discoverer) glob(pattern string) error {
	matches, err := doublestar.FilepathGlob(pattern, doublestar.WithFilesOnly())
	if err != nil {
		return err
	}
	for _, match := range matches {
		if d.excluded(match) || !d.matchesExtension(match) {
			continue
		}
		if err := d.add(match, false); err != nil {
			return err
		}
	}
	return nil
}

func (d *discoverer) add(path string, explicit bool) error {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	if d.seen[absPath] {
		return nil
	}
	d.seen[absPath] = true
	d.files = append(d.files, File{
		Path:       path,
		ConfigRoot: filepath.Dir(absPath),
		Explicit:   explicit,
	})
	return nil
}

func (d *discoverer) matchesExtension(path string) bool {
	if d.pattern == "" {
		return false
	}
	ok, err := doublestar.Match(d.pattern, filepath.Base(path))
	return err == nil && ok
}

func (d *discoverer) excluded(path string) bool {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return false
	}
	return isExcluded(absPath, d.opts.ExcludePatterns)
}

// extensionPattern builds "*.{f90,F90,...}" from a list of extensions.
func extensionPattern(exts []string) string {
	var cleaned []string
	for _, ext := range exts {
		ext = strings.TrimPrefix(strings.TrimSpace(ext), ".")
		if ext == "" {
			continue
		}
		cleaned = append(cleaned, ext)
	}
	switch len(cleaned) {
	case 0:
		return ""
	case 1:
		return "*." + cleaned[0]
	default:
		return "*.{" + strings.Join(cleaned, ",") + "}"
	}
}

// containsGlobChars returns true if the path contains glob special characters.
func containsGlobChars(path string) bool {
	return strings.ContainsAny(path, "*?[]{}")
}

// isExcluded reports whether absPath matches one of the patterns. Each
// pattern is tried against the full path, the base name, and every trailing
// sub-path, so "build" excludes any build directory and "vendor/*.f90"
// excludes direct children of any vendor directory.
//
// doublestar.Match expects forward slashes even on Windows.
func isExcluded(absPath string, patterns []string) bool {
	if len(patterns) == 0 {
		return false
	}
	full := filepath.ToSlash(absPath)
	parts := splitPath(absPath)
	for _, pattern := range patterns {
		pattern = filepath.ToSlash(pattern)
		if ok, err := doublestar.Match(pattern, full); err == nil && ok {
			return true
		}
		for i := range parts {
			sub := strings.Join(parts[i:], "/")
			if ok, err := doublestar.Match(pattern, sub); err == nil && ok {
				return true
			}
		}
	}
	return false
}

// splitPath splits a path into its components, dropping the root or volume:
// "/home/user/vendor/a.f90" gives ["home", "user", "vendor", "a.f90"].
func splitPath(path string) []string {
	path = strings.TrimPrefix(path, filepath.VolumeName(path))
	var parts []string
	for p := range strings.SplitSeq(filepath.ToSlash(path), "/") {
		if p != "" && p != "." {
			parts = append(parts, p)
		}
	}
	return parts
}
