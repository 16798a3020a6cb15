package config

import (
	"errors"
	"fmt"
)

// SourceCLI names the command line as the origin of a setting.
const SourceCLI = "command line"

// Error is a configuration error: malformed TOML, a field of the wrong
// shape, or an unknown rule selector. It is fatal to the whole run and is
// reported before any file is processed.
type Error struct {
	// Source is the config file path or SourceCLI.
	Source string

	// Field is the offending key, when known.
	Field string

	Err error
}

func (e *Error) Error() string {
	switch {
	case e.Source != "" && e.Field != "":
		return fmt.Sprintf("invalid configuration in %s (%s): %v", e.Source, e.Field, e.Err)
	case e.Source != "":
		return fmt.Sprintf("invalid configuration in %s: %v", e.Source, e.Err)
	default:
		return fmt.Sprintf("invalid configuration: %v", e.Err)
	}
}

func (e *Error) Unwrap() error {
	return e.Err
}

// IsConfigError reports whether err is or wraps an *Error.
func IsConfigError(err error) bool {
	var cfgErr *Error
	return errors.As(err, &cfgErr)
}

// ErrExtendSelectRemoves is returned when extend-select is used to remove rules.
var ErrExtendSelectRemoves = errors.New("extend-select can only add rules")

func errExtendSelectRemoves(selector string) error {
	return fmt.Errorf("%w: %q", ErrExtendSelectRemoves, selector)
}
