package config

import (
	"io"

	"github.com/pelletier/go-toml/v2"
)

// Dump writes the effective settings as a [check] TOML table, in the shape
// a fortitude.toml would declare them.
func (s *Settings) Dump(w io.Writer) error {
	doc := struct {
		Check *Settings `toml:"check"`
	}{Check: s}

	enc := toml.NewEncoder(w)
	enc.SetIndentTables(true)
	return enc.Encode(doc)
}
