// Package rules provides the core rule system for the Fortran linter.
package rules

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
)

// Category groups rules by the sort of problem they intend to solve.
// Categories are ordered by declaration.
type Category int

const (
	// CategoryError is a failure to parse a file.
	CategoryError Category = iota
	// CategoryStyle is a violation of style conventions.
	CategoryStyle
	// CategoryTyping is misuse of types and kinds.
	CategoryTyping
	// CategoryModules is failure to use modules or use them appropriately.
	CategoryModules
	// CategoryPrecision covers floating point precision practices.
	CategoryPrecision
	// CategoryFileSystem checks path names, directory structures, etc.
	CategoryFileSystem
)

// Categories lists every category in order.
var Categories = []Category{
	CategoryError,
	CategoryStyle,
	CategoryTyping,
	CategoryModules,
	CategoryPrecision,
	CategoryFileSystem,
}

var categoryPrefixes = map[Category]string{
	CategoryError:      "E",
	CategoryStyle:      "S",
	CategoryTyping:     "T",
	CategoryModules:    "M",
	CategoryPrecision:  "P",
	CategoryFileSystem: "F",
}

var categoryNames = map[Category]string{
	CategoryError:      "error",
	CategoryStyle:      "style",
	CategoryTyping:     "typing",
	CategoryModules:    "modules",
	CategoryPrecision:  "precision",
	CategoryFileSystem: "filesystem",
}

// String returns the one-letter prefix of the category.
func (c Category) String() string {
	if p, ok := categoryPrefixes[c]; ok {
		return p
	}
	return "?"
}

// Name returns a lowercase human-readable category name.
func (c Category) Name() string {
	if n, ok := categoryNames[c]; ok {
		return n
	}
	return "unknown"
}

// ParseCategory parses a category prefix such as "S".
func ParseCategory(s string) (Category, error) {
	for c, p := range categoryPrefixes {
		if p == s {
			return c, nil
		}
	}
	return 0, fmt.Errorf("%s is not a rule category", s)
}

var codePattern = regexp.MustCompile(`^([A-Z]+)([0-9]{3})$`)

// Code is the combination of a rule category and a unique identifying number.
// Codes are cited in configuration files and CLI flags, so they must stay
// stable across releases.
//
//nolint:recvcheck // UnmarshalJSON requires pointer receiver per json.Unmarshaler interface
type Code struct {
	Category Category
	Number   int
}

// NewCode builds a code from its parts.
func NewCode(category Category, number int) Code {
	return Code{Category: category, Number: number}
}

// ParseCode parses a string like "S001".
func ParseCode(s string) (Code, error) {
	m := codePattern.FindStringSubmatch(s)
	if m == nil {
		return Code{}, fmt.Errorf("%s is not a valid rule code", s)
	}
	category, err := ParseCategory(m[1])
	if err != nil {
		return Code{}, err
	}
	number, err := strconv.Atoi(m[2])
	if err != nil {
		return Code{}, err
	}
	return NewCode(category, number), nil
}

// MustParseCode is like ParseCode but panics on error. Intended for rule
// definitions and tests.
func MustParseCode(s string) Code {
	c, err := ParseCode(s)
	if err != nil {
		panic(err)
	}
	return c
}

// String renders the code as category prefix plus three digits.
func (c Code) String() string {
	return fmt.Sprintf("%s%03d", c.Category, c.Number)
}

// IsZero reports whether c is the zero code.
func (c Code) IsZero() bool {
	return c == Code{}
}

// Compare orders codes by category, then number.
func (c Code) Compare(other Code) int {
	if c.Category != other.Category {
		if c.Category < other.Category {
			return -1
		}
		return 1
	}
	switch {
	case c.Number < other.Number:
		return -1
	case c.Number > other.Number:
		return 1
	default:
		return 0
	}
}

// MarshalJSON implements json.Marshaler.
func (c Code) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.String())
}

// UnmarshalJSON implements json.Unmarshaler.
func (c *Code) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseCode(s)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}
