// Package naming folds user-supplied project names into the canonical
// snake_case token used for directories, crate names and template values.
package naming

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// ErrInvalidName is returned when a name does not satisfy the canonical pattern
// after normalization.
var ErrInvalidName = errors.New("invalid project name")

// canonical is the only shape a ProjectName may take.
var canonical = regexp.MustCompile(`^[a-z][a-z0-9_]*$`)

var lower = cases.Lower(language.Und)

// ProjectName is a validated snake_case project identifier.
type ProjectName string

// String returns the name as a plain string.
func (p ProjectName) String() string {
	return string(p)
}

// Result is the outcome of normalizing a raw name.
type Result struct {
	Name     ProjectName
	Original string
	Changed  bool // Name differs from Original
}

// Normalize folds input to snake_case and validates it.
//
// Word boundaries are case transitions (myProject, HTTPServer) and any run of
// characters that are neither letters nor digits. Normalizing a canonical name
// returns it unchanged.
//
// Example:
//
//	res, err := naming.Normalize("MyProject")
//	// res.Name == "my_project", res.Changed == true
func Normalize(input string) (Result, error) {
	// Canonical names are kept verbatim, including repeated or trailing
	// underscores that folding would collapse.
	if Validate(input) == nil {
		return Result{Name: ProjectName(input), Original: input}, nil
	}

	folded := SnakeCase(input)
	res := Result{
		Name:     ProjectName(folded),
		Original: input,
		Changed:  folded != input,
	}

	if err := Validate(folded); err != nil {
		return res, err
	}
	return res, nil
}

// Validate reports whether name already is a canonical ProjectName.
func Validate(name string) error {
	if !canonical.MatchString(name) {
		return fmt.Errorf("%w: %q must start with a lowercase letter and contain only lowercase letters, numbers, and underscores", ErrInvalidName, name)
	}
	return nil
}

// SnakeCase splits s into words and joins them lowercased with underscores.
// Examples: MyProject → my_project, my-cool app → my_cool_app, HTTPServer → http_server
func SnakeCase(s string) string {
	return strings.Join(Words(s), "_")
}

// Words splits s on case transitions and non-alphanumeric runs, lowercasing
// each word.
func Words(s string) []string {
	runes := []rune(s)
	words := make([]string, 0, 4)
	var current []rune

	flush := func() {
		if len(current) > 0 {
			words = append(words, lower.String(string(current)))
			current = current[:0]
		}
	}

	for i, r := range runes {
		if !isWordRune(r) {
			flush()
			continue
		}

		if len(current) > 0 && unicode.IsUpper(r) {
			prev := runes[i-1]
			switch {
			case unicode.IsLower(prev) || unicode.IsDigit(prev):
				// myProject, v2Beta
				flush()
			case unicode.IsUpper(prev) && i+1 < len(runes) && unicode.IsLower(runes[i+1]):
				// HTTPServer: last capital starts the next word
				flush()
			}
		}
		current = append(current, r)
	}
	flush()

	return words
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}
