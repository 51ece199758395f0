// Package symbols models fully qualified class names and the declared-class
// table they are resolved against.
package symbols

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
)

// ErrEmptyName is returned when a candidate class name is empty.
var ErrEmptyName = errors.New("class name is empty")

// SymbolIdentifier is a structurally validated fully qualified class name.
// It is produced only by ParseName; downstream code never builds one from
// unvalidated text.
type SymbolIdentifier struct {
	// Namespace holds the leading namespace segments, outermost first.
	Namespace []string
	// Name is the base class name.
	Name string
}

// FQN returns the canonical fully qualified form without a leading separator.
func (id SymbolIdentifier) FQN() string {
	if len(id.Namespace) == 0 {
		return id.Name
	}

	return strings.Join(id.Namespace, `\`) + `\` + id.Name
}

// String returns the canonical fully qualified form.
func (id SymbolIdentifier) String() string {
	return id.FQN()
}

// ParseName validates text as a fully qualified class name: backslash
// separated segments, each starting with a letter, underscore or a rune at or
// above U+0080, followed by the same plus digits. A single leading backslash
// is accepted and dropped from the canonical form. The text is taken exactly
// as given; surrounding whitespace is a parse failure.
func ParseName(text string) (SymbolIdentifier, error) {
	if text == "" {
		return SymbolIdentifier{}, ErrEmptyName
	}

	trimmed := strings.TrimPrefix(text, `\`)
	if trimmed == "" {
		return SymbolIdentifier{}, fmt.Errorf("%q is not a valid class name: missing name after separator", text)
	}

	segments := strings.Split(trimmed, `\`)
	for _, segment := range segments {
		if err := validateSegment(segment); err != nil {
			return SymbolIdentifier{}, fmt.Errorf("%q is not a valid class name: %w", text, err)
		}
	}

	namespace := segments[:len(segments)-1]
	if len(namespace) == 0 {
		namespace = nil
	}

	return SymbolIdentifier{
		Namespace: namespace,
		Name:      segments[len(segments)-1],
	}, nil
}

func validateSegment(segment string) error {
	if segment == "" {
		return errors.New("empty namespace segment")
	}

	for i, r := range segment {
		if i == 0 {
			if !isNameStart(r) {
				return fmt.Errorf("segment %q starts with invalid character %q", segment, r)
			}

			continue
		}

		if !isNamePart(r) {
			return fmt.Errorf("segment %q contains invalid character %q", segment, r)
		}
	}

	return nil
}

func isNameStart(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || r >= 0x80
}

func isNamePart(r rune) bool {
	return isNameStart(r) || r >= '0' && r <= '9'
}
