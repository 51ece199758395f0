// Package issues defines located diagnostics and the sinks they are forwarded to.
package issues

import (
	"fmt"
	"path/filepath"
	"strings"
	"sync"
)

// Kind identifies a diagnostic category. The values are part of the output
// contract and must not change.
type Kind string

const (
	// KindInvalidClassNode flags a class-reference node whose content cannot be
	// read as a class name: either the node has child elements, or its text does
	// not parse as a fully qualified class name.
	KindInvalidClassNode Kind = "InvalidClassNode"
	// KindUndeclaredClassReference flags a syntactically valid class name that no
	// declared class matches.
	KindUndeclaredClassReference Kind = "UndeclaredClassReference"
	// KindUnparsableFile flags a file whose content could not be parsed as XML.
	// The file is skipped; the scan continues.
	KindUnparsableFile Kind = "UnparsableXMLFile"
)

// Issue is a single located diagnostic. Immutable once built.
type Issue struct {
	Kind Kind
	// File is the project-relative path of the offending file, with forward slashes.
	File string
	// Line is the 1-based line of the offending element's opening tag.
	Line int
	// Template is a fmt-style message template.
	Template string
	// Args are the ordered substitution arguments for Template.
	Args []any
}

// Message renders the issue's template with its arguments.
func (i Issue) Message() string {
	return fmt.Sprintf(i.Template, i.Args...)
}

// String formats the issue in file:line: kind: message form.
func (i Issue) String() string {
	return fmt.Sprintf("%s:%d: %s: %s", i.File, i.Line, i.Kind, i.Message())
}

// Sink receives diagnostics. The host's reporting pipeline implements this;
// tests substitute a CollectingSink.
type Sink interface {
	Report(issue Issue)
}

// CollectingSink accumulates issues in memory.
type CollectingSink struct {
	mu     sync.Mutex
	issues []Issue
}

// NewCollectingSink creates an empty collecting sink.
func NewCollectingSink() *CollectingSink {
	return &CollectingSink{}
}

// Report appends the issue to the collection.
func (s *CollectingSink) Report(issue Issue) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.issues = append(s.issues, issue)
}

// Issues returns the collected issues in emission order.
func (s *CollectingSink) Issues() []Issue {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Issue, len(s.issues))
	copy(out, s.issues)

	return out
}

// Reporter builds location-aware diagnostics and forwards them to a sink.
// It owns the path normalization contract: every reported path is made
// relative to the project root so diagnostics do not depend on how the root
// argument was spelled.
type Reporter struct {
	sink Sink
	root string
}

// NewReporter creates a Reporter that relativizes paths against root.
func NewReporter(sink Sink, root string) *Reporter {
	return &Reporter{sink: sink, root: root}
}

// Report forwards exactly one diagnostic to the sink. No deduplication is
// performed; suppressing repeats is the host's concern.
func (r *Reporter) Report(kind Kind, file string, line int, template string, args ...any) {
	r.sink.Report(Issue{
		Kind:     kind,
		File:     r.relativize(file),
		Line:     line,
		Template: template,
		Args:     args,
	})
}

// Relative returns the project-relative, forward-slash form of path, as it
// would appear on a reported diagnostic.
func (r *Reporter) Relative(path string) string {
	return r.relativize(path)
}

func (r *Reporter) relativize(path string) string {
	if r.root == "" {
		return filepath.ToSlash(path)
	}

	rel, err := filepath.Rel(r.root, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		return filepath.ToSlash(path)
	}

	return filepath.ToSlash(rel)
}
