// Package checker implements the XML class-reference checking pass: it
// discovers XML files under a configured directory, extracts class-reference
// elements, validates the referenced names and resolves them against the
// host's declared-class table, reporting a located diagnostic for every
// reference that is malformed or undeclared.
package checker

import (
	"encoding/xml"
	"errors"
	"fmt"
	"os"
	"sync"

	ignore "github.com/sabhiram/go-gitignore"

	"github.com/classref/classref/pkg/analyze"
	"github.com/classref/classref/pkg/discovery"
	"github.com/classref/classref/pkg/issues"
	"github.com/classref/classref/pkg/levenshtein"
	"github.com/classref/classref/pkg/markup"
	"github.com/classref/classref/pkg/pipeline"
	"github.com/classref/classref/pkg/symbols"
)

const (
	// ConfigDirectory is the configuration key for the XML config root directory.
	ConfigDirectory = "ClassReferenceChecker.ConfigDirectory"
	// ConfigClassElement is the configuration key for the element name read as a class reference.
	ConfigClassElement = "ClassReferenceChecker.ClassElement"
	// ConfigIgnoreFile is the configuration key for an optional gitignore-style exclude file.
	ConfigIgnoreFile = "ClassReferenceChecker.IgnoreFile"
	// ConfigSuggestMaxDistance is the configuration key for the suggestion edit-distance cutoff.
	ConfigSuggestMaxDistance = "ClassReferenceChecker.SuggestMaxDistance"

	// DefaultClassElement is the element name read as a class reference.
	DefaultClassElement = "class"
	// DefaultSuggestMaxDistance is the default maximum edit distance for
	// closest-match suggestions on undeclared classes. Zero disables them.
	DefaultSuggestMaxDistance = 3
)

var (
	// ErrDirectoryNotConfigured is returned when the config directory fact is absent or empty.
	ErrDirectoryNotConfigured = errors.New("config directory is not configured")
	// ErrNotADirectory is returned when the configured config directory is not a directory.
	ErrNotADirectory = errors.New("config directory is not a directory")
)

// Stats summarizes one completed pass.
type Stats struct {
	FilesScanned int
	BytesRead    int64
	NodesChecked int
}

// Checker is the class-reference pre-analysis hook.
type Checker struct {
	// ConfigDir is the root directory scanned for XML files. Must exist and
	// be a directory before the pass starts.
	ConfigDir string
	// ClassElement is the element name whose text is read as a class name.
	ClassElement string
	// IgnoreFile optionally points at a gitignore-style exclude file.
	IgnoreFile string
	// SuggestMaxDistance caps the edit distance for did-you-mean suggestions.
	SuggestMaxDistance int

	lcontext levenshtein.Context

	mu    sync.Mutex
	stats Stats
}

// NewChecker creates a checker with default options.
func NewChecker() *Checker {
	return &Checker{
		ClassElement:       DefaultClassElement,
		SuggestMaxDistance: DefaultSuggestMaxDistance,
	}
}

// Name returns the hook's identifier.
func (c *Checker) Name() string {
	return "class-reference"
}

// Flag returns the hook's CLI selector.
func (c *Checker) Flag() string {
	return "class-refs"
}

// Description returns the hook's help text.
func (c *Checker) Description() string {
	return "Cross-references class names in XML configuration files against the declared classes."
}

// ListConfigurationOptions returns the hook's configuration surface.
func (c *Checker) ListConfigurationOptions() []pipeline.ConfigurationOption {
	return []pipeline.ConfigurationOption{
		{
			Name:        ConfigDirectory,
			Description: "Directory containing the XML configuration files to check.",
			Flag:        "config-dir",
			Type:        pipeline.PathConfigurationOption,
			Default:     "",
			Required:    true,
		},
		{
			Name:        ConfigClassElement,
			Description: "Element name whose text content is read as a fully qualified class name.",
			Flag:        "class-element",
			Type:        pipeline.StringConfigurationOption,
			Default:     DefaultClassElement,
		},
		{
			Name:        ConfigIgnoreFile,
			Description: "Optional gitignore-style file listing paths to exclude from the scan.",
			Flag:        "exclude-from",
			Type:        pipeline.PathConfigurationOption,
			Default:     "",
		},
		{
			Name:        ConfigSuggestMaxDistance,
			Description: "Maximum edit distance for closest-match suggestions on undeclared classes (0 disables).",
			Flag:        "suggest-max-distance",
			Type:        pipeline.IntConfigurationOption,
			Default:     DefaultSuggestMaxDistance,
		},
	}
}

// Configure sets up the checker from the facts map and validates the config
// directory. A missing or non-directory value is a configuration error: it is
// surfaced here, before any scanning begins.
func (c *Checker) Configure(facts map[string]any) error {
	if val, exists := facts[ConfigDirectory].(string); exists {
		c.ConfigDir = val
	}

	if val, exists := facts[ConfigClassElement].(string); exists && val != "" {
		c.ClassElement = val
	}

	if val, exists := facts[ConfigIgnoreFile].(string); exists {
		c.IgnoreFile = val
	}

	if val, exists := facts[ConfigSuggestMaxDistance].(int); exists {
		c.SuggestMaxDistance = val
	}

	if c.ConfigDir == "" {
		return ErrDirectoryNotConfigured
	}

	info, err := os.Stat(c.ConfigDir)
	if err != nil {
		return fmt.Errorf("config directory %s: %w", c.ConfigDir, err)
	}

	if !info.IsDir() {
		return fmt.Errorf("%w: %s", ErrNotADirectory, c.ConfigDir)
	}

	return nil
}

// BeforeAnalysis runs the whole pass: discovery, per-file extraction,
// validation, resolution and reporting. Content problems never abort the
// pass; they surface as diagnostics or warnings and the scan continues.
func (c *Checker) BeforeAnalysis(ctx *analyze.Context) error {
	c.mu.Lock()
	c.stats = Stats{}
	c.mu.Unlock()

	reporter := issues.NewReporter(ctx.Issues, c.ConfigDir)

	opts := []discovery.Option{discovery.WithWarnFunc(discovery.WarnFunc(ctx.Warnf))}

	if c.IgnoreFile != "" {
		matcher, err := ignore.CompileIgnoreFile(c.IgnoreFile)
		if err != nil {
			ctx.Warnf("ignoring exclude file %s: %v", c.IgnoreFile, err)
		} else {
			opts = append(opts, discovery.WithIgnore(matcher))
		}
	}

	scanner := discovery.NewScanner(c.ConfigDir, opts...)

	for _, file := range scanner.Discover() {
		c.checkFile(ctx, reporter, file)
	}

	return nil
}

// Stats returns the counters of the last completed pass.
func (c *Checker) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.stats
}

func (c *Checker) checkFile(ctx *analyze.Context, reporter *issues.Reporter, path string) {
	content, err := os.ReadFile(path)
	if err != nil {
		ctx.Warnf("skipping %s: %v", path, err)

		return
	}

	c.mu.Lock()
	c.stats.FilesScanned++
	c.stats.BytesRead += int64(len(content))
	c.mu.Unlock()

	doc, err := markup.Parse(content)
	if err != nil {
		reporter.Report(issues.KindUnparsableFile, path, parseErrorLine(err),
			"Could not parse XML: %s", err.Error())

		return
	}

	for _, node := range doc.FindAll(c.ClassElement) {
		c.checkNode(ctx, reporter, path, node)
	}
}

func (c *Checker) checkNode(ctx *analyze.Context, reporter *issues.Reporter, path string, node *markup.Element) {
	c.mu.Lock()
	c.stats.NodesChecked++
	c.mu.Unlock()

	// A class-reference node must be a pure text node. Children make it
	// invalid regardless of any text content.
	if node.ChildCount() > 0 {
		reporter.Report(issues.KindInvalidClassNode, path, node.Line,
			"Invalid class node %s with %d child elements", node.Raw(), node.ChildCount())

		return
	}

	id, err := symbols.ParseName(node.Text())
	if err != nil {
		reporter.Report(issues.KindInvalidClassNode, path, node.Line,
			"Invalid class name %q: %s", node.Text(), err.Error())

		return
	}

	if ctx.Symbols.Exists(id) {
		ctx.Symbols.RecordReference(id, reporter.Relative(path))

		return
	}

	if suggestion, ok := c.suggest(id, ctx.Symbols); ok {
		reporter.Report(issues.KindUndeclaredClassReference, path, node.Line,
			"Referenced class %s does not exist, did you mean %s?", id.FQN(), suggestion)

		return
	}

	reporter.Report(issues.KindUndeclaredClassReference, path, node.Line,
		"Referenced class %s does not exist", id.FQN())
}

// parseErrorLine extracts the line from an XML syntax error, defaulting to 1.
func parseErrorLine(err error) int {
	var syntaxErr *xml.SyntaxError
	if errors.As(err, &syntaxErr) && syntaxErr.Line > 0 {
		return syntaxErr.Line
	}

	return 1
}
