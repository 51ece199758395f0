// Package report renders collected diagnostics for the CLI.
package report

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/classref/classref/pkg/issues"
)

// Output formats.
const (
	FormatText  = "text"
	FormatTable = "table"
	FormatJSON  = "json"
)

// ErrUnsupportedFormat is returned for unknown output formats.
var ErrUnsupportedFormat = errors.New("unsupported output format")

// Render writes the issues in the requested format.
func Render(list []issues.Issue, format string, writer io.Writer) error {
	switch format {
	case FormatText:
		return RenderText(list, writer)
	case FormatTable:
		return RenderTable(list, writer)
	case FormatJSON:
		return RenderJSON(list, writer)
	default:
		return fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
	}
}

// RenderText writes one line per issue, colored by kind. Color honors the
// package-global color.NoColor switch the CLI sets from --no-color.
func RenderText(list []issues.Issue, writer io.Writer) error {
	for _, issue := range list {
		paint := colorForKind(issue.Kind)

		_, err := paint.Fprintf(writer, "%s:%d: %s: %s\n", issue.File, issue.Line, issue.Kind, issue.Message())
		if err != nil {
			return fmt.Errorf("render text: %w", err)
		}
	}

	return nil
}

// RenderTable writes the issues as a table.
func RenderTable(list []issues.Issue, writer io.Writer) error {
	tbl := table.NewWriter()
	tbl.SetOutputMirror(writer)
	tbl.SetStyle(table.StyleLight)
	tbl.Style().Options.SeparateRows = false

	tbl.AppendHeader(table.Row{"File", "Line", "Kind", "Message"})

	for _, issue := range list {
		tbl.AppendRow(table.Row{issue.File, issue.Line, string(issue.Kind), issue.Message()})
	}

	tbl.AppendFooter(table.Row{fmt.Sprintf("Total: %d issues", len(list))})
	tbl.Render()

	return nil
}

type jsonIssue struct {
	Kind    string `json:"kind"`
	File    string `json:"file"`
	Line    int    `json:"line"`
	Message string `json:"message"`
}

type jsonReport struct {
	Issues []jsonIssue `json:"issues"`
	Total  int         `json:"total"`
}

// RenderJSON writes the issues as indented JSON.
func RenderJSON(list []issues.Issue, writer io.Writer) error {
	out := jsonReport{Issues: make([]jsonIssue, 0, len(list)), Total: len(list)}

	for _, issue := range list {
		out.Issues = append(out.Issues, jsonIssue{
			Kind:    string(issue.Kind),
			File:    issue.File,
			Line:    issue.Line,
			Message: issue.Message(),
		})
	}

	encoder := json.NewEncoder(writer)
	encoder.SetIndent("", "  ")

	err := encoder.Encode(out)
	if err != nil {
		return fmt.Errorf("encode JSON report: %w", err)
	}

	return nil
}

// Summary formats a one-line scan summary.
func Summary(filesScanned int, bytesRead int64, issueCount int) string {
	return fmt.Sprintf("scanned %d files (%s), %d issues",
		filesScanned, humanize.Bytes(uint64(bytesRead)), issueCount) //nolint:gosec // byte counters never go negative.
}

func colorForKind(kind issues.Kind) *color.Color {
	switch kind {
	case issues.KindUnparsableFile:
		return color.New(color.FgYellow)
	case issues.KindInvalidClassNode, issues.KindUndeclaredClassReference:
		return color.New(color.FgRed)
	default:
		return color.New(color.Reset)
	}
}
