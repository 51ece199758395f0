// Package markup parses XML content into a light element tree that keeps
// enough source information for located diagnostics: the line of every
// opening tag and the raw serialized form of every element.
package markup

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"
)

// ErrNoRootElement is returned for content that holds text but no element.
var ErrNoRootElement = errors.New("no root element")

// Element is one parsed XML element.
type Element struct {
	// Name is the element's local name, namespace prefix stripped.
	Name string
	// Line is the 1-based line of the element's opening tag.
	Line int
	// Children are the direct child elements, in document order.
	Children []*Element

	text  strings.Builder
	raw   string
	start int64
}

// Text returns the concatenated character data placed directly inside the
// element, exactly as written (entities decoded, not trimmed).
func (e *Element) Text() string {
	return e.text.String()
}

// ChildCount returns the number of direct child elements.
func (e *Element) ChildCount() int {
	return len(e.Children)
}

// Raw returns the element's serialized form as it appears in the source.
func (e *Element) Raw() string {
	return e.raw
}

// Document is the parsed representation of one file's bytes. It is owned by
// the per-file extraction step and never shared across files.
type Document struct {
	root       *Element
	lineStarts []int
}

// Root returns the document element, or nil for empty content.
func (d *Document) Root() *Element {
	return d.root
}

// FindAll returns every element with the given local name, anywhere in the
// tree, in document order.
func (d *Document) FindAll(name string) []*Element {
	if d.root == nil {
		return nil
	}

	var found []*Element

	var walk func(e *Element)
	walk = func(e *Element) {
		if e.Name == name {
			found = append(found, e)
		}

		for _, child := range e.Children {
			walk(child)
		}
	}

	walk(d.root)

	return found
}

// Parse builds a Document from raw file content. Empty or whitespace-only
// content yields a document with a nil root and no error; content that cannot
// be parsed as XML returns an error.
func Parse(content []byte) (*Document, error) {
	doc := &Document{lineStarts: buildLineStarts(content)}

	decoder := xml.NewDecoder(bytes.NewReader(content))

	var stack []*Element

	sawContent := false

	for {
		start := decoder.InputOffset()

		token, err := decoder.Token()
		if errors.Is(err, io.EOF) {
			break
		}

		if err != nil {
			return nil, fmt.Errorf("parse xml: %w", err)
		}

		switch tok := token.(type) {
		case xml.StartElement:
			sawContent = true
			element := &Element{
				Name:  tok.Name.Local,
				Line:  doc.lineAt(start),
				start: start,
			}

			if len(stack) == 0 {
				if doc.root != nil {
					return nil, fmt.Errorf("parse xml: multiple root elements at line %d", element.Line) //nolint:err113 // dynamic error carries the location.
				}

				doc.root = element
			} else {
				parent := stack[len(stack)-1]
				parent.Children = append(parent.Children, element)
			}

			stack = append(stack, element)
		case xml.EndElement:
			element := stack[len(stack)-1]
			element.raw = string(content[element.start:decoder.InputOffset()])
			stack = stack[:len(stack)-1]
		case xml.CharData:
			if len(stack) > 0 {
				stack[len(stack)-1].text.Write(tok)
			}

			if len(bytes.TrimSpace(tok)) > 0 {
				sawContent = true
			}
		}
	}

	if doc.root == nil && sawContent {
		return nil, ErrNoRootElement
	}

	return doc, nil
}

// lineAt maps a byte offset to a 1-based line number.
func (d *Document) lineAt(offset int64) int {
	return sort.SearchInts(d.lineStarts, int(offset)+1)
}

func buildLineStarts(content []byte) []int {
	starts := []int{0}

	for i, b := range content {
		if b == '\n' {
			starts = append(starts, i+1)
		}
	}

	return starts
}
