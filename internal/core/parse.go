package core

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"symptom-checker/pkg"
)

// ParseCompletion splits a completion reply into its three labelled
// sections.  Each section runs from the end of its marker to the next
// marker that follows it (or the end of the text), so sections may span
// any number of lines.  A missing marker leaves that section empty; it is
// not an error.  Only input that cannot be scanned at all, such as
// invalid UTF-8, produces a *ParseError.
func ParseCompletion(raw string) (analysis *pkg.Analysis, err error) {
	defer func() {
		if r := recover(); r != nil {
			analysis = nil
			err = &ParseError{Raw: raw, Err: fmt.Errorf("%v", r)}
		}
	}()

	if !utf8.ValidString(raw) {
		return nil, &ParseError{Raw: raw, Err: ErrInvalidEncoding}
	}

	summary := sectionSpan(raw, SummaryMarker, CausesMarker)
	causes := sectionSpan(raw, CausesMarker, AdviceMarker)
	advice := sectionSpan(raw, AdviceMarker, "")

	return &pkg.Analysis{
		Summary: strings.TrimSpace(summary),
		Causes:  splitItems(causes),
		Advice:  splitItems(advice),
	}, nil
}

// sectionSpan returns the text between the first occurrence of marker and
// the first occurrence of next after it.  An empty next, or one that does
// not occur, extends the span to the end of text.
func sectionSpan(text, marker, next string) string {
	start := strings.Index(text, marker)
	if start < 0 {
		return ""
	}
	body := text[start+len(marker):]
	if next != "" {
		if end := strings.Index(body, next); end >= 0 {
			body = body[:end]
		}
	}
	return body
}

// splitItems turns a bulleted span into its items: one per non-blank line,
// with surrounding whitespace and "- " bullet characters removed.
func splitItems(span string) []string {
	items := []string{}
	for _, line := range strings.Split(span, "\n") {
		item := strings.TrimSpace(strings.Trim(strings.TrimSpace(line), "- "))
		if item == "" {
			continue
		}
		items = append(items, item)
	}
	return items
}
