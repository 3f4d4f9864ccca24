package domain

import (
	"encoding/json"
	"regexp"
	"strings"
)

// FallbackQuote is returned by NormalizeSingle when the model response
// yields no usable quote at all.
const FallbackQuote = "Stay positive!"

// ParseSource indicates which parsing path produced a normalized result.
// Exposing the path keeps the parse-or-fallback behavior observable instead
// of silently swallowing parse failures.
type ParseSource string

const (
	// SourceStructured means the response parsed as a JSON array of strings.
	SourceStructured ParseSource = "structured"

	// SourceLineSplit means structured parsing failed and the response was
	// split on newline boundaries instead.
	SourceLineSplit ParseSource = "linesplit"
)

// Normalized is the outcome of normalizing a raw model response.
type Normalized struct {
	// Quotes is the ordered sequence of non-empty, trimmed quote strings.
	// May be empty; never nil.
	Quotes []string

	// Source records which parsing path produced the result.
	Source ParseSource
}

// fencePattern matches markdown code-fence delimiters with an optional
// language tag, e.g. "```json" or "```".
var fencePattern = regexp.MustCompile("```[a-zA-Z0-9]*")

// Normalize converts a raw generation response into an ordered sequence of
// quote strings. It never fails: if the cleaned text is not a JSON array of
// strings, it falls back to splitting on newlines and dropping blank lines.
// The worst case is an empty sequence.
func Normalize(raw string) Normalized {
	cleaned := strings.TrimSpace(fencePattern.ReplaceAllString(raw, ""))

	// A JSON array of strings is accepted as-is, even when empty.
	// Scalars, objects, and arrays with non-string elements fall through
	// to line splitting.
	var quotes []string
	if err := json.Unmarshal([]byte(cleaned), &quotes); err == nil && quotes != nil {
		return Normalized{Quotes: trimNonEmpty(quotes), Source: SourceStructured}
	}

	return Normalized{Quotes: trimNonEmpty(strings.Split(cleaned, "\n")), Source: SourceLineSplit}
}

// NormalizeSingle normalizes a raw response down to exactly one quote.
// An empty result yields FallbackQuote, never an error.
func NormalizeSingle(raw string) string {
	result := Normalize(raw)
	if len(result.Quotes) == 0 {
		return FallbackQuote
	}

	return result.Quotes[0]
}

// trimNonEmpty trims each entry and drops entries that are empty after
// trimming, preserving order.
func trimNonEmpty(entries []string) []string {
	quotes := make([]string, 0, len(entries))

	for _, entry := range entries {
		trimmed := strings.TrimSpace(entry)
		if trimmed == "" {
			continue
		}

		quotes = append(quotes, trimmed)
	}

	return quotes
}
