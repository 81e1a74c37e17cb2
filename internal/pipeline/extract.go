package pipeline

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
)

// ErrorKind classifies extraction failures into the closed set the handlers map
// onto HTTP error bodies.
type ErrorKind string

const (
	KindNoArrayFound ErrorKind = "no-array-found"
	KindNotAnArray   ErrorKind = "not-an-array"
	KindDecodeError  ErrorKind = "decode-error"
)

// ExtractError carries the raw generator output (and the bracketed fragment,
// when one was found) so callers can re-prompt or recover manually.
type ExtractError struct {
	Kind     ErrorKind
	Raw      string
	Fragment string
	Err      error
}

func (e *ExtractError) Error() string {
	switch e.Kind {
	case KindNotAnArray:
		return "parsed JSON is not an array"
	case KindDecodeError:
		return fmt.Sprintf("JSON decode error: %v", e.Err)
	}
	return "no pipeline array found in LLM response"
}

func (e *ExtractError) Unwrap() error { return e.Err }

var (
	leadingFence  = regexp.MustCompile("(?i)^```(?:json)?[ \t]*\r?\n?")
	trailingFence = regexp.MustCompile("(?i)\r?\n?[ \t]*```$")
)

// stripFences removes a single leading and/or trailing Markdown code fence
// (bare or json-tagged) from already-trimmed text.
func stripFences(s string) string {
	s = leadingFence.ReplaceAllString(s, "")
	s = trailingFence.ReplaceAllString(s, "")
	return strings.TrimSpace(s)
}

// Extract recovers an aggregation pipeline (a JSON array of stage objects)
// from free-form generator output. Generators reliably wrap structured output
// in prose or code fences, so a clean parse is attempted first and the widest
// bracketed span second. Malformed JSON inside the span is a terminal failure;
// there is no repair and no retry.
func Extract(raw string) ([]interface{}, error) {
	cleaned := stripFences(strings.TrimSpace(raw))

	// Tier 1: the whole cleaned text is the array.
	var direct interface{}
	directErr := json.Unmarshal([]byte(cleaned), &direct)
	if directErr == nil {
		if arr, ok := direct.([]interface{}); ok {
			return arr, nil
		}
		// Valid JSON of the wrong shape: fall through to bracket recovery on
		// the same cleaned text rather than failing outright.
	}

	// Tier 2: slice from the first '[' to the last ']'. Taking the last ']'
	// keeps nested arrays inside stage objects within the captured span.
	start := strings.Index(cleaned, "[")
	end := strings.LastIndex(cleaned, "]")
	if start != -1 && end != -1 && end > start {
		fragment := cleaned[start : end+1]
		var v interface{}
		if err := json.Unmarshal([]byte(fragment), &v); err != nil {
			return nil, &ExtractError{Kind: KindDecodeError, Raw: raw, Fragment: fragment, Err: err}
		}
		arr, ok := v.([]interface{})
		if !ok {
			return nil, &ExtractError{Kind: KindNotAnArray, Raw: raw, Fragment: fragment}
		}
		return arr, nil
	}

	// No bracketed span. If the text itself was valid non-array JSON, report
	// the shape mismatch rather than a missing array.
	if directErr == nil {
		return nil, &ExtractError{Kind: KindNotAnArray, Raw: raw, Fragment: cleaned}
	}
	return nil, &ExtractError{Kind: KindNoArrayFound, Raw: raw}
}
