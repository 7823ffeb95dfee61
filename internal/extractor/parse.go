package extractor

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	custom_errors "hackathon-importer/internal/errors"
)

// errNotJSON marks model output that is not JSON at all. It is a negative result, not a failure.
var errNotJSON = errors.New("model output is not valid JSON")

// extraction mirrors the JSON object the model is asked to emit.
type extraction struct {
	IsHackathon  *bool    `json:"is_hackathon"`
	Title        *string  `json:"title"`
	ProjectName  *string  `json:"project_name"`
	Year         flexInt  `json:"year"`
	Description  *string  `json:"description"`
	Location     *string  `json:"location"`
	Participants flexInt  `json:"participants"`
	Prize        *string  `json:"prize"`
	Technologies []string `json:"technologies"`
	Position     *string  `json:"position"`
	LinkURL      *string  `json:"link_url"`
}

// flexInt accepts a JSON number, a numeric string such as "2024" or "150+", or null.
type flexInt struct {
	v *int
}

func (f *flexInt) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || string(b) == "null" {
		return nil
	}

	switch b[0] {
	case '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		if n, ok := leadingInt(s); ok {
			f.v = &n
		}
		return nil
	case '-', '0', '1', '2', '3', '4', '5', '6', '7', '8', '9':
		var x float64
		if err := json.Unmarshal(b, &x); err != nil {
			return err
		}
		n := int(x)
		f.v = &n
		return nil
	default:
		return fmt.Errorf("expected number or string, got %s", b)
	}
}

// leadingInt parses the first run of digits in s, ignoring thousands separators.
func leadingInt(s string) (int, bool) {
	s = strings.TrimSpace(s)
	start := strings.IndexAny(s, "0123456789")
	if start < 0 {
		return 0, false
	}
	var digits strings.Builder
	for _, r := range s[start:] {
		if r == ',' {
			continue
		}
		if r < '0' || r > '9' {
			break
		}
		digits.WriteRune(r)
	}
	n, err := strconv.Atoi(digits.String())
	if err != nil {
		return 0, false
	}
	return n, true
}

// stripFences removes a surrounding ```json / ``` Markdown fence.
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	switch {
	case strings.HasPrefix(strings.ToLower(s), "```json"):
		s = s[len("```json"):]
	case strings.HasPrefix(s, "```"):
		s = s[len("```"):]
	}
	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}

// isEmptyResponse reports whether the model declined to answer.
func isEmptyResponse(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "null", "none":
		return true
	}
	return false
}

// parseExtraction decodes model output. Syntax errors yield errNotJSON; shape
// mismatches yield *custom_errors.ErrSchema.
func parseExtraction(text string) (*extraction, error) {
	var out extraction
	err := json.Unmarshal([]byte(text), &out)
	if err == nil {
		return &out, nil
	}

	var syntaxErr *json.SyntaxError
	if errors.As(err, &syntaxErr) {
		return nil, fmt.Errorf("%w: %v", errNotJSON, err)
	}
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		return nil, &custom_errors.ErrSchema{Field: typeErr.Field, Err: err}
	}
	return nil, &custom_errors.ErrSchema{Err: err}
}

// clean trims an optional string and maps blanks and literal nulls to nil.
func clean(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	switch strings.ToLower(v) {
	case "", "null", "none", "n/a":
		return nil
	}
	return &v
}
