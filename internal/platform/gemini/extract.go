package gemini

import (
	"errors"
	"fmt"

	"github.com/phrazzld/gemini-proxy/internal/generation"
	"github.com/tidwall/gjson"
)

var errInvalidResponseJSON = errors.New("upstream response is not valid JSON")

// ExtractText returns candidates[0].content.parts[0].text from a
// generateContent response body.
func ExtractText(body []byte) (string, error) {
	if !gjson.ValidBytes(body) {
		return "", generation.NewRequestFailed(fmt.Errorf("%w: %s", errInvalidResponseJSON, truncate(string(body), maxErrorBodyChars)))
	}

	candidates := gjson.GetBytes(body, "candidates")
	if !candidates.IsArray() || len(candidates.Array()) == 0 {
		return "", generation.NewEmptyResult(generation.ErrNoCandidates)
	}

	// An empty string is a valid answer; only a missing or non-string text is not.
	text := candidates.Get("0.content.parts.0.text")
	if text.Type != gjson.String {
		return "", generation.NewEmptyResult(generation.ErrNoContent)
	}
	return text.Str, nil
}
