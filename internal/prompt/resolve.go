package prompt

import (
	"encoding/json"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/phrazzld/gemini-proxy/internal/domain"
	"github.com/tidwall/gjson"
)

const (
	// MaxEchoedPayload bounds how much of a rejected payload is echoed back.
	MaxEchoedPayload = 200

	// MaxEchoedRawBody bounds how much of an unparsable body is echoed back.
	MaxEchoedRawBody = 100

	supportedFormats = `{"text": "message"} or Gemini API format {"contents": [{"parts": [{"text": "message"}]}]}`
)

// Parse checks that body is a single valid JSON value. The returned error
// wraps domain.ErrMalformedJSON and quotes the parser error together with the
// start of the raw body.
func Parse(body []byte) error {
	var probe json.RawMessage
	if err := json.Unmarshal(body, &probe); err != nil {
		return domain.NewRequestError(
			domain.ErrMalformedJSON,
			fmt.Sprintf("Invalid JSON format: %v. Received data: %s",
				err, Truncate(strings.ToValidUTF8(string(body), ""), MaxEchoedRawBody)),
			err,
		)
	}
	return nil
}

// Resolve extracts the prompt text and the upstream model from a client body.
//
// data must already be valid JSON (see Parse). path is the request path used
// for the /models/<id>: override and may be empty. defaultModel applies when
// neither the body nor the path names a model.
func Resolve(data []byte, path, defaultModel string) (*domain.ResolvedRequest, error) {
	root := gjson.ParseBytes(data)

	var (
		text      string
		bodyModel string
		payload   json.RawMessage
	)

	if root.IsObject() {
		if field := root.Get("text"); field.Exists() {
			text = strings.TrimSpace(stringValue(field))
			bodyModel = stringValue(root.Get("model"))
		} else if contents := root.Get("contents"); contents.Exists() {
			text = strings.TrimSpace(firstPartText(contents))
			payload = append(json.RawMessage(nil), data...)
		}
	}

	if text == "" {
		return nil, missingTextError(root)
	}

	return &domain.ResolvedRequest{
		PromptText:      text,
		ModelID:         ResolveModel(bodyModel, path, defaultModel),
		UpstreamPayload: payload,
	}, nil
}

// firstPartText returns contents[0].parts[0].text, or "" when any level is
// missing, empty or of the wrong type.
func firstPartText(contents gjson.Result) string {
	if !contents.IsArray() {
		return ""
	}
	first := contents.Get("0")
	if !first.IsObject() {
		return ""
	}
	parts := first.Get("parts")
	if !parts.IsArray() {
		return ""
	}
	part := parts.Get("0")
	if !part.IsObject() {
		return ""
	}
	return stringValue(part.Get("text"))
}

// stringValue only accepts JSON strings; gjson would otherwise stringify
// numbers and raw objects.
func stringValue(r gjson.Result) string {
	if r.Type != gjson.String {
		return ""
	}
	return r.Str
}

func missingTextError(root gjson.Result) error {
	received := root.Get("@ugly").Raw
	if received == "" {
		received = root.Raw
	}
	return domain.NewRequestError(
		domain.ErrMissingText,
		fmt.Sprintf("Missing required field: text. Supported formats: %s. Received: %s",
			supportedFormats, Truncate(received, MaxEchoedPayload)),
		nil,
	)
}

const ellipsis = "..."

// Truncate shortens s to at most n characters. When it cuts, the last three
// of those characters are "...".
func Truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	runes := []rune(s)
	if n <= len(ellipsis) {
		return string(runes[:max(n, 0)])
	}
	return string(runes[:n-len(ellipsis)]) + ellipsis
}
