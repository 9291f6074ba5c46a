package domain

import (
	"encoding/base64"
	"encoding/json"
)

// ResolvedRequest is what a client body resolves to before it is sent upstream.
//
// PromptText is always trimmed and non-empty. When UpstreamPayload is set the
// client already sent a Gemini-native body, which is forwarded byte-for-byte;
// PromptText is then only used to reject empty prompts.
type ResolvedRequest struct {
	PromptText      string
	ModelID         string
	UpstreamPayload json.RawMessage
}

// IsPassThrough reports whether the client body is forwarded verbatim.
func (r *ResolvedRequest) IsPassThrough() bool {
	return len(r.UpstreamPayload) > 0
}

// GenerateResult is the success body returned to clients. Content holds the
// base64 encoding of the generated text and OriginalLength its UTF-8 byte length.
type GenerateResult struct {
	Success        bool   `json:"success"`
	Content        string `json:"content"`
	OriginalLength int    `json:"original_length"`
}

// NewGenerateResult encodes generated text for the client.
func NewGenerateResult(text string) GenerateResult {
	return GenerateResult{
		Success:        true,
		Content:        base64.StdEncoding.EncodeToString([]byte(text)),
		OriginalLength: len(text),
	}
}
