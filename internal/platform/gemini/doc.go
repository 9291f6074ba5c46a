// Package gemini implements generation.Generator against Google's Gemini
// generateContent endpoint.
//
// Two backends are provided:
//
//   - Client speaks the REST API directly. Gemini-native payloads are
//     forwarded byte-for-byte and plain prompts are wrapped in a single user
//     turn. Responses are probed with gjson rather than decoded into structs,
//     so fields this proxy does not know about never cause a failure.
//
//   - SDKGenerator goes through google.golang.org/genai. Gemini-native
//     payloads are decoded into genai types first, which drops any field the
//     SDK does not model.
//
// Both share one process-wide *http.Client built by NewHTTPClient.
package gemini
