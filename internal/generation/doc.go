// Package generation defines the boundary between the proxy and the upstream
// content generation service. The Generator interface is implemented by the
// Gemini clients in platform/gemini, and the errors declared here are the only
// upstream failures the HTTP layer knows how to map.
package generation
