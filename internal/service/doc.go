// Package service contains the proxy's single use case: turning one client
// body into one upstream generateContent call and shaping the answer.
//
// ProxyService runs the checks in a fixed order. The body must be valid JSON,
// then a key must resolve, then a prompt must be found, and only then is the
// upstream contacted. Each failure is returned as an error the API layer maps
// with errors.Is, so the service never deals in HTTP status codes.
package service
