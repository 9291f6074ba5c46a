// Package api handles incoming HTTP requests and response formatting. It acts
// as the adapter between HTTP clients and the proxy service, translating
// request bodies and headers into a service call and service errors into
// status codes and JSON error bodies.
package api
