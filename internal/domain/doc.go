// Package domain contains the core types of the proxy: the request a client
// resolves to, the result returned to the client, and the error taxonomy every
// other layer reports through. It has no dependencies on transport or
// infrastructure packages.
package domain
