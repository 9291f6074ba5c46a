// Package mocks provides shared test doubles for the proxy's interfaces.
//
// MockGenerator stands in for the Gemini backends so that service and API
// tests can run without an upstream:
//
//	gen := mocks.MockGeneratorThatFails(http.StatusForbidden, "denied")
//	svc, _ := service.NewProxyService(keys, gen, "", logger)
//
// Every mock records its calls under a mutex and is safe for parallel tests.
package mocks
