// Package ports defines the interfaces that connect the application layer
// to infrastructure adapters.
//
// # Port Interfaces
//
//   - [HTTPClient]: the net/http request abstraction used by the transport
//   - [Transport]: performs one bridged request and classifies failures
//   - [LogRepository]: reads, writes and removes journal entries
//
// The application layer (internal/app) depends only on these interfaces.
// Infrastructure adapters (internal/adapters) implement them.
package ports
