// Package apiclient is the HTTP transport shared by the ScholarHub API
// services.
//
// # Overview
//
// Client wraps an *http.Client together with the endpoint registry, a
// logger and a metrics recorder. Every call to Do is exactly one attempt:
// there is no retry and no backoff. Each attempt is tagged with a
// User-Agent and a fresh X-Request-ID and is counted once in metrics.
//
// # Error Handling
//
// Failed API calls surface as *Error, whose Error method returns the
// user-facing message. Conditions are matched with errors.Is against
// ErrUnavailable (transport failure), ErrUnauthorized (401/403),
// ErrNotFound (404) and ErrSessionExpired.
package apiclient
