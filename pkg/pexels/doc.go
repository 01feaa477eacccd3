// Package pexels implements the HTTP client for the Pexels photo search API.
//
// The client wraps net/http with the request headers the API expects
// (Authorization carries the API key), maps response statuses onto the
// typed error taxonomy in pkg/errors, and retries transport and 5xx
// failures a small fixed number of times. Rate-limit (429) and auth
// (401/403) responses are never retried; they are surfaced to the caller.
package pexels
