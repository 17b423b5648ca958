// Package api implements the HTTP handlers, request validation and the
// mapping of service errors to HTTP responses.
package api
