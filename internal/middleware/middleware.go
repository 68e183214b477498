// Package middleware stores global and route-specific middleware.
//
// These intercept requests to handle cross-cutting concerns such as CORS,
// body size limits, request ids, request logging, panic recovery, and the
// translation of every handler error into the JSON error envelope.
package middleware
