// Package middleware holds the HTTP middleware stack: request IDs,
// request-scoped loggers, request logging, CORS, panic recovery, rate
// limiting, New Relic tracing, and the global error handler that
// funnels every error into the client-facing JSON shape.
package middleware
