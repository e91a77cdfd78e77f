// Package handler is the first entry point for business logic after
// the router.
//
// It parses requests, runs the boundary transforms (pagination
// clamping or strict validation, input sanitization, identifier
// validation) and calls the appropriate service layer. It acts as the
// interface between the HTTP request and the core business logic.
package handler
