// Package errs defines the error types the API returns to clients.
//
// Two families live here:
//   - HTTPError: the consistent JSON error shape every endpoint
//     returns, with machine-readable codes and optional field-level
//     errors.
//   - ValidationError: the boundary-layer taxonomy for rejected
//     input (oversized strings, injection signatures, dangerous keys,
//     out-of-range parameters, malformed identifiers).
//
// Boundary errors are local and non-retryable: they describe malformed
// or malicious input, not transient conditions, and none of them is
// fatal to the process.
package errs
