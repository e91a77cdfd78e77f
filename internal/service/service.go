// Package service contains the business logic.
//
// It sits between the handler and repository layers. Handlers hand it
// sanitized, validated data; it applies business rules and calls
// repository methods to interact with the data.
package service
