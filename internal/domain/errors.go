package domain

import "errors"

var (
	// ErrVehicleNotFound signals a catalog miss.
	ErrVehicleNotFound = errors.New("vehicle not found")
	// ErrInvalidFinanceParams signals financing input outside the documented domain.
	ErrInvalidFinanceParams = errors.New("invalid financing parameters")
	// ErrEmptyCatalog signals an index constructed without vehicles.
	ErrEmptyCatalog = errors.New("catalog is empty")
	// ErrSessionNotFound signals a missing chat session.
	ErrSessionNotFound = errors.New("session not found")
	// ErrCompletionProviderError signals a completion provider failure.
	ErrCompletionProviderError = errors.New("completion provider error")
	// ErrRateLimited signals a rate limit hit.
	ErrRateLimited = errors.New("rate limited")
)
