package finder

import "errors"

var (
	ErrInsufficientCatalog = errors.New("catalog has fewer than 2 eligible items")
	ErrInvalidDecision     = errors.New("decision does not match the pending pair")
	ErrSessionCompleted    = errors.New("session already completed")
	ErrSessionNotFound     = errors.New("session not found")
)
