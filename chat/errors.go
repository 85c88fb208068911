package chat

import "errors"

var (
	// ErrSearcherRequired is returned when a searcher is not provided.
	ErrSearcherRequired = errors.New("searcher required")

	// ErrChatterRequired is returned when a chat service is not provided.
	ErrChatterRequired = errors.New("chat service required")
)
