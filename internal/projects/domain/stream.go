package domain

import "context"

// ProjectStream iterates a list-query result one project at a time.
// Consumers may stop early; Close releases the underlying storage cursor
// and must always be called.
type ProjectStream interface {
	// Next advances the stream. It returns false when the stream is
	// exhausted or failed; check Err to distinguish.
	Next(ctx context.Context) bool
	// Current returns the project decoded by the last successful Next.
	Current() Project
	Err() error
	Close(ctx context.Context) error
}
