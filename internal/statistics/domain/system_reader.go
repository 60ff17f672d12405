package domain

import "context"

// SystemReader reads the resource figures of the current process.
// This interface abstracts file I/O and system-level operations from the domain layer
type SystemReader interface {
	ReadSystem(ctx context.Context) (SystemFigures, error)
}
