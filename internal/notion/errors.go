package notion

import (
	"errors"
	"fmt"
)

var (
	// ErrNotConnected is returned when the MCP session cannot be
	// established or is unavailable for a tool-only operation.
	ErrNotConnected = errors.New("notion: not connected")
	// ErrToolResult is returned when the remote tool reports an explicit
	// error result.
	ErrToolResult = errors.New("notion: tool returned error")
)

// AppendError reports a failed append. ChunksCommitted names how many
// chunks had already been written remotely before the failure; those
// blocks are persisted and are not rolled back.
type AppendError struct {
	ChunksCommitted int
	ChunkCount      int
	TotalBlocks     int
	Err             error
}

func (e *AppendError) Error() string {
	return fmt.Sprintf("notion: append failed on chunk %d of %d (%d blocks total, %d chunks already committed): %v",
		e.ChunksCommitted+1, e.ChunkCount, e.TotalBlocks, e.ChunksCommitted, e.Err)
}

func (e *AppendError) Unwrap() error { return e.Err }
