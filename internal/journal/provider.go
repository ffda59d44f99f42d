// Package journal defines the file-system abstraction for the local
// markdown session journal.
package journal

import "github.com/starford/dagaz/internal/models"

// Provider is the interface for journal file operations. All paths are
// relative to the journal root.
type Provider interface {
	// List returns metadata for every .md file under dir.
	List(dir string) ([]models.EntryMetadata, error)
	// Read returns the raw bytes of the file at path.
	Read(path string) ([]byte, error)
	// Write atomically writes content to path.
	Write(path string, content []byte) error
	// Append atomically appends content to path, creating it if absent.
	Append(path string, content []byte) error
	// Delete removes the file at path.
	Delete(path string) error
}
