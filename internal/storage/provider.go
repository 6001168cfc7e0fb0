// Package storage defines the vault file-system abstraction.
package storage

// Provider is the interface for vault file operations.
type Provider interface {
	// List returns the relative paths of every .md file under the vault root.
	List() ([]string, error)
	// Read returns the raw bytes of the file at path (relative to vault root).
	Read(path string) ([]byte, error)
	// Write atomically writes content to path (relative to vault root).
	Write(path string, content []byte) error
}
