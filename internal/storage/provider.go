// Package storage defines the content-directory file-system abstraction.
package storage

import "github.com/mixfield/seograph/internal/models"

// Provider is the interface for content document file operations.
type Provider interface {
	// List returns metadata for every .json document under dir (relative to content root).
	List(dir string) ([]models.DocumentInfo, error)
	// Read returns the raw bytes of the document at path (relative to content root).
	Read(path string) ([]byte, error)
	// Write atomically writes content to path (relative to content root).
	Write(path string, content []byte) error
	// Delete removes the document at path (relative to content root).
	Delete(path string) error
}
