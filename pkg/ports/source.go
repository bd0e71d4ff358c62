package ports

import "context"

// Source defines how configuration and schema documents are retrieved.
// Text acquisition lives here so the parsing core stays free of I/O.
type Source interface {
	// Read returns the raw text of the named document.
	// Returns domain.ErrDocumentNotFound if the document does not exist.
	Read(ctx context.Context, name string) (string, error)

	// List returns the names of all available documents in sorted order.
	List(ctx context.Context) ([]string, error)
}

// DocumentStore is a Source that can also receive documents.
// It stores raw text as-is; nothing is parsed or re-encoded on the way in.
type DocumentStore interface {
	Source

	// Put stores content under name, replacing any previous document.
	Put(ctx context.Context, name, content string) error

	// Delete removes the named document. Deleting a missing document is not an error.
	Delete(ctx context.Context, name string) error
}
