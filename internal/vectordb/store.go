package vectordb

import "context"

// VectorStore defines the interface for storing and searching documents by embeddings.
type VectorStore interface {
	// AddDocuments adds or updates documents in the store.
	AddDocuments(ctx context.Context, docs []Document) error

	// Search performs a semantic search using the query text.
	Search(ctx context.Context, query string, limit int, filter *SearchFilter) ([]SearchResult, error)

	// DeleteBySutra removes all documents of one sutra.
	DeleteBySutra(ctx context.Context, sutraID string) error

	// Persist saves the store's data to the given file.
	Persist(ctx context.Context, path string) error

	// Load restores the store's data from the given file.
	Load(ctx context.Context, path string) error

	// Count returns the total number of documents in the store.
	Count() int
}
