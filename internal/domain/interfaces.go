package domain

import "context"

// Document is a single source file loaded into the system. It exists only
// between loading and chunking; the index stores chunks, not documents.
type Document struct {
	ID   string
	Path string
	Text string
}

// Chunk is a bounded text window derived from a document, the unit of
// retrieval. Consecutive chunks of a document overlap by a fixed number
// of characters.
type Chunk struct {
	DocumentID string
	ChunkID    string
	Index      int
	Text       string
}

// SearchResult is a matching chunk with its cosine similarity score.
type SearchResult struct {
	Chunk Chunk
	Score float64
}

// IngestStats summarizes one ingestion run.
type IngestStats struct {
	Documents int
	Chunks    int
}

// Prompt is a fully assembled request to the generation model.
type Prompt struct {
	System string
	User   string
}

// Chunker splits documents into chunks suitable for retrieval indexing.
type Chunker interface {
	Chunk(document Document) ([]Chunk, error)
}

// Embedder converts free text into a fixed-dimension vector using an
// external embedding model. The same embedder must serve both ingestion
// and queries; mixing models or dimensions silently degrades retrieval.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float64, error)
	Dimension() int
}

// VectorStore persists vectors and supports top-k cosine similarity search.
type VectorStore interface {
	Init(ctx context.Context, dimension int) error
	Upsert(ctx context.Context, chunks []Chunk, vectors [][]float64) error
	Search(ctx context.Context, vector []float64, topK int) ([]SearchResult, error)
	Clear(ctx context.Context) error
}

// Generator sends an assembled prompt to a hosted chat model and returns
// the completion text verbatim.
type Generator interface {
	Generate(ctx context.Context, prompt Prompt) (string, error)
}

// Loader reads source documents from a directory.
type Loader interface {
	Load(dir string) ([]Document, error)
}
