package vectorstore

import "context"

// Point is a single vector-indexed document. Payload is flat: the document
// text lives under the "content" key and every other key is metadata
// (company, document_type, source, ...).
type Point struct {
	ID      string         `json:"id"`
	Vector  []float32      `json:"vector"`
	Payload map[string]any `json:"payload"`
}

// SearchResult is one nearest-neighbor hit. Score is the cosine similarity
// reported by the backend (higher = closer).
type SearchResult struct {
	ID      string         `json:"id"`
	Score   float64        `json:"score"`
	Payload map[string]any `json:"payload"`
}

// SearchParams describe a filtered top-k nearest-neighbor query. Filter is
// a conjunction of exact-match field conditions; ScoreThreshold drops hits
// below the configured similarity floor.
type SearchParams struct {
	Vector         []float32
	TopK           int
	Filter         map[string]string
	ScoreThreshold float64
}

// VectorStore is the nearest-neighbor service behind the retriever. Backends
// are selected by config: "qdrant" (REST) or "pgvector" (Postgres).
type VectorStore interface {
	Search(ctx context.Context, params SearchParams) ([]SearchResult, error)
	Upsert(ctx context.Context, points []Point) error
}
