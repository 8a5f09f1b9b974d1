package retrieval

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"internship-chatbot-be/internal/constant"
	"internship-chatbot-be/internal/pkg/logger"
	"internship-chatbot-be/pkg/embedding"
	"internship-chatbot-be/pkg/rag/query"
	"internship-chatbot-be/pkg/vectorstore"
)

// RetrievedDocument is one similarity-search hit with the document text
// pulled out of the payload; everything else in the payload is metadata.
type RetrievedDocument struct {
	Content         string         `json:"content"`
	Metadata        map[string]any `json:"metadata"`
	SimilarityScore float64        `json:"similarity_score"`
}

// Options tune a single Retrieve call. Zero TopK means "use the configured
// default"; nil Filter means no metadata filtering.
type Options struct {
	TopK   int
	Filter map[string]string
}

// Config carries the retrieval policy knobs.
type Config struct {
	TopK                int
	SimilarityThreshold float64
	// LLMSource labels self-ingested Q&A points with the model that
	// produced the answer.
	LLMSource string
}

// Retriever composes query processing, embedding, and vector search into
// "text query in, ranked documents out". Any downstream failure degrades to
// an empty result; callers never see an error from Retrieve.
type Retriever struct {
	processor *query.Processor
	embedder  embedding.EmbeddingProvider
	store     vectorstore.VectorStore
	cfg       Config
	logger    logger.ILogger
}

func NewRetriever(
	embedder embedding.EmbeddingProvider,
	store vectorstore.VectorStore,
	cfg Config,
	log logger.ILogger,
) *Retriever {
	if cfg.TopK <= 0 {
		cfg.TopK = 5
	}
	return &Retriever{
		processor: query.NewProcessor(),
		embedder:  embedder,
		store:     store,
		cfg:       cfg,
		logger:    log,
	}
}

// Retrieve returns the top-k documents for a query, ranked by similarity
// descending. The keyword form of the query is preferred as search text;
// the normalized form is the fallback when every token was a stop word.
func (r *Retriever) Retrieve(ctx context.Context, rawQuery string, opts *Options) []RetrievedDocument {
	if strings.TrimSpace(rawQuery) == "" {
		return []RetrievedDocument{}
	}

	topK := r.cfg.TopK
	var filter map[string]string
	if opts != nil {
		if opts.TopK > 0 {
			topK = opts.TopK
		}
		filter = opts.Filter
	}

	processed := r.processor.Process(rawQuery)
	searchText := processed.Keyword
	if searchText == "" {
		searchText = processed.Normalized
	}
	if searchText == "" {
		return []RetrievedDocument{}
	}

	embeddingRes, err := r.embedder.Generate(ctx, searchText, embedding.TaskRetrievalQuery)
	if err != nil {
		r.logger.Warn("retrieval", "embedding failed, degrading to empty result", map[string]interface{}{
			"reason": "embed_error",
			"error":  err.Error(),
		})
		return []RetrievedDocument{}
	}

	results, err := r.store.Search(ctx, vectorstore.SearchParams{
		Vector:         embeddingRes.Embedding.Values,
		TopK:           topK,
		Filter:         filter,
		ScoreThreshold: r.cfg.SimilarityThreshold,
	})
	if err != nil {
		r.logger.Warn("retrieval", "vector search failed, degrading to empty result", map[string]interface{}{
			"reason": "search_error",
			"error":  err.Error(),
		})
		return []RetrievedDocument{}
	}

	docs := make([]RetrievedDocument, 0, len(results))
	for _, res := range results {
		content := ""
		metadata := make(map[string]any, len(res.Payload))
		for k, v := range res.Payload {
			if k == "content" {
				content, _ = v.(string)
				continue
			}
			metadata[k] = v
		}
		docs = append(docs, RetrievedDocument{
			Content:         content,
			Metadata:        metadata,
			SimilarityScore: res.Score,
		})
	}

	if len(docs) == 0 {
		// Distinct from the failure paths above: the store answered but
		// nothing cleared the similarity threshold.
		r.logger.Info("retrieval", "no relevant documents", map[string]interface{}{
			"reason": "no_match",
			"top_k":  topK,
		})
	} else {
		r.logger.Debug("retrieval", "documents retrieved", map[string]interface{}{
			"count": len(docs),
		})
	}

	return docs
}

// FormatContext renders retrieved documents as labeled blocks for the LLM
// prompt. Empty input yields an empty string.
func (r *Retriever) FormatContext(docs []RetrievedDocument) string {
	if len(docs) == 0 {
		return ""
	}

	metaString := func(doc RetrievedDocument, key string) string {
		if v, ok := doc.Metadata[key].(string); ok && v != "" {
			return v
		}
		return "Unknown"
	}

	parts := make([]string, 0, len(docs))
	for _, doc := range docs {
		parts = append(parts, fmt.Sprintf(
			"[Company]: %s\n[Document Type]: %s\n[Source]: %s\n\nContent:\n%s\n",
			metaString(doc, "company"),
			metaString(doc, "document_type"),
			metaString(doc, "source"),
			doc.Content,
		))
	}

	return strings.Join(parts, "\n---\n")
}

// IngestQAPair writes a generated question/answer pair back into the
// collection so future queries can retrieve it. Never raises: any failure,
// including blank inputs, returns false.
func (r *Retriever) IngestQAPair(ctx context.Context, question, answer string) bool {
	if strings.TrimSpace(question) == "" || strings.TrimSpace(answer) == "" {
		return false
	}

	embeddingRes, err := r.embedder.Generate(ctx, question, embedding.TaskRetrievalDocument)
	if err != nil {
		r.logger.Warn("retrieval", "qa ingest embedding failed", map[string]interface{}{
			"error": err.Error(),
		})
		return false
	}

	content := fmt.Sprintf("Question: %s\n\nAnswer: %s", question, answer)
	point := vectorstore.Point{
		ID:     uuid.New().String(),
		Vector: embeddingRes.Embedding.Values,
		Payload: map[string]any{
			"content":       content,
			"document_type": constant.IngestDocumentType,
			"company":       constant.IngestCompany,
			"source":        r.cfg.LLMSource,
			"question":      question,
			"answer":        answer,
		},
	}

	if err := r.store.Upsert(ctx, []vectorstore.Point{point}); err != nil {
		r.logger.Warn("retrieval", "qa ingest upsert failed", map[string]interface{}{
			"error": err.Error(),
		})
		return false
	}

	r.logger.Debug("retrieval", "qa pair ingested", map[string]interface{}{
		"point_id": point.ID,
	})
	return true
}
