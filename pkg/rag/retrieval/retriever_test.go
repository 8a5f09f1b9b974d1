package retrieval

import (
	"context"
	"errors"
	"strings"
	"testing"

	"internship-chatbot-be/internal/pkg/logger"
	"internship-chatbot-be/pkg/embedding"
	"internship-chatbot-be/pkg/vectorstore"
)

type fakeEmbedder struct {
	lastText string
	lastTask string
	err      error
}

func (f *fakeEmbedder) Generate(_ context.Context, text, taskType string) (*embedding.EmbeddingResponse, error) {
	f.lastText = text
	f.lastTask = taskType
	if f.err != nil {
		return nil, f.err
	}
	return &embedding.EmbeddingResponse{
		Embedding: embedding.EmbeddingResponseEmbedding{Values: []float32{0.1, 0.2, 0.3}},
	}, nil
}

type fakeStore struct {
	lastSearch  vectorstore.SearchParams
	lastUpsert  []vectorstore.Point
	results     []vectorstore.SearchResult
	searchErr   error
	upsertErr   error
	searchCalls int
}

func (f *fakeStore) Search(_ context.Context, params vectorstore.SearchParams) ([]vectorstore.SearchResult, error) {
	f.searchCalls++
	f.lastSearch = params
	if f.searchErr != nil {
		return nil, f.searchErr
	}
	return f.results, nil
}

func (f *fakeStore) Upsert(_ context.Context, points []vectorstore.Point) error {
	f.lastUpsert = points
	return f.upsertErr
}

func newTestRetriever(e *fakeEmbedder, s *fakeStore) *Retriever {
	return NewRetriever(e, s, Config{
		TopK:                5,
		SimilarityThreshold: 0.5,
		LLMSource:           "gemini-2.5-flash",
	}, logger.NewNopLogger())
}

func TestRetrieveMapsHits(t *testing.T) {
	store := &fakeStore{
		results: []vectorstore.SearchResult{
			{
				ID:    "a",
				Score: 0.91,
				Payload: map[string]any{
					"content": "Google offers STEP internships.",
					"company": "Google",
					"source":  "faq.md",
				},
			},
			{
				ID:      "b",
				Score:   0.72,
				Payload: map[string]any{"content": "Applications open in fall."},
			},
		},
	}
	embedder := &fakeEmbedder{}
	r := newTestRetriever(embedder, store)

	docs := r.Retrieve(context.Background(), "Tell me about Google's internship!", nil)
	if len(docs) != 2 {
		t.Fatalf("got %d docs, want 2", len(docs))
	}

	if docs[0].Content != "Google offers STEP internships." {
		t.Errorf("content = %q", docs[0].Content)
	}
	if _, ok := docs[0].Metadata["content"]; ok {
		t.Error("content should be removed from metadata")
	}
	if docs[0].Metadata["company"] != "Google" {
		t.Errorf("metadata company = %v", docs[0].Metadata["company"])
	}
	if docs[0].SimilarityScore != 0.91 {
		t.Errorf("score = %v", docs[0].SimilarityScore)
	}

	if embedder.lastTask != embedding.TaskRetrievalQuery {
		t.Errorf("task type = %q", embedder.lastTask)
	}
	if embedder.lastText != "google s internship" {
		t.Errorf("search text = %q, want keyword form", embedder.lastText)
	}
	if store.lastSearch.TopK != 5 {
		t.Errorf("top k = %d", store.lastSearch.TopK)
	}
	if store.lastSearch.ScoreThreshold != 0.5 {
		t.Errorf("threshold = %v", store.lastSearch.ScoreThreshold)
	}
}

func TestRetrieveOptionsOverride(t *testing.T) {
	store := &fakeStore{}
	r := newTestRetriever(&fakeEmbedder{}, store)

	r.Retrieve(context.Background(), "internship interview tips", &Options{
		TopK:   2,
		Filter: map[string]string{"company": "Google"},
	})

	if store.lastSearch.TopK != 2 {
		t.Errorf("top k = %d, want 2", store.lastSearch.TopK)
	}
	if store.lastSearch.Filter["company"] != "Google" {
		t.Errorf("filter = %v", store.lastSearch.Filter)
	}
}

func TestRetrieveDegradesToEmpty(t *testing.T) {
	tests := []struct {
		name     string
		embedder *fakeEmbedder
		store    *fakeStore
		query    string
	}{
		{"blank query", &fakeEmbedder{}, &fakeStore{}, "   "},
		{"embedding error", &fakeEmbedder{err: errors.New("api down")}, &fakeStore{}, "internship help"},
		{"search error", &fakeEmbedder{}, &fakeStore{searchErr: errors.New("timeout")}, "internship help"},
		{"no matches", &fakeEmbedder{}, &fakeStore{results: nil}, "internship help"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newTestRetriever(tt.embedder, tt.store)
			docs := r.Retrieve(context.Background(), tt.query, nil)
			if docs == nil {
				t.Fatal("expected empty slice, got nil")
			}
			if len(docs) != 0 {
				t.Errorf("got %d docs, want 0", len(docs))
			}
		})
	}
}

func TestFormatContext(t *testing.T) {
	r := newTestRetriever(&fakeEmbedder{}, &fakeStore{})

	if got := r.FormatContext(nil); got != "" {
		t.Errorf("empty docs = %q, want empty string", got)
	}

	docs := []RetrievedDocument{
		{
			Content: "STEP is for first and second year students.",
			Metadata: map[string]any{
				"company":       "Google",
				"document_type": "FAQ",
				"source":        "faq.md",
			},
		},
		{
			Content:  "Prepare two coding questions.",
			Metadata: map[string]any{},
		},
	}

	got := r.FormatContext(docs)
	if !strings.Contains(got, "[Company]: Google") {
		t.Errorf("missing company label in %q", got)
	}
	if !strings.Contains(got, "[Document Type]: FAQ") {
		t.Errorf("missing document type label in %q", got)
	}
	if !strings.Contains(got, "[Source]: faq.md") {
		t.Errorf("missing source label in %q", got)
	}
	if !strings.Contains(got, "Content:\nSTEP is for first and second year students.") {
		t.Errorf("missing content block in %q", got)
	}
	if !strings.Contains(got, "[Company]: Unknown") {
		t.Errorf("missing metadata should render as Unknown: %q", got)
	}
	if !strings.Contains(got, "\n---\n") {
		t.Errorf("blocks should be separated: %q", got)
	}
}

func TestIngestQAPair(t *testing.T) {
	store := &fakeStore{}
	embedder := &fakeEmbedder{}
	r := newTestRetriever(embedder, store)

	ok := r.IngestQAPair(context.Background(), "What is STEP?", "An internship for early students.")
	if !ok {
		t.Fatal("ingest should succeed")
	}
	if embedder.lastTask != embedding.TaskRetrievalDocument {
		t.Errorf("task type = %q", embedder.lastTask)
	}
	if len(store.lastUpsert) != 1 {
		t.Fatalf("got %d points", len(store.lastUpsert))
	}

	point := store.lastUpsert[0]
	if point.ID == "" {
		t.Error("point ID should be set")
	}
	content, _ := point.Payload["content"].(string)
	if !strings.HasPrefix(content, "Question: What is STEP?") {
		t.Errorf("content = %q", content)
	}
	if !strings.Contains(content, "Answer: An internship for early students.") {
		t.Errorf("content = %q", content)
	}
	if point.Payload["document_type"] != "Generated Q&A" {
		t.Errorf("document_type = %v", point.Payload["document_type"])
	}
	if point.Payload["company"] != "General Knowledge" {
		t.Errorf("company = %v", point.Payload["company"])
	}
	if point.Payload["source"] != "gemini-2.5-flash" {
		t.Errorf("source = %v", point.Payload["source"])
	}
}

func TestIngestQAPairFailures(t *testing.T) {
	tests := []struct {
		name     string
		embedder *fakeEmbedder
		store    *fakeStore
		question string
		answer   string
	}{
		{"blank question", &fakeEmbedder{}, &fakeStore{}, " ", "answer"},
		{"blank answer", &fakeEmbedder{}, &fakeStore{}, "question", ""},
		{"embed error", &fakeEmbedder{err: errors.New("down")}, &fakeStore{}, "q", "a"},
		{"upsert error", &fakeEmbedder{}, &fakeStore{upsertErr: errors.New("down")}, "q", "a"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newTestRetriever(tt.embedder, tt.store)
			if r.IngestQAPair(context.Background(), tt.question, tt.answer) {
				t.Error("ingest should fail")
			}
		})
	}
}
