package service

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"internship-chatbot-be/internal/constant"
	"internship-chatbot-be/internal/pkg/logger"
	"internship-chatbot-be/pkg/embedding"
	"internship-chatbot-be/pkg/rag/retrieval"
)

type IWarmupService interface {
	// Warm runs once. Later calls are no-ops regardless of the first
	// call's outcome.
	Warm(ctx context.Context)
	IsWarmed() bool
}

type warmupService struct {
	embedder  embedding.EmbeddingProvider
	retriever DocumentRetriever
	logger    logger.ILogger

	once   sync.Once
	warmed atomic.Bool
}

func NewWarmupService(embedder embedding.EmbeddingProvider, retriever DocumentRetriever, log logger.ILogger) IWarmupService {
	return &warmupService{
		embedder:  embedder,
		retriever: retriever,
		logger:    log,
	}
}

// Warm exercises the embedding and vector-search path with a fixed dummy
// query so lazy resources load before the first real request. Failure is
// logged, never fatal; the warmed flag stays false and health checks
// report the cold state.
func (w *warmupService) Warm(ctx context.Context) {
	w.once.Do(func() {
		start := time.Now()
		w.logger.Info("warmup", "pre-warming pipeline", nil)

		if _, err := w.embedder.Generate(ctx, constant.WarmupQuery, embedding.TaskRetrievalQuery); err != nil {
			w.logger.Warn("warmup", "embedding warm-up failed", map[string]interface{}{
				"error": err.Error(),
			})
			return
		}

		// Warms the vector index. Retrieve degrades to empty on failure,
		// which is fine here; the embedding path above is the gate.
		w.retriever.Retrieve(ctx, constant.WarmupQuery, &retrieval.Options{TopK: 1})

		w.warmed.Store(true)
		w.logger.Info("warmup", "pipeline pre-warmed", map[string]interface{}{
			"elapsed": time.Since(start).String(),
		})
	})
}

func (w *warmupService) IsWarmed() bool {
	return w.warmed.Load()
}
