package pgstore

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"internship-chatbot-be/pkg/vectorstore"
)

// DocumentEmbedding is one vector-indexed document chunk. Content mirrors
// the "content" payload field of the Qdrant backend; every other payload
// field lives in the Metadata JSON column.
type DocumentEmbedding struct {
	Id             uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Content        string          `gorm:"type:text"`
	Metadata       datatypes.JSON  `gorm:"type:jsonb"`
	EmbeddingValue pgvector.Vector `gorm:"type:vector(768)"`
	CreatedAt      time.Time       `gorm:"autoCreateTime"`
	UpdatedAt      time.Time       `gorm:"autoUpdateTime"`
}

func (DocumentEmbedding) TableName() string {
	return "document_embeddings"
}

// Store implements vectorstore.VectorStore on Postgres with the pgvector
// extension.
type Store struct {
	db *gorm.DB
}

var _ vectorstore.VectorStore = &Store{}

func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

// Search runs a cosine-similarity top-k query. Filters become exact-match
// conditions on the metadata JSON column.
func (s *Store) Search(ctx context.Context, params vectorstore.SearchParams) ([]vectorstore.SearchResult, error) {
	if len(params.Vector) == 0 {
		return nil, fmt.Errorf("query vector is required")
	}
	if params.TopK <= 0 {
		return []vectorstore.SearchResult{}, nil
	}

	// Cosine distance in pgvector is 1 - cosine_similarity, so
	// 1 - (embedding_value <=> query_vector) recovers the similarity.
	type row struct {
		DocumentEmbedding
		Similarity float64
	}
	var rows []row

	queryVector := pgvector.NewVector(params.Vector)

	query := s.db.WithContext(ctx).
		Table("document_embeddings").
		Select("document_embeddings.*, 1 - (embedding_value <=> ?) as similarity", queryVector)

	for key, value := range params.Filter {
		query = query.Where("metadata->>? = ?", key, value)
	}
	if params.ScoreThreshold > 0 {
		query = query.Where("1 - (embedding_value <=> ?) >= ?", queryVector, params.ScoreThreshold)
	}

	err := query.
		Order("similarity DESC").
		Limit(params.TopK).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	results := make([]vectorstore.SearchResult, 0, len(rows))
	for _, r := range rows {
		payload := map[string]any{}
		if len(r.Metadata) > 0 {
			if err := json.Unmarshal(r.Metadata, &payload); err != nil {
				return nil, fmt.Errorf("decode metadata for %s: %w", r.Id, err)
			}
		}
		payload["content"] = r.Content

		results = append(results, vectorstore.SearchResult{
			ID:      r.Id.String(),
			Score:   r.Similarity,
			Payload: payload,
		})
	}
	return results, nil
}

// Upsert stores points as document_embeddings rows, splitting the flat
// payload back into content + metadata columns.
func (s *Store) Upsert(ctx context.Context, points []vectorstore.Point) error {
	if len(points) == 0 {
		return nil
	}

	models := make([]*DocumentEmbedding, 0, len(points))
	for i, p := range points {
		if len(p.Vector) == 0 {
			return fmt.Errorf("point[%d] has no vector", i)
		}

		id, err := uuid.Parse(p.ID)
		if err != nil {
			return fmt.Errorf("point[%d] id %q is not a uuid: %w", i, p.ID, err)
		}

		content, _ := p.Payload["content"].(string)
		metadata := make(map[string]any, len(p.Payload))
		for k, v := range p.Payload {
			if k != "content" {
				metadata[k] = v
			}
		}
		metadataJson, err := json.Marshal(metadata)
		if err != nil {
			return fmt.Errorf("encode metadata for point[%d]: %w", i, err)
		}

		models = append(models, &DocumentEmbedding{
			Id:             id,
			Content:        content,
			Metadata:       datatypes.JSON(metadataJson),
			EmbeddingValue: pgvector.NewVector(p.Vector),
		})
	}

	return s.db.WithContext(ctx).Save(models).Error
}
