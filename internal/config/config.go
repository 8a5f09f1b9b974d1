package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	App       AppConfig
	Database  DatabaseConfig
	Keys      APIKeys
	Ai        AIConfig
	Vector    VectorConfig
	Retrieval RetrievalConfig
	Stream    StreamConfig
	Session   SessionConfig
}

type AppConfig struct {
	Host               string
	Port               string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
	RedisURL           string
}

type DatabaseConfig struct {
	Connection string
}

type APIKeys struct {
	GoogleGemini string
	Jina         string
	IngestTopic  string // Q&A ingestion topic
}

type AIConfig struct {
	EmbeddingProvider string // "gemini" or "ollama"
	EmbeddingModel    string
	OllamaBaseURL     string
	OllamaModel       string
	LLMProvider       string // "gemini", "ollama"
	LLMModel          string
	FallbackResponse  string
}

type VectorConfig struct {
	Provider       string // "qdrant" or "pgvector"
	QdrantURL      string
	QdrantAPIKey   string
	CollectionName string
	Dimension      int
}

type RetrievalConfig struct {
	TopK                int
	SimilarityThreshold float64
	ChunkSize           int
	ChunkOverlap        int
}

type StreamConfig struct {
	ChunkSize int
	DelayMs   int
}

type SessionConfig struct {
	Store      string // "memory" or "redis"
	MaxHistory int
}

const defaultFallbackResponse = "Based on generally available information about internships and education programs, I can provide some guidance. However, specific details for this query are not in my current database. Please feel free to ask about general aspects or other companies/programs."

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	cfg := &Config{
		App: AppConfig{
			Host:               getEnv("CHATBOT_SERVICE_HOST", "0.0.0.0"),
			Port:               getEnv("CHATBOT_SERVICE_PORT", "5001"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "logs/chatbot.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
			RedisURL:           getEnv("REDIS_URL", "redis://localhost:6379"),
		},
		Database: DatabaseConfig{
			Connection: getEnv("DB_CONNECTION_STRING", ""),
		},
		Keys: APIKeys{
			GoogleGemini: getEnv("GEMINI_API_KEY", ""),
			Jina:         getEnv("JINA_API_KEY", ""),
			IngestTopic:  getEnv("QA_INGEST_TOPIC_NAME", "INGEST_QA_PAIR"),
		},
		Ai: AIConfig{
			EmbeddingProvider: getEnv("EMBEDDING_PROVIDER", "gemini"),
			EmbeddingModel:    getEnv("EMBEDDING_MODEL", "text-embedding-004"),
			OllamaBaseURL:     getEnv("OLLAMA_BASE_URL", "http://localhost:11434"),
			OllamaModel:       getEnv("OLLAMA_EMBEDDING_MODEL", "nomic-embed-text"),
			LLMProvider:       getEnv("LLM_PROVIDER", "gemini"),
			LLMModel:          getEnv("LLM_MODEL", "gemini-2.5-flash"),
			FallbackResponse:  getEnv("FALLBACK_RESPONSE", defaultFallbackResponse),
		},
		Vector: VectorConfig{
			Provider:       getEnv("VECTOR_STORE", "qdrant"),
			QdrantURL:      getEnv("QDRANT_URL", "http://localhost:6333"),
			QdrantAPIKey:   getEnv("QDRANT_API_KEY", ""),
			CollectionName: getEnv("QDRANT_COLLECTION_NAME", "internship_education_db"),
			Dimension:      getEnvAsInt("EMBEDDING_DIMENSION", 768),
		},
		Retrieval: RetrievalConfig{
			TopK:                getEnvAsInt("TOP_K_RESULTS", 5),
			SimilarityThreshold: getEnvAsFloat("SIMILARITY_THRESHOLD", 0.50),
			ChunkSize:           getEnvAsInt("CHUNK_SIZE", 500),
			ChunkOverlap:        getEnvAsInt("CHUNK_OVERLAP", 50),
		},
		Stream: StreamConfig{
			ChunkSize: getEnvAsInt("STREAM_CHUNK_SIZE", 30),
			DelayMs:   getEnvAsInt("STREAM_DELAY_MS", 10),
		},
		Session: SessionConfig{
			Store:      getEnv("SESSION_STORE", "memory"),
			MaxHistory: getEnvAsInt("MAX_CONVERSATION_HISTORY", 10),
		},
	}

	warnMissingKeys(cfg)

	return cfg
}

// warnMissingKeys flags configuration gaps without failing startup. The
// service still boots and degrades gracefully when a downstream key is absent.
func warnMissingKeys(cfg *Config) {
	if cfg.Ai.EmbeddingProvider == "gemini" && cfg.Keys.GoogleGemini == "" {
		log.Println("Warning: GEMINI_API_KEY not set")
	}
	if cfg.Vector.Provider == "pgvector" && cfg.Database.Connection == "" {
		log.Println("Warning: VECTOR_STORE=pgvector but DB_CONNECTION_STRING not set")
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	strValue := getEnv(key, "")
	if value, err := strconv.Atoi(strValue); err == nil {
		return value
	}
	return fallback
}

func getEnvAsFloat(key string, fallback float64) float64 {
	strValue := getEnv(key, "")
	if value, err := strconv.ParseFloat(strValue, 64); err == nil {
		return value
	}
	return fallback
}
