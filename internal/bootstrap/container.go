package bootstrap

import (
	"log"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"internship-chatbot-be/internal/config"
	"internship-chatbot-be/internal/controller"
	"internship-chatbot-be/internal/model"
	"internship-chatbot-be/internal/pkg/logger"
	"internship-chatbot-be/internal/repository/contract"
	"internship-chatbot-be/internal/repository/implementation"
	"internship-chatbot-be/internal/repository/memory"
	"internship-chatbot-be/internal/repository/redisstore"
	"internship-chatbot-be/internal/service"
	"internship-chatbot-be/pkg/embedding"
	"internship-chatbot-be/pkg/embedding/jina"
	"internship-chatbot-be/pkg/llm/factory"
	"internship-chatbot-be/pkg/rag/intent"
	"internship-chatbot-be/pkg/rag/retrieval"
	"internship-chatbot-be/pkg/rag/routing"
	"internship-chatbot-be/pkg/vectorstore"
	"internship-chatbot-be/pkg/vectorstore/pgstore"
	"internship-chatbot-be/pkg/vectorstore/qdrant"
)

type Container struct {
	ChatbotController controller.IChatbotController

	// Background services, exposed for main.go to run.
	ConsumerService service.IConsumerService
	WarmupService   service.IWarmupService

	Logger logger.ILogger
}

// NewContainer wires the whole pipeline once at startup. db may be nil
// when neither pgvector nor chat logging is configured.
func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	var embeddingProvider embedding.EmbeddingProvider
	if cfg.Ai.EmbeddingProvider == "ollama" {
		embeddingProvider = embedding.NewOllamaProvider(
			cfg.Ai.OllamaBaseURL,
			cfg.Ai.OllamaModel,
		)
		log.Printf("[INFO] Using Embedding Provider: OLLAMA (%s)", cfg.Ai.OllamaModel)
	} else if cfg.Ai.EmbeddingProvider == "jina" {
		embeddingProvider = jina.NewJinaProvider(cfg.Keys.Jina)
		log.Printf("[INFO] Using Embedding Provider: JINA AI")
	} else {
		embeddingProvider = embedding.NewGeminiProvider(cfg.Keys.GoogleGemini, cfg.Ai.EmbeddingModel)
		log.Printf("[INFO] Using Embedding Provider: GEMINI (%s)", cfg.Ai.EmbeddingModel)
	}

	llmProvider, err := factory.NewLLMProvider(
		cfg.Ai.LLMProvider,
		cfg.Ai.LLMModel,
		cfg.Ai.OllamaBaseURL,
		cfg.Keys.GoogleGemini,
	)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize LLM Provider: %v", err)
	}
	log.Printf("[INFO] Using LLM Provider: %s (%s)", cfg.Ai.LLMProvider, cfg.Ai.LLMModel)

	var store vectorstore.VectorStore
	if cfg.Vector.Provider == "pgvector" {
		if db == nil {
			log.Fatalf("[FATAL] VECTOR_STORE=pgvector requires DB_CONNECTION_STRING")
		}
		store = pgstore.NewStore(db)
		log.Printf("[INFO] Using Vector Store: PGVECTOR")
	} else {
		store = qdrant.NewClient(qdrant.Config{
			BaseURL:    cfg.Vector.QdrantURL,
			APIKey:     cfg.Vector.QdrantAPIKey,
			Collection: cfg.Vector.CollectionName,
		})
		log.Printf("[INFO] Using Vector Store: QDRANT (%s)", cfg.Vector.CollectionName)
	}

	var sessionRepo contract.SessionRepository
	if cfg.Session.Store == "redis" {
		opt, err := redis.ParseURL(cfg.App.RedisURL)
		if err != nil {
			log.Fatalf("[FATAL] Invalid REDIS_URL: %v", err)
		}
		sessionRepo = redisstore.NewSessionRepository(redis.NewClient(opt), cfg.Session.MaxHistory)
		log.Printf("[INFO] Using Session Store: REDIS")
	} else {
		sessionRepo = memory.NewSessionRepository(cfg.Session.MaxHistory)
		log.Printf("[INFO] Using Session Store: MEMORY")
	}

	var chatLogs contract.ChatLogRepository
	if db != nil {
		if err := db.AutoMigrate(&model.ChatLog{}); err != nil {
			log.Printf("[WARN] Chat log migration failed: %v", err)
		} else {
			chatLogs = implementation.NewChatLogRepository(db)
		}
	}

	retriever := retrieval.NewRetriever(
		embeddingProvider,
		store,
		retrieval.Config{
			TopK:                cfg.Retrieval.TopK,
			SimilarityThreshold: cfg.Retrieval.SimilarityThreshold,
			LLMSource:           cfg.Ai.LLMModel,
		},
		sysLogger,
	)

	publisherService := service.NewPublisherService(cfg.Keys.IngestTopic, pubSub)
	consumerService := service.NewConsumerService(pubSub, cfg.Keys.IngestTopic, retriever, sysLogger)

	chatbotService := service.NewChatbotService(
		intent.NewClassifier(),
		routing.NewRules(),
		retriever,
		llmProvider,
		sessionRepo,
		chatLogs,
		publisherService,
		service.ChatbotConfig{FallbackResponse: cfg.Ai.FallbackResponse},
		sysLogger,
	)

	warmupService := service.NewWarmupService(embeddingProvider, retriever, sysLogger)

	chatbotController := controller.NewChatbotController(
		chatbotService,
		warmupService,
		controller.StreamSettings{
			ChunkSize: cfg.Stream.ChunkSize,
			Delay:     time.Duration(cfg.Stream.DelayMs) * time.Millisecond,
		},
		sysLogger,
	)

	return &Container{
		ChatbotController: chatbotController,
		ConsumerService:   consumerService,
		WarmupService:     warmupService,
		Logger:            sysLogger,
	}
}
