package service

import (
	"context"
	"encoding/json"
	"fmt"

	"gorm.io/datatypes"

	"internship-chatbot-be/internal/constant"
	"internship-chatbot-be/internal/dto"
	"internship-chatbot-be/internal/model"
	"internship-chatbot-be/internal/pkg/logger"
	"internship-chatbot-be/internal/repository/contract"
	"internship-chatbot-be/pkg/llm"
	"internship-chatbot-be/pkg/rag/intent"
	"internship-chatbot-be/pkg/rag/retrieval"
	"internship-chatbot-be/pkg/rag/routing"
	"internship-chatbot-be/pkg/store"
)

type IChatbotService interface {
	// Answer runs the full pipeline and always returns text. Pipeline
	// failures fold into the configured fallback response.
	Answer(ctx context.Context, query, userID, sessionID string) string
	ClearSession(ctx context.Context, userID, sessionID string) error
}

// DocumentRetriever is the slice of the retriever the orchestrator needs.
type DocumentRetriever interface {
	Retrieve(ctx context.Context, rawQuery string, opts *retrieval.Options) []retrieval.RetrievedDocument
	FormatContext(docs []retrieval.RetrievedDocument) string
}

// ChatbotConfig carries the orchestrator's policy values.
type ChatbotConfig struct {
	FallbackResponse string
	Temperature      float64
	MaxTokens        int
}

type chatbotService struct {
	classifier  *intent.Classifier
	routes      *routing.Rules
	retriever   DocumentRetriever
	llmProvider llm.LLMProvider
	sessions    contract.SessionRepository
	// chatLogs and publisher are optional. Nil disables audit logging and
	// Q&A self-ingestion respectively.
	chatLogs  contract.ChatLogRepository
	publisher IPublisherService
	cfg       ChatbotConfig
	logger    logger.ILogger
}

func NewChatbotService(
	classifier *intent.Classifier,
	routes *routing.Rules,
	retriever DocumentRetriever,
	llmProvider llm.LLMProvider,
	sessions contract.SessionRepository,
	chatLogs contract.ChatLogRepository,
	publisher IPublisherService,
	cfg ChatbotConfig,
	log logger.ILogger,
) IChatbotService {
	if cfg.Temperature == 0 {
		cfg.Temperature = 0.4
	}
	if cfg.MaxTokens == 0 {
		cfg.MaxTokens = 8192
	}
	return &chatbotService{
		classifier:  classifier,
		routes:      routes,
		retriever:   retriever,
		llmProvider: llmProvider,
		sessions:    sessions,
		chatLogs:    chatLogs,
		publisher:   publisher,
		cfg:         cfg,
		logger:      log,
	}
}

func (c *chatbotService) Answer(ctx context.Context, query, userID, sessionID string) string {
	decision := c.routes.Decide(c.classifier.Classify(query))

	history, err := c.sessions.History(ctx, userID, sessionID)
	if err != nil {
		c.logger.Warn("chatbot", "failed to load session history, continuing without it", map[string]interface{}{
			"user_id":    userID,
			"session_id": sessionID,
			"error":      err.Error(),
		})
		history = nil
	}

	systemPrompt := constant.SystemPromptExternal
	docCount := 0
	if decision.Pipeline == routing.PipelineRAG {
		docs := c.retriever.Retrieve(ctx, query, nil)
		docCount = len(docs)
		systemPrompt = fmt.Sprintf(constant.SystemPromptRAG, c.retriever.FormatContext(docs))
	}

	messages := c.buildMessages(systemPrompt, history, query)
	answer, err := c.llmProvider.Chat(ctx, messages,
		llm.WithTemperature(c.cfg.Temperature),
		llm.WithMaxTokens(c.cfg.MaxTokens),
	)
	if err != nil || answer == "" {
		c.logger.Error("chatbot", "generation failed, returning fallback response", map[string]interface{}{
			"user_id":    userID,
			"session_id": sessionID,
			"intent":     string(decision.Intent),
			"pipeline":   string(decision.Pipeline),
			"error":      errString(err),
		})
		c.audit(ctx, userID, sessionID, query, c.cfg.FallbackResponse, decision, docCount, true)
		return c.cfg.FallbackResponse
	}

	if err := c.sessions.Append(ctx, userID, sessionID, store.ConversationTurn{Query: query, Answer: answer}); err != nil {
		c.logger.Warn("chatbot", "failed to persist session turn", map[string]interface{}{
			"user_id":    userID,
			"session_id": sessionID,
			"error":      err.Error(),
		})
	}

	if decision.Pipeline == routing.PipelineRAG {
		c.publishQAPair(ctx, query, answer)
	}
	c.audit(ctx, userID, sessionID, query, answer, decision, docCount, false)

	return answer
}

func (c *chatbotService) ClearSession(ctx context.Context, userID, sessionID string) error {
	return c.sessions.Clear(ctx, userID, sessionID)
}

func (c *chatbotService) buildMessages(systemPrompt string, history []store.ConversationTurn, query string) []llm.Message {
	messages := make([]llm.Message, 0, 2*len(history)+2)
	messages = append(messages, llm.Message{Role: constant.ChatMessageRoleSystem, Content: systemPrompt})
	for _, turn := range history {
		messages = append(messages,
			llm.Message{Role: constant.ChatMessageRoleUser, Content: turn.Query},
			llm.Message{Role: constant.ChatMessageRoleModel, Content: turn.Answer},
		)
	}
	return append(messages, llm.Message{Role: constant.ChatMessageRoleUser, Content: query})
}

// publishQAPair hands the answered pair to the ingest consumer. Best
// effort only; a publish failure never affects the response.
func (c *chatbotService) publishQAPair(ctx context.Context, question, answer string) {
	if c.publisher == nil {
		return
	}
	payload, err := json.Marshal(dto.QAPairEvent{Question: question, Answer: answer})
	if err != nil {
		return
	}
	if err := c.publisher.Publish(ctx, payload); err != nil {
		c.logger.Warn("chatbot", "failed to publish qa pair", map[string]interface{}{
			"error": err.Error(),
		})
	}
}

func (c *chatbotService) audit(ctx context.Context, userID, sessionID, query, answer string, decision routing.Decision, docCount int, fallback bool) {
	if c.chatLogs == nil {
		return
	}
	details, _ := json.Marshal(map[string]any{"retrieved_docs": docCount})
	entry := &model.ChatLog{
		UserId:    userID,
		SessionId: sessionID,
		Query:     query,
		Answer:    answer,
		Intent:    string(decision.Intent),
		Pipeline:  string(decision.Pipeline),
		Fallback:  fallback,
		Details:   datatypes.JSON(details),
	}
	if err := c.chatLogs.Create(ctx, entry); err != nil {
		c.logger.Warn("chatbot", "failed to write chat log", map[string]interface{}{
			"user_id": userID,
			"error":   err.Error(),
		})
	}
}

func errString(err error) string {
	if err == nil {
		return "empty answer"
	}
	return err.Error()
}
