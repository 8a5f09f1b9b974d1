package service

import (
	"context"
	"encoding/json"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"

	"internship-chatbot-be/internal/dto"
	"internship-chatbot-be/internal/pkg/logger"
	"internship-chatbot-be/internal/pkg/serverutils"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

// QAIngestor writes an answered pair back into the vector store.
type QAIngestor interface {
	IngestQAPair(ctx context.Context, question, answer string) bool
}

type consumerService struct {
	pubSub    *gochannel.GoChannel
	topicName string
	ingestor  QAIngestor
	logger    logger.ILogger
}

func NewConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	ingestor QAIngestor,
	log logger.ILogger,
) IConsumerService {
	return &consumerService{
		pubSub:    pubSub,
		topicName: topicName,
		ingestor:  ingestor,
		logger:    log,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.pubSub.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(ctx context.Context, msg *message.Message) {
	var payload dto.QAPairEvent
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		cs.logger.Error("consumer", "failed to unmarshal qa pair message", map[string]interface{}{
			"message_id": msg.UUID,
			"error":      err.Error(),
		})
		// Ack malformed messages to prevent infinite retry.
		msg.Ack()
		return
	}

	if err := serverutils.ValidateRequest(payload); err != nil {
		cs.logger.Error("consumer", "invalid qa pair payload", map[string]interface{}{
			"message_id": msg.UUID,
			"error":      err.Error(),
		})
		msg.Ack()
		return
	}

	if ok := cs.ingestor.IngestQAPair(ctx, payload.Question, payload.Answer); !ok {
		cs.logger.Warn("consumer", "qa pair ingestion failed", map[string]interface{}{
			"message_id": msg.UUID,
		})
		// Nack so the pair is retried; the embedder or store may be back.
		msg.Nack()
		return
	}

	cs.logger.Debug("consumer", "qa pair ingested", map[string]interface{}{
		"message_id": msg.UUID,
	})
	msg.Ack()
}
