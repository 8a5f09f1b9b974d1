package contract

import (
	"context"

	"internship-chatbot-be/internal/model"
)

type ChatLogRepository interface {
	Create(ctx context.Context, log *model.ChatLog) error
	FindBySession(ctx context.Context, userID, sessionID string, limit int) ([]*model.ChatLog, error)
}
