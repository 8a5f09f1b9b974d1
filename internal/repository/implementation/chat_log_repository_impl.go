package implementation

import (
	"context"

	"gorm.io/gorm"

	"internship-chatbot-be/internal/model"
	"internship-chatbot-be/internal/repository/contract"
)

type ChatLogRepositoryImpl struct {
	db *gorm.DB
}

func NewChatLogRepository(db *gorm.DB) contract.ChatLogRepository {
	return &ChatLogRepositoryImpl{db: db}
}

func (r *ChatLogRepositoryImpl) Create(ctx context.Context, log *model.ChatLog) error {
	return r.db.WithContext(ctx).Create(log).Error
}

func (r *ChatLogRepositoryImpl) FindBySession(ctx context.Context, userID, sessionID string, limit int) ([]*model.ChatLog, error) {
	if limit <= 0 {
		limit = 50
	}
	var logs []*model.ChatLog
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND session_id = ?", userID, sessionID).
		Order("created_at DESC").
		Limit(limit).
		Find(&logs).Error
	if err != nil {
		return nil, err
	}
	return logs, nil
}
