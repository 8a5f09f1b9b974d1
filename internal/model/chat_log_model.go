package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// ChatLog is the audit record written after every answered query.
type ChatLog struct {
	Id        uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId    string         `gorm:"type:varchar(255);not null;index"`
	SessionId string         `gorm:"type:varchar(255);not null;index"`
	Query     string         `gorm:"type:text;not null"`
	Answer    string         `gorm:"type:text;not null"`
	Intent    string         `gorm:"type:varchar(64);not null"`
	Pipeline  string         `gorm:"type:varchar(32);not null"`
	Fallback  bool           `gorm:"not null;default:false"`
	Details   datatypes.JSON `gorm:"type:jsonb"`
	CreatedAt time.Time      `gorm:"autoCreateTime"`
}

func (ChatLog) TableName() string {
	return "chat_logs"
}
