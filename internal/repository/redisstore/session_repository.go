package redisstore

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"internship-chatbot-be/internal/repository/contract"
	"internship-chatbot-be/pkg/store"
)

const sessionTTL = 1 * time.Hour

// SessionRepository keeps conversation histories in a Redis list per
// (user, session) key. RPUSH then LTRIM makes append-with-eviction atomic
// enough for the single-writer-per-key access pattern; the server side
// serializes commands on the same key.
type SessionRepository struct {
	client     *redis.Client
	keyPrefix  string
	maxHistory int
}

var _ contract.SessionRepository = (*SessionRepository)(nil)

func NewSessionRepository(client *redis.Client, maxHistory int) *SessionRepository {
	if maxHistory <= 0 {
		maxHistory = 10
	}
	return &SessionRepository{
		client:     client,
		keyPrefix:  "chatbot:session:",
		maxHistory: maxHistory,
	}
}

func (r *SessionRepository) key(userID, sessionID string) string {
	return r.keyPrefix + store.SessionKey(userID, sessionID)
}

func (r *SessionRepository) Append(ctx context.Context, userID, sessionID string, turn store.ConversationTurn) error {
	data, err := json.Marshal(turn)
	if err != nil {
		return fmt.Errorf("failed to marshal turn: %w", err)
	}

	key := r.key(userID, sessionID)
	pipe := r.client.Pipeline()
	pipe.RPush(ctx, key, data)
	pipe.LTrim(ctx, key, int64(-r.maxHistory), -1)
	pipe.Expire(ctx, key, sessionTTL)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to append session turn: %w", err)
	}
	return nil
}

func (r *SessionRepository) History(ctx context.Context, userID, sessionID string) ([]store.ConversationTurn, error) {
	raw, err := r.client.LRange(ctx, r.key(userID, sessionID), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read session history: %w", err)
	}

	turns := make([]store.ConversationTurn, 0, len(raw))
	for _, item := range raw {
		var turn store.ConversationTurn
		if err := json.Unmarshal([]byte(item), &turn); err != nil {
			// A corrupt entry should not take the whole history down.
			continue
		}
		turns = append(turns, turn)
	}
	return turns, nil
}

func (r *SessionRepository) Clear(ctx context.Context, userID, sessionID string) error {
	if err := r.client.Del(ctx, r.key(userID, sessionID)).Err(); err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	return nil
}
