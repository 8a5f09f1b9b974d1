package contract

import (
	"context"

	"internship-chatbot-be/pkg/store"
)

// SessionRepository holds bounded conversation histories keyed by
// (user_id, session_id). Appending beyond capacity evicts the oldest turn.
type SessionRepository interface {
	Append(ctx context.Context, userID, sessionID string, turn store.ConversationTurn) error
	History(ctx context.Context, userID, sessionID string) ([]store.ConversationTurn, error)
	// Clear is idempotent. Clearing an absent session is not an error.
	Clear(ctx context.Context, userID, sessionID string) error
}
