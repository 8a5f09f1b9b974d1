package store

import "fmt"

// ConversationTurn is one completed user/assistant exchange.
type ConversationTurn struct {
	Query  string `json:"query"`
	Answer string `json:"answer"`
}

// SessionKey builds the storage key for a (user, session) pair. Histories
// are isolated per pair, not per user.
func SessionKey(userID, sessionID string) string {
	return fmt.Sprintf("%s:%s", userID, sessionID)
}
