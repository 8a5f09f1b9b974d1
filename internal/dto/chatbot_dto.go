package dto

import "strings"

// QueryRequest is the shared body for /query, /query-stream, and /clear.
// Query is unused by /clear.
type QueryRequest struct {
	UserID    string `json:"user_id" validate:"required"`
	SessionID string `json:"session_id" validate:"required"`
	Query     string `json:"query"`
}

// HasSession reports whether both session identifiers are present and
// non-blank.
func (r QueryRequest) HasSession() bool {
	return strings.TrimSpace(r.UserID) != "" && strings.TrimSpace(r.SessionID) != ""
}

// HasQuery reports whether the query text is non-blank.
func (r QueryRequest) HasQuery() bool {
	return strings.TrimSpace(r.Query) != ""
}

type QueryResponse struct {
	Success   bool   `json:"success"`
	Response  string `json:"response"`
	SessionID string `json:"sessionId"`
}

type ClearResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type HealthResponse struct {
	Status             string `json:"status"`
	ChatbotInitialized bool   `json:"chatbot_initialized"`
	PipelineWarmed     bool   `json:"pipeline_warmed"`
}

// QAPairEvent is the payload published after a successful RAG answer so
// the consumer can ingest the pair back into the vector store.
type QAPairEvent struct {
	Question string `json:"question" validate:"required"`
	Answer   string `json:"answer" validate:"required"`
}
