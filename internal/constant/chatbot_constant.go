package constant

const (
	ChatMessageRoleUser   = "user"
	ChatMessageRoleModel  = "model"
	ChatMessageRoleSystem = "system"
)

// Pipeline names reported by the router and recorded in the chat log.
const (
	PipelineRAG      = "RAG"
	PipelineExternal = "EXTERNAL"
	PipelineUnknown  = "UNKNOWN"
)

// SystemPromptRAG frames the model as an internship/education assistant and
// carries the retrieved context. The context block may be empty when
// retrieval degraded; the model then falls back to general knowledge.
const SystemPromptRAG = `You are a helpful assistant for internship and education questions.
Answer the user's question using the retrieved context below. If the context
does not cover the question, say so and answer from general knowledge about
internships and education programs. Keep answers concise and factual.

Retrieved context:
%s`

// SystemPromptExternal is used for queries routed away from the document
// store (coding education, interview preparation, general education).
const SystemPromptExternal = `You are a helpful assistant for internship and education questions.
Answer the user's question from your general knowledge. Keep answers concise,
practical, and focused on internships, education, and career preparation.`

// WarmupQuery is embedded and searched once at startup to force lazy
// resources (embedding model, vector index) to load before real traffic.
const WarmupQuery = "This is a warm-up query to load the embedding model"

// Metadata values attached to self-ingested Q&A points.
const (
	IngestDocumentType = "Generated Q&A"
	IngestCompany      = "General Knowledge"
)
