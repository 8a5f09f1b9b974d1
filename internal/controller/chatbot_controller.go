package controller

import (
	"bufio"
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/valyala/fasthttp"

	"internship-chatbot-be/internal/dto"
	"internship-chatbot-be/internal/pkg/logger"
	"internship-chatbot-be/internal/pkg/serverutils"
	"internship-chatbot-be/internal/service"
	"internship-chatbot-be/pkg/streaming"
)

type IChatbotController interface {
	RegisterRoutes(r fiber.Router)
	Health(ctx *fiber.Ctx) error
	Query(ctx *fiber.Ctx) error
	QueryStream(ctx *fiber.Ctx) error
	Clear(ctx *fiber.Ctx) error
}

// StreamSettings shape the SSE chunk emission.
type StreamSettings struct {
	ChunkSize int
	Delay     time.Duration
}

type chatbotController struct {
	chatbot service.IChatbotService
	warmup  service.IWarmupService
	stream  StreamSettings
	logger  logger.ILogger
}

func NewChatbotController(
	chatbot service.IChatbotService,
	warmup service.IWarmupService,
	stream StreamSettings,
	log logger.ILogger,
) IChatbotController {
	return &chatbotController{
		chatbot: chatbot,
		warmup:  warmup,
		stream:  stream,
		logger:  log,
	}
}

func (c *chatbotController) RegisterRoutes(r fiber.Router) {
	r.Get("/health", c.Health)
	r.Post("/query", c.Query)
	r.Post("/query-stream", c.QueryStream)
	r.Post("/clear", c.Clear)
}

func (c *chatbotController) Health(ctx *fiber.Ctx) error {
	return ctx.JSON(dto.HealthResponse{
		Status:             "ok",
		ChatbotInitialized: c.chatbot != nil,
		PipelineWarmed:     c.warmup.IsWarmed(),
	})
}

// parseRequest binds and validates the shared request body. A non-nil
// return means the 400 response has already been written.
func (c *chatbotController) parseRequest(ctx *fiber.Ctx, needQuery bool) (*dto.QueryRequest, error) {
	var req dto.QueryRequest
	if err := ctx.BodyParser(&req); err != nil {
		return nil, ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse("invalid request body"))
	}
	if !req.HasSession() {
		return nil, ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse("user_id and session_id are required"))
	}
	if needQuery && !req.HasQuery() {
		return nil, ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse("query is required"))
	}
	return &req, nil
}

func (c *chatbotController) Query(ctx *fiber.Ctx) error {
	req, done := c.parseRequest(ctx, true)
	if req == nil {
		return done
	}

	answer := c.chatbot.Answer(ctx.Context(), req.Query, req.UserID, req.SessionID)
	return ctx.JSON(dto.QueryResponse{
		Success:   true,
		Response:  answer,
		SessionID: req.SessionID,
	})
}

// QueryStream answers over SSE. Validation failures return plain JSON
// before the stream opens; once streaming starts, failures surface as a
// terminal error event.
func (c *chatbotController) QueryStream(ctx *fiber.Ctx) error {
	req, done := c.parseRequest(ctx, true)
	if req == nil {
		return done
	}

	ctx.Set(fiber.HeaderContentType, "text/event-stream")
	ctx.Set(fiber.HeaderCacheControl, "no-cache")
	ctx.Set(fiber.HeaderConnection, "keep-alive")
	ctx.Set("X-Accel-Buffering", "no")

	// ctx is invalid once the handler returns; copy what the stream needs.
	query, userID, sessionID := req.Query, req.UserID, req.SessionID

	ctx.Context().SetBodyStreamWriter(fasthttp.StreamWriter(func(w *bufio.Writer) {
		emitter := streaming.NewEmitter(w, c.stream.Delay)

		if err := emitter.Start(); err != nil {
			return
		}

		answer, err := c.answerSafely(query, userID, sessionID)
		if err != nil {
			_ = emitter.Error(err.Error())
			return
		}

		// A failed write means the client disconnected; stop without a
		// terminal event since nobody is listening.
		if err := emitter.StreamChunks(answer, c.stream.ChunkSize); err != nil {
			c.logger.Debug("http", "client disconnected mid-stream", map[string]interface{}{
				"session_id": sessionID,
			})
			return
		}
		_ = emitter.Done()
	}))

	return nil
}

// answerSafely converts a pipeline panic into an error so the stream can
// terminate with an error event instead of a dropped connection.
func (c *chatbotController) answerSafely(query, userID, sessionID string) (answer string, err error) {
	defer func() {
		if r := recover(); r != nil {
			c.logger.Error("http", "panic during streamed answer", map[string]interface{}{
				"session_id": sessionID,
				"panic":      r,
			})
			err = fiber.NewError(fiber.StatusInternalServerError, "internal server error")
		}
	}()
	// The request context died with the handler; the pipeline runs on its
	// own context for the life of the stream.
	return c.chatbot.Answer(context.Background(), query, userID, sessionID), nil
}

func (c *chatbotController) Clear(ctx *fiber.Ctx) error {
	req, done := c.parseRequest(ctx, false)
	if req == nil {
		return done
	}

	if err := c.chatbot.ClearSession(ctx.Context(), req.UserID, req.SessionID); err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(serverutils.ErrorResponse(err.Error()))
	}
	return ctx.JSON(dto.ClearResponse{Success: true, Message: "Session cleared"})
}
