package controller

import (
	"errors"

	"xplorer-be/internal/dto"
	"xplorer-be/internal/repository/contract"
	"xplorer-be/internal/service"
	"xplorer-be/pkg/relay"
	"xplorer-be/pkg/storage"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IChatController interface {
	RegisterRoutes(r fiber.Router, protect fiber.Handler)
	GetSession(ctx *fiber.Ctx) error
	SendChat(ctx *fiber.Ctx) error
	GetReferences(ctx *fiber.Ctx) error
}

type chatController struct {
	service service.IChatService
}

func NewChatController(svc service.IChatService) IChatController {
	return &chatController{service: svc}
}

func (c *chatController) RegisterRoutes(r fiber.Router, protect fiber.Handler) {
	r.Get("/session", protect, c.GetSession)

	h := r.Group("/chat", protect)
	h.Post("/", c.SendChat)
	h.Get("/references", c.GetReferences)
}

func (c *chatController) GetSession(ctx *fiber.Ctx) error {
	sessionId := ctx.Locals("session_id").(uuid.UUID)

	res, err := c.service.GetSession(ctx.Context(), sessionId)
	if err != nil {
		return sessionError(ctx, err)
	}
	return ctx.JSON(fiber.Map{
		"success": true,
		"code":    200,
		"message": "OK",
		"data":    res,
	})
}

func (c *chatController) SendChat(ctx *fiber.Ctx) error {
	sessionId := ctx.Locals("session_id").(uuid.UUID)

	var req dto.SendChatRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	// An empty prompt is a no-op: nothing is sent and the transcript does
	// not change.
	if err := validate.Struct(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"code":    400,
			"message": "chat must not be empty",
		})
	}

	res, err := c.service.SendChat(ctx.Context(), sessionId, &req)
	if err != nil {
		var relayErr *relay.Error
		if errors.As(err, &relayErr) {
			// The failed turn goes back with the error so the UI can render
			// it inline in the transcript column.
			return ctx.Status(fiber.StatusBadGateway).JSON(fiber.Map{
				"success": false,
				"code":    502,
				"message": "chat endpoint unavailable",
				"data":    res,
			})
		}
		return sessionError(ctx, err)
	}

	return ctx.JSON(fiber.Map{
		"success": true,
		"code":    200,
		"message": "OK",
		"data":    res,
	})
}

func (c *chatController) GetReferences(ctx *fiber.Ctx) error {
	sessionId := ctx.Locals("session_id").(uuid.UUID)

	res, err := c.service.GetReferencePanel(ctx.Context(), sessionId)
	if err != nil {
		var storageErr *storage.AuthError
		if errors.As(err, &storageErr) {
			return ctx.Status(fiber.StatusBadGateway).JSON(fiber.Map{
				"success": false,
				"code":    502,
				"message": "failed to sign reference links",
			})
		}
		return sessionError(ctx, err)
	}

	return ctx.JSON(fiber.Map{
		"success": true,
		"code":    200,
		"message": "OK",
		"data":    res,
	})
}

// sessionError maps store lookups for expired sessions to a 401 so the UI
// falls back to the login form instead of showing a broken panel.
func sessionError(ctx *fiber.Ctx, err error) error {
	if errors.Is(err, contract.ErrSessionNotFound) {
		return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"success": false,
			"code":    401,
			"message": "session expired",
		})
	}
	return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"success": false,
		"code":    500,
		"message": err.Error(),
	})
}
