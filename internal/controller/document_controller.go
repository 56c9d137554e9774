package controller

import (
	"errors"

	"xplorer-be/internal/service"
	"xplorer-be/pkg/storage"

	"github.com/gofiber/fiber/v2"
)

type IDocumentController interface {
	RegisterRoutes(r fiber.Router, protect fiber.Handler)
	ListDocuments(ctx *fiber.Ctx) error
}

type documentController struct {
	service service.IDocumentService
}

func NewDocumentController(svc service.IDocumentService) IDocumentController {
	return &documentController{service: svc}
}

func (c *documentController) RegisterRoutes(r fiber.Router, protect fiber.Handler) {
	r.Get("/documents", protect, c.ListDocuments)
}

func (c *documentController) ListDocuments(ctx *fiber.Ctx) error {
	res, err := c.service.ListDocuments(ctx.Context())
	if err != nil {
		var storageErr *storage.AuthError
		if errors.As(err, &storageErr) {
			// Panel-level failure; the chat column stays usable.
			return ctx.Status(fiber.StatusBadGateway).JSON(fiber.Map{
				"success": false,
				"code":    502,
				"message": "document store unavailable",
			})
		}
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"code":    500,
			"message": err.Error(),
		})
	}

	return ctx.JSON(fiber.Map{
		"success": true,
		"code":    200,
		"message": "OK",
		"data":    res,
	})
}
