// FILE: internal/controller/interpret_controller.go
package controller

import (
	"ai-shopping-be/internal/dto"
	"ai-shopping-be/internal/pkg/serverutils"
	"ai-shopping-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IInterpretController interface {
	RegisterRoutes(r fiber.Router)
	Parse(ctx *fiber.Ctx) error
	Truncate(ctx *fiber.Ctx) error
	Rerank(ctx *fiber.Ctx) error
	Variants(ctx *fiber.Ctx) error
	Sanitize(ctx *fiber.Ctx) error
}

type interpretController struct {
	service service.IInterpreterService
}

func NewInterpretController(service service.IInterpreterService) IInterpretController {
	return &interpretController{service: service}
}

func (c *interpretController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/interpret/v1")
	h.Post("/parse", c.Parse)
	h.Post("/truncate", c.Truncate)
	h.Post("/rerank", c.Rerank)
	h.Post("/variants", c.Variants)
	h.Post("/sanitize", c.Sanitize)
}

func (c *interpretController) Parse(ctx *fiber.Ctx) error {
	var req dto.ParseRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid request body"))
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.Parse(ctx.Context(), &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success parse tool result", res))
}

func (c *interpretController) Truncate(ctx *fiber.Ctx) error {
	var req dto.TruncateRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid request body"))
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.Truncate(ctx.Context(), &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success truncate content", res))
}

func (c *interpretController) Rerank(ctx *fiber.Ctx) error {
	var req dto.RerankRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid request body"))
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.Rerank(ctx.Context(), &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success rerank items", res))
}

func (c *interpretController) Variants(ctx *fiber.Ctx) error {
	var req dto.VariantsRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid request body"))
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.Variants(ctx.Context(), &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success parse variants", res))
}

func (c *interpretController) Sanitize(ctx *fiber.Ctx) error {
	var req dto.SanitizeRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid request body"))
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.Sanitize(ctx.Context(), &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success sanitize history", res))
}
