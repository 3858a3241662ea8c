package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"grupoandino/supplier-evaluator/internal/models"
	"grupoandino/supplier-evaluator/internal/services"
)

type QuestionnaireHandler struct {
	config services.ConfigurationService
}

func NewQuestionnaireHandler(config services.ConfigurationService) *QuestionnaireHandler {
	return &QuestionnaireHandler{config: config}
}

// HandleGet handles GET /questionnaire
func (h *QuestionnaireHandler) HandleGet(c *fiber.Ctx) error {
	return c.JSON(h.config.Get())
}

// HandlePut handles PUT /questionnaire
func (h *QuestionnaireHandler) HandlePut(c *fiber.Ctx) error {
	var q models.Questionnaire
	if err := c.BodyParser(&q); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid questionnaire payload",
		})
	}

	if err := h.config.Save(&q); err != nil {
		var validationErr *services.ConfigValidationError
		if errors.As(err, &validationErr) {
			return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
				"error":    validationErr.Error(),
				"category": validationErr.Category,
				"sum":      validationErr.Sum,
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to save questionnaire",
		})
	}

	return c.JSON(fiber.Map{
		"message": "Questionnaire saved",
	})
}
