package handlers

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"grupoandino/supplier-evaluator/internal/models"
	"grupoandino/supplier-evaluator/internal/repositories"
	"grupoandino/supplier-evaluator/internal/services"
)

type AuditHandler struct {
	auditService services.AuditService
	validate     *validator.Validate
}

func NewAuditHandler(auditService services.AuditService) *AuditHandler {
	return &AuditHandler{
		auditService: auditService,
		validate:     validator.New(),
	}
}

// HandleGet handles GET /submissions/:id/audit
func (h *AuditHandler) HandleGet(c *fiber.Ctx) error {
	submissionID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid submission ID format",
		})
	}

	view, err := h.auditService.GetAudit(submissionID)
	if err != nil {
		if errors.Is(err, repositories.ErrSubmissionNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(view)
}

// HandleSave handles POST /submissions/:id/audit
func (h *AuditHandler) HandleSave(c *fiber.Ctx) error {
	submissionID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid submission ID format",
		})
	}

	var req models.SaveAuditRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request payload",
		})
	}
	if err := h.validate.Struct(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	result, err := h.auditService.SaveAudit(submissionID, req)
	if err != nil {
		if errors.Is(err, repositories.ErrSubmissionNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": err.Error(),
			})
		}

		var incomplete *services.IncompleteAuditError
		if errors.As(err, &incomplete) {
			return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
				"error":   incomplete.Error(),
				"pending": incomplete.Pending,
			})
		}

		var missing *services.MissingFindingError
		if errors.As(err, &missing) {
			return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
				"error":        missing.Error(),
				"question_ids": missing.QuestionIDs,
			})
		}

		if errors.Is(err, services.ErrAuditCurrent) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"error": err.Error(),
			})
		}

		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(result)
}
