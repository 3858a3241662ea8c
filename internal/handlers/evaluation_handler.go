package handlers

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"grupoandino/supplier-evaluator/internal/models"
	"grupoandino/supplier-evaluator/internal/services"
)

type EvaluationHandler struct {
	evalService services.EvaluationService
	subService  services.SubmissionService
	validate    *validator.Validate
}

func NewEvaluationHandler(
	evalService services.EvaluationService,
	subService services.SubmissionService,
) *EvaluationHandler {
	return &EvaluationHandler{
		evalService: evalService,
		subService:  subService,
		validate:    validator.New(),
	}
}

// HandleGet handles GET /evaluations/:supplierId
func (h *EvaluationHandler) HandleGet(c *fiber.Ctx) error {
	supplierID := c.Params("supplierId")

	view, err := h.evalService.LoadEvaluation(supplierID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to load evaluation",
		})
	}
	if view == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Evaluation not found",
		})
	}

	return c.JSON(view)
}

// HandleCanEdit handles GET /evaluations/:supplierId/can-edit
func (h *EvaluationHandler) HandleCanEdit(c *fiber.Ctx) error {
	supplierID := c.Params("supplierId")

	editable, err := h.subService.CanEdit(supplierID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to resolve editability",
		})
	}

	return c.JSON(fiber.Map{
		"supplier_id": supplierID,
		"can_edit":    editable,
	})
}

// HandleRecordAnswer handles POST /evaluations/:supplierId/answers.
// The lock lives here: the evaluation service itself accepts writes in any
// state, so the editability check must happen before calling it.
func (h *EvaluationHandler) HandleRecordAnswer(c *fiber.Ctx) error {
	supplierID := c.Params("supplierId")

	editable, err := h.subService.CanEdit(supplierID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to resolve editability",
		})
	}
	if !editable {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error": "Evaluation is locked for editing",
		})
	}

	var req models.AnswerRequest
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

	eval, err := h.evalService.RecordAnswer(supplierID, req)
	if err != nil {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(eval)
}

// HandleRecordNote handles PATCH /evaluations/:supplierId/answers/:questionId/note
func (h *EvaluationHandler) HandleRecordNote(c *fiber.Ctx) error {
	supplierID := c.Params("supplierId")
	questionID := c.Params("questionId")

	var req models.NoteRequest
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

	if err := h.evalService.RecordObservation(supplierID, questionID, req.Text); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to record observation",
		})
	}

	return c.JSON(fiber.Map{"message": "Observation recorded"})
}

// HandleAttachEvidence handles PATCH /evaluations/:supplierId/answers/:questionId/evidence
func (h *EvaluationHandler) HandleAttachEvidence(c *fiber.Ctx) error {
	supplierID := c.Params("supplierId")
	questionID := c.Params("questionId")

	var req models.EvidenceRequest
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

	if err := h.evalService.AttachEvidence(supplierID, questionID, req.URL); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to attach evidence",
		})
	}

	return c.JSON(fiber.Map{"message": "Evidence attached"})
}

// HandleSubmit handles POST /evaluations/:supplierId/submit
func (h *EvaluationHandler) HandleSubmit(c *fiber.Ctx) error {
	supplierID := c.Params("supplierId")

	sub, err := h.subService.Submit(supplierID)
	if err != nil {
		var incomplete *services.IncompleteEvaluationError
		if errors.As(err, &incomplete) {
			return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
				"error":                    incomplete.Error(),
				"calidad_answered":         incomplete.CalidadAnswered,
				"calidad_questions":        incomplete.CalidadQuestions,
				"abastecimiento_answered":  incomplete.AbastecimientoAnswered,
				"abastecimiento_questions": incomplete.AbastecimientoQuestions,
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.Status(fiber.StatusCreated).JSON(sub)
}
