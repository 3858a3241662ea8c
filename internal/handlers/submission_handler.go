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

type SubmissionHandler struct {
	subService services.SubmissionService
	validate   *validator.Validate
}

func NewSubmissionHandler(subService services.SubmissionService) *SubmissionHandler {
	return &SubmissionHandler{
		subService: subService,
		validate:   validator.New(),
	}
}

// HandleList handles GET /suppliers/:supplierId/submissions
func (h *SubmissionHandler) HandleList(c *fiber.Ctx) error {
	supplierID := c.Params("supplierId")

	subs, err := h.subService.ListBySupplier(supplierID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to list submissions",
		})
	}

	return c.JSON(fiber.Map{
		"supplier_id": supplierID,
		"submissions": subs,
	})
}

// HandleApprove handles POST /submissions/:id/approve
func (h *SubmissionHandler) HandleApprove(c *fiber.Ctx) error {
	return h.review(c, h.subService.Approve, "Submission approved")
}

// HandleReject handles POST /submissions/:id/reject
func (h *SubmissionHandler) HandleReject(c *fiber.Ctx) error {
	return h.review(c, h.subService.Reject, "Submission rejected")
}

// HandleRequestRevision handles POST /submissions/:id/request-revision
func (h *SubmissionHandler) HandleRequestRevision(c *fiber.Ctx) error {
	return h.review(c, h.subService.RequestRevision, "Revision requested")
}

func (h *SubmissionHandler) review(
	c *fiber.Ctx,
	transition func(uuid.UUID, models.ReviewRequest) error,
	message string,
) error {
	submissionID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid submission ID format",
		})
	}

	var req models.ReviewRequest
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

	if err := transition(submissionID, req); err != nil {
		if errors.Is(err, repositories.ErrSubmissionNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(fiber.Map{"message": message})
}
