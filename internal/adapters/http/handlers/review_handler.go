package handlers

import (
	"errors"
	"strconv"

	"bankerdir/internal/core/services"
	"bankerdir/internal/pkg/response"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// ReviewHandler handles the review queue endpoints
type ReviewHandler struct {
	reviewService *services.ReviewService
}

// NewReviewHandler creates a new review handler
func NewReviewHandler(reviewService *services.ReviewService) *ReviewHandler {
	return &ReviewHandler{reviewService: reviewService}
}

// ListSubmissions handles listing review submissions
// @Summary List review submissions
// @Description Get review submissions, optionally filtered by status
// @Tags Reviews
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param status query string false "Status filter (PENDING, APPROVED, REJECTED)"
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(9)
// @Success 200 {object} response.Response
// @Router /reviews [get]
func (h *ReviewHandler) ListSubmissions(c *fiber.Ctx) error {
	page, _ := strconv.Atoi(c.Query("page", "1"))
	limit, _ := strconv.Atoi(c.Query("limit", "9"))

	result, err := h.reviewService.ListSubmissions(c.Context(), c.Query("status"), page, limit)
	if err != nil {
		if errors.Is(err, services.ErrInvalidStatus) {
			return response.BadRequest(c, "Invalid status filter")
		}
		return response.InternalServerError(c, "Failed to list submissions")
	}

	return response.Success(c, "Submissions retrieved successfully", result)
}

// Submit handles queueing a banker entry for review
// @Summary Submit for review
// @Description Submit a new banker entry to the review queue
// @Tags Reviews
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.SubmitInput true "Submission data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /reviews [post]
func (h *ReviewHandler) Submit(c *fiber.Ctx) error {
	var input services.SubmitInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	userID, _ := c.Locals("userID").(uint)

	sub, err := h.reviewService.Submit(c.Context(), userID, &input)
	if err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			return response.ValidationFailed(c, validationMessages(err))
		}
		return response.InternalServerError(c, "Failed to submit for review")
	}

	return response.Created(c, "Submitted for review", sub)
}

// Approve handles approving a submission (Admin only)
// @Summary Approve submission
// @Description Approve a pending submission; the banker entry is created (Admin only)
// @Tags Reviews
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Submission ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /reviews/{id}/approve [post]
func (h *ReviewHandler) Approve(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid submission ID")
	}

	sub, err := h.reviewService.Approve(c.Context(), uint(id))
	if err != nil {
		switch {
		case errors.Is(err, services.ErrSubmissionNotFound):
			return response.NotFound(c, "Submission not found")
		case errors.Is(err, services.ErrAlreadyDecided):
			return response.Conflict(c, "Submission has already been decided")
		default:
			return response.InternalServerError(c, "Failed to approve submission")
		}
	}

	return response.Success(c, "Submission approved", sub)
}

// RejectRequest represents reject request body
type RejectRequest struct {
	Reason string `json:"reason"`
}

// Reject handles rejecting a submission with a reason (Admin only)
// @Summary Reject submission
// @Description Reject a pending submission; a reason is required (Admin only)
// @Tags Reviews
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Submission ID"
// @Param body body RejectRequest true "Rejection reason"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /reviews/{id}/reject [post]
func (h *ReviewHandler) Reject(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid submission ID")
	}

	var req RejectRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	sub, err := h.reviewService.Reject(c.Context(), uint(id), req.Reason)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrReasonRequired):
			return response.BadRequest(c, "Rejection reason is required")
		case errors.Is(err, services.ErrSubmissionNotFound):
			return response.NotFound(c, "Submission not found")
		case errors.Is(err, services.ErrAlreadyDecided):
			return response.Conflict(c, "Submission has already been decided")
		default:
			return response.InternalServerError(c, "Failed to reject submission")
		}
	}

	return response.Success(c, "Submission rejected", sub)
}
