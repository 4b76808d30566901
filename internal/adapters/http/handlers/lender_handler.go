package handlers

import (
	"errors"
	"strconv"

	"bankerdir/internal/core/services"
	"bankerdir/internal/pkg/response"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// LenderHandler handles lender directory endpoints
type LenderHandler struct {
	lenderService *services.LenderService
}

// NewLenderHandler creates a new lender handler
func NewLenderHandler(lenderService *services.LenderService) *LenderHandler {
	return &LenderHandler{lenderService: lenderService}
}

// ListLenders handles the filtered lender listing
// @Summary List lenders
// @Description Get a filtered, paginated list of lenders
// @Tags Lenders
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param state query string false "State filter"
// @Param city query string false "City filter"
// @Param name query string false "Name filter"
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(9)
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /lenders [get]
func (h *LenderHandler) ListLenders(c *fiber.Ctx) error {
	page, _ := strconv.Atoi(c.Query("page", "1"))
	limit, _ := strconv.Atoi(c.Query("limit", "9"))

	input := &services.ListLendersInput{
		State: c.Query("state"),
		City:  c.Query("city"),
		Name:  c.Query("name"),
		Page:  page,
		Limit: limit,
	}

	result, err := h.lenderService.ListLenders(c.Context(), input)
	if err != nil {
		return response.InternalServerError(c, "Failed to list lenders")
	}

	return response.Success(c, "Lenders retrieved successfully", result)
}

// CreateLender handles creating a lender entry (Admin only)
// @Summary Create lender
// @Description Create a new lender directory entry (Admin only)
// @Tags Lenders
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.CreateLenderInput true "Lender data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /lenders [post]
func (h *LenderHandler) CreateLender(c *fiber.Ctx) error {
	var input services.CreateLenderInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	lender, err := h.lenderService.CreateLender(c.Context(), &input)
	if err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			return response.ValidationFailed(c, validationMessages(err))
		}
		return response.InternalServerError(c, "Failed to create lender")
	}

	return response.Created(c, "Lender created successfully", lender)
}

// UpdateLender handles partial updates to a lender (Admin only)
// @Summary Update lender
// @Description Update a lender's mutable fields (Admin only)
// @Tags Lenders
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Lender ID"
// @Param body body services.UpdateLenderInput true "Update data"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /lenders/{id} [put]
func (h *LenderHandler) UpdateLender(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid lender ID")
	}

	var input services.UpdateLenderInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	lender, err := h.lenderService.UpdateLender(c.Context(), uint(id), &input)
	if err != nil {
		if errors.Is(err, services.ErrLenderNotFoundSvc) {
			return response.NotFound(c, "Lender not found")
		}
		return response.InternalServerError(c, "Failed to update lender")
	}

	return response.Success(c, "Lender updated successfully", lender)
}

// DeleteLender handles deleting a lender (Admin only)
// @Summary Delete lender
// @Description Delete a lender directory entry (Admin only)
// @Tags Lenders
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Lender ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /lenders/{id} [delete]
func (h *LenderHandler) DeleteLender(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid lender ID")
	}

	if err := h.lenderService.DeleteLender(c.Context(), uint(id)); err != nil {
		if errors.Is(err, services.ErrLenderNotFoundSvc) {
			return response.NotFound(c, "Lender not found")
		}
		return response.InternalServerError(c, "Failed to delete lender")
	}

	return response.Success(c, "Lender deleted successfully", nil)
}
