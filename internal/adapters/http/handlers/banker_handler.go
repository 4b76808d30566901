package handlers

import (
	"errors"
	"path/filepath"
	"strconv"
	"strings"

	"bankerdir/internal/core/services"
	"bankerdir/internal/pkg/response"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// allowedUploadExts is the accepted bulk-upload extension set
var allowedUploadExts = map[string]bool{
	".csv":  true,
	".xls":  true,
	".xlsx": true,
}

// BankerHandler handles banker directory endpoints
type BankerHandler struct {
	bankerService *services.BankerService
}

// NewBankerHandler creates a new banker handler
func NewBankerHandler(bankerService *services.BankerService) *BankerHandler {
	return &BankerHandler{bankerService: bankerService}
}

// ListBankers handles the filtered directory listing
// @Summary List bankers
// @Description Get a filtered, paginated list of bankers
// @Tags Bankers
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param location query string false "Location tag filter"
// @Param name query string false "Name filter"
// @Param affiliation query string false "Affiliation filter"
// @Param email query string false "Official email filter"
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(9)
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /bankers [get]
func (h *BankerHandler) ListBankers(c *fiber.Ctx) error {
	page, _ := strconv.Atoi(c.Query("page", "1"))
	limit, _ := strconv.Atoi(c.Query("limit", "9"))

	input := &services.ListBankersInput{
		Location:    c.Query("location"),
		Name:        c.Query("name"),
		Affiliation: c.Query("affiliation"),
		Email:       c.Query("email"),
		Page:        page,
		Limit:       limit,
	}

	result, err := h.bankerService.ListBankers(c.Context(), input)
	if err != nil {
		return response.InternalServerError(c, "Failed to list bankers")
	}

	return response.Success(c, "Bankers retrieved successfully", result)
}

// CreateBanker handles creating a directory entry (Admin only)
// @Summary Create banker
// @Description Create a new banker directory entry (Admin only)
// @Tags Bankers
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.CreateBankerInput true "Banker data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 401 {object} response.Response
// @Failure 403 {object} response.Response
// @Router /bankers [post]
func (h *BankerHandler) CreateBanker(c *fiber.Ctx) error {
	var input services.CreateBankerInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	banker, err := h.bankerService.CreateBanker(c.Context(), &input)
	if err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			return response.ValidationFailed(c, validationMessages(err))
		}
		return response.InternalServerError(c, "Failed to create banker")
	}

	return response.Created(c, "Banker created successfully", banker)
}

// UpdateBanker handles partial updates to a directory entry (Admin only)
// @Summary Update banker
// @Description Update a banker's mutable fields (Admin only)
// @Tags Bankers
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Banker ID"
// @Param body body services.UpdateBankerInput true "Update data"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /bankers/{id} [put]
func (h *BankerHandler) UpdateBanker(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid banker ID")
	}

	var input services.UpdateBankerInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	banker, err := h.bankerService.UpdateBanker(c.Context(), uint(id), &input)
	if err != nil {
		if errors.Is(err, services.ErrBankerNotFoundSvc) {
			return response.NotFound(c, "Banker not found")
		}
		return response.InternalServerError(c, "Failed to update banker")
	}

	return response.Success(c, "Banker updated successfully", banker)
}

// DeleteBanker handles deleting a directory entry (Admin only)
// @Summary Delete banker
// @Description Delete a banker directory entry (Admin only)
// @Tags Bankers
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Banker ID"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /bankers/{id} [delete]
func (h *BankerHandler) DeleteBanker(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid banker ID")
	}

	if err := h.bankerService.DeleteBanker(c.Context(), uint(id)); err != nil {
		if errors.Is(err, services.ErrBankerNotFoundSvc) {
			return response.NotFound(c, "Banker not found")
		}
		return response.InternalServerError(c, "Failed to delete banker")
	}

	return response.Success(c, "Banker deleted successfully", nil)
}

// UploadBankers handles bulk upload of directory entries (Admin only)
// @Summary Bulk upload bankers
// @Description Import bankers from an uploaded file (Admin only)
// @Tags Bankers
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param file formData file true "Import file (.csv, .xls, .xlsx)"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /bankers/upload [post]
func (h *BankerHandler) UploadBankers(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return response.BadRequest(c, "File is required (field name: file)")
	}

	ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
	if !allowedUploadExts[ext] {
		return response.BadRequest(c, "Unsupported file type: allowed extensions are .csv, .xls, .xlsx")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return response.InternalServerError(c, "Failed to read uploaded file")
	}
	defer file.Close()

	result, err := h.bankerService.ImportCSV(c.Context(), file)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrEmptyImportFile):
			return response.BadRequest(c, "Import file contains no data rows")
		case errors.Is(err, services.ErrBadImportHeader):
			return response.BadRequest(c, "Import file header does not match the template")
		default:
			return response.InternalServerError(c, "Failed to import bankers")
		}
	}

	return response.Success(c, "Bankers imported successfully", result)
}
