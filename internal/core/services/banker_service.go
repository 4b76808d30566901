package services

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log"
	"strings"

	"bankerdir/internal/adapters/persistence/models"
	"bankerdir/internal/adapters/persistence/repositories"
	"bankerdir/internal/pkg/pagination"

	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"
)

// Banker service errors
var (
	ErrBankerNotFoundSvc = errors.New("banker not found")
	ErrEmptyImportFile   = errors.New("import file contains no data rows")
	ErrBadImportHeader   = errors.New("import file header does not match the template")
)

// importHeader is the expected bulk-upload CSV header. It matches the
// console's export/template format; tags within a field are separated by "; ".
var importHeader = []string{"Name", "Affiliation", "Locations", "Products", "Official Email", "Personal Email", "Phone"}

// BankerService handles banker directory business logic
type BankerService struct {
	bankerRepo repositories.BankerRepository
	validate   *validator.Validate
}

// NewBankerService creates a new banker service
func NewBankerService(bankerRepo repositories.BankerRepository) *BankerService {
	return &BankerService{
		bankerRepo: bankerRepo,
		validate:   validator.New(),
	}
}

// ListBankersInput represents list bankers input
type ListBankersInput struct {
	Location    string
	Name        string
	Affiliation string
	Email       string
	Page        int
	Limit       int
}

// ListBankersOutput represents list bankers output
type ListBankersOutput struct {
	Data       []*models.Banker `json:"data"`
	Total      int64            `json:"total"`
	Page       int              `json:"page"`
	Limit      int              `json:"limit"`
	TotalPages int              `json:"total_pages"`
}

// CreateBankerInput represents create banker input
type CreateBankerInput struct {
	Name          string   `json:"name" validate:"required"`
	Affiliation   string   `json:"affiliation" validate:"required"`
	Locations     []string `json:"locations" validate:"required,min=1"`
	Products      []string `json:"products" validate:"required,min=1"`
	OfficialEmail string   `json:"official_email" validate:"omitempty,email"`
	PersonalEmail string   `json:"personal_email" validate:"omitempty,email"`
	Phone         string   `json:"phone" validate:"required"`
}

// UpdateBankerInput represents update banker input.
// Nil fields are left unchanged; identity is never updatable.
type UpdateBankerInput struct {
	Name          *string   `json:"name"`
	Affiliation   *string   `json:"affiliation"`
	Locations     *[]string `json:"locations"`
	Products      *[]string `json:"products"`
	OfficialEmail *string   `json:"official_email"`
	PersonalEmail *string   `json:"personal_email"`
	Phone         *string   `json:"phone"`
}

// ImportResult represents the outcome of a bulk upload
type ImportResult struct {
	Imported  int      `json:"imported"`
	Skipped   int      `json:"skipped"`
	RowErrors []string `json:"row_errors,omitempty"`
}

// ListBankers lists bankers matching the given criteria with pagination
func (s *BankerService) ListBankers(ctx context.Context, input *ListBankersInput) (*ListBankersOutput, error) {
	params := pagination.Normalize(input.Page, input.Limit)

	filter := &repositories.BankerFilter{
		Location:    strings.TrimSpace(input.Location),
		Name:        strings.TrimSpace(input.Name),
		Affiliation: strings.TrimSpace(input.Affiliation),
		Email:       strings.TrimSpace(input.Email),
	}

	bankers, total, err := s.bankerRepo.List(ctx, filter, params.Offset, params.Limit)
	if err != nil {
		return nil, err
	}

	return &ListBankersOutput{
		Data:       bankers,
		Total:      total,
		Page:       params.Page,
		Limit:      params.Limit,
		TotalPages: pagination.TotalPages(total, params.Limit),
	}, nil
}

// GetBankerByID gets a banker by ID
func (s *BankerService) GetBankerByID(ctx context.Context, id uint) (*models.Banker, error) {
	banker, err := s.bankerRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBankerNotFoundSvc
		}
		return nil, err
	}
	return banker, nil
}

// CreateBanker validates and creates a directory entry
func (s *BankerService) CreateBanker(ctx context.Context, input *CreateBankerInput) (*models.Banker, error) {
	if err := s.validate.Struct(input); err != nil {
		return nil, err
	}

	banker := &models.Banker{
		Name:          strings.TrimSpace(input.Name),
		Affiliation:   strings.TrimSpace(input.Affiliation),
		Locations:     cleanTags(input.Locations),
		Products:      cleanTags(input.Products),
		OfficialEmail: strings.TrimSpace(input.OfficialEmail),
		PersonalEmail: strings.TrimSpace(input.PersonalEmail),
		Phone:         strings.TrimSpace(input.Phone),
	}

	if err := s.bankerRepo.Create(ctx, banker); err != nil {
		return nil, err
	}

	return banker, nil
}

// UpdateBanker applies a partial update to a banker
func (s *BankerService) UpdateBanker(ctx context.Context, id uint, input *UpdateBankerInput) (*models.Banker, error) {
	banker, err := s.bankerRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBankerNotFoundSvc
		}
		return nil, err
	}

	if input.Name != nil {
		banker.Name = strings.TrimSpace(*input.Name)
	}
	if input.Affiliation != nil {
		banker.Affiliation = strings.TrimSpace(*input.Affiliation)
	}
	if input.Locations != nil {
		banker.Locations = cleanTags(*input.Locations)
	}
	if input.Products != nil {
		banker.Products = cleanTags(*input.Products)
	}
	if input.OfficialEmail != nil {
		banker.OfficialEmail = strings.TrimSpace(*input.OfficialEmail)
	}
	if input.PersonalEmail != nil {
		banker.PersonalEmail = strings.TrimSpace(*input.PersonalEmail)
	}
	if input.Phone != nil {
		banker.Phone = strings.TrimSpace(*input.Phone)
	}

	if err := s.bankerRepo.Update(ctx, banker); err != nil {
		return nil, err
	}

	return banker, nil
}

// DeleteBanker deletes a banker
func (s *BankerService) DeleteBanker(ctx context.Context, id uint) error {
	_, err := s.bankerRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrBankerNotFoundSvc
		}
		return err
	}
	return s.bankerRepo.Delete(ctx, id)
}

// ImportCSV parses an uploaded CSV file and creates the contained bankers.
// Rows that fail validation are skipped and reported; valid rows are
// inserted in one batch.
func (s *BankerService) ImportCSV(ctx context.Context, file io.Reader) (*ImportResult, error) {
	reader := csv.NewReader(file)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrEmptyImportFile
		}
		return nil, err
	}
	if !matchesHeader(header) {
		return nil, ErrBadImportHeader
	}

	result := &ImportResult{}
	var bankers []*models.Banker

	for line := 2; ; line++ {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			result.Skipped++
			result.RowErrors = append(result.RowErrors, fmt.Sprintf("line %d: %v", line, err))
			continue
		}

		input := &CreateBankerInput{
			Name:          record[0],
			Affiliation:   record[1],
			Locations:     splitTags(record[2]),
			Products:      splitTags(record[3]),
			OfficialEmail: record[4],
			PersonalEmail: record[5],
			Phone:         record[6],
		}
		if err := s.validate.Struct(input); err != nil {
			result.Skipped++
			result.RowErrors = append(result.RowErrors, fmt.Sprintf("line %d: %v", line, err))
			continue
		}

		bankers = append(bankers, &models.Banker{
			Name:          strings.TrimSpace(input.Name),
			Affiliation:   strings.TrimSpace(input.Affiliation),
			Locations:     cleanTags(input.Locations),
			Products:      cleanTags(input.Products),
			OfficialEmail: strings.TrimSpace(input.OfficialEmail),
			PersonalEmail: strings.TrimSpace(input.PersonalEmail),
			Phone:         strings.TrimSpace(input.Phone),
		})
	}

	if len(bankers) == 0 && result.Skipped == 0 {
		return nil, ErrEmptyImportFile
	}

	if err := s.bankerRepo.CreateBatch(ctx, bankers); err != nil {
		return nil, err
	}
	result.Imported = len(bankers)

	log.Printf("✅ Bulk upload: imported %d bankers, skipped %d rows", result.Imported, result.Skipped)
	return result, nil
}

func matchesHeader(header []string) bool {
	if len(header) != len(importHeader) {
		return false
	}
	for i, h := range header {
		if !strings.EqualFold(strings.TrimSpace(h), importHeader[i]) {
			return false
		}
	}
	return true
}

// splitTags splits a "; " separated field into tags
func splitTags(field string) []string {
	return cleanTags(strings.Split(field, ";"))
}

// cleanTags trims tags and drops empty ones
func cleanTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		if t = strings.TrimSpace(t); t != "" {
			out = append(out, t)
		}
	}
	return out
}
