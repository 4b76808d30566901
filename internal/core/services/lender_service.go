package services

import (
	"context"
	"errors"
	"strings"

	"bankerdir/internal/adapters/persistence/models"
	"bankerdir/internal/adapters/persistence/repositories"
	"bankerdir/internal/pkg/pagination"

	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"
)

// Lender service errors
var (
	ErrLenderNotFoundSvc = errors.New("lender not found")
)

// LenderService handles lender directory business logic
type LenderService struct {
	lenderRepo repositories.LenderRepository
	validate   *validator.Validate
}

// NewLenderService creates a new lender service
func NewLenderService(lenderRepo repositories.LenderRepository) *LenderService {
	return &LenderService{
		lenderRepo: lenderRepo,
		validate:   validator.New(),
	}
}

// ListLendersInput represents list lenders input
type ListLendersInput struct {
	State string
	City  string
	Name  string
	Page  int
	Limit int
}

// ListLendersOutput represents list lenders output
type ListLendersOutput struct {
	Data       []*models.Lender `json:"data"`
	Total      int64            `json:"total"`
	Page       int              `json:"page"`
	Limit      int              `json:"limit"`
	TotalPages int              `json:"total_pages"`
}

// CreateLenderInput represents create lender input.
// At least one of state/city is required.
type CreateLenderInput struct {
	Name        string `json:"name" validate:"required"`
	State       string `json:"state" validate:"required_without=City"`
	City        string `json:"city" validate:"required_without=State"`
	ManagerName string `json:"manager_name" validate:"required"`
	RMName      string `json:"rm_name"`
	RMContact   string `json:"rm_contact"`
	BankerName  string `json:"banker_name"`
}

// UpdateLenderInput represents update lender input; nil fields are unchanged
type UpdateLenderInput struct {
	Name        *string `json:"name"`
	State       *string `json:"state"`
	City        *string `json:"city"`
	ManagerName *string `json:"manager_name"`
	RMName      *string `json:"rm_name"`
	RMContact   *string `json:"rm_contact"`
	BankerName  *string `json:"banker_name"`
}

// ListLenders lists lenders matching the given criteria with pagination
func (s *LenderService) ListLenders(ctx context.Context, input *ListLendersInput) (*ListLendersOutput, error) {
	params := pagination.Normalize(input.Page, input.Limit)

	filter := &repositories.LenderFilter{
		State: strings.TrimSpace(input.State),
		City:  strings.TrimSpace(input.City),
		Name:  strings.TrimSpace(input.Name),
	}

	lenders, total, err := s.lenderRepo.List(ctx, filter, params.Offset, params.Limit)
	if err != nil {
		return nil, err
	}

	return &ListLendersOutput{
		Data:       lenders,
		Total:      total,
		Page:       params.Page,
		Limit:      params.Limit,
		TotalPages: pagination.TotalPages(total, params.Limit),
	}, nil
}

// CreateLender validates and creates a lender entry
func (s *LenderService) CreateLender(ctx context.Context, input *CreateLenderInput) (*models.Lender, error) {
	if err := s.validate.Struct(input); err != nil {
		return nil, err
	}

	lender := &models.Lender{
		Name:        strings.TrimSpace(input.Name),
		State:       strings.TrimSpace(input.State),
		City:        strings.TrimSpace(input.City),
		ManagerName: strings.TrimSpace(input.ManagerName),
		RMName:      strings.TrimSpace(input.RMName),
		RMContact:   strings.TrimSpace(input.RMContact),
		BankerName:  strings.TrimSpace(input.BankerName),
	}

	if err := s.lenderRepo.Create(ctx, lender); err != nil {
		return nil, err
	}

	return lender, nil
}

// UpdateLender applies a partial update to a lender
func (s *LenderService) UpdateLender(ctx context.Context, id uint, input *UpdateLenderInput) (*models.Lender, error) {
	lender, err := s.lenderRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrLenderNotFoundSvc
		}
		return nil, err
	}

	if input.Name != nil {
		lender.Name = strings.TrimSpace(*input.Name)
	}
	if input.State != nil {
		lender.State = strings.TrimSpace(*input.State)
	}
	if input.City != nil {
		lender.City = strings.TrimSpace(*input.City)
	}
	if input.ManagerName != nil {
		lender.ManagerName = strings.TrimSpace(*input.ManagerName)
	}
	if input.RMName != nil {
		lender.RMName = strings.TrimSpace(*input.RMName)
	}
	if input.RMContact != nil {
		lender.RMContact = strings.TrimSpace(*input.RMContact)
	}
	if input.BankerName != nil {
		lender.BankerName = strings.TrimSpace(*input.BankerName)
	}

	if err := s.lenderRepo.Update(ctx, lender); err != nil {
		return nil, err
	}

	return lender, nil
}

// DeleteLender deletes a lender
func (s *LenderService) DeleteLender(ctx context.Context, id uint) error {
	_, err := s.lenderRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrLenderNotFoundSvc
		}
		return err
	}
	return s.lenderRepo.Delete(ctx, id)
}
