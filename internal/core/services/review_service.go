package services

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"bankerdir/internal/adapters/persistence/models"
	"bankerdir/internal/adapters/persistence/repositories"
	"bankerdir/internal/core/domain"
	"bankerdir/internal/pkg/pagination"

	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"
)

// Review service errors
var (
	ErrSubmissionNotFound = errors.New("review submission not found")
	ErrReasonRequired     = errors.New("rejection reason is required")
	ErrAlreadyDecided     = errors.New("submission has already been decided")
	ErrInvalidStatus      = errors.New("invalid review status")
)

// ReviewService handles the directory review queue
type ReviewService struct {
	reviewRepo repositories.ReviewRepository
	bankerRepo repositories.BankerRepository
	validate   *validator.Validate
}

// NewReviewService creates a new review service
func NewReviewService(
	reviewRepo repositories.ReviewRepository,
	bankerRepo repositories.BankerRepository,
) *ReviewService {
	return &ReviewService{
		reviewRepo: reviewRepo,
		bankerRepo: bankerRepo,
		validate:   validator.New(),
	}
}

// SubmitInput represents a banker entry submitted for review
type SubmitInput struct {
	Name          string   `json:"name" validate:"required"`
	Affiliation   string   `json:"affiliation" validate:"required"`
	Locations     []string `json:"locations" validate:"required,min=1"`
	Products      []string `json:"products" validate:"required,min=1"`
	OfficialEmail string   `json:"official_email" validate:"omitempty,email"`
	PersonalEmail string   `json:"personal_email" validate:"omitempty,email"`
	Phone         string   `json:"phone" validate:"required"`
}

// ListSubmissionsOutput represents list submissions output
type ListSubmissionsOutput struct {
	Data       []*models.ReviewSubmission `json:"data"`
	Total      int64                      `json:"total"`
	Page       int                        `json:"page"`
	Limit      int                        `json:"limit"`
	TotalPages int                        `json:"total_pages"`
}

// Submit queues a new banker entry for admin review
func (s *ReviewService) Submit(ctx context.Context, submitterID uint, input *SubmitInput) (*models.ReviewSubmission, error) {
	if err := s.validate.Struct(input); err != nil {
		return nil, err
	}

	sub := &models.ReviewSubmission{
		Name:          strings.TrimSpace(input.Name),
		Affiliation:   strings.TrimSpace(input.Affiliation),
		Locations:     cleanTags(input.Locations),
		Products:      cleanTags(input.Products),
		OfficialEmail: strings.TrimSpace(input.OfficialEmail),
		PersonalEmail: strings.TrimSpace(input.PersonalEmail),
		Phone:         strings.TrimSpace(input.Phone),
		Status:        string(domain.ReviewPending),
		SubmittedByID: submitterID,
	}

	if err := s.reviewRepo.Create(ctx, sub); err != nil {
		return nil, err
	}

	return sub, nil
}

// ListSubmissions lists review submissions, optionally filtered by status
func (s *ReviewService) ListSubmissions(ctx context.Context, status string, page, limit int) (*ListSubmissionsOutput, error) {
	params := pagination.Normalize(page, limit)

	status = strings.ToUpper(strings.TrimSpace(status))
	if status != "" && !domain.ValidReviewStatus(status) {
		return nil, ErrInvalidStatus
	}

	subs, total, err := s.reviewRepo.List(ctx, status, params.Offset, params.Limit)
	if err != nil {
		return nil, err
	}

	return &ListSubmissionsOutput{
		Data:       subs,
		Total:      total,
		Page:       params.Page,
		Limit:      params.Limit,
		TotalPages: pagination.TotalPages(total, params.Limit),
	}, nil
}

// Approve approves a pending submission and materializes the banker entry
func (s *ReviewService) Approve(ctx context.Context, id uint) (*models.ReviewSubmission, error) {
	sub, err := s.getPending(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.bankerRepo.Create(ctx, sub.ToBanker()); err != nil {
		return nil, err
	}

	now := time.Now()
	sub.Status = string(domain.ReviewApproved)
	sub.DecidedAt = &now
	if err := s.reviewRepo.Update(ctx, sub); err != nil {
		return nil, err
	}

	log.Printf("✅ Submission #%d approved (%s)", sub.ID, sub.Name)
	return sub, nil
}

// Reject rejects a pending submission. The reason is mandatory.
func (s *ReviewService) Reject(ctx context.Context, id uint, reason string) (*models.ReviewSubmission, error) {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return nil, ErrReasonRequired
	}

	sub, err := s.getPending(ctx, id)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	sub.Status = string(domain.ReviewRejected)
	sub.Reason = reason
	sub.DecidedAt = &now
	if err := s.reviewRepo.Update(ctx, sub); err != nil {
		return nil, err
	}

	log.Printf("🛑 Submission #%d rejected: %s", sub.ID, reason)
	return sub, nil
}

func (s *ReviewService) getPending(ctx context.Context, id uint) (*models.ReviewSubmission, error) {
	sub, err := s.reviewRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSubmissionNotFound
		}
		return nil, err
	}
	if sub.IsDecided() {
		return nil, ErrAlreadyDecided
	}
	return sub, nil
}
