package repositories

import (
	"context"
	"time"

	"bankerdir/internal/adapters/persistence/models"
	"bankerdir/internal/core/domain"

	"gorm.io/gorm"
)

// reviewRepository implements ReviewRepository interface
type reviewRepository struct {
	db *gorm.DB
}

// NewReviewRepository creates a new review repository
func NewReviewRepository(db *gorm.DB) ReviewRepository {
	return &reviewRepository{db: db}
}

// Create creates a new review submission
func (r *reviewRepository) Create(ctx context.Context, sub *models.ReviewSubmission) error {
	return r.db.WithContext(ctx).Create(sub).Error
}

// GetByID gets a review submission by ID
func (r *reviewRepository) GetByID(ctx context.Context, id uint) (*models.ReviewSubmission, error) {
	var sub models.ReviewSubmission
	err := r.db.WithContext(ctx).First(&sub, id).Error
	if err != nil {
		return nil, err
	}
	return &sub, nil
}

// Update updates a review submission
func (r *reviewRepository) Update(ctx context.Context, sub *models.ReviewSubmission) error {
	return r.db.WithContext(ctx).Save(sub).Error
}

// List lists review submissions, newest first.
// An empty status lists all submissions.
func (r *reviewRepository) List(ctx context.Context, status string, offset, limit int) ([]*models.ReviewSubmission, int64, error) {
	var subs []*models.ReviewSubmission
	var total int64

	query := r.db.WithContext(ctx).Model(&models.ReviewSubmission{})
	if status != "" {
		query = query.Where("status = ?", status)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&subs).Error
	if err != nil {
		return nil, 0, err
	}

	return subs, total, nil
}

// DeleteDecidedBefore removes decided submissions older than the given number
// of days (nightly cleanup job)
func (r *reviewRepository) DeleteDecidedBefore(ctx context.Context, days int) (int64, error) {
	cutoff := time.Now().AddDate(0, 0, -days)
	result := r.db.WithContext(ctx).
		Where("status <> ?", string(domain.ReviewPending)).
		Where("decided_at IS NOT NULL").
		Where("decided_at < ?", cutoff).
		Delete(&models.ReviewSubmission{})
	return result.RowsAffected, result.Error
}
