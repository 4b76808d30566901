package repositories

import (
	"context"

	"bankerdir/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// lenderRepository implements LenderRepository interface
type lenderRepository struct {
	db *gorm.DB
}

// NewLenderRepository creates a new lender repository
func NewLenderRepository(db *gorm.DB) LenderRepository {
	return &lenderRepository{db: db}
}

// Create creates a new lender
func (r *lenderRepository) Create(ctx context.Context, lender *models.Lender) error {
	return r.db.WithContext(ctx).Create(lender).Error
}

// GetByID gets a lender by ID
func (r *lenderRepository) GetByID(ctx context.Context, id uint) (*models.Lender, error) {
	var lender models.Lender
	err := r.db.WithContext(ctx).First(&lender, id).Error
	if err != nil {
		return nil, err
	}
	return &lender, nil
}

// Update updates a lender
func (r *lenderRepository) Update(ctx context.Context, lender *models.Lender) error {
	return r.db.WithContext(ctx).Save(lender).Error
}

// Delete soft deletes a lender
func (r *lenderRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Lender{}, id).Error
}

// List lists lenders matching the filter with pagination
func (r *lenderRepository) List(ctx context.Context, filter *LenderFilter, offset, limit int) ([]*models.Lender, int64, error) {
	var lenders []*models.Lender
	var total int64

	query := r.db.WithContext(ctx).Model(&models.Lender{})
	if filter != nil {
		if filter.State != "" {
			query = query.Where("state LIKE ?", "%"+filter.State+"%")
		}
		if filter.City != "" {
			query = query.Where("city LIKE ?", "%"+filter.City+"%")
		}
		if filter.Name != "" {
			query = query.Where("name LIKE ?", "%"+filter.Name+"%")
		}
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.
		Order("name ASC").
		Offset(offset).
		Limit(limit).
		Find(&lenders).Error
	if err != nil {
		return nil, 0, err
	}

	return lenders, total, nil
}
