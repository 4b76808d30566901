package repositories

import (
	"context"

	"bankerdir/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// bankerRepository implements BankerRepository interface
type bankerRepository struct {
	db *gorm.DB
}

// NewBankerRepository creates a new banker repository
func NewBankerRepository(db *gorm.DB) BankerRepository {
	return &bankerRepository{db: db}
}

// Create creates a new banker
func (r *bankerRepository) Create(ctx context.Context, banker *models.Banker) error {
	return r.db.WithContext(ctx).Create(banker).Error
}

// CreateBatch creates bankers in a single insert (bulk upload)
func (r *bankerRepository) CreateBatch(ctx context.Context, bankers []*models.Banker) error {
	if len(bankers) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(bankers).Error
}

// GetByID gets a banker by ID
func (r *bankerRepository) GetByID(ctx context.Context, id uint) (*models.Banker, error) {
	var banker models.Banker
	err := r.db.WithContext(ctx).First(&banker, id).Error
	if err != nil {
		return nil, err
	}
	return &banker, nil
}

// Update updates a banker
func (r *bankerRepository) Update(ctx context.Context, banker *models.Banker) error {
	return r.db.WithContext(ctx).Save(banker).Error
}

// Delete soft deletes a banker
func (r *bankerRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Banker{}, id).Error
}

// List lists bankers matching the filter with pagination.
// Only non-empty criteria are applied; the count uses the same filter.
func (r *bankerRepository) List(ctx context.Context, filter *BankerFilter, offset, limit int) ([]*models.Banker, int64, error) {
	var bankers []*models.Banker
	var total int64

	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.Banker{}), filter)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.
		Order("name ASC").
		Offset(offset).
		Limit(limit).
		Find(&bankers).Error
	if err != nil {
		return nil, 0, err
	}

	return bankers, total, nil
}

func (r *bankerRepository) applyFilter(query *gorm.DB, filter *BankerFilter) *gorm.DB {
	if filter == nil {
		return query
	}
	if filter.Name != "" {
		query = query.Where("name LIKE ?", "%"+filter.Name+"%")
	}
	if filter.Affiliation != "" {
		query = query.Where("affiliation LIKE ?", "%"+filter.Affiliation+"%")
	}
	if filter.Email != "" {
		query = query.Where("official_email LIKE ?", "%"+filter.Email+"%")
	}
	if filter.Location != "" {
		// Tags are stored as a JSON array; a text match is sufficient
		// for the free-text location search.
		query = query.Where("locations LIKE ?", "%"+filter.Location+"%")
	}
	return query
}
