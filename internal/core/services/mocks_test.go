package services

import (
	"context"

	"bankerdir/internal/adapters/persistence/models"
	"bankerdir/internal/adapters/persistence/repositories"

	"gorm.io/gorm"
)

// MockBankerRepository is a func-field test double for BankerRepository
type MockBankerRepository struct {
	CreateFunc      func(ctx context.Context, banker *models.Banker) error
	CreateBatchFunc func(ctx context.Context, bankers []*models.Banker) error
	GetByIDFunc     func(ctx context.Context, id uint) (*models.Banker, error)
	UpdateFunc      func(ctx context.Context, banker *models.Banker) error
	DeleteFunc      func(ctx context.Context, id uint) error
	ListFunc        func(ctx context.Context, filter *repositories.BankerFilter, offset, limit int) ([]*models.Banker, int64, error)
}

func (m *MockBankerRepository) Create(ctx context.Context, banker *models.Banker) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, banker)
	}
	return nil
}

func (m *MockBankerRepository) CreateBatch(ctx context.Context, bankers []*models.Banker) error {
	if m.CreateBatchFunc != nil {
		return m.CreateBatchFunc(ctx, bankers)
	}
	return nil
}

func (m *MockBankerRepository) GetByID(ctx context.Context, id uint) (*models.Banker, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *MockBankerRepository) Update(ctx context.Context, banker *models.Banker) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, banker)
	}
	return nil
}

func (m *MockBankerRepository) Delete(ctx context.Context, id uint) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

func (m *MockBankerRepository) List(ctx context.Context, filter *repositories.BankerFilter, offset, limit int) ([]*models.Banker, int64, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, filter, offset, limit)
	}
	return nil, 0, nil
}

// MockReviewRepository is a func-field test double for ReviewRepository
type MockReviewRepository struct {
	CreateFunc              func(ctx context.Context, sub *models.ReviewSubmission) error
	GetByIDFunc             func(ctx context.Context, id uint) (*models.ReviewSubmission, error)
	UpdateFunc              func(ctx context.Context, sub *models.ReviewSubmission) error
	ListFunc                func(ctx context.Context, status string, offset, limit int) ([]*models.ReviewSubmission, int64, error)
	DeleteDecidedBeforeFunc func(ctx context.Context, days int) (int64, error)
}

func (m *MockReviewRepository) Create(ctx context.Context, sub *models.ReviewSubmission) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, sub)
	}
	return nil
}

func (m *MockReviewRepository) GetByID(ctx context.Context, id uint) (*models.ReviewSubmission, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *MockReviewRepository) Update(ctx context.Context, sub *models.ReviewSubmission) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, sub)
	}
	return nil
}

func (m *MockReviewRepository) List(ctx context.Context, status string, offset, limit int) ([]*models.ReviewSubmission, int64, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, status, offset, limit)
	}
	return nil, 0, nil
}

func (m *MockReviewRepository) DeleteDecidedBefore(ctx context.Context, days int) (int64, error) {
	if m.DeleteDecidedBeforeFunc != nil {
		return m.DeleteDecidedBeforeFunc(ctx, days)
	}
	return 0, nil
}

// MockUserRepository is a func-field test double for UserRepository
type MockUserRepository struct {
	CreateFunc        func(ctx context.Context, user *models.User) error
	GetByIDFunc       func(ctx context.Context, id uint) (*models.User, error)
	GetByEmailFunc    func(ctx context.Context, email string) (*models.User, error)
	UpdateFunc        func(ctx context.Context, user *models.User) error
	DeleteFunc        func(ctx context.Context, id uint) error
	ListFunc          func(ctx context.Context, search string, offset, limit int) ([]*models.User, int64, error)
	ExistsByEmailFunc func(ctx context.Context, email string) (bool, error)
}

func (m *MockUserRepository) Create(ctx context.Context, user *models.User) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, user)
	}
	return nil
}

func (m *MockUserRepository) GetByID(ctx context.Context, id uint) (*models.User, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	if m.GetByEmailFunc != nil {
		return m.GetByEmailFunc(ctx, email)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *MockUserRepository) Update(ctx context.Context, user *models.User) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, user)
	}
	return nil
}

func (m *MockUserRepository) Delete(ctx context.Context, id uint) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

func (m *MockUserRepository) List(ctx context.Context, search string, offset, limit int) ([]*models.User, int64, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, search, offset, limit)
	}
	return nil, 0, nil
}

func (m *MockUserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	if m.ExistsByEmailFunc != nil {
		return m.ExistsByEmailFunc(ctx, email)
	}
	return false, nil
}
