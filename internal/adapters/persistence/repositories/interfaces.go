package repositories

import (
	"context"

	"bankerdir/internal/adapters/persistence/models"
)

// BankerFilter carries the directory search criteria.
// Empty fields are not applied to the query.
type BankerFilter struct {
	Location    string
	Name        string
	Affiliation string
	Email       string
}

// LenderFilter carries the lender search criteria
type LenderFilter struct {
	State string
	City  string
	Name  string
}

// BankerRepository defines banker repository interface
type BankerRepository interface {
	Create(ctx context.Context, banker *models.Banker) error
	CreateBatch(ctx context.Context, bankers []*models.Banker) error
	GetByID(ctx context.Context, id uint) (*models.Banker, error)
	Update(ctx context.Context, banker *models.Banker) error
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, filter *BankerFilter, offset, limit int) ([]*models.Banker, int64, error)
}

// LenderRepository defines lender repository interface
type LenderRepository interface {
	Create(ctx context.Context, lender *models.Lender) error
	GetByID(ctx context.Context, id uint) (*models.Lender, error)
	Update(ctx context.Context, lender *models.Lender) error
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, filter *LenderFilter, offset, limit int) ([]*models.Lender, int64, error)
}

// ReviewRepository defines review submission repository interface
type ReviewRepository interface {
	Create(ctx context.Context, sub *models.ReviewSubmission) error
	GetByID(ctx context.Context, id uint) (*models.ReviewSubmission, error)
	Update(ctx context.Context, sub *models.ReviewSubmission) error
	List(ctx context.Context, status string, offset, limit int) ([]*models.ReviewSubmission, int64, error)
	DeleteDecidedBefore(ctx context.Context, days int) (int64, error)
}

// UserRepository defines user repository interface
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id uint) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	Update(ctx context.Context, user *models.User) error
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, search string, offset, limit int) ([]*models.User, int64, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
}

// RefreshTokenRepository defines refresh token repository interface
type RefreshTokenRepository interface {
	Create(ctx context.Context, token *models.RefreshToken) error
	GetByTokenHash(ctx context.Context, tokenHash string) (*models.RefreshToken, error)
	Revoke(ctx context.Context, id uint) error
	RevokeByTokenHash(ctx context.Context, tokenHash string) error
	RevokeAllByUserID(ctx context.Context, userID uint) error
	DeleteExpired(ctx context.Context) error
}
