package models

import (
	"time"

	"bankerdir/internal/core/domain"

	"gorm.io/gorm"
)

// ============================================================
// Auth & User Tables
// ============================================================

// User represents users table
type User struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	FullName  string         `gorm:"size:100;not null" json:"full_name"`
	Email     string         `gorm:"uniqueIndex;size:100;not null" json:"email"`
	Password  string         `gorm:"size:255;not null" json:"-"`
	Gender    string         `gorm:"size:10" json:"gender"`
	Role      string         `gorm:"size:20;default:'USER'" json:"role"`
	IsActive  bool           `gorm:"default:true" json:"is_active"`
	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (User) TableName() string {
	return "users"
}

// UserResponse DTO
type UserResponse struct {
	ID        uint      `json:"id"`
	FullName  string    `json:"full_name"`
	Email     string    `json:"email"`
	Gender    string    `json:"gender"`
	Role      string    `json:"role"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

func (u *User) ToResponse() *UserResponse {
	return &UserResponse{
		ID:        u.ID,
		FullName:  u.FullName,
		Email:     u.Email,
		Gender:    u.Gender,
		Role:      u.Role,
		IsActive:  u.IsActive,
		CreatedAt: u.CreatedAt,
	}
}

// RefreshToken represents refresh_tokens table
type RefreshToken struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	UserID    uint       `gorm:"index;not null" json:"user_id"`
	TokenHash string     `gorm:"size:255;not null;index" json:"-"`
	ExpiresAt time.Time  `gorm:"not null" json:"expires_at"`
	CreatedAt time.Time  `gorm:"autoCreateTime" json:"created_at"`
	RevokedAt *time.Time `gorm:"index" json:"revoked_at"`
	User      User       `gorm:"foreignKey:UserID" json:"-"`
}

func (RefreshToken) TableName() string {
	return "refresh_tokens"
}

func (rt *RefreshToken) IsRevoked() bool {
	return rt.RevokedAt != nil
}

func (rt *RefreshToken) IsExpired() bool {
	return time.Now().After(rt.ExpiresAt)
}

// ============================================================
// Directory Tables
// ============================================================

// Banker represents bankers table.
// Location and product tags are unordered free-text collections stored as JSON.
type Banker struct {
	ID            uint           `gorm:"primaryKey" json:"id"`
	Name          string         `gorm:"size:100;not null;index" json:"name"`
	Affiliation   string         `gorm:"size:100;not null;index" json:"affiliation"`
	Locations     []string       `gorm:"serializer:json" json:"locations"`
	Products      []string       `gorm:"serializer:json" json:"products"`
	OfficialEmail string         `gorm:"size:100;index" json:"official_email"`
	PersonalEmail string         `gorm:"size:100" json:"personal_email,omitempty"`
	Phone         string         `gorm:"size:30" json:"phone"`
	CreatedAt     time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Banker) TableName() string {
	return "bankers"
}

// Lender represents lenders table
type Lender struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	Name        string         `gorm:"size:100;not null;index" json:"name"`
	State       string         `gorm:"size:50;index" json:"state"`
	City        string         `gorm:"size:50;index" json:"city"`
	ManagerName string         `gorm:"size:100" json:"manager_name"`
	RMName      string         `gorm:"size:100" json:"rm_name,omitempty"`
	RMContact   string         `gorm:"size:100" json:"rm_contact,omitempty"`
	BankerName  string         `gorm:"size:100" json:"banker_name,omitempty"`
	CreatedAt   time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Lender) TableName() string {
	return "lenders"
}

// ============================================================
// Review Queue Table
// ============================================================

// ReviewSubmission represents review_submissions table.
// Carries the full banker payload plus review state; once DecidedAt is set
// the row is immutable.
type ReviewSubmission struct {
	ID            uint           `gorm:"primaryKey" json:"id"`
	Name          string         `gorm:"size:100;not null" json:"name"`
	Affiliation   string         `gorm:"size:100;not null" json:"affiliation"`
	Locations     []string       `gorm:"serializer:json" json:"locations"`
	Products      []string       `gorm:"serializer:json" json:"products"`
	OfficialEmail string         `gorm:"size:100" json:"official_email"`
	PersonalEmail string         `gorm:"size:100" json:"personal_email,omitempty"`
	Phone         string         `gorm:"size:30" json:"phone"`
	Status        string         `gorm:"size:20;default:'PENDING';index" json:"status"`
	Reason        string         `gorm:"type:text" json:"reason,omitempty"`
	SubmittedByID uint           `gorm:"index" json:"submitted_by_id"`
	DecidedAt     *time.Time     `json:"decided_at,omitempty"`
	CreatedAt     time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
}

func (ReviewSubmission) TableName() string {
	return "review_submissions"
}

func (r *ReviewSubmission) IsDecided() bool {
	return r.Status != string(domain.ReviewPending)
}

// ToBanker builds the directory entry materialized on approval
func (r *ReviewSubmission) ToBanker() *Banker {
	return &Banker{
		Name:          r.Name,
		Affiliation:   r.Affiliation,
		Locations:     r.Locations,
		Products:      r.Products,
		OfficialEmail: r.OfficialEmail,
		PersonalEmail: r.PersonalEmail,
		Phone:         r.Phone,
	}
}

// AutoMigrate creates tables if they don't exist
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&User{},
		&RefreshToken{},
		&Banker{},
		&Lender{},
		&ReviewSubmission{},
	)
}
