package api

import "time"

// Banker is a directory record as served by the backend
type Banker struct {
	ID            uint     `json:"id"`
	Name          string   `json:"name"`
	Affiliation   string   `json:"affiliation"`
	Locations     []string `json:"locations"`
	Products      []string `json:"products"`
	OfficialEmail string   `json:"official_email"`
	PersonalEmail string   `json:"personal_email,omitempty"`
	Phone         string   `json:"phone"`
}

// Lender is a lender record as served by the backend
type Lender struct {
	ID          uint   `json:"id"`
	Name        string `json:"name"`
	State       string `json:"state"`
	City        string `json:"city"`
	ManagerName string `json:"manager_name"`
	RMName      string `json:"rm_name,omitempty"`
	RMContact   string `json:"rm_contact,omitempty"`
	BankerName  string `json:"banker_name,omitempty"`
}

// Submission is a review queue entry: a banker payload plus review state
type Submission struct {
	ID            uint       `json:"id"`
	Name          string     `json:"name"`
	Affiliation   string     `json:"affiliation"`
	Locations     []string   `json:"locations"`
	Products      []string   `json:"products"`
	OfficialEmail string     `json:"official_email"`
	PersonalEmail string     `json:"personal_email,omitempty"`
	Phone         string     `json:"phone"`
	Status        string     `json:"status"`
	Reason        string     `json:"reason,omitempty"`
	SubmittedByID uint       `json:"submitted_by_id"`
	DecidedAt     *time.Time `json:"decided_at,omitempty"`
}

// Profile is a console user's profile
type Profile struct {
	ID       uint   `json:"id"`
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Gender   string `json:"gender"`
	Role     string `json:"role"`
	IsActive bool   `json:"is_active"`
}

// Page is one server-paginated result page
type Page[T any] struct {
	Data       []T   `json:"data"`
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalPages int   `json:"total_pages"`
}

// TokenPair is the login/refresh response payload
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// ImportResult is the outcome of a bulk upload
type ImportResult struct {
	Imported  int      `json:"imported"`
	Skipped   int      `json:"skipped"`
	RowErrors []string `json:"row_errors,omitempty"`
}

// BankerFilter holds the banker list criteria; empty fields are omitted
// from the request
type BankerFilter struct {
	Location    string
	Name        string
	Affiliation string
	Email       string
}

// LenderFilter holds the lender list criteria
type LenderFilter struct {
	State string
	City  string
	Name  string
}

// CreateBankerInput is the create payload
type CreateBankerInput struct {
	Name          string   `json:"name" validate:"required"`
	Affiliation   string   `json:"affiliation" validate:"required"`
	Locations     []string `json:"locations" validate:"required,min=1"`
	Products      []string `json:"products" validate:"required,min=1"`
	OfficialEmail string   `json:"official_email" validate:"omitempty,email"`
	PersonalEmail string   `json:"personal_email" validate:"omitempty,email"`
	Phone         string   `json:"phone" validate:"required"`
}

// UpdateBankerInput is the partial update payload; nil fields are omitted
type UpdateBankerInput struct {
	Name          *string   `json:"name,omitempty"`
	Affiliation   *string   `json:"affiliation,omitempty"`
	Locations     *[]string `json:"locations,omitempty"`
	Products      *[]string `json:"products,omitempty"`
	OfficialEmail *string   `json:"official_email,omitempty"`
	PersonalEmail *string   `json:"personal_email,omitempty"`
	Phone         *string   `json:"phone,omitempty"`
}

// CreateLenderInput is the lender create payload
type CreateLenderInput struct {
	Name        string `json:"name" validate:"required"`
	State       string `json:"state" validate:"required_without=City"`
	City        string `json:"city" validate:"required_without=State"`
	ManagerName string `json:"manager_name" validate:"required"`
	RMName      string `json:"rm_name"`
	RMContact   string `json:"rm_contact"`
	BankerName  string `json:"banker_name"`
}

// UpdateLenderInput is the lender partial update payload
type UpdateLenderInput struct {
	Name        *string `json:"name,omitempty"`
	State       *string `json:"state,omitempty"`
	City        *string `json:"city,omitempty"`
	ManagerName *string `json:"manager_name,omitempty"`
	RMName      *string `json:"rm_name,omitempty"`
	RMContact   *string `json:"rm_contact,omitempty"`
	BankerName  *string `json:"banker_name,omitempty"`
}

// SubmitInput queues a banker entry for review
type SubmitInput struct {
	Name          string   `json:"name" validate:"required"`
	Affiliation   string   `json:"affiliation" validate:"required"`
	Locations     []string `json:"locations" validate:"required,min=1"`
	Products      []string `json:"products" validate:"required,min=1"`
	OfficialEmail string   `json:"official_email" validate:"omitempty,email"`
	PersonalEmail string   `json:"personal_email" validate:"omitempty,email"`
	Phone         string   `json:"phone" validate:"required"`
}
