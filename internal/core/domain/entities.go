package domain

// Role represents user role in the system
type Role string

const (
	RoleUser  Role = "USER"
	RoleAdmin Role = "ADMIN"
)

// ReviewStatus represents the lifecycle state of a review submission.
// Once a submission leaves PENDING it is immutable.
type ReviewStatus string

const (
	ReviewPending  ReviewStatus = "PENDING"
	ReviewApproved ReviewStatus = "APPROVED"
	ReviewRejected ReviewStatus = "REJECTED"
)

// ValidReviewStatus reports whether s is one of the known statuses
func ValidReviewStatus(s string) bool {
	switch ReviewStatus(s) {
	case ReviewPending, ReviewApproved, ReviewRejected:
		return true
	default:
		return false
	}
}
