package domain

import "time"

// ApplicationStatus is the review state of a loan application.
type ApplicationStatus string

const (
	ApplicationPending     ApplicationStatus = "pending"
	ApplicationApproved    ApplicationStatus = "approved"
	ApplicationRejected    ApplicationStatus = "rejected"
	ApplicationUnderReview ApplicationStatus = "under-review"
)

// Valid reports whether s is a known application status.
func (s ApplicationStatus) Valid() bool {
	switch s {
	case ApplicationPending, ApplicationApproved, ApplicationRejected, ApplicationUnderReview:
		return true
	}
	return false
}

// ApplicantRef is the slice of the owning user shown to reviewers.
type ApplicantRef struct {
	ID       string `json:"id"`
	FullName string `json:"fullName"`
	Email    string `json:"email"`
}

// Application is a loan application submitted by an authenticated user.
type Application struct {
	ID            string            `json:"id"`
	UserID        string            `json:"userId"`
	User          *ApplicantRef     `json:"user,omitempty"`
	LoanAmount    float64           `json:"loanAmount"`
	LoanType      string            `json:"loanType"`
	TenureYears   float64           `json:"tenureYears"`
	MonthlyIncome float64           `json:"monthlyIncome"`
	FullName      string            `json:"fullName"`
	Phone         string            `json:"phone"`
	Email         string            `json:"email"`
	DOB           time.Time         `json:"dob"`
	Address       Address           `json:"address"`
	Status        ApplicationStatus `json:"status"`
	CreatedAt     time.Time         `json:"createdAt"`
	UpdatedAt     time.Time         `json:"updatedAt"`
}

// Dashboard aggregates the admin overview counters.
type Dashboard struct {
	TotalUsers        int64 `json:"totalUsers"`
	TotalLoans        int64 `json:"totalLoans"`
	TotalApplications int64 `json:"totalApplications"`
	TotalApproved     int64 `json:"totalApproved"`
	TotalPending      int64 `json:"totalPending"`
}
