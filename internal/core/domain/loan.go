package domain

import "time"

// Loan is a product in the public loan catalog.
type Loan struct {
	ID            string    `json:"id"`
	Title         string    `json:"title"`
	Slug          string    `json:"slug"`
	Description   string    `json:"description"`
	InterestRate  float64   `json:"interestRate"`
	ProcessingFee float64   `json:"processingFee"`
	MaxAmount     float64   `json:"maxAmount"`
	MinAmount     float64   `json:"minAmount"`
	TenureOptions []int     `json:"tenureOptions"`
	IsActive      bool      `json:"isActive"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// Validate checks the invariants that span more than one field.
func (l *Loan) Validate() error {
	switch {
	case l.Title == "":
		return NewValidationError("Loan title is required")
	case len(l.Title) > 100:
		return NewValidationError("Title cannot exceed 100 characters")
	case l.Description == "":
		return NewValidationError("Loan description is required")
	case len(l.Description) > 1000:
		return NewValidationError("Description cannot exceed 1000 characters")
	case l.InterestRate < 0 || l.InterestRate > 100:
		return NewValidationError("Interest rate must be between 0 and 100")
	case l.ProcessingFee < 0:
		return NewValidationError("Processing fee cannot be negative")
	case l.MinAmount < 0 || l.MaxAmount < 0:
		return NewValidationError("Loan amounts cannot be negative")
	case l.MinAmount > l.MaxAmount:
		return NewValidationError("Minimum amount cannot exceed maximum amount")
	case len(l.TenureOptions) == 0:
		return NewValidationError("At least one tenure option is required")
	}
	for _, t := range l.TenureOptions {
		if t <= 0 {
			return NewValidationError("Tenure options must be positive")
		}
	}
	return nil
}

// LoanPatch carries a partial loan update; nil fields are left untouched.
type LoanPatch struct {
	Title         *string
	Description   *string
	InterestRate  *float64
	ProcessingFee *float64
	MaxAmount     *float64
	MinAmount     *float64
	TenureOptions []int
	IsActive      *bool
}

// Apply overlays the patch onto l and reports whether the title changed.
func (p LoanPatch) Apply(l *Loan) (titleChanged bool) {
	if p.Title != nil && *p.Title != l.Title {
		l.Title = *p.Title
		titleChanged = true
	}
	if p.Description != nil {
		l.Description = *p.Description
	}
	if p.InterestRate != nil {
		l.InterestRate = *p.InterestRate
	}
	if p.ProcessingFee != nil {
		l.ProcessingFee = *p.ProcessingFee
	}
	if p.MaxAmount != nil {
		l.MaxAmount = *p.MaxAmount
	}
	if p.MinAmount != nil {
		l.MinAmount = *p.MinAmount
	}
	if p.TenureOptions != nil {
		l.TenureOptions = p.TenureOptions
	}
	if p.IsActive != nil {
		l.IsActive = *p.IsActive
	}
	return titleChanged
}
