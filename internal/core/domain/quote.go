package domain

import "time"

// QuoteStatus tracks follow-up on a quote request.
type QuoteStatus string

const (
	QuotePending   QuoteStatus = "pending"
	QuoteContacted QuoteStatus = "contacted"
	QuoteApproved  QuoteStatus = "approved"
	QuoteRejected  QuoteStatus = "rejected"
)

func (s QuoteStatus) Valid() bool {
	switch s {
	case QuotePending, QuoteContacted, QuoteApproved, QuoteRejected:
		return true
	}
	return false
}

// Quote is an anonymous request for a loan quote.
type Quote struct {
	ID         string      `json:"id"`
	Name       string      `json:"name"`
	Phone      string      `json:"phone"`
	LoanAmount float64     `json:"loanAmount"`
	LoanType   string      `json:"loanType"`
	Status     QuoteStatus `json:"status"`
	CreatedAt  time.Time   `json:"createdAt"`
	UpdatedAt  time.Time   `json:"updatedAt"`
}
