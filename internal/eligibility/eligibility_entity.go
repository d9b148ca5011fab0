package eligibility

import (
	"time"

	"github.com/google/uuid"
)

const (
	StatusPendingReview = "PENDING_REVIEW"
	StatusEligible      = "ELIGIBLE"
	StatusApproved      = "APPROVED"
	StatusAwarded       = "AWARDED"
	StatusRejected      = "REJECTED"
	StatusDisqualified  = "DISQUALIFIED"
	StatusPostponed     = "POSTPONED"
)

// transitions is the closed set of legal status moves. Anything not listed
// here is an invalid-state error, including writes to terminal records.
var transitions = map[string][]string{
	StatusPendingReview: {StatusEligible, StatusDisqualified, StatusPostponed},
	StatusEligible:      {StatusApproved, StatusAwarded, StatusRejected, StatusDisqualified, StatusPostponed},
	StatusApproved:      {StatusAwarded, StatusRejected},
	StatusDisqualified:  {StatusEligible, StatusPostponed},
	StatusPostponed:     {StatusEligible, StatusDisqualified},
}

// CanTransition reports whether moving from one status to another is legal.
func CanTransition(from, to string) bool {
	for _, allowed := range transitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

// IsTerminal reports whether a status admits no further transitions.
func IsTerminal(status string) bool {
	return status == StatusAwarded || status == StatusRejected
}

// EligibilityRecord is one outstanding decision point per employee. The
// evaluator creates and refreshes it; the progression processor and the
// reject action write the terminal states. Version is the optimistic lock
// token; every successful update increments it.
type EligibilityRecord struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	TenantID       uuid.UUID `gorm:"type:uuid;not null;index:idx_eligibility_tenant_status"`
	EmployeeID     uuid.UUID `gorm:"type:uuid;not null;index"`
	RankCode       string    `gorm:"type:varchar(20);not null"`
	CurrentStep    int       `gorm:"type:int;not null"`
	ProposedStep   int       `gorm:"type:int;not null"`
	DueDate        time.Time `gorm:"type:date;not null"`
	Status         string    `gorm:"type:varchar(20);not null;index:idx_eligibility_tenant_status"`
	Reason         string    `gorm:"type:varchar(500)"`
	ScaleVersionID uuid.UUID `gorm:"type:uuid;not null"`
	EvaluatedAt    time.Time `gorm:"not null"`
	DecidedBy      *uuid.UUID `gorm:"type:uuid"`
	DecidedAt      *time.Time
	Version        int `gorm:"type:int;not null;default:1"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (EligibilityRecord) TableName() string {
	return "eligibility_records"
}
