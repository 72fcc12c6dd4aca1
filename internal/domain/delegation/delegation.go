package delegation

import (
	"time"

	"github.com/google/uuid"
)

// Delegation is a time-boxed grant of one role's approval authority to a
// user. At most one active delegation may exist per role.
type Delegation struct {
	ID           int64      `json:"id"`
	DelegationID uuid.UUID  `json:"delegationId"`
	TenantID     uuid.UUID  `json:"tenantId"`
	FromRole     string     `json:"fromRole"`
	ToUserID     uuid.UUID  `json:"toUserId"`
	Reason       string     `json:"reason"`
	StartDate    time.Time  `json:"startDate"`
	EndDate      time.Time  `json:"endDate"`
	MaxAmount    *float64   `json:"maxAmount,omitempty"`
	Currency     *string    `json:"currency,omitempty"`
	IsActive     bool       `json:"isActive"`
	UsageCount   int        `json:"usageCount"`
	LastUsedAt   *time.Time `json:"lastUsedAt,omitempty"`
	CreatedBy    string     `json:"createdBy"`
	CreatedAt    time.Time  `json:"createdAt"`
}

// WithinWindow reports whether now falls inside [StartDate, EndDate].
func (d *Delegation) WithinWindow(now time.Time) bool {
	return !now.Before(d.StartDate) && !now.After(d.EndDate)
}

// Covers reports whether the grant's amount cap admits the workflow amount.
// A grant without a cap covers any amount.
func (d *Delegation) Covers(amount float64, currency string) bool {
	if d.MaxAmount == nil {
		return true
	}
	if d.Currency != nil && *d.Currency != currency {
		return false
	}
	return amount <= *d.MaxAmount
}

// Use records one successful delegated action.
func (d *Delegation) Use(now time.Time) {
	d.UsageCount++
	d.LastUsedAt = &now
}
