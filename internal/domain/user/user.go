package user

import (
	"time"

	"github.com/google/uuid"
)

// Status represents user account status.
type Status string

const (
	StatusActive   Status = "ACTIVE"
	StatusDisabled Status = "DISABLED"
)

// User is a directory entry for an approver or initiator. Authentication is
// owned by the surrounding application; the engine only resolves identities
// and role membership.
type User struct {
	ID        int64      `json:"id"`
	UserID    uuid.UUID  `json:"userId"`
	TenantID  uuid.UUID  `json:"tenantId"`
	Username  string     `json:"username"`
	Email     string     `json:"email"`
	Phone     *string    `json:"phone,omitempty"`
	Roles     []string   `json:"roles"`
	Status    Status     `json:"status"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

// HasRole reports whether the user holds the named role.
func (u *User) HasRole(role string) bool {
	for _, r := range u.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// Active reports whether the user may act.
func (u *User) Active() bool {
	return u.Status == StatusActive
}
