package model

import "time"

type Household struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedBy   string    `json:"created_by"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Role is the authority a member holds within one household.
type Role string

const (
	RoleAdmin  Role = "admin"
	RoleMember Role = "member"
)

// ParseRole maps a request-supplied role string onto a known Role.
// Unknown values are a validation failure, not a silent default.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleAdmin:
		return RoleAdmin, nil
	case RoleMember:
		return RoleMember, nil
	default:
		return "", Validationf("invalid role %q", s)
	}
}

// HouseholdMember binds a Member to a Household. A row is created either by
// household creation (the creator, already active) or by an invite (inactive
// until the member accepts). JoinedAt is nil until acceptance.
type HouseholdMember struct {
	ID          string     `json:"id"`
	HouseholdID string     `json:"household_id"`
	MemberID    string     `json:"member_id"`
	Role        Role       `json:"role"`
	IsActive    bool       `json:"is_active"`
	InvitedBy   string     `json:"invited_by"`
	JoinedAt    *time.Time `json:"joined_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}
