package model

import "time"

// Permission anchors a household member's tag-visibility grants.
// At most one row exists per household member.
type Permission struct {
	ID                string    `json:"id"`
	HouseholdMemberID string    `json:"household_member_id"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// TagPermission grants visibility of one tag under one Permission.
// Grants are additive; there is no revoke.
type TagPermission struct {
	ID           string    `json:"id"`
	PermissionID string    `json:"permission_id"`
	TagID        string    `json:"tag_id"`
	CreatedAt    time.Time `json:"created_at"`
}
