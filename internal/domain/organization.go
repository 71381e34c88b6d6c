package domain

import "time"

type OrgRole string

const (
	OrgRoleOwner    OrgRole = "owner"
	OrgRoleAdmin    OrgRole = "admin"
	OrgRoleMechanic OrgRole = "mechanic"
	OrgRoleViewer   OrgRole = "viewer"
)

type Organization struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	LogoURL   string    `json:"logo_url,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type OrgMember struct {
	ID             string    `json:"id"`
	OrganizationID string    `json:"organization_id"`
	UserID         string    `json:"user_id"`
	Role           OrgRole   `json:"role"`
	CreatedAt      time.Time `json:"created_at"`
}
