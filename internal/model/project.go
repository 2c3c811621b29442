package model

import "time"

const (
	VisibilityTeam = "team"

	MemberRoleOwner  = "owner"
	MemberRoleAdmin  = "admin"
	MemberRoleMember = "member"
	MemberRoleViewer = "viewer"
)

type Project struct {
	UUID       string    `db:"uuid" json:"uuid"`
	OwnerUUID  string    `db:"owner_uuid" json:"owner_uuid"`
	Name       string    `db:"name" json:"name"`
	Status     string    `db:"status" json:"status"`
	Priority   string    `db:"priority" json:"priority"`
	Visibility string    `db:"visibility" json:"visibility"`
	Color      string    `db:"color" json:"color,omitempty"`
	Archived   bool      `db:"archived" json:"archived"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`

	Members []ProjectMember `json:"members,omitempty"`
}

type ProjectMember struct {
	ProjectUUID string    `db:"project_uuid" json:"project_uuid"`
	UserUUID    string    `db:"user_uuid" json:"user_uuid"`
	Role        string    `db:"role" json:"role"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}
