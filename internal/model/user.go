package model

import "time"

const (
	RoleAdmin = "ADMIN"
	RoleUser  = "USER"
)

type User struct {
	UUID         string    `db:"uuid" json:"uuid"`
	Login        string    `db:"login" json:"login"`
	PasswordHash string    `db:"password_hash" json:"-"`
	Name         string    `db:"name" json:"name"`
	Role         string    `db:"role" json:"role"`
	Department   string    `db:"department" json:"department"`
	Position     string    `db:"position" json:"position"`
	AvatarPath   string    `db:"avatar_path" json:"avatar_path,omitempty"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}
