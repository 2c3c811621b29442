package model

import "time"

// Shortcut : персональная или системная (owner_uuid IS NULL) ссылка
type Shortcut struct {
	UUID      string    `db:"uuid" json:"uuid"`
	OwnerUUID *string   `db:"owner_uuid" json:"owner_uuid,omitempty"`
	Title     string    `db:"title" json:"title"`
	URL       string    `db:"url" json:"url"`
	Icon      string    `db:"icon" json:"icon,omitempty"`
	Position  int       `db:"position" json:"position"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

type Todo struct {
	UUID      string    `db:"uuid" json:"uuid"`
	OwnerUUID string    `db:"owner_uuid" json:"owner_uuid"`
	Content   string    `db:"content" json:"content"`
	IsDone    bool      `db:"is_done" json:"is_done"`
	DueDate   *string   `db:"due_date" json:"due_date,omitempty"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

type Note struct {
	UUID      string    `db:"uuid" json:"uuid"`
	OwnerUUID string    `db:"owner_uuid" json:"owner_uuid"`
	Title     string    `db:"title" json:"title"`
	Content   string    `db:"content" json:"content"`
	Color     string    `db:"color" json:"color,omitempty"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}
