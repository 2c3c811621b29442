package model

import "time"

type Post struct {
	UUID       string    `db:"uuid" json:"uuid"`
	AuthorUUID string    `db:"author_uuid" json:"author_uuid"`
	AuthorName string    `db:"author_name" json:"author_name,omitempty"`
	Content    string    `db:"content" json:"content"`
	IsUrgent   bool      `db:"is_urgent" json:"is_urgent"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`

	// счётчики и вложения заполняются отдельными запросами
	LikeCount    int          `db:"like_count" json:"like_count"`
	CommentCount int          `db:"comment_count" json:"comment_count"`
	Attachments  []Attachment `json:"attachments,omitempty"`
}

type Attachment struct {
	UUID             string    `db:"uuid" json:"uuid"`
	PostUUID         string    `db:"post_uuid" json:"-"`
	FilenameOriginal string    `db:"filename_original" json:"name"`
	MimeType         string    `db:"mime_type" json:"mime"`
	SizeBytes        int64     `db:"size_bytes" json:"size"`
	IsImage          bool      `db:"is_image" json:"is_image"`
	StoragePath      string    `db:"storage_path" json:"-"`
	CreatedAt        time.Time `db:"created_at" json:"created_at"`
}

type PostComment struct {
	UUID       string    `db:"uuid" json:"uuid"`
	PostUUID   string    `db:"post_uuid" json:"post_uuid"`
	AuthorUUID string    `db:"author_uuid" json:"author_uuid"`
	AuthorName string    `db:"author_name" json:"author_name,omitempty"`
	Content    string    `db:"content" json:"content"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
}
