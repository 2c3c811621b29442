package model

import "time"

const (
	PermissionRead  = "READ"
	PermissionWrite = "WRITE"
)

type Folder struct {
	UUID       string    `db:"uuid" json:"uuid"`
	OwnerUUID  string    `db:"owner_uuid" json:"owner_uuid"`
	ParentUUID *string   `db:"parent_uuid" json:"parent_uuid,omitempty"`
	Name       string    `db:"name" json:"name"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
}

// FolderShare : строка доступа к папке; upsert по (folder_uuid, user_uuid),
// последняя запись перезаписывает permission
type FolderShare struct {
	FolderUUID string    `db:"folder_uuid" json:"folder_uuid"`
	UserUUID   string    `db:"user_uuid" json:"user_uuid"`
	Permission string    `db:"permission" json:"permission"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
}

type DriveFile struct {
	UUID             string    `db:"uuid" json:"uuid"`
	OwnerUUID        string    `db:"owner_uuid" json:"owner_uuid"`
	FolderUUID       *string   `db:"folder_uuid" json:"folder_uuid,omitempty"`
	FilenameOriginal string    `db:"filename_original" json:"name"`
	MimeType         string    `db:"mime_type" json:"mime"`
	SizeBytes        int64     `db:"size_bytes" json:"size"`
	StoragePath      string    `db:"storage_path" json:"-"`
	CreatedAt        time.Time `db:"created_at" json:"created_at"`
}
