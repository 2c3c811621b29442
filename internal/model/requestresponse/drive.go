package requestresponse

import "intranet-portal/internal/model"

// CreateFolderRequest : тело запроса на создание папки
type CreateFolderRequest struct {
	Name       string  `json:"name" example:"Документы отдела"`
	ParentUUID *string `json:"parent_uuid,omitempty"`
}

// RenameFolderRequest : тело запроса на переименование
type RenameFolderRequest struct {
	Name string `json:"name" example:"Новое имя"`
}

// FolderResponse : папка и её список доступа
type FolderResponse struct {
	Data struct {
		Folder *model.Folder       `json:"folder"`
		Shares []model.FolderShare `json:"shares,omitempty"`
	} `json:"data"`
}

// ListFolderResponse : содержимое папки или корня диска
type ListFolderResponse struct {
	Data struct {
		Folders []model.Folder    `json:"folders"`
		Files   []model.DriveFile `json:"files"`
	} `json:"data"`
}

// ShareFolderRequest : выдача доступа к папке
type ShareFolderRequest struct {
	TargetUserUUID string `json:"target_user_uuid" example:"123e4567-e89b-12d3-a456-426614174000"`
	Permission     string `json:"permission" example:"WRITE"`
}

// RemoveFolderShareRequest : снятие доступа
type RemoveFolderShareRequest struct {
	TargetUserUUID string `json:"target_user_uuid" example:"123e4567-e89b-12d3-a456-426614174000"`
}

// UploadFileRequest : мета-данные загружаемого файла
type UploadFileRequest struct {
	Name       string  `json:"name" example:"report.pdf"`
	Mime       string  `json:"mime" example:"application/pdf"`
	Size       int64   `json:"size" example:"204800"`
	FolderUUID *string `json:"folder_uuid,omitempty"`
}

// UploadFileResponse : файл и pre-signed PUT URL
type UploadFileResponse struct {
	Data struct {
		File   *model.DriveFile `json:"file"`
		PutURL string           `json:"put_url"`
	} `json:"data"`
}

// FileResponse : файл и pre-signed GET URL
type FileResponse struct {
	Data struct {
		File   *model.DriveFile `json:"file"`
		GetURL string           `json:"get_url"`
	} `json:"data"`
}
