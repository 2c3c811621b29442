package requestresponse

import (
	"encoding/json"
	"intranet-portal/internal/model"
)

// SettingResponse : настройка портала
type SettingResponse struct {
	Data *model.AdminSetting `json:"data"`
}

// SetSettingRequest : значение настройки целиком
type SetSettingRequest struct {
	Value json.RawMessage `json:"value"`
}

// SetSettingFieldRequest : точечное обновление одного поля настройки
type SetSettingFieldRequest struct {
	Field string          `json:"field" example:"portal_name"`
	Value json.RawMessage `json:"value"`
}

// UploadSettingFileRequest : имя загружаемого файла настройки
type UploadSettingFileRequest struct {
	Field    string `json:"field" example:"logo_path"`
	Filename string `json:"filename" example:"logo.png"`
}

// UploadSettingFileResponse : путь в хранилище и pre-signed PUT URL
type UploadSettingFileResponse struct {
	Response struct {
		StoragePath string `json:"storage_path"`
		PutURL      string `json:"put_url"`
	} `json:"response"`
}

// LDAPTestResponse : результат проверки LDAP-конфигурации
type LDAPTestResponse struct {
	Data struct {
		Success bool   `json:"success" example:"true"`
		Details string `json:"details" example:"bind ok"`
	} `json:"data"`
}

// ListHolidaysResponse : производственный календарь за год
type ListHolidaysResponse struct {
	Data  []model.Holiday `json:"data"`
	Count int             `json:"count" example:"14"`
}

// SuccessResponse : стандартный ответ успешного выполнения операции
type SuccessResponse struct {
	Message string `json:"message" example:"Операция выполнена успешно"`
}
