package requestresponse

import "intranet-portal/internal/model"

// RegisterRequest : тело запроса регистрации, доступно по токену администратора
type RegisterRequest struct {
	Token    string `json:"token" example:"fixed_admin_token"`
	Login    string `json:"login" example:"newuser123"`
	Password string `json:"password" example:"P@ssw0rd!"`
	Name     string `json:"name" example:"Иванов Иван"`
	Role     string `json:"role" example:"USER"`
}

// RegisterResponse : успешный ответ
type RegisterResponse struct {
	Response RegisterData `json:"response"`
}

type RegisterData struct {
	Login        string `json:"login"`
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// ErrorDetail : детальная информация об ошибке
type ErrorDetail struct {
	Code int    `json:"code" example:"400"`
	Text string `json:"text" example:"for example: invalid login or password"`
}

// ErrorResponse : стандартная структура ошибки
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// UserResponse : успешный ответ с данными сотрудника
type UserResponse struct {
	Data *model.User `json:"data"`
}

// UpdateProfileRequest : тело запроса на обновление профиля
type UpdateProfileRequest struct {
	Name       string `json:"name" example:"Иванов Иван"`
	Department string `json:"department" example:"Разработка"`
	Position   string `json:"position" example:"Инженер"`
}

// UpdatePasswordRequest : тело запроса
type UpdatePasswordRequest struct {
	NewPassword string `json:"new_password" example:"P@ssw0rd123"`
}

// UpdatePasswordResponse : успешный ответ
type UpdatePasswordResponse struct {
	Response struct {
		Updated bool `json:"updated" example:"true"`
	} `json:"response"`
}

// UploadAvatarRequest : имя загружаемого файла аватара
type UploadAvatarRequest struct {
	Filename string `json:"filename" example:"avatar.png"`
}

// UploadAvatarResponse : путь в хранилище и pre-signed PUT URL
type UploadAvatarResponse struct {
	Response struct {
		AvatarPath string `json:"avatar_path"`
		PutURL     string `json:"put_url"`
	} `json:"response"`
}

// ListUsersResponse : успешный ответ
type ListUsersResponse struct {
	Data struct {
		Users      []*model.User `json:"users"`
		NextCursor string        `json:"next_cursor,omitempty"`
	} `json:"data"`
}
