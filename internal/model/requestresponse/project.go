package requestresponse

import "intranet-portal/internal/model"

// ProjectRequest : тело запроса на создание или обновление проекта
type ProjectRequest struct {
	Name       string   `json:"name" example:"Портал 2.0"`
	Status     string   `json:"status" example:"active"`
	Priority   string   `json:"priority" example:"high"`
	Visibility string   `json:"visibility" example:"team"`
	Color      string   `json:"color,omitempty" example:"#3b82f6"`
	Archived   bool     `json:"archived" example:"false"`
	Members    []string `json:"members,omitempty"`
}

// ProjectResponse : проект с участниками
type ProjectResponse struct {
	Data *model.Project `json:"data"`
}

// ListProjectsResponse : проекты, видимые вызывающему
type ListProjectsResponse struct {
	Data  []model.Project `json:"data"`
	Count int             `json:"count" example:"4"`
}

// AddMemberRequest : добавление участника проекта
type AddMemberRequest struct {
	UserUUID string `json:"user_uuid" example:"123e4567-e89b-12d3-a456-426614174000"`
	Role     string `json:"role" example:"member"`
}
