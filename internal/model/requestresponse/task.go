package requestresponse

import "intranet-portal/internal/model"

// SubtaskItem : подзадача в теле запроса
type SubtaskItem struct {
	Title       string `json:"title" example:"Написать тесты"`
	IsCompleted bool   `json:"is_completed" example:"false"`
}

// TaskRequest : тело запроса на создание или обновление задачи
type TaskRequest struct {
	ProjectUUID string        `json:"project_uuid,omitempty" example:"123e4567-e89b-12d3-a456-426614174000"`
	Title       string        `json:"title" example:"Сверстать ленту"`
	Description string        `json:"description" example:"Посты и события в одном списке"`
	Status      string        `json:"status" example:"todo"`
	Priority    string        `json:"priority" example:"medium"`
	DueDate     *string       `json:"due_date,omitempty" example:"2025-09-15"`
	Assignees   []string      `json:"assignees,omitempty"`
	Subtasks    []SubtaskItem `json:"subtasks,omitempty"`
}

// TaskResponse : задача с исполнителями и подзадачами
type TaskResponse struct {
	Data *model.ProjectTask `json:"data"`
}

// ListTasksResponse : задачи проекта в порядке order_index
type ListTasksResponse struct {
	Data  []model.ProjectTask `json:"data"`
	Count int                 `json:"count" example:"7"`
}

// UpdateTaskStatusRequest : смена статуса задачи
type UpdateTaskStatusRequest struct {
	Status string `json:"status" example:"done"`
}

// ReorderTaskRequest : смена позиции задачи в колонке
type ReorderTaskRequest struct {
	OrderIndex int `json:"order_index" example:"3"`
}

// TaskCommentResponse : один комментарий задачи
type TaskCommentResponse struct {
	Data *model.TaskComment `json:"data"`
}

// ListTaskCommentsResponse : комментарии задачи
type ListTaskCommentsResponse struct {
	Data  []model.TaskComment `json:"data"`
	Count int                 `json:"count" example:"2"`
}
