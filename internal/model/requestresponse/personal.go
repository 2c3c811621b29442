package requestresponse

import "intranet-portal/internal/model"

// ShortcutRequest : тело запроса для ярлыка
type ShortcutRequest struct {
	Title    string `json:"title" example:"Трекер задач"`
	URL      string `json:"url" example:"https://tracker.example.com"`
	Icon     string `json:"icon,omitempty" example:"tracker.svg"`
	Position int    `json:"position" example:"1"`
}

// ShortcutResponse : один ярлык
type ShortcutResponse struct {
	Data *model.Shortcut `json:"data"`
}

// ListShortcutsResponse : системные и личные ярлыки
type ListShortcutsResponse struct {
	Data  []model.Shortcut `json:"data"`
	Count int              `json:"count" example:"6"`
}

// TodoRequest : тело запроса для личной задачи
type TodoRequest struct {
	Content string  `json:"content" example:"Отправить отчёт"`
	IsDone  bool    `json:"is_done" example:"false"`
	DueDate *string `json:"due_date,omitempty" example:"2025-09-05"`
}

// TodoResponse : одна личная задача
type TodoResponse struct {
	Data *model.Todo `json:"data"`
}

// ListTodosResponse : личные задачи вызывающего
type ListTodosResponse struct {
	Data  []model.Todo `json:"data"`
	Count int          `json:"count" example:"4"`
}

// NoteRequest : тело запроса для заметки
type NoteRequest struct {
	Title   string `json:"title" example:"Идеи"`
	Content string `json:"content" example:"Сделать тёмную тему"`
	Color   string `json:"color,omitempty" example:"#fde68a"`
}

// NoteResponse : одна заметка
type NoteResponse struct {
	Data *model.Note `json:"data"`
}

// ListNotesResponse : заметки вызывающего
type ListNotesResponse struct {
	Data  []model.Note `json:"data"`
	Count int          `json:"count" example:"2"`
}
