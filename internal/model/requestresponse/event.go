package requestresponse

import "intranet-portal/internal/model"

// EventRequest : тело запроса на создание или обновление события
type EventRequest struct {
	Title       string   `json:"title" example:"Планёрка"`
	Description string   `json:"description" example:"Еженедельная встреча команды"`
	StartDate   string   `json:"start_date" example:"2025-09-01"`
	EndDate     string   `json:"end_date" example:"2025-09-01"`
	StartTime   string   `json:"start_time" example:"10:00"`
	EndTime     string   `json:"end_time" example:"11:00"`
	Visibility  string   `json:"visibility" example:"shared"`
	EventType   string   `json:"event_type" example:"meeting"`
	MeetingLink string   `json:"meeting_link,omitempty" example:"https://meet.example.com/abc"`
	SharedWith  []string `json:"shared_with,omitempty"`
}

// EventResponse : одно событие календаря
type EventResponse struct {
	Data *model.CalendarEvent `json:"data"`
}

// ListEventsResponse : события, видимые вызывающему
type ListEventsResponse struct {
	Data  []model.CalendarEvent `json:"data"`
	Count int                   `json:"count" example:"5"`
}
