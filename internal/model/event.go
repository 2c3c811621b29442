package model

import "time"

const (
	VisibilityPublic  = "public"
	VisibilityPrivate = "private"
	VisibilityShared  = "shared"
)

type CalendarEvent struct {
	UUID        string    `db:"uuid" json:"uuid"`
	AuthorUUID  string    `db:"author_uuid" json:"author_uuid"`
	Title       string    `db:"title" json:"title"`
	Description string    `db:"description" json:"description"`
	StartDate   string    `db:"start_date" json:"start_date"`
	EndDate     string    `db:"end_date" json:"end_date"`
	StartTime   string    `db:"start_time" json:"start_time"`
	EndTime     string    `db:"end_time" json:"end_time"`
	Visibility  string    `db:"visibility" json:"visibility"`
	EventType   string    `db:"event_type" json:"event_type"`
	MeetingLink string    `db:"meeting_link" json:"meeting_link,omitempty"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`

	// заполняется отдельным запросом к event_shares
	SharedWith []string `json:"shared_with,omitempty"`
}
