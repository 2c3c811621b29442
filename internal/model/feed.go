package model

import "time"

const (
	FeedKindPost  = "post"
	FeedKindEvent = "event"
)

// FeedItem : элемент общей ленты — пост или видимое событие календаря
type FeedItem struct {
	Kind      string         `json:"kind"`
	CreatedAt time.Time      `json:"created_at"`
	Post      *Post          `json:"post,omitempty"`
	Event     *CalendarEvent `json:"event,omitempty"`
}

// SortKey : uuid элемента, вторичный ключ сортировки при равных created_at
func (i *FeedItem) SortKey() string {
	if i.Kind == FeedKindPost && i.Post != nil {
		return i.Post.UUID
	}
	if i.Event != nil {
		return i.Event.UUID
	}
	return ""
}
