package ports

// NotificationDispatcher : внешний сервис уведомлений, fire-and-forget.
// Ошибки доставки логируются и никогда не возвращаются вызывающему.
type NotificationDispatcher interface {
	Send(userUUID, kind, title, body, contextTag string)
}
