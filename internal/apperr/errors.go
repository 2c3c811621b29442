package apperr

import "errors"

// Типизированные ошибки доменного слоя. Сервисы оборачивают их через fmt.Errorf("...: %w"),
// хендлеры сопоставляют через errors.Is и превращают в HTTP-статус.
var (
	ErrNotFound   = errors.New("не найдено")
	ErrForbidden  = errors.New("доступ запрещён")
	ErrValidation = errors.New("некорректные данные")
	ErrStorage    = errors.New("ошибка хранилища")
	ErrUpstream   = errors.New("ошибка внешнего сервиса")
)
