package util

import (
	"encoding/json"
	"errors"
	"fmt"
	"intranet-portal/internal/apperr"
	"log"
	"net/http"
)

func LogError(message string, err error) error {
	log.Printf("%s: %v", message, err)
	return fmt.Errorf("%s: %w", message, err)
}

func HandleError(w http.ResponseWriter, message string, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	errorResponse := struct {
		Error   string `json:"error"`
		Message string `json:"message"`
		Code    int    `json:"code"`
	}{
		Error:   http.StatusText(statusCode),
		Message: message,
		Code:    statusCode,
	}

	json.NewEncoder(w).Encode(errorResponse)
}

// HandleAppError : сопоставляет типизированную ошибку доменного слоя с HTTP-статусом.
// Порядок проверок фиксирован: not found раньше forbidden (существование проверяется до прав).
func HandleAppError(w http.ResponseWriter, err error) {
	log.Println(err)
	switch {
	case errors.Is(err, apperr.ErrNotFound):
		HandleError(w, "не найдено", http.StatusNotFound)
	case errors.Is(err, apperr.ErrForbidden):
		HandleError(w, "доступ запрещён", http.StatusForbidden)
	case errors.Is(err, apperr.ErrValidation):
		HandleError(w, "некорректные данные запроса", http.StatusBadRequest)
	case errors.Is(err, apperr.ErrUpstream):
		HandleError(w, "внешний сервис недоступен", http.StatusBadGateway)
	case errors.Is(err, apperr.ErrStorage):
		HandleError(w, "внутренняя ошибка сервера", http.StatusInternalServerError)
	default:
		HandleError(w, "внутренняя ошибка сервера", http.StatusInternalServerError)
	}
}
