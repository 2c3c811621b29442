package handler

import (
	"encoding/json"
	"intranet-portal/internal/model"
	"intranet-portal/internal/model/requestresponse"
	"intranet-portal/internal/ports"
	"intranet-portal/internal/util"
	"net/http"

	"github.com/go-chi/chi/v5"
)

type EventHandler struct {
	ports.EventService
}

func NewEventHandler(eventService ports.EventService) *EventHandler {
	return &EventHandler{eventService}
}

func eventFromRequest(req *requestresponse.EventRequest) *model.CalendarEvent {
	return &model.CalendarEvent{
		Title:       req.Title,
		Description: req.Description,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
		Visibility:  req.Visibility,
		EventType:   req.EventType,
		MeetingLink: req.MeetingLink,
	}
}

// CreateEvent godoc
// @Summary Создание события календаря
// @Description Создаёт событие с видимостью public, private или shared. Для shared передаётся список участников.
// @Tags Events
// @Accept json
// @Produce json
// @Param body body requestresponse.EventRequest true "Тело запроса"
// @Param Authorization header string true "Bearer токен" default(Bearer <access_token>)
// @Success 200 {object} requestresponse.EventResponse
// @Failure 400 {object} requestresponse.ErrorResponse
// @Failure 401 {object} requestresponse.ErrorResponse
// @Failure 500 {object} requestresponse.ErrorResponse
// @Router /api/events [post]
// @Security BearerAuth
func (h *EventHandler) CreateEvent(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	caller, ok := callerFrom(w, r)
	if !ok {
		return
	}

	var req requestresponse.EventRequest
	if err := decodeJSON(w, r, &req); err != nil {
		return
	}

	event, err := h.EventService.CreateEvent(r.Context(), caller, eventFromRequest(&req), req.SharedWith)
	if err != nil {
		util.HandleAppError(w, err)
		return
	}

	w.WriteHeader(200)
	json.NewEncoder(w).Encode(requestresponse.EventResponse{Data: event})
}

// GetEvent godoc
// @Summary Одно событие
// @Description Возвращает событие, если оно видимо вызывающему.
// @Tags Events
// @Produce json
// @Param uuid path string true "UUID события"
// @Param Authorization header string true "Bearer токен" default(Bearer <access_token>)
// @Success 200 {object} requestresponse.EventResponse
// @Failure 401 {object} requestresponse.ErrorResponse
// @Failure 403 {object} requestresponse.ErrorResponse
// @Failure 404 {object} requestresponse.ErrorResponse
// @Failure 500 {object} requestresponse.ErrorResponse
// @Router /api/events/{uuid} [get]
// @Security BearerAuth
func (h *EventHandler) GetEvent(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	caller, ok := callerFrom(w, r)
	if !ok {
		return
	}

	event, err := h.EventService.GetEvent(r.Context(), caller, chi.URLParam(r, "uuid"))
	if err != nil {
		util.HandleAppError(w, err)
		return
	}

	w.WriteHeader(200)
	json.NewEncoder(w).Encode(requestresponse.EventResponse{Data: event})
}

// ListEvents godoc
// @Summary Календарь
// @Description Все события, видимые вызывающему: публичные, свои и те, которыми поделились.
// @Tags Events
// @Produce json
// @Param Authorization header string true "Bearer токен" default(Bearer <access_token>)
// @Success 200 {object} requestresponse.ListEventsResponse
// @Failure 401 {object} requestresponse.ErrorResponse
// @Failure 500 {object} requestresponse.ErrorResponse
// @Router /api/events [get]
// @Security BearerAuth
func (h *EventHandler) ListEvents(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	caller, ok := callerFrom(w, r)
	if !ok {
		return
	}

	events, err := h.EventService.ListEvents(r.Context(), caller)
	if err != nil {
		util.HandleAppError(w, err)
		return
	}

	w.WriteHeader(200)
	json.NewEncoder(w).Encode(requestresponse.ListEventsResponse{Data: events, Count: len(events)})
}

// UpdateEvent godoc
// @Summary Обновление события
// @Description Изменяет событие и целиком заменяет список участников. Автор или администратор.
// @Tags Events
// @Accept json
// @Produce json
// @Param uuid path string true "UUID события"
// @Param body body requestresponse.EventRequest true "Тело запроса"
// @Param Authorization header string true "Bearer токен" default(Bearer <access_token>)
// @Success 200 {object} requestresponse.EventResponse
// @Failure 400 {object} requestresponse.ErrorResponse
// @Failure 401 {object} requestresponse.ErrorResponse
// @Failure 403 {object} requestresponse.ErrorResponse
// @Failure 404 {object} requestresponse.ErrorResponse
// @Failure 500 {object} requestresponse.ErrorResponse
// @Router /api/events/{uuid} [put]
// @Security BearerAuth
func (h *EventHandler) UpdateEvent(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	caller, ok := callerFrom(w, r)
	if !ok {
		return
	}

	var req requestresponse.EventRequest
	if err := decodeJSON(w, r, &req); err != nil {
		return
	}

	event := eventFromRequest(&req)
	event.UUID = chi.URLParam(r, "uuid")

	updated, err := h.EventService.UpdateEvent(r.Context(), caller, event, req.SharedWith)
	if err != nil {
		util.HandleAppError(w, err)
		return
	}

	w.WriteHeader(200)
	json.NewEncoder(w).Encode(requestresponse.EventResponse{Data: updated})
}

// DeleteEvent godoc
// @Summary Удаление события
// @Description Удаляет событие вместе со списком доступа. Автор или администратор.
// @Tags Events
// @Produce json
// @Param uuid path string true "UUID события"
// @Param Authorization header string true "Bearer токен" default(Bearer <access_token>)
// @Success 204 "Событие удалено"
// @Failure 401 {object} requestresponse.ErrorResponse
// @Failure 403 {object} requestresponse.ErrorResponse
// @Failure 404 {object} requestresponse.ErrorResponse
// @Failure 500 {object} requestresponse.ErrorResponse
// @Router /api/events/{uuid} [delete]
// @Security BearerAuth
func (h *EventHandler) DeleteEvent(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerFrom(w, r)
	if !ok {
		return
	}

	if err := h.EventService.DeleteEvent(r.Context(), caller, chi.URLParam(r, "uuid")); err != nil {
		util.HandleAppError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
