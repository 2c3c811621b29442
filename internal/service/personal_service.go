package service

import (
	"context"
	"fmt"
	"intranet-portal/config"
	"intranet-portal/internal/access"
	"intranet-portal/internal/apperr"
	"intranet-portal/internal/model"
	"intranet-portal/internal/ports"
	"intranet-portal/internal/util"
	"strings"

	"github.com/google/uuid"
)

// PersonalService : ярлыки, todo-списки и заметки; каждый видит только своё,
// системные ярлыки управляются администратором и видны всем
type PersonalService struct {
	personalRepository ports.PersonalRepository
	db                 *config.Database
}

func NewPersonalService(personalRepository ports.PersonalRepository, db *config.Database) *PersonalService {
	return &PersonalService{
		personalRepository: personalRepository,
		db:                 db,
	}
}

func (s *PersonalService) CreateShortcut(ctx context.Context, caller access.Caller, shortcut *model.Shortcut, system bool) (*model.Shortcut, error) {
	if strings.TrimSpace(shortcut.Title) == "" || strings.TrimSpace(shortcut.URL) == "" {
		return nil, fmt.Errorf("[PersonalService] название и ссылка обязательны: %w", apperr.ErrValidation)
	}

	shortcut.UUID = uuid.New().String()
	if system {
		if !caller.IsAdmin() {
			return nil, fmt.Errorf("[PersonalService] системные ярлыки создаёт только администратор: %w", apperr.ErrForbidden)
		}
		shortcut.OwnerUUID = nil
	} else {
		owner := caller.UserUUID
		shortcut.OwnerUUID = &owner
	}

	if err := s.personalRepository.CreateShortcut(ctx, s.db, shortcut); err != nil {
		return nil, util.LogError("[PersonalService] не удалось создать ярлык", err)
	}

	return shortcut, nil
}

// ListShortcuts : системные плюс личные ярлыки вызывающего
func (s *PersonalService) ListShortcuts(ctx context.Context, caller access.Caller) ([]model.Shortcut, error) {
	system, err := s.personalRepository.ListSystemShortcuts(ctx, s.db)
	if err != nil {
		return nil, util.LogError("[PersonalService] не удалось получить системные ярлыки", err)
	}

	own, err := s.personalRepository.ListShortcuts(ctx, s.db, caller.UserUUID)
	if err != nil {
		return nil, util.LogError("[PersonalService] не удалось получить ярлыки", err)
	}

	return append(system, own...), nil
}

func (s *PersonalService) ListSystemShortcuts(ctx context.Context) ([]model.Shortcut, error) {
	return s.personalRepository.ListSystemShortcuts(ctx, s.db)
}

// canManageShortcut : личный ярлык меняет владелец, системный — администратор
func canManageShortcut(caller access.Caller, shortcut *model.Shortcut) bool {
	if shortcut.OwnerUUID == nil {
		return caller.IsAdmin()
	}
	return *shortcut.OwnerUUID == caller.UserUUID
}

func (s *PersonalService) UpdateShortcut(ctx context.Context, caller access.Caller, shortcut *model.Shortcut) error {
	stored, err := s.personalRepository.GetShortcut(ctx, s.db, shortcut.UUID)
	if err != nil {
		return util.LogError("[PersonalService] ярлык не найден", err)
	}

	if !canManageShortcut(caller, stored) {
		return fmt.Errorf("[PersonalService] нет прав на изменение ярлыка: %w", apperr.ErrForbidden)
	}

	shortcut.OwnerUUID = stored.OwnerUUID

	return s.personalRepository.UpdateShortcut(ctx, s.db, shortcut)
}

func (s *PersonalService) DeleteShortcut(ctx context.Context, caller access.Caller, uuid string) error {
	stored, err := s.personalRepository.GetShortcut(ctx, s.db, uuid)
	if err != nil {
		return util.LogError("[PersonalService] ярлык не найден", err)
	}

	if !canManageShortcut(caller, stored) {
		return fmt.Errorf("[PersonalService] нет прав на удаление ярлыка: %w", apperr.ErrForbidden)
	}

	return s.personalRepository.DeleteShortcut(ctx, s.db, uuid)
}

func (s *PersonalService) CreateTodo(ctx context.Context, caller access.Caller, todo *model.Todo) (*model.Todo, error) {
	if strings.TrimSpace(todo.Content) == "" {
		return nil, fmt.Errorf("[PersonalService] текст задачи обязателен: %w", apperr.ErrValidation)
	}

	todo.UUID = uuid.New().String()
	todo.OwnerUUID = caller.UserUUID

	if err := s.personalRepository.CreateTodo(ctx, s.db, todo); err != nil {
		return nil, util.LogError("[PersonalService] не удалось создать задачу", err)
	}

	return todo, nil
}

func (s *PersonalService) ListTodos(ctx context.Context, caller access.Caller) ([]model.Todo, error) {
	return s.personalRepository.ListTodos(ctx, s.db, caller.UserUUID)
}

func (s *PersonalService) UpdateTodo(ctx context.Context, caller access.Caller, todo *model.Todo) error {
	stored, err := s.personalRepository.GetTodo(ctx, s.db, todo.UUID)
	if err != nil {
		return util.LogError("[PersonalService] задача не найдена", err)
	}

	if stored.OwnerUUID != caller.UserUUID {
		return fmt.Errorf("[PersonalService] чужую задачу менять нельзя: %w", apperr.ErrForbidden)
	}

	todo.OwnerUUID = stored.OwnerUUID

	return s.personalRepository.UpdateTodo(ctx, s.db, todo)
}

func (s *PersonalService) DeleteTodo(ctx context.Context, caller access.Caller, uuid string) error {
	stored, err := s.personalRepository.GetTodo(ctx, s.db, uuid)
	if err != nil {
		return util.LogError("[PersonalService] задача не найдена", err)
	}

	if stored.OwnerUUID != caller.UserUUID {
		return fmt.Errorf("[PersonalService] чужую задачу удалять нельзя: %w", apperr.ErrForbidden)
	}

	return s.personalRepository.DeleteTodo(ctx, s.db, uuid)
}

func (s *PersonalService) CreateNote(ctx context.Context, caller access.Caller, note *model.Note) (*model.Note, error) {
	if strings.TrimSpace(note.Title) == "" && strings.TrimSpace(note.Content) == "" {
		return nil, fmt.Errorf("[PersonalService] заметка не может быть пустой: %w", apperr.ErrValidation)
	}

	note.UUID = uuid.New().String()
	note.OwnerUUID = caller.UserUUID

	if err := s.personalRepository.CreateNote(ctx, s.db, note); err != nil {
		return nil, util.LogError("[PersonalService] не удалось создать заметку", err)
	}

	return note, nil
}

func (s *PersonalService) ListNotes(ctx context.Context, caller access.Caller) ([]model.Note, error) {
	return s.personalRepository.ListNotes(ctx, s.db, caller.UserUUID)
}

func (s *PersonalService) UpdateNote(ctx context.Context, caller access.Caller, note *model.Note) error {
	stored, err := s.personalRepository.GetNote(ctx, s.db, note.UUID)
	if err != nil {
		return util.LogError("[PersonalService] заметка не найдена", err)
	}

	if stored.OwnerUUID != caller.UserUUID {
		return fmt.Errorf("[PersonalService] чужую заметку менять нельзя: %w", apperr.ErrForbidden)
	}

	note.OwnerUUID = stored.OwnerUUID

	return s.personalRepository.UpdateNote(ctx, s.db, note)
}

func (s *PersonalService) DeleteNote(ctx context.Context, caller access.Caller, uuid string) error {
	stored, err := s.personalRepository.GetNote(ctx, s.db, uuid)
	if err != nil {
		return util.LogError("[PersonalService] заметка не найдена", err)
	}

	if stored.OwnerUUID != caller.UserUUID {
		return fmt.Errorf("[PersonalService] чужую заметку удалять нельзя: %w", apperr.ErrForbidden)
	}

	return s.personalRepository.DeleteNote(ctx, s.db, uuid)
}
