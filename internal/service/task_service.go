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
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"
)

type TaskService struct {
	taskRepository    ports.TaskRepository
	projectRepository ports.ProjectRepository
	notifier          ports.NotificationDispatcher
	db                *config.Database
}

func NewTaskService(
	taskRepository ports.TaskRepository,
	projectRepository ports.ProjectRepository,
	dispatcher ports.NotificationDispatcher,
	db *config.Database,
) *TaskService {
	return &TaskService{
		taskRepository:    taskRepository,
		projectRepository: projectRepository,
		notifier:          dispatcher,
		db:                db,
	}
}

func validTaskStatus(status string) bool {
	return lo.Contains(model.TaskStatuses, status)
}

// primaryAssignee : первый элемент отсортированного списка исполнителей, nil если список пуст
func primaryAssignee(assignees []string) *string {
	if len(assignees) == 0 {
		return nil
	}
	sorted := make([]string, len(assignees))
	copy(sorted, assignees)
	sort.Strings(sorted)
	return &sorted[0]
}

// mintSubtaskUUIDs : подзадачи заменяются целиком, каждая запись получает новый идентификатор
func mintSubtaskUUIDs(subtasks []model.Subtask) {
	for i := range subtasks {
		subtasks[i].UUID = uuid.New().String()
	}
}

// requireEditableProject : задача доступна для записи участникам проекта кроме viewer
func (s *TaskService) requireEditableProject(ctx context.Context, caller access.Caller, projectUUID string) (*model.Project, error) {
	project, err := s.projectRepository.GetByUUID(ctx, s.db, projectUUID)
	if err != nil {
		return nil, util.LogError("[TaskService] проект не найден", err)
	}

	memberRole, err := s.projectRepository.GetMemberRole(ctx, s.db, projectUUID, caller.UserUUID)
	if err != nil {
		return nil, util.LogError("[TaskService] ошибка проверки участия", err)
	}

	if !access.CanEditTasks(caller, project, memberRole) {
		return nil, fmt.Errorf("[TaskService] нет прав на изменение задач проекта: %w", apperr.ErrForbidden)
	}

	return project, nil
}

func (s *TaskService) requireReadableProject(ctx context.Context, caller access.Caller, projectUUID string) (*model.Project, error) {
	project, err := s.projectRepository.GetByUUID(ctx, s.db, projectUUID)
	if err != nil {
		return nil, util.LogError("[TaskService] проект не найден", err)
	}

	memberRole, err := s.projectRepository.GetMemberRole(ctx, s.db, projectUUID, caller.UserUUID)
	if err != nil {
		return nil, util.LogError("[TaskService] ошибка проверки участия", err)
	}

	if !access.CanReadProject(caller, project, memberRole != "") {
		return nil, fmt.Errorf("[TaskService] доступ к проекту запрещён: %w", apperr.ErrForbidden)
	}

	return project, nil
}

// CreateTask : задача, исполнители и подзадачи сохраняются в одной транзакции;
// исполнители получают уведомление после коммита
func (s *TaskService) CreateTask(ctx context.Context, caller access.Caller, task *model.ProjectTask, assignees []string, subtasks []model.Subtask) (*model.ProjectTask, error) {
	if strings.TrimSpace(task.Title) == "" {
		return nil, fmt.Errorf("[TaskService] заголовок задачи обязателен: %w", apperr.ErrValidation)
	}
	if task.Status == "" {
		task.Status = model.TaskStatusTodo
	}
	if !validTaskStatus(task.Status) {
		return nil, fmt.Errorf("[TaskService] недопустимый статус %q: %w", task.Status, apperr.ErrValidation)
	}

	project, err := s.requireEditableProject(ctx, caller, task.ProjectUUID)
	if err != nil {
		return nil, err
	}

	task.UUID = uuid.New().String()
	assignees = lo.Uniq(assignees)
	task.AssigneeUUID = primaryAssignee(assignees)

	if task.Status == model.TaskStatusDone {
		now := time.Now().UTC()
		task.CompletedAt = &now
	}

	exec, rollback, commit, err := s.taskRepository.BeginTX(ctx)
	if err != nil {
		return nil, util.LogError("[TaskService] не удалось начать транзакцию", err)
	}
	defer rollback()

	if err := s.taskRepository.Create(ctx, exec, task); err != nil {
		return nil, util.LogError("[TaskService] не удалось создать задачу", err)
	}

	if len(assignees) > 0 {
		if err := s.taskRepository.ReplaceAssignees(ctx, exec, task.UUID, assignees); err != nil {
			return nil, util.LogError("[TaskService] не удалось сохранить исполнителей", err)
		}
	}

	if len(subtasks) > 0 {
		mintSubtaskUUIDs(subtasks)
		if err := s.taskRepository.ReplaceSubtasks(ctx, exec, task.UUID, subtasks); err != nil {
			return nil, util.LogError("[TaskService] не удалось сохранить подзадачи", err)
		}
	}

	if err := commit(); err != nil {
		return nil, util.LogError("[TaskService] не удалось закоммитить транзакцию", err)
	}

	for _, assigneeUUID := range assignees {
		if assigneeUUID == caller.UserUUID {
			continue
		}
		s.notifier.Send(assigneeUUID, "task_assigned",
			"Назначение на задачу",
			fmt.Sprintf("Вам назначена задача «%s» в проекте «%s»", task.Title, project.Name),
			"tasks")
	}

	task.Assignees = assignees
	return s.loadTaskRelations(ctx, task)
}

func (s *TaskService) loadTaskRelations(ctx context.Context, task *model.ProjectTask) (*model.ProjectTask, error) {
	assignees, err := s.taskRepository.ListAssignees(ctx, s.db, task.UUID)
	if err != nil {
		return nil, util.LogError("[TaskService] не удалось получить исполнителей", err)
	}
	task.Assignees = assignees

	subtasks, err := s.taskRepository.ListSubtasks(ctx, s.db, task.UUID)
	if err != nil {
		return nil, util.LogError("[TaskService] не удалось получить подзадачи", err)
	}
	task.Subtasks = subtasks

	return task, nil
}

func (s *TaskService) GetTask(ctx context.Context, caller access.Caller, taskUUID string) (*model.ProjectTask, error) {
	task, err := s.taskRepository.GetByUUID(ctx, s.db, taskUUID)
	if err != nil {
		return nil, util.LogError("[TaskService] задача не найдена", err)
	}

	if _, err := s.requireReadableProject(ctx, caller, task.ProjectUUID); err != nil {
		return nil, err
	}

	return s.loadTaskRelations(ctx, task)
}

func (s *TaskService) ListTasks(ctx context.Context, caller access.Caller, projectUUID string) ([]model.ProjectTask, error) {
	if _, err := s.requireReadableProject(ctx, caller, projectUUID); err != nil {
		return nil, err
	}

	tasks, err := s.taskRepository.ListByProject(ctx, s.db, projectUUID)
	if err != nil {
		return nil, util.LogError("[TaskService] не удалось получить задачи", err)
	}

	for i := range tasks {
		if _, err := s.loadTaskRelations(ctx, &tasks[i]); err != nil {
			return nil, err
		}
	}

	return tasks, nil
}

// UpdateTask : исполнители и подзадачи заменяются целиком;
// уведомления получают только новые исполнители
func (s *TaskService) UpdateTask(ctx context.Context, caller access.Caller, task *model.ProjectTask, assignees []string, subtasks []model.Subtask) (*model.ProjectTask, error) {
	if strings.TrimSpace(task.Title) == "" {
		return nil, fmt.Errorf("[TaskService] заголовок задачи обязателен: %w", apperr.ErrValidation)
	}
	if !validTaskStatus(task.Status) {
		return nil, fmt.Errorf("[TaskService] недопустимый статус %q: %w", task.Status, apperr.ErrValidation)
	}

	stored, err := s.taskRepository.GetByUUID(ctx, s.db, task.UUID)
	if err != nil {
		return nil, util.LogError("[TaskService] задача не найдена", err)
	}

	project, err := s.requireEditableProject(ctx, caller, stored.ProjectUUID)
	if err != nil {
		return nil, err
	}

	task.ProjectUUID = stored.ProjectUUID
	task.CreatedAt = stored.CreatedAt
	task.OrderIndex = stored.OrderIndex

	assignees = lo.Uniq(assignees)
	task.AssigneeUUID = primaryAssignee(assignees)
	task.CompletedAt = completedAtFor(stored, task.Status)

	previousAssignees, err := s.taskRepository.ListAssignees(ctx, s.db, task.UUID)
	if err != nil {
		return nil, util.LogError("[TaskService] не удалось получить исполнителей", err)
	}

	exec, rollback, commit, err := s.taskRepository.BeginTX(ctx)
	if err != nil {
		return nil, util.LogError("[TaskService] не удалось начать транзакцию", err)
	}
	defer rollback()

	if err := s.taskRepository.Update(ctx, exec, task); err != nil {
		return nil, util.LogError("[TaskService] не удалось обновить задачу", err)
	}

	if err := s.taskRepository.ReplaceAssignees(ctx, exec, task.UUID, assignees); err != nil {
		return nil, util.LogError("[TaskService] не удалось обновить исполнителей", err)
	}

	mintSubtaskUUIDs(subtasks)
	if err := s.taskRepository.ReplaceSubtasks(ctx, exec, task.UUID, subtasks); err != nil {
		return nil, util.LogError("[TaskService] не удалось обновить подзадачи", err)
	}

	if err := commit(); err != nil {
		return nil, util.LogError("[TaskService] не удалось закоммитить транзакцию", err)
	}

	added, _ := lo.Difference(assignees, previousAssignees)
	for _, assigneeUUID := range added {
		if assigneeUUID == caller.UserUUID {
			continue
		}
		s.notifier.Send(assigneeUUID, "task_assigned",
			"Назначение на задачу",
			fmt.Sprintf("Вам назначена задача «%s» в проекте «%s»", task.Title, project.Name),
			"tasks")
	}

	return s.loadTaskRelations(ctx, task)
}

// completedAtFor : переход в done фиксирует момент завершения, выход из done сбрасывает его
func completedAtFor(stored *model.ProjectTask, newStatus string) *time.Time {
	if newStatus == model.TaskStatusDone {
		if stored.Status == model.TaskStatusDone && stored.CompletedAt != nil {
			return stored.CompletedAt
		}
		now := time.Now().UTC()
		return &now
	}
	return nil
}

// UpdateStatus : переходы между статусами свободные
func (s *TaskService) UpdateStatus(ctx context.Context, caller access.Caller, taskUUID, status string) (*model.ProjectTask, error) {
	if !validTaskStatus(status) {
		return nil, fmt.Errorf("[TaskService] недопустимый статус %q: %w", status, apperr.ErrValidation)
	}

	task, err := s.taskRepository.GetByUUID(ctx, s.db, taskUUID)
	if err != nil {
		return nil, util.LogError("[TaskService] задача не найдена", err)
	}

	if _, err := s.requireEditableProject(ctx, caller, task.ProjectUUID); err != nil {
		return nil, err
	}

	task.CompletedAt = completedAtFor(task, status)
	task.Status = status

	if err := s.taskRepository.Update(ctx, s.db, task); err != nil {
		return nil, util.LogError("[TaskService] не удалось обновить статус", err)
	}

	return s.loadTaskRelations(ctx, task)
}

// Reorder : позиция в колонке меняется независимо от остальных полей
func (s *TaskService) Reorder(ctx context.Context, caller access.Caller, taskUUID string, orderIndex int) error {
	task, err := s.taskRepository.GetByUUID(ctx, s.db, taskUUID)
	if err != nil {
		return util.LogError("[TaskService] задача не найдена", err)
	}

	if _, err := s.requireEditableProject(ctx, caller, task.ProjectUUID); err != nil {
		return err
	}

	return s.taskRepository.UpdateOrderIndex(ctx, s.db, taskUUID, orderIndex)
}

func (s *TaskService) DeleteTask(ctx context.Context, caller access.Caller, taskUUID string) error {
	task, err := s.taskRepository.GetByUUID(ctx, s.db, taskUUID)
	if err != nil {
		return util.LogError("[TaskService] задача не найдена", err)
	}

	if _, err := s.requireEditableProject(ctx, caller, task.ProjectUUID); err != nil {
		return err
	}

	exec, rollback, commit, err := s.taskRepository.BeginTX(ctx)
	if err != nil {
		return util.LogError("[TaskService] не удалось начать транзакцию", err)
	}
	defer rollback()

	if err := s.taskRepository.Delete(ctx, exec, taskUUID); err != nil {
		return util.LogError("[TaskService] не удалось удалить задачу", err)
	}

	if err := commit(); err != nil {
		return util.LogError("[TaskService] не удалось закоммитить транзакцию", err)
	}

	return nil
}

func (s *TaskService) AddComment(ctx context.Context, caller access.Caller, taskUUID, content string) (*model.TaskComment, error) {
	if strings.TrimSpace(content) == "" {
		return nil, fmt.Errorf("[TaskService] комментарий не может быть пустым: %w", apperr.ErrValidation)
	}

	task, err := s.taskRepository.GetByUUID(ctx, s.db, taskUUID)
	if err != nil {
		return nil, util.LogError("[TaskService] задача не найдена", err)
	}

	if _, err := s.requireReadableProject(ctx, caller, task.ProjectUUID); err != nil {
		return nil, err
	}

	comment := &model.TaskComment{
		UUID:       uuid.New().String(),
		TaskUUID:   taskUUID,
		AuthorUUID: caller.UserUUID,
		Content:    content,
	}

	if err := s.taskRepository.CreateComment(ctx, s.db, comment); err != nil {
		return nil, util.LogError("[TaskService] не удалось сохранить комментарий", err)
	}

	return comment, nil
}

func (s *TaskService) ListComments(ctx context.Context, caller access.Caller, taskUUID string) ([]model.TaskComment, error) {
	task, err := s.taskRepository.GetByUUID(ctx, s.db, taskUUID)
	if err != nil {
		return nil, util.LogError("[TaskService] задача не найдена", err)
	}

	if _, err := s.requireReadableProject(ctx, caller, task.ProjectUUID); err != nil {
		return nil, err
	}

	return s.taskRepository.ListComments(ctx, s.db, taskUUID)
}
