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
	"github.com/samber/lo"
)

type ProjectService struct {
	projectRepository ports.ProjectRepository
	userRepository    ports.UserRepository
	notifier          ports.NotificationDispatcher
	db                *config.Database
}

func NewProjectService(
	projectRepository ports.ProjectRepository,
	userRepository ports.UserRepository,
	dispatcher ports.NotificationDispatcher,
	db *config.Database,
) *ProjectService {
	return &ProjectService{
		projectRepository: projectRepository,
		userRepository:    userRepository,
		notifier:          dispatcher,
		db:                db,
	}
}

func validateProject(project *model.Project) error {
	if strings.TrimSpace(project.Name) == "" {
		return fmt.Errorf("[ProjectService] имя проекта обязательно: %w", apperr.ErrValidation)
	}
	switch project.Visibility {
	case model.VisibilityPublic, model.VisibilityPrivate, model.VisibilityTeam:
	default:
		return fmt.Errorf("[ProjectService] неизвестный тип видимости %q: %w", project.Visibility, apperr.ErrValidation)
	}
	return nil
}

// CreateProject : создатель становится владельцем и получает ровно одну
// запись участника с ролью owner, даже если указан в memberUUIDs
func (s *ProjectService) CreateProject(ctx context.Context, caller access.Caller, project *model.Project, memberUUIDs []string) (*model.Project, error) {
	if err := validateProject(project); err != nil {
		return nil, err
	}

	project.UUID = uuid.New().String()
	project.OwnerUUID = caller.UserUUID

	memberUUIDs = lo.Uniq(lo.Without(memberUUIDs, caller.UserUUID))

	exec, rollback, commit, err := s.projectRepository.BeginTX(ctx)
	if err != nil {
		return nil, util.LogError("[ProjectService] не удалось начать транзакцию", err)
	}
	defer rollback()

	if err := s.projectRepository.Create(ctx, exec, project); err != nil {
		return nil, util.LogError("[ProjectService] не удалось создать проект", err)
	}

	if err := s.projectRepository.AddMember(ctx, exec, project.UUID, caller.UserUUID, model.MemberRoleOwner); err != nil {
		return nil, util.LogError("[ProjectService] не удалось добавить владельца", err)
	}

	for _, memberUUID := range memberUUIDs {
		if err := s.projectRepository.AddMember(ctx, exec, project.UUID, memberUUID, model.MemberRoleMember); err != nil {
			return nil, util.LogError("[ProjectService] не удалось добавить участника", err)
		}
	}

	if err := commit(); err != nil {
		return nil, util.LogError("[ProjectService] не удалось закоммитить транзакцию", err)
	}

	for _, memberUUID := range memberUUIDs {
		s.notifier.Send(memberUUID, "project_member",
			"Добавление в проект",
			fmt.Sprintf("Вас добавили в проект «%s»", project.Name),
			"projects")
	}

	members, err := s.projectRepository.ListMembers(ctx, s.db, project.UUID)
	if err != nil {
		return nil, util.LogError("[ProjectService] не удалось получить участников", err)
	}
	project.Members = members

	return project, nil
}

func (s *ProjectService) GetProject(ctx context.Context, caller access.Caller, projectUUID string) (*model.Project, error) {
	project, err := s.projectRepository.GetByUUID(ctx, s.db, projectUUID)
	if err != nil {
		return nil, util.LogError("[ProjectService] проект не найден", err)
	}

	memberRole, err := s.projectRepository.GetMemberRole(ctx, s.db, projectUUID, caller.UserUUID)
	if err != nil {
		return nil, util.LogError("[ProjectService] ошибка проверки участия", err)
	}

	if !access.CanReadProject(caller, project, memberRole != "") {
		return nil, fmt.Errorf("[ProjectService] доступ к проекту запрещён: %w", apperr.ErrForbidden)
	}

	members, err := s.projectRepository.ListMembers(ctx, s.db, projectUUID)
	if err != nil {
		return nil, util.LogError("[ProjectService] не удалось получить участников", err)
	}
	project.Members = members

	return project, nil
}

func (s *ProjectService) ListProjects(ctx context.Context, caller access.Caller, archived bool) ([]model.Project, error) {
	return s.projectRepository.ListVisible(ctx, s.db, caller.UserUUID, caller.IsAdmin(), archived)
}

// UpdateProject : владелец или администратор; владельца и дату создания менять нельзя
func (s *ProjectService) UpdateProject(ctx context.Context, caller access.Caller, project *model.Project) (*model.Project, error) {
	if err := validateProject(project); err != nil {
		return nil, err
	}

	stored, err := s.projectRepository.GetByUUID(ctx, s.db, project.UUID)
	if err != nil {
		return nil, util.LogError("[ProjectService] проект не найден", err)
	}

	if !access.CanWriteProject(caller, stored) {
		return nil, fmt.Errorf("[ProjectService] изменять проект может только владелец или администратор: %w", apperr.ErrForbidden)
	}

	project.OwnerUUID = stored.OwnerUUID
	project.CreatedAt = stored.CreatedAt

	if err := s.projectRepository.Update(ctx, s.db, project); err != nil {
		return nil, util.LogError("[ProjectService] не удалось обновить проект", err)
	}

	return project, nil
}

// DeleteProject : удаляет проект вместе с задачами и участниками в одной транзакции
func (s *ProjectService) DeleteProject(ctx context.Context, caller access.Caller, projectUUID string) error {
	exec, rollback, commit, err := s.projectRepository.BeginTX(ctx)
	if err != nil {
		return util.LogError("[ProjectService] не удалось начать транзакцию", err)
	}
	defer rollback()

	stored, err := s.projectRepository.GetByUUID(ctx, exec, projectUUID)
	if err != nil {
		return util.LogError("[ProjectService] проект не найден", err)
	}

	if !access.CanWriteProject(caller, stored) {
		return fmt.Errorf("[ProjectService] удалять проект может только владелец или администратор: %w", apperr.ErrForbidden)
	}

	if err := s.projectRepository.Delete(ctx, exec, projectUUID); err != nil {
		return util.LogError("[ProjectService] не удалось удалить проект", err)
	}

	if err := commit(); err != nil {
		return util.LogError("[ProjectService] не удалось закоммитить транзакцию", err)
	}

	return nil
}

// AddMember : владелец или администратор; роль owner назначить нельзя
func (s *ProjectService) AddMember(ctx context.Context, caller access.Caller, projectUUID, userUUID, role string) error {
	switch role {
	case model.MemberRoleAdmin, model.MemberRoleMember, model.MemberRoleViewer:
	default:
		return fmt.Errorf("[ProjectService] недопустимая роль %q: %w", role, apperr.ErrValidation)
	}

	project, err := s.projectRepository.GetByUUID(ctx, s.db, projectUUID)
	if err != nil {
		return util.LogError("[ProjectService] проект не найден", err)
	}

	if !access.CanWriteProject(caller, project) {
		return fmt.Errorf("[ProjectService] управлять участниками может только владелец или администратор: %w", apperr.ErrForbidden)
	}

	if userUUID == project.OwnerUUID {
		return fmt.Errorf("[ProjectService] владелец уже является участником: %w", apperr.ErrValidation)
	}

	exists, err := s.userRepository.Exists(ctx, s.db, userUUID)
	if err != nil {
		return util.LogError("[ProjectService] ошибка проверки пользователя", err)
	}
	if !exists {
		return fmt.Errorf("[ProjectService] пользователь не найден: %w", apperr.ErrNotFound)
	}

	if err := s.projectRepository.AddMember(ctx, s.db, projectUUID, userUUID, role); err != nil {
		return util.LogError("[ProjectService] не удалось добавить участника", err)
	}

	s.notifier.Send(userUUID, "project_member",
		"Добавление в проект",
		fmt.Sprintf("Вас добавили в проект «%s»", project.Name),
		"projects")

	return nil
}

// RemoveMember : запись владельца удалить нельзя
func (s *ProjectService) RemoveMember(ctx context.Context, caller access.Caller, projectUUID, userUUID string) error {
	project, err := s.projectRepository.GetByUUID(ctx, s.db, projectUUID)
	if err != nil {
		return util.LogError("[ProjectService] проект не найден", err)
	}

	if !access.CanWriteProject(caller, project) {
		return fmt.Errorf("[ProjectService] управлять участниками может только владелец или администратор: %w", apperr.ErrForbidden)
	}

	if userUUID == project.OwnerUUID {
		return fmt.Errorf("[ProjectService] владельца нельзя удалить из проекта: %w", apperr.ErrValidation)
	}

	return s.projectRepository.RemoveMember(ctx, s.db, projectUUID, userUUID)
}
