package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/sharmasagarr/taskmanager/config"
	"github.com/sharmasagarr/taskmanager/domain"

	"go.opentelemetry.io/otel/trace"
)

type TaskService struct {
	tasks         domain.TaskRepository
	users         domain.UserRepository
	defaultStatus domain.Status
	tracer        trace.Tracer
}

func NewTaskService(tasks domain.TaskRepository, users domain.UserRepository, cfg config.Config, tracer trace.Tracer) *TaskService {
	defaultStatus, err := domain.StatusFromString(cfg.DefaultStatus)
	if err != nil {
		defaultStatus = domain.PENDING
	}
	return &TaskService{
		tasks:         tasks,
		users:         users,
		defaultStatus: defaultStatus,
		tracer:        tracer,
	}
}

// Create persists a new task. The assigned user is resolved by email,
// the creator by id; both are frozen into the task as snapshots.
func (s *TaskService) Create(ctx context.Context, creatorId, title, description, assignedToEmail, status string) (domain.Task, error) {
	ctx, span := s.tracer.Start(ctx, "TaskService.Create")
	defer span.End()

	title = strings.TrimSpace(title)
	description = strings.TrimSpace(description)

	if len(title) < 2 || len(title) > 100 {
		return domain.Task{}, domain.NewValidationError("title must be between 2 and 100 characters")
	}
	if len(description) < 2 {
		return domain.Task{}, domain.NewValidationError("description must be at least 2 characters")
	}
	if assignedToEmail == "" {
		return domain.Task{}, domain.NewValidationError("assignedTo email is required")
	}

	taskStatus := s.defaultStatus
	if status != "" {
		parsed, err := domain.StatusFromString(status)
		if err != nil {
			return domain.Task{}, err
		}
		taskStatus = parsed
	}

	assignedUser, err := s.users.GetByEmail(ctx, strings.TrimSpace(strings.ToLower(assignedToEmail)))
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound()) {
			return domain.Task{}, domain.ErrAssignedUserNotFound()
		}
		return domain.Task{}, err
	}

	// Defensive: an authenticated caller should always resolve.
	assigneeUser, err := s.users.GetById(ctx, creatorId)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound()) {
			return domain.Task{}, domain.ErrAssigneeUserNotFound()
		}
		return domain.Task{}, err
	}

	now := time.Now()
	task := domain.Task{
		Title:       title,
		Description: description,
		Status:      taskStatus,
		AssignedTo:  assignedUser.Snapshot(),
		Assignee:    assigneeUser.Snapshot(),
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	return s.tasks.Insert(ctx, task)
}

// UpdateStatus sets a task's status. Only the assignedTo user may do
// so; any of the four statuses may move to any other.
func (s *TaskService) UpdateStatus(ctx context.Context, taskId, requesterId, status string) (domain.Task, error) {
	ctx, span := s.tracer.Start(ctx, "TaskService.UpdateStatus")
	defer span.End()

	newStatus, err := domain.StatusFromString(status)
	if err != nil {
		return domain.Task{}, err
	}

	task, err := s.tasks.GetById(ctx, taskId)
	if err != nil {
		return domain.Task{}, err
	}

	if task.AssignedTo.Id.Hex() != requesterId {
		return domain.Task{}, domain.ErrForbidden()
	}

	task.Status = newStatus
	task.UpdatedAt = time.Now()
	return s.tasks.Update(ctx, *task)
}

// Delete removes a task. Only the assignee (creator) may do so.
func (s *TaskService) Delete(ctx context.Context, taskId, requesterId string) error {
	ctx, span := s.tracer.Start(ctx, "TaskService.Delete")
	defer span.End()

	task, err := s.tasks.GetById(ctx, taskId)
	if err != nil {
		return err
	}

	if task.Assignee.Id.Hex() != requesterId {
		return domain.ErrForbidden()
	}

	return s.tasks.Delete(ctx, taskId)
}

// GetAll returns every task, newest first.
func (s *TaskService) GetAll(ctx context.Context) (domain.Tasks, error) {
	ctx, span := s.tracer.Start(ctx, "TaskService.GetAll")
	defer span.End()

	return s.tasks.GetAll(ctx)
}

// Filter returns the tasks matching the criteria, newest first. An
// empty filter behaves like GetAll; criteria matching no task give an
// empty list, unknown status values included.
func (s *TaskService) Filter(ctx context.Context, filter domain.TaskFilter) (domain.Tasks, error) {
	ctx, span := s.tracer.Start(ctx, "TaskService.Filter")
	defer span.End()

	if filter.IsZero() {
		return s.tasks.GetAll(ctx)
	}
	return s.tasks.Find(ctx, filter)
}
