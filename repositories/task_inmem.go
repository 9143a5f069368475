package repositories

import (
	"context"
	"sort"
	"sync"

	"github.com/sharmasagarr/taskmanager/domain"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TaskInMemRepo is a map-backed TaskRepository used in tests.
type TaskInMemRepo struct {
	mu    sync.RWMutex
	tasks map[primitive.ObjectID]domain.Task
}

func NewTaskInMem() *TaskInMemRepo {
	return &TaskInMemRepo{
		tasks: make(map[primitive.ObjectID]domain.Task),
	}
}

func (t *TaskInMemRepo) Insert(_ context.Context, task domain.Task) (domain.Task, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if task.Id.IsZero() {
		task.Id = primitive.NewObjectID()
	}
	t.tasks[task.Id] = task
	return task, nil
}

func (t *TaskInMemRepo) GetById(_ context.Context, id string) (*domain.Task, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrTaskNotFound()
	}
	task, ok := t.tasks[objID]
	if !ok {
		return nil, domain.ErrTaskNotFound()
	}
	return &task, nil
}

func (t *TaskInMemRepo) Update(_ context.Context, task domain.Task) (domain.Task, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if _, ok := t.tasks[task.Id]; !ok {
		return domain.Task{}, domain.ErrTaskNotFound()
	}
	t.tasks[task.Id] = task
	return task, nil
}

func (t *TaskInMemRepo) Delete(_ context.Context, id string) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrTaskNotFound()
	}
	if _, ok := t.tasks[objID]; !ok {
		return domain.ErrTaskNotFound()
	}
	delete(t.tasks, objID)
	return nil
}

func (t *TaskInMemRepo) GetAll(ctx context.Context) (domain.Tasks, error) {
	return t.Find(ctx, domain.TaskFilter{})
}

func (t *TaskInMemRepo) Find(_ context.Context, filter domain.TaskFilter) (domain.Tasks, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	tasks := domain.Tasks{}
	for _, task := range t.tasks {
		if !matches(task, filter) {
			continue
		}
		task := task
		tasks = append(tasks, &task)
	}

	sort.SliceStable(tasks, func(i, j int) bool {
		return tasks[i].CreatedAt.After(tasks[j].CreatedAt)
	})
	return tasks, nil
}

func matches(task domain.Task, filter domain.TaskFilter) bool {
	if filter.AssignedToId != "" && task.AssignedTo.Id.Hex() != filter.AssignedToId {
		return false
	}
	if filter.Status != "" && task.Status.String() != filter.Status {
		return false
	}
	if !filter.From.IsZero() && task.CreatedAt.Before(filter.From) {
		return false
	}
	if !filter.To.IsZero() && task.CreatedAt.After(filter.To) {
		return false
	}
	return true
}
