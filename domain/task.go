package domain

import (
	"context"
	"encoding/json"
	"io"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Task struct {
	Id          primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Title       string             `bson:"title" json:"title"`
	Description string             `bson:"description" json:"description"`
	Status      Status             `bson:"status" json:"status"`
	AssignedTo  UserSnapshot       `bson:"assignedTo" json:"assignedTo"`
	Assignee    UserSnapshot       `bson:"assignee" json:"assignee"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt" json:"updatedAt"`
}

type Tasks []*Task

func (t *Tasks) ToJSON(w io.Writer) error {
	e := json.NewEncoder(w)
	return e.Encode(t)
}

type Status string

const (
	TODO        Status = "Todo"
	PENDING     Status = "Pending"
	IN_PROGRESS Status = "In Progress"
	DONE        Status = "Done"
)

func (s Status) String() string {
	return string(s)
}

// StatusFromString validates a raw status against the four known values.
func StatusFromString(s string) (Status, error) {
	switch Status(s) {
	case TODO, PENDING, IN_PROGRESS, DONE:
		return Status(s), nil
	default:
		return "", NewValidationError("status must be one of Todo, Pending, In Progress, Done")
	}
}

// TaskFilter carries optional criteria for task queries. Zero-valued
// fields impose no constraint; present fields are ANDed together.
type TaskFilter struct {
	AssignedToId string
	Status       string
	From         time.Time
	To           time.Time
}

func (f TaskFilter) IsZero() bool {
	return f.AssignedToId == "" && f.Status == "" && f.From.IsZero() && f.To.IsZero()
}

type TaskRepository interface {
	Insert(ctx context.Context, task Task) (Task, error)
	GetById(ctx context.Context, id string) (*Task, error)
	Update(ctx context.Context, task Task) (Task, error)
	Delete(ctx context.Context, id string) error
	GetAll(ctx context.Context) (Tasks, error)
	Find(ctx context.Context, filter TaskFilter) (Tasks, error)
}
