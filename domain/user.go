package domain

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type User struct {
	Id        primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Name      string             `bson:"name" json:"name"`
	Email     string             `bson:"email" json:"email"`
	Password  string             `bson:"password" json:"-"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
}

// UserSnapshot is the public part of a User, frozen into a task at
// creation time. Later changes to the User record do not propagate.
type UserSnapshot struct {
	Id    primitive.ObjectID `bson:"_id" json:"_id"`
	Name  string             `bson:"name" json:"name"`
	Email string             `bson:"email" json:"email"`
}

// Snapshot copies the user's public fields.
func (u User) Snapshot() UserSnapshot {
	return UserSnapshot{
		Id:    u.Id,
		Name:  u.Name,
		Email: u.Email,
	}
}

type UserRepository interface {
	GetById(ctx context.Context, id string) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	Insert(ctx context.Context, user User) (User, error)
}
