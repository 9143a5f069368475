package repositories

import (
	"context"
	"sync"

	"github.com/sharmasagarr/taskmanager/domain"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// UserInMemRepo is a map-backed UserRepository used in tests.
type UserInMemRepo struct {
	mu    sync.RWMutex
	users map[primitive.ObjectID]domain.User
}

func NewUserInMem() *UserInMemRepo {
	return &UserInMemRepo{
		users: make(map[primitive.ObjectID]domain.User),
	}
}

func (u *UserInMemRepo) GetById(_ context.Context, id string) (*domain.User, error) {
	u.mu.RLock()
	defer u.mu.RUnlock()

	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrUserNotFound()
	}
	user, ok := u.users[objID]
	if !ok {
		return nil, domain.ErrUserNotFound()
	}
	return &user, nil
}

func (u *UserInMemRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	u.mu.RLock()
	defer u.mu.RUnlock()

	for _, user := range u.users {
		if user.Email == email {
			user := user
			return &user, nil
		}
	}
	return nil, domain.ErrUserNotFound()
}

func (u *UserInMemRepo) Insert(_ context.Context, user domain.User) (domain.User, error) {
	u.mu.Lock()
	defer u.mu.Unlock()

	if user.Id.IsZero() {
		user.Id = primitive.NewObjectID()
	}
	u.users[user.Id] = user
	return user, nil
}

// Overwrite replaces a stored user record in place. Users are immutable
// through the service layer; tests use this to verify task snapshots
// stay frozen.
func (u *UserInMemRepo) Overwrite(user domain.User) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.users[user.Id] = user
}
