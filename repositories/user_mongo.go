package repositories

import (
	"context"
	"log"
	"time"

	"github.com/sharmasagarr/taskmanager/domain"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.opentelemetry.io/otel/trace"
)

type UserRepo struct {
	collection *mongo.Collection
	logger     *log.Logger
	tracer     trace.Tracer
}

func NewUserRepo(db *mongo.Database, logger *log.Logger, tracer trace.Tracer) *UserRepo {
	return &UserRepo{
		collection: db.Collection("users"),
		logger:     logger,
		tracer:     tracer,
	}
}

func (ur *UserRepo) GetById(ctx context.Context, id string) (*domain.User, error) {
	ctx, span := ur.tracer.Start(ctx, "UserRepo.GetById")
	defer span.End()

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrUserNotFound()
	}

	var user domain.User
	err = ur.collection.FindOne(ctx, bson.M{"_id": objID}).Decode(&user)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrUserNotFound()
		}
		ur.logger.Println("Error finding user by id:", err)
		return nil, err
	}
	return &user, nil
}

func (ur *UserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	ctx, span := ur.tracer.Start(ctx, "UserRepo.GetByEmail")
	defer span.End()

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var user domain.User
	err := ur.collection.FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrUserNotFound()
		}
		ur.logger.Println("Error finding user by email:", err)
		return nil, err
	}
	return &user, nil
}

func (ur *UserRepo) Insert(ctx context.Context, user domain.User) (domain.User, error) {
	ctx, span := ur.tracer.Start(ctx, "UserRepo.Insert")
	defer span.End()

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if user.Id.IsZero() {
		user.Id = primitive.NewObjectID()
	}

	_, err := ur.collection.InsertOne(ctx, &user)
	if err != nil {
		ur.logger.Println("Error inserting user:", err)
		return domain.User{}, err
	}
	ur.logger.Printf("User inserted: %v\n", user.Id.Hex())
	return user, nil
}
