package repositories

import (
	"context"
	"log"
	"time"

	"github.com/sharmasagarr/taskmanager/domain"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.opentelemetry.io/otel/trace"
)

type TaskRepo struct {
	collection *mongo.Collection
	logger     *log.Logger
	tracer     trace.Tracer
}

func NewTaskRepo(db *mongo.Database, logger *log.Logger, tracer trace.Tracer) *TaskRepo {
	return &TaskRepo{
		collection: db.Collection("tasks"),
		logger:     logger,
		tracer:     tracer,
	}
}

func (tr *TaskRepo) Insert(ctx context.Context, task domain.Task) (domain.Task, error) {
	ctx, span := tr.tracer.Start(ctx, "TaskRepo.Insert")
	defer span.End()

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if task.Id.IsZero() {
		task.Id = primitive.NewObjectID()
	}

	_, err := tr.collection.InsertOne(ctx, &task)
	if err != nil {
		tr.logger.Println("Error inserting task:", err)
		return domain.Task{}, err
	}
	tr.logger.Printf("Task inserted: %v\n", task.Id.Hex())
	return task, nil
}

func (tr *TaskRepo) GetById(ctx context.Context, id string) (*domain.Task, error) {
	ctx, span := tr.tracer.Start(ctx, "TaskRepo.GetById")
	defer span.End()

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrTaskNotFound()
	}

	var task domain.Task
	err = tr.collection.FindOne(ctx, bson.M{"_id": objID}).Decode(&task)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrTaskNotFound()
		}
		tr.logger.Println("Error finding task:", err)
		return nil, err
	}
	return &task, nil
}

func (tr *TaskRepo) Update(ctx context.Context, task domain.Task) (domain.Task, error) {
	ctx, span := tr.tracer.Start(ctx, "TaskRepo.Update")
	defer span.End()

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"_id": task.Id}
	update := bson.M{"$set": bson.M{
		"status":    task.Status,
		"updatedAt": task.UpdatedAt,
	}}

	result, err := tr.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		tr.logger.Println("Error updating task:", err)
		return domain.Task{}, err
	}
	if result.MatchedCount == 0 {
		return domain.Task{}, domain.ErrTaskNotFound()
	}
	return task, nil
}

func (tr *TaskRepo) Delete(ctx context.Context, id string) error {
	ctx, span := tr.tracer.Start(ctx, "TaskRepo.Delete")
	defer span.End()

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrTaskNotFound()
	}

	result, err := tr.collection.DeleteOne(ctx, bson.M{"_id": objID})
	if err != nil {
		tr.logger.Println("Error deleting task:", err)
		return err
	}
	if result.DeletedCount == 0 {
		return domain.ErrTaskNotFound()
	}
	return nil
}

func (tr *TaskRepo) GetAll(ctx context.Context) (domain.Tasks, error) {
	return tr.Find(ctx, domain.TaskFilter{})
}

// Find returns tasks matching the filter, newest first.
func (tr *TaskRepo) Find(ctx context.Context, filter domain.TaskFilter) (domain.Tasks, error) {
	ctx, span := tr.tracer.Start(ctx, "TaskRepo.Find")
	defer span.End()

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	query := bson.M{}
	if filter.AssignedToId != "" {
		objID, err := primitive.ObjectIDFromHex(filter.AssignedToId)
		if err != nil {
			// An id no user can have matches nothing.
			return domain.Tasks{}, nil
		}
		query["assignedTo._id"] = objID
	}
	if filter.Status != "" {
		query["status"] = filter.Status
	}
	if !filter.From.IsZero() || !filter.To.IsZero() {
		createdAt := bson.M{}
		if !filter.From.IsZero() {
			createdAt["$gte"] = filter.From
		}
		if !filter.To.IsZero() {
			createdAt["$lte"] = filter.To
		}
		query["createdAt"] = createdAt
	}

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := tr.collection.Find(ctx, query, opts)
	if err != nil {
		tr.logger.Println("Error querying tasks:", err)
		return nil, err
	}

	tasks := domain.Tasks{}
	if err := cursor.All(ctx, &tasks); err != nil {
		tr.logger.Println("Error decoding tasks:", err)
		return nil, err
	}
	return tasks, nil
}
