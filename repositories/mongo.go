package repositories

import (
	"context"
	"fmt"
	"log"

	"github.com/sharmasagarr/taskmanager/config"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// Connect establishes the MongoDB connection shared by the repositories.
func Connect(ctx context.Context, cfg config.Config, logger *log.Logger) (*mongo.Client, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		return nil, fmt.Errorf("unable to connect to MongoDB: %w", err)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		return nil, fmt.Errorf("unable to reach MongoDB: %w", err)
	}

	logger.Println("Connected to MongoDB")
	return client, nil
}

// Disconnect closes the MongoDB connection.
func Disconnect(ctx context.Context, client *mongo.Client, logger *log.Logger) error {
	if err := client.Disconnect(ctx); err != nil {
		return fmt.Errorf("error closing MongoDB connection: %w", err)
	}
	logger.Println("MongoDB connection closed")
	return nil
}
