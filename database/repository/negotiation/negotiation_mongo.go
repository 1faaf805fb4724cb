package negotiationRepo

import (
	"context"
	"fmt"
	"time"

	"meetsync/database"

	"go.mongodb.org/mongo-driver/mongo"
)

// MongoNegotiationRepo implements NegotiationRepository using MongoDB.
type MongoNegotiationRepo struct {
	coll *mongo.Collection
}

// NewMongoNegotiationRepo creates a new instance of NegotiationRepository using MongoDB.
func NewMongoNegotiationRepo() NegotiationRepository {
	coll := database.MongoClient.Database("meetsync").Collection("negotiations")
	repo := &MongoNegotiationRepo{coll: coll}

	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create indexes: %v\n", err)
	}
	return repo
}

// newContext creates a context with the given timeout.
func newContext(parent context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(parent, timeout)
}
