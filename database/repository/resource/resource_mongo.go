package resourceRepo

import (
	"context"
	"fmt"
	"time"

	"reservio/config"
	"reservio/database"
	"reservio/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoResourceRepo implements ResourceRepository using MongoDB.
type MongoResourceRepo struct {
	coll *mongo.Collection
}

// NewMongoResourceRepo creates a new instance of ResourceRepository using MongoDB.
func NewMongoResourceRepo() ResourceRepository {
	coll := database.MongoClient.Database(config.AppConfig.DatabaseName).Collection("resources")
	repo := &MongoResourceRepo{coll: coll}

	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create indexes: %v\n", err)
	}
	return repo
}

func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

func (r *MongoResourceRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "category", Value: 1}}, Options: options.Index().SetName("category_idx")},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create resource indexes: %w", err)
	}
	return nil
}

// Create inserts a new resource document.
func (r *MongoResourceRepo) Create(ctx context.Context, resource *models.Resource) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	now := time.Now()
	resource.CreatedAt = now
	resource.UpdatedAt = now

	_, err := r.coll.InsertOne(ctx, resource)
	if err != nil {
		return fmt.Errorf("failed to create resource: %w", err)
	}
	return nil
}

// GetByID retrieves a resource by its unique ID. Returns nil when no resource
// matches.
func (r *MongoResourceRepo) GetByID(ctx context.Context, resourceID string) (*models.Resource, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var resource models.Resource
	err := r.coll.FindOne(ctx, bson.M{"id": resourceID}).Decode(&resource)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("error fetching resource %s: %w", resourceID, err)
	}
	return &resource, nil
}

// Update modifies an existing resource document.
func (r *MongoResourceRepo) Update(ctx context.Context, resource *models.Resource) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	resource.UpdatedAt = time.Now()
	result, err := r.coll.UpdateOne(ctx, bson.M{"id": resource.ID}, bson.M{"$set": resource})
	if err != nil {
		return fmt.Errorf("failed to update resource %s: %w", resource.ID, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("resource with id %s not found", resource.ID)
	}
	return nil
}

// UpdateStatus sets only the operational status. This is the maintenance
// workflow's entry point; booking lifecycle transitions never touch it.
func (r *MongoResourceRepo) UpdateStatus(ctx context.Context, resourceID, status string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	update := bson.M{"$set": bson.M{"status": status, "updated_at": time.Now()}}
	result, err := r.coll.UpdateOne(ctx, bson.M{"id": resourceID}, update)
	if err != nil {
		return fmt.Errorf("failed to update resource status %s: %w", resourceID, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("resource with id %s not found", resourceID)
	}
	return nil
}

// List returns all resources ordered by category then name.
func (r *MongoResourceRepo) List(ctx context.Context) ([]models.Resource, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	sort := bson.D{{Key: "category", Value: 1}, {Key: "name", Value: 1}}
	cursor, err := r.coll.Find(ctx, bson.M{}, options.Find().SetSort(sort))
	if err != nil {
		return nil, fmt.Errorf("error listing resources: %w", err)
	}
	defer cursor.Close(ctx)

	var resources []models.Resource
	if err := cursor.All(ctx, &resources); err != nil {
		return nil, fmt.Errorf("error decoding resources: %w", err)
	}
	return resources, nil
}
