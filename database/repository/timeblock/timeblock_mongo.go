package timeblockRepo

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

// MongoTimeBlockRepo implements TimeBlockRepository using MongoDB.
type MongoTimeBlockRepo struct {
	coll *mongo.Collection
}

// NewMongoTimeBlockRepo creates a new instance of TimeBlockRepository using MongoDB.
func NewMongoTimeBlockRepo() TimeBlockRepository {
	coll := database.MongoClient.Database(config.AppConfig.DatabaseName).Collection("timeblocks")
	repo := &MongoTimeBlockRepo{coll: coll}

	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create indexes: %v\n", err)
	}
	return repo
}

func (r *MongoTimeBlockRepo) ensureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "shift", Value: 1}, {Key: "start", Value: 1}}, Options: options.Index().SetName("shift_start_idx")},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create timeblock indexes: %w", err)
	}
	return nil
}

// Seed replaces the catalog with the given blocks. Intended for initial
// setup; existing blocks with the same id are overwritten.
func (r *MongoTimeBlockRepo) Seed(ctx context.Context, blocks []models.TimeBlock) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	for _, block := range blocks {
		filter := bson.M{"id": block.ID}
		update := bson.M{"$set": block}
		opts := options.Update().SetUpsert(true)
		if _, err := r.coll.UpdateOne(ctx, filter, update, opts); err != nil {
			return fmt.Errorf("failed to seed time block %s: %w", block.ID, err)
		}
	}
	return nil
}

// GetByID retrieves a time block by its unique ID. Returns nil when no block
// matches.
func (r *MongoTimeBlockRepo) GetByID(ctx context.Context, blockID string) (*models.TimeBlock, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var block models.TimeBlock
	err := r.coll.FindOne(ctx, bson.M{"id": blockID}).Decode(&block)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("error fetching time block %s: %w", blockID, err)
	}
	return &block, nil
}

// List returns the full catalog ordered by start time.
func (r *MongoTimeBlockRepo) List(ctx context.Context) ([]models.TimeBlock, error) {
	return r.find(ctx, bson.M{})
}

// ListByShift returns the catalog entries for one shift, ordered by start time.
func (r *MongoTimeBlockRepo) ListByShift(ctx context.Context, shift string) ([]models.TimeBlock, error) {
	return r.find(ctx, bson.M{"shift": shift})
}

func (r *MongoTimeBlockRepo) find(ctx context.Context, filter bson.M) ([]models.TimeBlock, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	sort := bson.D{{Key: "start", Value: 1}}
	cursor, err := r.coll.Find(ctx, filter, options.Find().SetSort(sort))
	if err != nil {
		return nil, fmt.Errorf("error listing time blocks: %w", err)
	}
	defer cursor.Close(ctx)

	var blocks []models.TimeBlock
	if err := cursor.All(ctx, &blocks); err != nil {
		return nil, fmt.Errorf("error decoding time blocks: %w", err)
	}
	return blocks, nil
}
