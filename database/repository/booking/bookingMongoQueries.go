// File: database/repository/booking/bookingMongoQueries.go
package bookingRepo

import (
	"context"
	"fmt"
	"time"

	"reservio/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// FindLiveBySlot returns the non-cancelled booking occupying the slot, or nil
// if the slot is free. Cancelled bookings never block a slot.
func (r *MongoBookingRepo) FindLiveBySlot(ctx context.Context, resourceID, timeBlockID, date string) (*models.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{
		"resource_id":   resourceID,
		"time_block_id": timeBlockID,
		"date":          date,
		"status":        bson.M{"$ne": models.BookingCancelled},
	}

	var booking models.Booking
	err := r.coll.FindOne(ctx, filter).Decode(&booking)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("error checking slot occupancy: %w", err)
	}
	return &booking, nil
}

// ListByUser returns all bookings made by the given user, newest date first.
func (r *MongoBookingRepo) ListByUser(ctx context.Context, userID string) ([]models.Booking, error) {
	filter := bson.M{"user_id": userID}
	return r.list(ctx, filter, bson.D{{Key: "date", Value: -1}})
}

// ListByResourceDate returns the day sheet for a resource: every booking on
// the given date, ordered by time block.
func (r *MongoBookingRepo) ListByResourceDate(ctx context.Context, resourceID, date string) ([]models.Booking, error) {
	filter := bson.M{"resource_id": resourceID, "date": date}
	return r.list(ctx, filter, bson.D{{Key: "time_block_id", Value: 1}})
}

// ListAll returns the full booking history. The suggestion engine consumes
// this as its scoring input.
func (r *MongoBookingRepo) ListAll(ctx context.Context) ([]models.Booking, error) {
	return r.list(ctx, bson.M{}, bson.D{{Key: "date", Value: 1}})
}

func (r *MongoBookingRepo) list(ctx context.Context, filter bson.M, sort bson.D) ([]models.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cursor, err := r.coll.Find(ctx, filter, options.Find().SetSort(sort))
	if err != nil {
		return nil, fmt.Errorf("error listing bookings: %w", err)
	}
	defer cursor.Close(ctx)

	var bookings []models.Booking
	if err := cursor.All(ctx, &bookings); err != nil {
		return nil, fmt.Errorf("error decoding bookings: %w", err)
	}
	return bookings, nil
}
