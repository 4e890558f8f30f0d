// File: database/repository/availability/crud.go
package availabilityRepo

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"availcal/models"
)

// GetDocument returns nil without error when the owner has never saved.
func (r *mongoAvailabilityRepo) GetDocument(ctx context.Context, ownerID string) (*models.AvailabilityDocument, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var doc models.AvailabilityDocument
	err := r.coll.FindOne(ctx, bson.M{"ownerId": ownerID}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &doc, nil
}

// ReplaceForOwner overwrites the owner's ranges and the window they were built
// with, creating the document on first save.
func (r *mongoAvailabilityRepo) ReplaceForOwner(ctx context.Context, ownerID string, window models.SlotWindow, ranges []models.AvailabilityRange) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	sorted := make([]models.AvailabilityRange, len(ranges))
	copy(sorted, ranges)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Start.Before(sorted[j].Start) })

	now := time.Now().UTC()
	update := bson.M{
		"$set": bson.M{
			"ranges":    sorted,
			"window":    window,
			"updatedAt": now,
		},
		"$inc": bson.M{"version": 1},
		"$setOnInsert": bson.M{
			"id":        uuid.New().String(),
			"ownerId":   ownerID,
			"createdAt": now,
		},
	}
	_, err := r.coll.UpdateOne(ctx, bson.M{"ownerId": ownerID}, update, options.Update().SetUpsert(true))
	return err
}

// DeleteByOwner drops the owner's stored availability.
func (r *mongoAvailabilityRepo) DeleteByOwner(ctx context.Context, ownerID string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	res, err := r.coll.DeleteOne(ctx, bson.M{"ownerId": ownerID})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrAvailabilityNotFound
	}
	return nil
}
