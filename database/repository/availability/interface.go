// File: database/repository/availability/interface.go
package availabilityRepo

import (
	"context"
	"errors"

	"availcal/database"
	"availcal/models"

	"go.mongodb.org/mongo-driver/mongo"
)

// ErrAvailabilityNotFound is returned when the owner has no stored availability.
var ErrAvailabilityNotFound = errors.New("availability not found")

// AvailabilityRepository persists the flat range list of each calendar owner.
type AvailabilityRepository interface {
	GetDocument(ctx context.Context, ownerID string) (*models.AvailabilityDocument, error)
	ReplaceForOwner(ctx context.Context, ownerID string, window models.SlotWindow, ranges []models.AvailabilityRange) error
	DeleteByOwner(ctx context.Context, ownerID string) error
	EnsureIndexes() error
}

type mongoAvailabilityRepo struct {
	coll *mongo.Collection
}

// NewMongoAvailabilityRepo constructs a new MongoDB AvailabilityRepository.
func NewMongoAvailabilityRepo() AvailabilityRepository {
	db := database.MongoClient.Database(database.Name())
	return &mongoAvailabilityRepo{
		coll: db.Collection("availability"),
	}
}
