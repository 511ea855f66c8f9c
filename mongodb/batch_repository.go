package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"go.edulab.hu/coachdesk/domain"
)

// BatchRepositoryMongo implements the domain.BatchRepository interface using MongoDB.
type BatchRepositoryMongo struct {
	collection *mongo.Collection
}

// NewBatchRepositoryMongo creates a new BatchRepositoryMongo.
// It also ensures that necessary indexes are created on the collection.
func NewBatchRepositoryMongo(ctx context.Context, db *mongo.Database) (domain.BatchRepository, error) {
	repo := &BatchRepositoryMongo{
		collection: db.Collection(BatchesCollection),
	}

	indexModels := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "createdBy", Value: 1}},
			Options: options.Index(), // Not unique, an account owns many batches
		},
	}

	if _, err := repo.collection.Indexes().CreateMany(ctx, indexModels); err != nil {
		log.Warn().Err(err).Msg("Issue creating indexes for batches collection (might already exist or other error)")
	}

	return repo, nil
}

// ListByOwner returns every batch created by the given account.
func (r *BatchRepositoryMongo) ListByOwner(ctx context.Context, ownerID string) ([]*domain.Batch, error) {
	owner, err := parseID(ownerID)
	if err != nil {
		return nil, err
	}

	cursor, err := r.collection.Find(ctx, bson.M{"createdBy": owner})
	if err != nil {
		log.Error().Err(err).Str("ownerID", ownerID).Msg("Error listing batches from MongoDB")
		return nil, fmt.Errorf("list batches: %w", err)
	}
	defer cursor.Close(ctx)

	batches := []*domain.Batch{}
	if err := cursor.All(ctx, &batches); err != nil {
		log.Error().Err(err).Str("ownerID", ownerID).Msg("Error decoding batches from MongoDB")
		return nil, fmt.Errorf("decode batches: %w", err)
	}
	return batches, nil
}

// GetByID retrieves a single batch by its document id.
func (r *BatchRepositoryMongo) GetByID(ctx context.Context, id string) (*domain.Batch, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}

	var batch domain.Batch
	if err := r.collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&batch); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrNotFound
		}
		log.Error().Err(err).Str("id", id).Msg("Error getting batch by ID from MongoDB")
		return nil, fmt.Errorf("get batch: %w", err)
	}
	return &batch, nil
}

// Create inserts a new batch. The id, owner and creation timestamp are
// assigned here, never taken from client input.
func (r *BatchRepositoryMongo) Create(ctx context.Context, ownerID string, fields map[string]any) (*domain.Batch, error) {
	owner, err := parseID(ownerID)
	if err != nil {
		return nil, err
	}

	batch := &domain.Batch{
		ID:        bson.NewObjectID(),
		OwnerID:   owner,
		CreatedAt: time.Now().UTC(),
		Fields:    scrubClientFields(fields),
	}

	if _, err := r.collection.InsertOne(ctx, batch); err != nil {
		log.Error().Err(err).Msg("Error inserting batch into MongoDB")
		return nil, fmt.Errorf("insert batch: %w", err)
	}
	return batch, nil
}

// Update applies a sanitized patch to a batch owned by the given account.
// An empty patch never reaches the store; an owner mismatch reads as not
// found, indistinguishable from a missing document.
func (r *BatchRepositoryMongo) Update(ctx context.Context, id, ownerID string, patch map[string]any) error {
	if len(patch) == 0 {
		return domain.NewValidationError(domain.ValidationEmptyPatch, "no valid fields to update")
	}
	oid, err := parseID(id)
	if err != nil {
		return err
	}
	owner, err := parseID(ownerID)
	if err != nil {
		return err
	}

	result, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": oid, "createdBy": owner},
		bson.M{"$set": patch},
	)
	if err != nil {
		log.Error().Err(err).Str("id", id).Msg("Error updating batch in MongoDB")
		return fmt.Errorf("update batch: %w", err)
	}
	if result.MatchedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete removes a batch owned by the given account. Deleting someone else's
// batch, or one already gone, reports ErrNotFound.
func (r *BatchRepositoryMongo) Delete(ctx context.Context, id, ownerID string) error {
	oid, err := parseID(id)
	if err != nil {
		return err
	}
	owner, err := parseID(ownerID)
	if err != nil {
		return err
	}

	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": oid, "createdBy": owner})
	if err != nil {
		log.Error().Err(err).Str("id", id).Msg("Error deleting batch from MongoDB")
		return fmt.Errorf("delete batch: %w", err)
	}
	if result.DeletedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}
