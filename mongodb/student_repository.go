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

// StudentRepositoryMongo implements the domain.StudentRepository interface using MongoDB.
type StudentRepositoryMongo struct {
	collection *mongo.Collection
}

// NewStudentRepositoryMongo creates a new StudentRepositoryMongo.
// It also ensures that necessary indexes are created on the collection.
func NewStudentRepositoryMongo(ctx context.Context, db *mongo.Database) (domain.StudentRepository, error) {
	repo := &StudentRepositoryMongo{
		collection: db.Collection(StudentsCollection),
	}

	indexModels := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "createdBy", Value: 1}},
			Options: options.Index(),
		},
		{
			// Guardian login looks students up by phone number.
			Keys:    bson.D{{Key: "phone_number", Value: 1}},
			Options: options.Index().SetSparse(true),
		},
	}

	if _, err := repo.collection.Indexes().CreateMany(ctx, indexModels); err != nil {
		log.Warn().Err(err).Msg("Issue creating indexes for students collection (might already exist or other error)")
	}

	return repo, nil
}

// ListByOwner returns every student created by the given account.
func (r *StudentRepositoryMongo) ListByOwner(ctx context.Context, ownerID string) ([]*domain.Student, error) {
	owner, err := parseID(ownerID)
	if err != nil {
		return nil, err
	}

	cursor, err := r.collection.Find(ctx, bson.M{"createdBy": owner})
	if err != nil {
		log.Error().Err(err).Str("ownerID", ownerID).Msg("Error listing students from MongoDB")
		return nil, fmt.Errorf("list students: %w", err)
	}
	defer cursor.Close(ctx)

	students := []*domain.Student{}
	if err := cursor.All(ctx, &students); err != nil {
		log.Error().Err(err).Str("ownerID", ownerID).Msg("Error decoding students from MongoDB")
		return nil, fmt.Errorf("decode students: %w", err)
	}
	return students, nil
}

// GetByID retrieves a student by document id alone. The guardian portal reads
// records by id regardless of the creating account.
func (r *StudentRepositoryMongo) GetByID(ctx context.Context, id string) (*domain.Student, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}

	var student domain.Student
	if err := r.collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&student); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrNotFound
		}
		log.Error().Err(err).Str("id", id).Msg("Error getting student by ID from MongoDB")
		return nil, fmt.Errorf("get student: %w", err)
	}
	return &student, nil
}

// GetByPhoneNumber retrieves a student by the guardian contact number.
func (r *StudentRepositoryMongo) GetByPhoneNumber(ctx context.Context, phoneNumber string) (*domain.Student, error) {
	var student domain.Student
	if err := r.collection.FindOne(ctx, bson.M{"phone_number": phoneNumber}).Decode(&student); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrNotFound
		}
		log.Error().Err(err).Msg("Error getting student by phone number from MongoDB")
		return nil, fmt.Errorf("get student by phone: %w", err)
	}
	return &student, nil
}

// Create inserts a new student. Recognized fields are lifted onto the typed
// document; everything else is kept verbatim. The id, owner and creation
// timestamp are assigned here, never taken from client input.
func (r *StudentRepositoryMongo) Create(ctx context.Context, ownerID string, fields map[string]any) (*domain.Student, error) {
	owner, err := parseID(ownerID)
	if err != nil {
		return nil, err
	}

	student := &domain.Student{
		ID:        bson.NewObjectID(),
		OwnerID:   owner,
		CreatedAt: time.Now().UTC(),
	}

	extras := make(map[string]any)
	for key, value := range scrubClientFields(fields) {
		switch key {
		case "name":
			if s, ok := value.(string); ok {
				student.Name = s
				continue
			}
		case "phone_number":
			if s, ok := value.(string); ok {
				student.PhoneNumber = s
				continue
			}
		case "passkey":
			if s, ok := value.(string); ok {
				student.PasskeyHash = s
				continue
			}
		case "payment_status":
			if b, ok := domain.BoolField(value); ok {
				student.PaymentStatus = b.(bool)
				continue
			}
		case "payment_amount":
			if n, ok := domain.NumberField(value); ok {
				student.PaymentAmount = n.(float64)
				continue
			}
		}
		extras[key] = value
	}
	if len(extras) > 0 {
		student.Fields = extras
	}

	if _, err := r.collection.InsertOne(ctx, student); err != nil {
		log.Error().Err(err).Msg("Error inserting student into MongoDB")
		return nil, fmt.Errorf("insert student: %w", err)
	}
	return student, nil
}

// Update applies a sanitized patch by document id. An empty patch never
// reaches the store.
func (r *StudentRepositoryMongo) Update(ctx context.Context, id string, patch map[string]any) error {
	if len(patch) == 0 {
		return domain.NewValidationError(domain.ValidationEmptyPatch, "no valid fields to update")
	}
	oid, err := parseID(id)
	if err != nil {
		return err
	}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": patch})
	if err != nil {
		log.Error().Err(err).Str("id", id).Msg("Error updating student in MongoDB")
		return fmt.Errorf("update student: %w", err)
	}
	if result.MatchedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete removes a student owned by the given account.
func (r *StudentRepositoryMongo) Delete(ctx context.Context, id, ownerID string) error {
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
		log.Error().Err(err).Str("id", id).Msg("Error deleting student from MongoDB")
		return fmt.Errorf("delete student: %w", err)
	}
	if result.DeletedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}
