package domain

import (
	"context"
)

// UserRepository defines methods for account data.
type UserRepository interface {
	CreateUser(ctx context.Context, user *User) error
	GetUserByID(ctx context.Context, id string) (*User, error)
	GetUserByEmail(ctx context.Context, email string) (*User, error)
}

// BatchRepository defines the batch resource contract. Create assigns the
// document id, owner and creation timestamp server-side; Update and Delete
// are scoped by id and owner, and an owner mismatch reports ErrNotFound.
type BatchRepository interface {
	ListByOwner(ctx context.Context, ownerID string) ([]*Batch, error)
	GetByID(ctx context.Context, id string) (*Batch, error)
	Create(ctx context.Context, ownerID string, fields map[string]any) (*Batch, error)
	Update(ctx context.Context, id, ownerID string, patch map[string]any) error
	Delete(ctx context.Context, id, ownerID string) error
}

// StudentRepository defines the student resource contract.
//
// GetByID and Update are id-only lookups: the guardian portal reads a student
// record by id regardless of which account created it. Delete stays scoped to
// the owning account like batches.
type StudentRepository interface {
	ListByOwner(ctx context.Context, ownerID string) ([]*Student, error)
	GetByID(ctx context.Context, id string) (*Student, error)
	GetByPhoneNumber(ctx context.Context, phoneNumber string) (*Student, error)
	Create(ctx context.Context, ownerID string, fields map[string]any) (*Student, error)
	Update(ctx context.Context, id string, patch map[string]any) error
	Delete(ctx context.Context, id, ownerID string) error
}
