// Package runsave provides the interface for run save persistence
package runsave

//go:generate mockgen -destination=mock/mock_repository.go -package=runsavemock github.com/deckfall/run-api/internal/repositories/runsave Repository

import (
	"context"

	"github.com/deckfall/run-api/internal/entities/run"
)

// Repository defines the interface for run save persistence. The store
// keeps one document per save plus a per-account pointer to the current
// run, which is how "one in-progress run per account" is indexed.
type Repository interface {
	// Create persists a new save and points the account index at it,
	// replacing any previous pointer.
	// Returns errors.InvalidArgument for validation failures
	// Returns errors.AlreadyExists if a save with the same ID exists
	Create(ctx context.Context, input CreateInput) (*CreateOutput, error)

	// Get retrieves a save by ID
	// Returns errors.NotFound if the save doesn't exist
	Get(ctx context.Context, input GetInput) (*GetOutput, error)

	// GetCurrent retrieves the account's current save via the index
	// Returns errors.NotFound if the account has no current run
	GetCurrent(ctx context.Context, input GetCurrentInput) (*GetCurrentOutput, error)

	// Update overwrites an existing save
	// Returns errors.NotFound if the save doesn't exist
	Update(ctx context.Context, input UpdateInput) (*UpdateOutput, error)

	// Delete deletes a save and drops the account index if it points here
	// Returns errors.NotFound if the save doesn't exist
	Delete(ctx context.Context, input DeleteInput) (*DeleteOutput, error)
}

// CreateInput defines the input for creating a save
type CreateInput struct {
	Save *run.RunSave
}

// CreateOutput defines the output for creating a save
type CreateOutput struct {
	Save *run.RunSave
}

// GetInput defines the input for getting a save
type GetInput struct {
	ID string
}

// GetOutput defines the output for getting a save
type GetOutput struct {
	Save *run.RunSave
}

// GetCurrentInput defines the input for getting an account's current save
type GetCurrentInput struct {
	AccountID string
}

// GetCurrentOutput defines the output for getting an account's current save
type GetCurrentOutput struct {
	Save *run.RunSave
}

// UpdateInput defines the input for updating a save
type UpdateInput struct {
	Save *run.RunSave
}

// UpdateOutput defines the output for updating a save
type UpdateOutput struct {
	Save *run.RunSave
}

// DeleteInput defines the input for deleting a save
type DeleteInput struct {
	ID string
}

// DeleteOutput defines the output for deleting a save
type DeleteOutput struct{}
