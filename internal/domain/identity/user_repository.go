package identity

import (
	"context"

	"github.com/google/uuid"
)

// UserRepository defines the interface for user persistence
type UserRepository interface {
	// FindByID finds a user by ID
	FindByID(ctx context.Context, id uuid.UUID) (*User, error)

	// FindByUsername finds a user by username
	FindByUsername(ctx context.Context, username string) (*User, error)

	// FindAll returns every user ordered by username
	FindAll(ctx context.Context) ([]User, error)

	// ExistsByUsername checks if a username is taken
	ExistsByUsername(ctx context.Context, username string) (bool, error)

	// ExistsByRole checks if any user holds the role
	ExistsByRole(ctx context.Context, role Role) (bool, error)

	// Save creates or updates a user
	Save(ctx context.Context, user *User) error

	// Delete removes a user
	Delete(ctx context.Context, id uuid.UUID) error
}

// CompanyRepository defines the interface for company persistence
type CompanyRepository interface {
	// FindByID finds a company by ID
	FindByID(ctx context.Context, id uuid.UUID) (*Company, error)

	// FindByName finds a company by its unique name
	FindByName(ctx context.Context, name string) (*Company, error)

	// FindParent returns the parent company
	FindParent(ctx context.Context) (*Company, error)

	// FindAll returns every company ordered by name
	FindAll(ctx context.Context) ([]Company, error)

	// FindSubsidiaries returns non-parent companies ordered by name
	FindSubsidiaries(ctx context.Context) ([]Company, error)

	// ExistsByID reports whether a company exists
	ExistsByID(ctx context.Context, id uuid.UUID) (bool, error)

	// ExistsByName checks if a company name is taken
	ExistsByName(ctx context.Context, name string) (bool, error)

	// Save creates or updates a company
	Save(ctx context.Context, company *Company) error
}
