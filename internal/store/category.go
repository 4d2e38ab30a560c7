package store

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/FavasCherukunnu/ecomm-api/internal/domain"
)

// CategoryFilter narrows, sorts, and pages a category listing. Callers are
// expected to normalize Page and PerPage to positive values before use.
type CategoryFilter struct {
	// Name filters by case-insensitive substring match on the category name.
	Name string

	// SortField names the entity field to sort by. Implementations fall
	// back to creation order when it is empty or unknown.
	SortField string

	// SortAscending sorts ascending when true, descending otherwise.
	SortAscending bool

	Page    int
	PerPage int
}

// CategoryStore defines the interface for category data persistence.
type CategoryStore interface {
	// Create saves a new category to the store, assigning its ID.
	// Returns ErrCategoryExists if a category with the same name exists.
	Create(ctx context.Context, category *domain.Category) error

	// List returns one page of categories matching the filter along with
	// the total number of matches across all pages.
	List(ctx context.Context, filter CategoryFilter) ([]domain.Category, int64, error)

	// GetByIDs retrieves the categories with the given IDs, keyed by ID.
	// IDs with no matching category are simply absent from the result.
	GetByIDs(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]domain.Category, error)

	// Exists reports whether a category with the given ID exists.
	Exists(ctx context.Context, id primitive.ObjectID) (bool, error)
}
