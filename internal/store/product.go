package store

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/FavasCherukunnu/ecomm-api/internal/domain"
)

// ProductFilter narrows, sorts, and pages a product listing. Callers are
// expected to normalize Page and PerPage to positive values before use.
type ProductFilter struct {
	// Name filters by case-insensitive substring match on the product name.
	Name string

	// CategoryID restricts the listing to a single category when non-nil.
	CategoryID *primitive.ObjectID

	// SortField names the entity field to sort by. Implementations fall
	// back to creation order when it is empty or unknown.
	SortField string

	// SortAscending sorts ascending when true, descending otherwise.
	SortAscending bool

	Page    int
	PerPage int
}

// ProductUpdate describes a partial update. Nil fields are left unchanged.
// Image and ThumbnailImage are only ever set together; a product's two
// derivative URLs must come from the same upload batch.
type ProductUpdate struct {
	Name           *string
	Title          *string
	Description    *string
	Price          *float64
	Quantity       *int
	CategoryID     *primitive.ObjectID
	Image          *string
	ThumbnailImage *string
}

// ProductStore defines the interface for product data persistence.
type ProductStore interface {
	// Create saves a new product to the store, assigning its ID and
	// returning it on the passed-in entity.
	Create(ctx context.Context, product *domain.Product) error

	// GetByID retrieves a product by its unique ID.
	// Returns ErrProductNotFound if the product does not exist.
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Product, error)

	// Update applies the non-nil fields of update to the product with the
	// given ID and returns the updated record.
	// Returns ErrProductNotFound if the product does not exist.
	Update(ctx context.Context, id primitive.ObjectID, update ProductUpdate) (*domain.Product, error)

	// Delete removes a product from the store by its ID.
	// Returns ErrProductNotFound if the product does not exist.
	Delete(ctx context.Context, id primitive.ObjectID) error

	// List returns one page of products matching the filter along with the
	// total number of matches across all pages.
	List(ctx context.Context, filter ProductFilter) ([]domain.Product, int64, error)
}
