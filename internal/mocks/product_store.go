package mocks

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/FavasCherukunnu/ecomm-api/internal/domain"
	"github.com/FavasCherukunnu/ecomm-api/internal/store"
)

// MockProductStore implements store.ProductStore for testing
type MockProductStore struct {
	// Function fields for customizable behavior
	CreateFn  func(ctx context.Context, product *domain.Product) error
	GetByIDFn func(ctx context.Context, id primitive.ObjectID) (*domain.Product, error)
	UpdateFn  func(ctx context.Context, id primitive.ObjectID, update store.ProductUpdate) (*domain.Product, error)
	DeleteFn  func(ctx context.Context, id primitive.ObjectID) error
	ListFn    func(ctx context.Context, filter store.ProductFilter) ([]domain.Product, int64, error)

	// Data for the default implementation
	Products map[primitive.ObjectID]*domain.Product

	// Captured arguments for assertions
	LastUpdate store.ProductUpdate
	LastFilter store.ProductFilter
}

// NewMockProductStore creates a new mock store with initialized defaults
func NewMockProductStore() *MockProductStore {
	return &MockProductStore{
		Products: make(map[primitive.ObjectID]*domain.Product),
	}
}

// Create implements the ProductStore interface
func (m *MockProductStore) Create(ctx context.Context, product *domain.Product) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, product)
	}

	if product.ID.IsZero() {
		product.ID = primitive.NewObjectID()
	}
	m.Products[product.ID] = product
	return nil
}

// GetByID implements the ProductStore interface
func (m *MockProductStore) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Product, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}

	product, ok := m.Products[id]
	if !ok {
		return nil, store.ErrProductNotFound
	}
	return product, nil
}

// Update implements the ProductStore interface
func (m *MockProductStore) Update(ctx context.Context, id primitive.ObjectID, update store.ProductUpdate) (*domain.Product, error) {
	m.LastUpdate = update
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, id, update)
	}

	product, ok := m.Products[id]
	if !ok {
		return nil, store.ErrProductNotFound
	}
	applyProductUpdate(product, update)
	return product, nil
}

// Delete implements the ProductStore interface
func (m *MockProductStore) Delete(ctx context.Context, id primitive.ObjectID) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, id)
	}

	if _, ok := m.Products[id]; !ok {
		return store.ErrProductNotFound
	}
	delete(m.Products, id)
	return nil
}

// List implements the ProductStore interface
func (m *MockProductStore) List(ctx context.Context, filter store.ProductFilter) ([]domain.Product, int64, error) {
	m.LastFilter = filter
	if m.ListFn != nil {
		return m.ListFn(ctx, filter)
	}

	products := make([]domain.Product, 0, len(m.Products))
	for _, product := range m.Products {
		products = append(products, *product)
	}
	return products, int64(len(products)), nil
}

func applyProductUpdate(product *domain.Product, update store.ProductUpdate) {
	if update.Name != nil {
		product.Name = *update.Name
	}
	if update.Title != nil {
		product.Title = *update.Title
	}
	if update.Description != nil {
		product.Description = *update.Description
	}
	if update.Price != nil {
		product.Price = *update.Price
	}
	if update.Quantity != nil {
		product.Quantity = *update.Quantity
	}
	if update.CategoryID != nil {
		product.CategoryID = *update.CategoryID
	}
	if update.Image != nil {
		product.Image = *update.Image
	}
	if update.ThumbnailImage != nil {
		product.ThumbnailImage = *update.ThumbnailImage
	}
}

// Ensure MockProductStore implements store.ProductStore
var _ store.ProductStore = (*MockProductStore)(nil)
