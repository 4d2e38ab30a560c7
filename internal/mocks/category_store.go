package mocks

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/FavasCherukunnu/ecomm-api/internal/domain"
	"github.com/FavasCherukunnu/ecomm-api/internal/store"
)

// MockCategoryStore implements store.CategoryStore for testing
type MockCategoryStore struct {
	// Function fields for customizable behavior
	CreateFn   func(ctx context.Context, category *domain.Category) error
	ListFn     func(ctx context.Context, filter store.CategoryFilter) ([]domain.Category, int64, error)
	GetByIDsFn func(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]domain.Category, error)
	ExistsFn   func(ctx context.Context, id primitive.ObjectID) (bool, error)

	// Data for the default implementation
	Categories map[primitive.ObjectID]*domain.Category

	// Captured arguments for assertions
	LastFilter store.CategoryFilter
}

// NewMockCategoryStore creates a new mock store with initialized defaults
func NewMockCategoryStore() *MockCategoryStore {
	return &MockCategoryStore{
		Categories: make(map[primitive.ObjectID]*domain.Category),
	}
}

// Add seeds the mock with a category and returns it for convenience.
func (m *MockCategoryStore) Add(name string) *domain.Category {
	category := &domain.Category{ID: primitive.NewObjectID(), Name: name}
	m.Categories[category.ID] = category
	return category
}

// Create implements the CategoryStore interface
func (m *MockCategoryStore) Create(ctx context.Context, category *domain.Category) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, category)
	}

	for _, existing := range m.Categories {
		if existing.Name == category.Name {
			return store.ErrCategoryExists
		}
	}
	if category.ID.IsZero() {
		category.ID = primitive.NewObjectID()
	}
	m.Categories[category.ID] = category
	return nil
}

// List implements the CategoryStore interface
func (m *MockCategoryStore) List(ctx context.Context, filter store.CategoryFilter) ([]domain.Category, int64, error) {
	m.LastFilter = filter
	if m.ListFn != nil {
		return m.ListFn(ctx, filter)
	}

	categories := make([]domain.Category, 0, len(m.Categories))
	for _, category := range m.Categories {
		categories = append(categories, *category)
	}
	return categories, int64(len(categories)), nil
}

// GetByIDs implements the CategoryStore interface
func (m *MockCategoryStore) GetByIDs(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]domain.Category, error) {
	if m.GetByIDsFn != nil {
		return m.GetByIDsFn(ctx, ids)
	}

	result := make(map[primitive.ObjectID]domain.Category, len(ids))
	for _, id := range ids {
		if category, ok := m.Categories[id]; ok {
			result[id] = *category
		}
	}
	return result, nil
}

// Exists implements the CategoryStore interface
func (m *MockCategoryStore) Exists(ctx context.Context, id primitive.ObjectID) (bool, error) {
	if m.ExistsFn != nil {
		return m.ExistsFn(ctx, id)
	}

	_, ok := m.Categories[id]
	return ok, nil
}

// Ensure MockCategoryStore implements store.CategoryStore
var _ store.CategoryStore = (*MockCategoryStore)(nil)
