package mongodb

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/FavasCherukunnu/ecomm-api/internal/domain"
	"github.com/FavasCherukunnu/ecomm-api/internal/platform/logger"
	"github.com/FavasCherukunnu/ecomm-api/internal/store"
)

// categorySortFields maps API-level sort field names to document keys.
var categorySortFields = map[string]string{
	"id":         "_id",
	"name":       "name",
	"created_at": "created_at",
	"updated_at": "updated_at",
}

// CategoryStore implements the store.CategoryStore interface using a MongoDB
// collection as the storage backend.
type CategoryStore struct {
	coll   *mongo.Collection
	logger *slog.Logger
}

// NewCategoryStore creates a new MongoDB implementation of the CategoryStore
// interface. If logger is nil, a default logger will be used.
func NewCategoryStore(db *mongo.Database, logger *slog.Logger) *CategoryStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &CategoryStore{
		coll:   db.Collection(categoriesCollection),
		logger: logger.With(slog.String("component", "category_store")),
	}
}

// Ensure CategoryStore implements store.CategoryStore interface
var _ store.CategoryStore = (*CategoryStore)(nil)

// Create implements store.CategoryStore.Create. Name uniqueness is enforced
// by the index created in EnsureIndexes.
func (s *CategoryStore) Create(ctx context.Context, category *domain.Category) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	now := time.Now().UTC()
	category.CreatedAt = now
	category.UpdatedAt = now

	res, err := s.coll.InsertOne(ctx, category)
	if mongo.IsDuplicateKeyError(err) {
		return store.ErrCategoryExists
	}
	if err != nil {
		log.Error("failed to insert category", slog.String("error", err.Error()))
		return fmt.Errorf("failed to insert category: %w", err)
	}

	if id, ok := res.InsertedID.(primitive.ObjectID); ok {
		category.ID = id
	}

	log.Debug("category created",
		slog.String("category_id", category.ID.Hex()),
		slog.String("name", category.Name))
	return nil
}

// List implements store.CategoryStore.List.
func (s *CategoryStore) List(ctx context.Context, filter store.CategoryFilter) ([]domain.Category, int64, error) {
	query := bson.M{}
	if filter.Name != "" {
		query["name"] = bson.M{"$regex": regexp.QuoteMeta(filter.Name), "$options": "i"}
	}

	total, err := s.coll.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count categories: %w", err)
	}

	opts := options.Find().
		SetSkip(int64(filter.Page-1) * int64(filter.PerPage)).
		SetLimit(int64(filter.PerPage)).
		SetSort(sortSpec(categorySortFields, filter.SortField, filter.SortAscending))

	cursor, err := s.coll.Find(ctx, query, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list categories: %w", err)
	}

	categories := make([]domain.Category, 0, filter.PerPage)
	if err := cursor.All(ctx, &categories); err != nil {
		return nil, 0, fmt.Errorf("failed to decode categories: %w", err)
	}

	return categories, total, nil
}

// GetByIDs implements store.CategoryStore.GetByIDs. Used to expand category
// references when rendering product listings.
func (s *CategoryStore) GetByIDs(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]domain.Category, error) {
	result := make(map[primitive.ObjectID]domain.Category, len(ids))
	if len(ids) == 0 {
		return result, nil
	}

	cursor, err := s.coll.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, fmt.Errorf("failed to get categories: %w", err)
	}

	var categories []domain.Category
	if err := cursor.All(ctx, &categories); err != nil {
		return nil, fmt.Errorf("failed to decode categories: %w", err)
	}

	for _, category := range categories {
		result[category.ID] = category
	}
	return result, nil
}

// Exists implements store.CategoryStore.Exists.
func (s *CategoryStore) Exists(ctx context.Context, id primitive.ObjectID) (bool, error) {
	count, err := s.coll.CountDocuments(ctx, bson.M{"_id": id}, options.Count().SetLimit(1))
	if err != nil {
		return false, fmt.Errorf("failed to check category existence: %w", err)
	}
	return count > 0, nil
}
