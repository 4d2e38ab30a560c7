package mongodb

import (
	"context"
	"errors"
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

// productSortFields maps API-level sort field names to document keys.
var productSortFields = map[string]string{
	"id":         "_id",
	"name":       "name",
	"title":      "title",
	"price":      "price",
	"quantity":   "quantity",
	"created_at": "created_at",
	"updated_at": "updated_at",
}

// ProductStore implements the store.ProductStore interface using a MongoDB
// collection as the storage backend.
type ProductStore struct {
	coll   *mongo.Collection
	logger *slog.Logger
}

// NewProductStore creates a new MongoDB implementation of the ProductStore
// interface. If logger is nil, a default logger will be used.
func NewProductStore(db *mongo.Database, logger *slog.Logger) *ProductStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &ProductStore{
		coll:   db.Collection(productsCollection),
		logger: logger.With(slog.String("component", "product_store")),
	}
}

// Ensure ProductStore implements store.ProductStore interface
var _ store.ProductStore = (*ProductStore)(nil)

// Create implements store.ProductStore.Create. Timestamps are assigned here
// so every document carries server-side UTC times.
func (s *ProductStore) Create(ctx context.Context, product *domain.Product) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	now := time.Now().UTC()
	product.CreatedAt = now
	product.UpdatedAt = now

	res, err := s.coll.InsertOne(ctx, product)
	if err != nil {
		log.Error("failed to insert product", slog.String("error", err.Error()))
		return fmt.Errorf("failed to insert product: %w", err)
	}

	if id, ok := res.InsertedID.(primitive.ObjectID); ok {
		product.ID = id
	}

	log.Debug("product created", slog.String("product_id", product.ID.Hex()))
	return nil
}

// GetByID implements store.ProductStore.GetByID.
func (s *ProductStore) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Product, error) {
	var product domain.Product
	err := s.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&product)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, store.ErrProductNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get product: %w", err)
	}

	return &product, nil
}

// Update implements store.ProductStore.Update. Only the non-nil fields of
// update are written; updated_at always advances.
func (s *ProductStore) Update(ctx context.Context, id primitive.ObjectID, update store.ProductUpdate) (*domain.Product, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	set := bson.M{"updated_at": time.Now().UTC()}
	if update.Name != nil {
		set["name"] = *update.Name
	}
	if update.Title != nil {
		set["title"] = *update.Title
	}
	if update.Description != nil {
		set["description"] = *update.Description
	}
	if update.Price != nil {
		set["price"] = *update.Price
	}
	if update.Quantity != nil {
		set["quantity"] = *update.Quantity
	}
	if update.CategoryID != nil {
		set["category_id"] = *update.CategoryID
	}
	if update.Image != nil {
		set["image"] = *update.Image
	}
	if update.ThumbnailImage != nil {
		set["thumbnail_image"] = *update.ThumbnailImage
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var product domain.Product
	err := s.coll.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).Decode(&product)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, store.ErrProductNotFound
	}
	if err != nil {
		log.Error("failed to update product",
			slog.String("error", err.Error()),
			slog.String("product_id", id.Hex()))
		return nil, fmt.Errorf("failed to update product: %w", err)
	}

	log.Debug("product updated", slog.String("product_id", id.Hex()))
	return &product, nil
}

// Delete implements store.ProductStore.Delete.
func (s *ProductStore) Delete(ctx context.Context, id primitive.ObjectID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	res, err := s.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		log.Error("failed to delete product",
			slog.String("error", err.Error()),
			slog.String("product_id", id.Hex()))
		return fmt.Errorf("failed to delete product: %w", err)
	}
	if res.DeletedCount == 0 {
		return store.ErrProductNotFound
	}

	log.Debug("product deleted", slog.String("product_id", id.Hex()))
	return nil
}

// List implements store.ProductStore.List. The name filter is a
// case-insensitive substring match with regex metacharacters escaped, so
// user input cannot change the query's meaning.
func (s *ProductStore) List(ctx context.Context, filter store.ProductFilter) ([]domain.Product, int64, error) {
	query := bson.M{}
	if filter.Name != "" {
		query["name"] = bson.M{"$regex": regexp.QuoteMeta(filter.Name), "$options": "i"}
	}
	if filter.CategoryID != nil {
		query["category_id"] = *filter.CategoryID
	}

	total, err := s.coll.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count products: %w", err)
	}

	opts := options.Find().
		SetSkip(int64(filter.Page-1) * int64(filter.PerPage)).
		SetLimit(int64(filter.PerPage)).
		SetSort(sortSpec(productSortFields, filter.SortField, filter.SortAscending))

	cursor, err := s.coll.Find(ctx, query, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list products: %w", err)
	}

	products := make([]domain.Product, 0, filter.PerPage)
	if err := cursor.All(ctx, &products); err != nil {
		return nil, 0, fmt.Errorf("failed to decode products: %w", err)
	}

	return products, total, nil
}
