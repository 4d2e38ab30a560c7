package mongodb_test

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/FavasCherukunnu/ecomm-api/internal/config"
	"github.com/FavasCherukunnu/ecomm-api/internal/domain"
	"github.com/FavasCherukunnu/ecomm-api/internal/platform/mongodb"
	"github.com/FavasCherukunnu/ecomm-api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testTimeout is the maximum time allowed for a single test operation.
const testTimeout = 5 * time.Second

// testDB holds a shared database handle for all tests in this package.
// Tests run only when ECOMM_TEST_DATABASE_URI points at a live deployment.
var testDB *mongo.Database

func TestMain(m *testing.M) {
	uri := os.Getenv("ECOMM_TEST_DATABASE_URI")
	if uri == "" {
		os.Exit(0)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	client, err := mongodb.Connect(ctx, config.DatabaseConfig{URI: uri, Name: "ecomm_test"})
	cancel()
	if err != nil {
		fmt.Printf("Failed to connect to test database: %v\n", err)
		os.Exit(1)
	}

	testDB = client.Database("ecomm_test")
	if err := mongodb.EnsureIndexes(context.Background(), testDB); err != nil {
		fmt.Printf("Failed to ensure indexes: %v\n", err)
		os.Exit(1)
	}

	code := m.Run()

	_ = testDB.Drop(context.Background())
	_ = client.Disconnect(context.Background())
	os.Exit(code)
}

// testContext returns a context with the standard test timeout.
func testContext(t *testing.T) context.Context {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), testTimeout)
	t.Cleanup(cancel)
	return ctx
}

// clearCollections removes all documents while keeping the indexes in place.
func clearCollections(t *testing.T, names ...string) {
	t.Helper()
	ctx := testContext(t)
	for _, name := range names {
		_, err := testDB.Collection(name).DeleteMany(ctx, bson.M{})
		require.NoError(t, err)
	}
}

func insertTestCategory(t *testing.T, name string) *domain.Category {
	t.Helper()
	categories := mongodb.NewCategoryStore(testDB, nil)
	category := &domain.Category{Name: name}
	require.NoError(t, categories.Create(testContext(t), category))
	return category
}

func TestProductStoreCRUD(t *testing.T) {
	clearCollections(t, "products", "categories")
	ctx := testContext(t)
	products := mongodb.NewProductStore(testDB, nil)
	category := insertTestCategory(t, "Electronics")

	product := &domain.Product{
		Name:           "Mechanical Keyboard",
		Title:          "TKL mechanical keyboard",
		Description:    "Hot-swappable switches",
		Image:          "https://res.cloudinary.com/demo/image/upload/v1/products/abc.jpg",
		ThumbnailImage: "https://res.cloudinary.com/demo/image/upload/v1/products/abc_thumb.jpg",
		Price:          129.99,
		Quantity:       12,
		CategoryID:     category.ID,
	}

	require.NoError(t, products.Create(ctx, product))
	require.False(t, product.ID.IsZero(), "Create should assign an ID")
	assert.False(t, product.CreatedAt.IsZero())
	assert.False(t, product.UpdatedAt.IsZero())

	t.Run("get by id", func(t *testing.T) {
		got, err := products.GetByID(testContext(t), product.ID)
		require.NoError(t, err)
		assert.Equal(t, product.Name, got.Name)
		assert.Equal(t, category.ID, got.CategoryID)
	})

	t.Run("get missing id", func(t *testing.T) {
		_, err := products.GetByID(testContext(t), primitive.NewObjectID())
		assert.ErrorIs(t, err, store.ErrProductNotFound)
	})

	t.Run("partial update", func(t *testing.T) {
		newTitle := "TKL keyboard, revised"
		newPrice := 99.5
		updated, err := products.Update(testContext(t), product.ID, store.ProductUpdate{
			Title: &newTitle,
			Price: &newPrice,
		})
		require.NoError(t, err)
		assert.Equal(t, newTitle, updated.Title)
		assert.Equal(t, newPrice, updated.Price)
		assert.Equal(t, product.Name, updated.Name, "untouched fields must survive")
		assert.True(t, updated.UpdatedAt.After(updated.CreatedAt))
	})

	t.Run("update missing id", func(t *testing.T) {
		name := "ghost"
		_, err := products.Update(testContext(t), primitive.NewObjectID(), store.ProductUpdate{Name: &name})
		assert.ErrorIs(t, err, store.ErrProductNotFound)
	})

	t.Run("delete", func(t *testing.T) {
		require.NoError(t, products.Delete(testContext(t), product.ID))
		_, err := products.GetByID(testContext(t), product.ID)
		assert.ErrorIs(t, err, store.ErrProductNotFound)
		assert.ErrorIs(t, products.Delete(testContext(t), product.ID), store.ErrProductNotFound)
	})
}

func TestProductStoreList(t *testing.T) {
	clearCollections(t, "products", "categories")
	ctx := testContext(t)
	products := mongodb.NewProductStore(testDB, nil)
	electronics := insertTestCategory(t, "Electronics")
	books := insertTestCategory(t, "Books")

	seed := []struct {
		name     string
		price    float64
		category primitive.ObjectID
	}{
		{"USB Cable", 5, electronics.ID},
		{"USB Hub", 25, electronics.ID},
		{"Desk Lamp", 40, electronics.ID},
		{"Go Programming", 30, books.ID},
	}
	for _, s := range seed {
		p := &domain.Product{Name: s.name, Title: s.name, Description: "d", Price: s.price, Quantity: 1, CategoryID: s.category}
		require.NoError(t, products.Create(ctx, p))
	}

	t.Run("name substring filter is case-insensitive", func(t *testing.T) {
		got, total, err := products.List(testContext(t), store.ProductFilter{Name: "usb", Page: 1, PerPage: 10})
		require.NoError(t, err)
		assert.EqualValues(t, 2, total)
		assert.Len(t, got, 2)
	})

	t.Run("category filter", func(t *testing.T) {
		got, total, err := products.List(testContext(t), store.ProductFilter{CategoryID: &books.ID, Page: 1, PerPage: 10})
		require.NoError(t, err)
		assert.EqualValues(t, 1, total)
		require.Len(t, got, 1)
		assert.Equal(t, "Go Programming", got[0].Name)
	})

	t.Run("sort by price ascending", func(t *testing.T) {
		got, _, err := products.List(testContext(t), store.ProductFilter{
			SortField: "price", SortAscending: true, Page: 1, PerPage: 10,
		})
		require.NoError(t, err)
		require.Len(t, got, 4)
		assert.Equal(t, "USB Cable", got[0].Name)
		assert.Equal(t, "Desk Lamp", got[3].Name)
	})

	t.Run("pagination reports full total", func(t *testing.T) {
		got, total, err := products.List(testContext(t), store.ProductFilter{Page: 2, PerPage: 3})
		require.NoError(t, err)
		assert.EqualValues(t, 4, total)
		assert.Len(t, got, 1)
	})

	t.Run("descending id puts newest first", func(t *testing.T) {
		got, _, err := products.List(testContext(t), store.ProductFilter{Page: 1, PerPage: 1})
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "Go Programming", got[0].Name)
	})

	t.Run("ascending id keeps insertion order", func(t *testing.T) {
		got, _, err := products.List(testContext(t), store.ProductFilter{SortAscending: true, Page: 1, PerPage: 1})
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "USB Cable", got[0].Name)
	})
}

func TestCategoryStore(t *testing.T) {
	clearCollections(t, "categories")
	categories := mongodb.NewCategoryStore(testDB, nil)
	electronics := insertTestCategory(t, "Electronics")
	insertTestCategory(t, "Books")

	t.Run("duplicate name rejected", func(t *testing.T) {
		err := categories.Create(testContext(t), &domain.Category{Name: "Electronics"})
		assert.ErrorIs(t, err, store.ErrCategoryExists)
	})

	t.Run("list with name filter", func(t *testing.T) {
		got, total, err := categories.List(testContext(t), store.CategoryFilter{Name: "elec", Page: 1, PerPage: 10})
		require.NoError(t, err)
		assert.EqualValues(t, 1, total)
		require.Len(t, got, 1)
		assert.Equal(t, "Electronics", got[0].Name)
	})

	t.Run("exists", func(t *testing.T) {
		ok, err := categories.Exists(testContext(t), electronics.ID)
		require.NoError(t, err)
		assert.True(t, ok)

		ok, err = categories.Exists(testContext(t), primitive.NewObjectID())
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("get by ids skips missing", func(t *testing.T) {
		missing := primitive.NewObjectID()
		got, err := categories.GetByIDs(testContext(t), []primitive.ObjectID{electronics.ID, missing})
		require.NoError(t, err)
		assert.Len(t, got, 1)
		assert.Equal(t, "Electronics", got[electronics.ID].Name)
	})
}

func TestUserStore(t *testing.T) {
	clearCollections(t, "users")
	ctx := testContext(t)
	users := mongodb.NewUserStore(testDB, nil)

	user := &domain.User{Email: "admin@example.com", Password: "password123"}
	require.NoError(t, users.Create(ctx, user))
	require.False(t, user.ID.IsZero())

	t.Run("duplicate email rejected", func(t *testing.T) {
		err := users.Create(testContext(t), &domain.User{Email: "admin@example.com", Password: "other"})
		assert.ErrorIs(t, err, store.ErrEmailExists)
	})

	t.Run("get by email", func(t *testing.T) {
		got, err := users.GetByEmail(testContext(t), "admin@example.com")
		require.NoError(t, err)
		assert.Equal(t, user.ID, got.ID)
		assert.Equal(t, "password123", got.Password)
	})

	t.Run("get by id", func(t *testing.T) {
		got, err := users.GetByID(testContext(t), user.ID)
		require.NoError(t, err)
		assert.Equal(t, "admin@example.com", got.Email)
	})

	t.Run("missing user sentinel", func(t *testing.T) {
		_, err := users.GetByEmail(testContext(t), "nobody@example.com")
		assert.ErrorIs(t, err, store.ErrUserNotFound)
		_, err = users.GetByID(testContext(t), primitive.NewObjectID())
		assert.ErrorIs(t, err, store.ErrUserNotFound)
	})
}
