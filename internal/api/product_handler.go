package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/FavasCherukunnu/ecomm-api/internal/api/shared"
	"github.com/FavasCherukunnu/ecomm-api/internal/domain"
	"github.com/FavasCherukunnu/ecomm-api/internal/media"
	"github.com/FavasCherukunnu/ecomm-api/internal/store"
	"github.com/FavasCherukunnu/ecomm-api/internal/validation"
)

// ProductHandler handles product CRUD requests. Writes run the full
// intake, validation and media pipeline; reads are open.
type ProductHandler struct {
	products   store.ProductStore
	categories store.CategoryStore
	media      *media.Pipeline
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(
	products store.ProductStore,
	categories store.CategoryStore,
	mediaPipeline *media.Pipeline,
) *ProductHandler {
	return &ProductHandler{
		products:   products,
		categories: categories,
		media:      mediaPipeline,
	}
}

// productFields builds the rule table for the product write paths. The
// optional variant keeps absent fields out of evaluation, which is how
// update validates only what the client sent; create fills absent fields
// with empty values so required rules fire.
func (h *ProductHandler) productFields(form *productForm, optional bool) []validation.Field {
	categoryExists := func(ctx context.Context, id string) (bool, error) {
		oid, err := primitive.ObjectIDFromHex(id)
		if err != nil {
			return false, err
		}
		return h.categories.Exists(ctx, oid)
	}

	fields := []validation.Field{
		{Name: "name", Value: form.field("name"), Rules: []validation.Rule{
			validation.Required("Name"),
		}},
		{Name: "title", Value: form.field("title"), Rules: []validation.Rule{
			validation.Required("Title"),
		}},
		{Name: "description", Value: form.field("description"), Rules: []validation.Rule{
			validation.Required("Description"),
		}},
		{Name: "price", Value: form.field("price"), Rules: []validation.Rule{
			validation.Required("Price"),
			validation.Numeric("Price"),
			validation.NonNegative("Price"),
			validation.LessThan("Price", 100000),
		}},
		{Name: "quantity", Value: form.field("quantity"), Rules: []validation.Rule{
			validation.Required("Quantity"),
			validation.WholeNumber("Quantity"),
			validation.NonNegative("Quantity"),
			validation.LessThan("Quantity", 100000),
		}},
		{Name: "category_id", Value: form.field("category_id"), Rules: []validation.Rule{
			validation.Required("Category"),
			validation.ObjectID("Invalid category id"),
			validation.Exists(categoryExists, "Category does not exist"),
		}},
	}

	if !optional {
		empty := ""
		for i := range fields {
			if fields[i].Value == nil {
				fields[i].Value = &empty
			}
		}
	}
	return fields
}

// respondIntakeError maps multipart intake failures to their fixed
// responses.
func respondIntakeError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, errImageTooLarge) {
		shared.RespondWithValidationErrors(w, r, map[string]string{
			"image": "Image must be smaller than 2MB",
		})
		return
	}
	shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError, "Image upload failed", err)
}

// respondPipelineError maps media pipeline failures to their fixed
// responses.
func respondPipelineError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, media.ErrUnsupportedFormat) {
		shared.RespondWithValidationErrors(w, r, map[string]string{
			"image": "Only JPEG and PNG images are allowed",
		})
		return
	}
	shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError, "Image upload failed", err)
}

// Create handles POST /api/product/add.
func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	form, err := parseProductForm(w, r)
	if err != nil {
		respondIntakeError(w, r, err)
		return
	}

	if form.image == nil {
		shared.RespondWithValidationErrors(w, r, map[string]string{
			"image": "Product image is required",
		})
		return
	}

	if failures := validation.Evaluate(r.Context(), h.productFields(form, false)); failures != nil {
		shared.RespondWithValidationErrors(w, r, failures)
		return
	}

	pair, err := h.media.Process(r.Context(), form.image.data, form.image.mime)
	if err != nil {
		respondPipelineError(w, r, err)
		return
	}

	product, err := productFromForm(form, pair)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError, "Internal server error", err)
		return
	}

	if err := h.products.Create(r.Context(), product); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError, "Internal server error", err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, ProductResponse{
		Envelope: shared.Envelope{Success: true, Message: "Product added successfully"},
		Product:  *product,
	})
}

// Update handles PUT /api/product/{id}. Only fields present in the
// request change; a new image replaces both derivative URLs together and
// destroys the previous remote pair best-effort.
func (h *ProductHandler) Update(w http.ResponseWriter, r *http.Request) {
	form, err := parseProductForm(w, r)
	if err != nil {
		respondIntakeError(w, r, err)
		return
	}

	if failures := validation.Evaluate(r.Context(), h.productFields(form, true)); failures != nil {
		shared.RespondWithValidationErrors(w, r, failures)
		return
	}

	id, err := pathObjectID(r, "id")
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid product id")
		return
	}

	existing, err := h.products.GetByID(r.Context(), id)
	if err != nil {
		respondStoreError(w, r, err, "Product not found")
		return
	}

	update, err := updateFromForm(form)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError, "Internal server error", err)
		return
	}

	if form.image != nil {
		pair, err := h.media.Process(r.Context(), form.image.data, form.image.mime)
		if err != nil {
			respondPipelineError(w, r, err)
			return
		}
		h.media.Remove(r.Context(), existing.Image, existing.ThumbnailImage)
		update.Image = &pair.Image
		update.ThumbnailImage = &pair.Thumbnail
	}

	updated, err := h.products.Update(r.Context(), id, update)
	if err != nil {
		respondStoreError(w, r, err, "Product not found")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, ProductResponse{
		Envelope: shared.Envelope{Success: true, Message: "Product updated successfully"},
		Product:  *updated,
	})
}

// Delete handles DELETE /api/product/{id}. The remote derivative pair is
// destroyed best-effort before the record goes.
func (h *ProductHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathObjectID(r, "id")
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid product id")
		return
	}

	product, err := h.products.GetByID(r.Context(), id)
	if err != nil {
		respondStoreError(w, r, err, "Product not found")
		return
	}

	h.media.Remove(r.Context(), product.Image, product.ThumbnailImage)

	if err := h.products.Delete(r.Context(), id); err != nil {
		respondStoreError(w, r, err, "Product not found")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, shared.Envelope{
		Success: true,
		Message: "Product deleted successfully",
	})
}

// Get handles GET /api/product/{id} and returns the stored record
// verbatim, with the plain category_id.
func (h *ProductHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathObjectID(r, "id")
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid product id")
		return
	}

	product, err := h.products.GetByID(r.Context(), id)
	if err != nil {
		respondStoreError(w, r, err, "Product not found")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, ProductResponse{
		Envelope: shared.Envelope{Success: true, Message: "Product fetched successfully"},
		Product:  *product,
	})
}

// List handles GET /api/products. Each row's category reference is
// expanded via one batched lookup; rows whose category vanished render a
// null category.
func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	query := parseListQuery(r)

	filter := store.ProductFilter{
		Name:          query.name,
		SortField:     query.sortField,
		SortAscending: query.ascending,
		Page:          query.page,
		PerPage:       query.perPage,
	}

	if raw := r.URL.Query().Get("category"); raw != "" {
		categoryID, err := primitive.ObjectIDFromHex(raw)
		if err != nil {
			shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid category id")
			return
		}
		filter.CategoryID = &categoryID
	}

	products, total, err := h.products.List(r.Context(), filter)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError, "Internal server error", err)
		return
	}

	items, err := h.expandCategories(r.Context(), products)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError, "Internal server error", err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, ProductListResponse{
		Envelope:      shared.Envelope{Success: true, Message: "Products fetched successfully"},
		Products:      items,
		TotalProducts: total,
		CurrentPage:   query.page,
		TotalPages:    totalPages(total, query.perPage),
	})
}

// expandCategories joins one page of products with their categories.
func (h *ProductHandler) expandCategories(
	ctx context.Context,
	products []domain.Product,
) ([]ProductListItem, error) {
	ids := make([]primitive.ObjectID, 0, len(products))
	seen := make(map[primitive.ObjectID]struct{}, len(products))
	for _, p := range products {
		if _, ok := seen[p.CategoryID]; ok {
			continue
		}
		seen[p.CategoryID] = struct{}{}
		ids = append(ids, p.CategoryID)
	}

	refs, err := h.categories.GetByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("expanding category references: %w", err)
	}

	items := make([]ProductListItem, 0, len(products))
	for _, p := range products {
		item := ProductListItem{Product: p}
		if category, ok := refs[p.CategoryID]; ok {
			item.Category = &CategoryRef{ID: category.ID, Name: category.Name}
		}
		items = append(items, item)
	}
	return items, nil
}

// productFromForm converts the validated create form into a product
// entity carrying the freshly uploaded derivative pair.
func productFromForm(form *productForm, pair media.Pair) (*domain.Product, error) {
	price, err := strconv.ParseFloat(formValue(form, "price"), 64)
	if err != nil {
		return nil, fmt.Errorf("parsing price: %w", err)
	}
	quantity, err := strconv.Atoi(formValue(form, "quantity"))
	if err != nil {
		return nil, fmt.Errorf("parsing quantity: %w", err)
	}
	categoryID, err := primitive.ObjectIDFromHex(formValue(form, "category_id"))
	if err != nil {
		return nil, fmt.Errorf("parsing category id: %w", err)
	}

	return &domain.Product{
		Name:           formValue(form, "name"),
		Title:          formValue(form, "title"),
		Description:    formValue(form, "description"),
		Image:          pair.Image,
		ThumbnailImage: pair.Thumbnail,
		Price:          price,
		Quantity:       quantity,
		CategoryID:     categoryID,
	}, nil
}

// updateFromForm converts the validated optional fields into a partial
// update. Absent fields stay nil and untouched.
func updateFromForm(form *productForm) (store.ProductUpdate, error) {
	update := store.ProductUpdate{
		Name:        form.field("name"),
		Title:       form.field("title"),
		Description: form.field("description"),
	}

	if v := form.field("price"); v != nil {
		price, err := strconv.ParseFloat(*v, 64)
		if err != nil {
			return update, fmt.Errorf("parsing price: %w", err)
		}
		update.Price = &price
	}
	if v := form.field("quantity"); v != nil {
		quantity, err := strconv.Atoi(*v)
		if err != nil {
			return update, fmt.Errorf("parsing quantity: %w", err)
		}
		update.Quantity = &quantity
	}
	if v := form.field("category_id"); v != nil {
		categoryID, err := primitive.ObjectIDFromHex(*v)
		if err != nil {
			return update, fmt.Errorf("parsing category id: %w", err)
		}
		update.CategoryID = &categoryID
	}
	return update, nil
}

// formValue returns the submitted value for name, or "" when absent.
func formValue(form *productForm, name string) string {
	if v := form.field(name); v != nil {
		return *v
	}
	return ""
}
