package api

import (
	"net/http"

	"github.com/FavasCherukunnu/ecomm-api/internal/api/shared"
	"github.com/FavasCherukunnu/ecomm-api/internal/domain"
	"github.com/FavasCherukunnu/ecomm-api/internal/store"
)

// CategoryHandler serves the category listing. Categories are provisioned
// by the seed tool, so listing is the whole HTTP surface here.
type CategoryHandler struct {
	categories store.CategoryStore
}

// NewCategoryHandler creates a new CategoryHandler.
func NewCategoryHandler(categories store.CategoryStore) *CategoryHandler {
	return &CategoryHandler{categories: categories}
}

// List handles GET /api/categories.
func (h *CategoryHandler) List(w http.ResponseWriter, r *http.Request) {
	query := parseListQuery(r)

	categories, total, err := h.categories.List(r.Context(), store.CategoryFilter{
		Name:          query.name,
		SortField:     query.sortField,
		SortAscending: query.ascending,
		Page:          query.page,
		PerPage:       query.perPage,
	})
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError, "Internal server error", err)
		return
	}
	if categories == nil {
		categories = []domain.Category{}
	}

	shared.RespondWithJSON(w, r, http.StatusOK, CategoryListResponse{
		Envelope:        shared.Envelope{Success: true, Message: "Categories fetched successfully"},
		Categories:      categories,
		TotalCategories: total,
		CurrentPage:     query.page,
		TotalPages:      totalPages(total, query.perPage),
	})
}
