package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/FavasCherukunnu/ecomm-api/internal/api/shared"
	"github.com/FavasCherukunnu/ecomm-api/internal/store"
)

// Listing defaults shared by the product and category endpoints.
const (
	defaultPage    = 1
	defaultPerPage = 10
)

// listQuery is the pagination and sorting surface shared by listings.
type listQuery struct {
	page      int
	perPage   int
	sortField string
	ascending bool
	name      string
}

// parseListQuery reads the shared listing parameters. Absent or unusable
// values fall back to their defaults; only sortOrder=desc flips the
// direction away from the ascending default.
func parseListQuery(r *http.Request) listQuery {
	q := r.URL.Query()

	page, err := strconv.Atoi(q.Get("page"))
	if err != nil || page < 1 {
		page = defaultPage
	}
	perPage, err := strconv.Atoi(q.Get("perPage"))
	if err != nil || perPage < 1 {
		perPage = defaultPerPage
	}

	return listQuery{
		page:      page,
		perPage:   perPage,
		sortField: q.Get("sortField"),
		ascending: q.Get("sortOrder") != "desc",
		name:      q.Get("name"),
	}
}

// totalPages computes ceil(total / perPage).
func totalPages(total int64, perPage int) int {
	if total == 0 {
		return 0
	}
	return int((total + int64(perPage) - 1) / int64(perPage))
}

// requireUserID extracts the authenticated user's id from the request
// context. Guarded routes always have one; a miss means the route was
// wired without the token guard, so this fails closed with a 500 rather
// than treating the request as anonymous.
func requireUserID(w http.ResponseWriter, r *http.Request) (primitive.ObjectID, bool) {
	userID, ok := r.Context().Value(shared.UserIDContextKey).(primitive.ObjectID)
	if !ok || userID.IsZero() {
		shared.RespondWithError(w, r, http.StatusInternalServerError, "Internal server error")
		return primitive.NilObjectID, false
	}
	return userID, true
}

// pathObjectID parses the named URL parameter as an object id.
func pathObjectID(r *http.Request, param string) (primitive.ObjectID, error) {
	return primitive.ObjectIDFromHex(chi.URLParam(r, param))
}

// respondStoreError translates a persistence error into the fixed failure
// envelope: not-found sentinels become a 404 with the entity's message,
// anything else is an internal error that is logged but never shown.
func respondStoreError(w http.ResponseWriter, r *http.Request, err error, notFoundMessage string) {
	if errors.Is(err, store.ErrNotFound) {
		shared.RespondWithError(w, r, http.StatusNotFound, notFoundMessage)
		return
	}
	shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError, "Internal server error", err)
}
