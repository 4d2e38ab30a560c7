package api

import (
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/FavasCherukunnu/ecomm-api/internal/api/shared"
	"github.com/FavasCherukunnu/ecomm-api/internal/domain"
)

// Entity payloads keep their snake_case keys from the domain structs;
// pagination metadata uses camelCase keys. Both shapes are part of the
// public contract and must not drift.

// LoginResponse carries the issued bearer token.
type LoginResponse struct {
	shared.Envelope
	Token string `json:"token"`
}

// UserInfo is the identity payload of /api/me. It never carries the
// password.
type UserInfo struct {
	ID    primitive.ObjectID `json:"id"`
	Email string             `json:"email"`
}

// MeResponse wraps the authenticated user's identity.
type MeResponse struct {
	shared.Envelope
	User UserInfo `json:"user"`
}

// ProductResponse wraps a single product record.
type ProductResponse struct {
	shared.Envelope
	Product domain.Product `json:"product"`
}

// CategoryRef is the expanded category reference inside listing rows.
type CategoryRef struct {
	ID   primitive.ObjectID `json:"id"`
	Name string             `json:"name"`
}

// ProductListItem is one listing row with its category reference expanded.
// Category is null when the referenced category no longer exists.
type ProductListItem struct {
	domain.Product
	Category *CategoryRef `json:"category"`
}

// ProductListResponse carries one page of products plus pagination totals.
type ProductListResponse struct {
	shared.Envelope
	Products      []ProductListItem `json:"products"`
	TotalProducts int64             `json:"totalProducts"`
	CurrentPage   int               `json:"currentPage"`
	TotalPages    int               `json:"totalPages"`
}

// CategoryListResponse carries one page of categories plus pagination
// totals.
type CategoryListResponse struct {
	shared.Envelope
	Categories      []domain.Category `json:"categories"`
	TotalCategories int64             `json:"totalCategories"`
	CurrentPage     int               `json:"currentPage"`
	TotalPages      int               `json:"totalPages"`
}
