package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Product represents a single item in the catalog. Image and ThumbnailImage
// hold the delivery URLs of the two derivatives produced from one upload;
// they are always written together and share one upload batch ID.
type Product struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name           string             `bson:"name" json:"name"`
	Title          string             `bson:"title" json:"title"`
	Description    string             `bson:"description" json:"description"`
	Image          string             `bson:"image" json:"image"`
	ThumbnailImage string             `bson:"thumbnail_image" json:"thumbnail_image"`
	Price          float64            `bson:"price" json:"price"`
	Quantity       int                `bson:"quantity" json:"quantity"`
	CategoryID     primitive.ObjectID `bson:"category_id" json:"category_id"`
	CreatedAt      time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt      time.Time          `bson:"updated_at" json:"updated_at"`
}
