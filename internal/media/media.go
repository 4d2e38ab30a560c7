// Package media implements the product image pipeline: decoding an
// uploaded image, deriving the display and thumbnail renditions, and moving
// both to the remote asset host as a single batch. It also recovers asset
// identifiers from persisted delivery URLs so stale derivatives can be
// destroyed when a product is re-imaged or deleted.
package media

import (
	"context"
	"io"
)

// Asset is a stored derivative on the remote asset host.
type Asset struct {
	PublicID string
	URL      string
}

// Store is the remote asset host. Implementations must be safe for
// concurrent use; the pipeline uploads both derivatives of a batch at once.
type Store interface {
	// Upload stores one derivative under the given public ID and returns
	// the stored asset with its delivery URL.
	Upload(ctx context.Context, r io.Reader, publicID string) (*Asset, error)

	// Delete removes the derivative with the given public ID. Deleting an
	// already-absent asset is not an error.
	Delete(ctx context.Context, publicID string) error
}

// Pair holds the two delivery URLs produced from one upload batch, in the
// order they are persisted on a product.
type Pair struct {
	Image     string
	Thumbnail string
}
