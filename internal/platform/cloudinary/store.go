// Package cloudinary implements the media.Store interface against the
// Cloudinary upload API.
package cloudinary

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"

	"github.com/FavasCherukunnu/ecomm-api/internal/config"
	"github.com/FavasCherukunnu/ecomm-api/internal/media"
)

// Store uploads and destroys image assets on Cloudinary.
type Store struct {
	client *cloudinary.Cloudinary
	logger *slog.Logger
}

// NewStore creates a Cloudinary-backed asset store from the configured
// credentials. If logger is nil, a default logger will be used.
func NewStore(cfg config.MediaConfig, logger *slog.Logger) (*Store, error) {
	client, err := cloudinary.NewFromParams(cfg.CloudName, cfg.APIKey, cfg.APISecret)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize cloudinary client: %w", err)
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &Store{
		client: client,
		logger: logger.With(slog.String("component", "cloudinary_store")),
	}, nil
}

// Ensure Store implements media.Store interface
var _ media.Store = (*Store)(nil)

// Upload implements media.Store.Upload. Cloudinary reports some failures
// in the response body with a nil transport error, so both are checked.
func (s *Store) Upload(ctx context.Context, r io.Reader, publicID string) (*media.Asset, error) {
	result, err := s.client.Upload.Upload(ctx, r, uploader.UploadParams{
		PublicID:     publicID,
		ResourceType: "image",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to upload asset %q: %w", publicID, err)
	}
	if result.Error.Message != "" {
		return nil, fmt.Errorf("failed to upload asset %q: %s", publicID, result.Error.Message)
	}

	s.logger.DebugContext(ctx, "asset uploaded",
		slog.String("public_id", result.PublicID),
		slog.Int("bytes", result.Bytes))

	return &media.Asset{
		PublicID: result.PublicID,
		URL:      result.SecureURL,
	}, nil
}

// Delete implements media.Store.Delete. Destroying an already-absent asset
// comes back as a "not found" result and is treated as success.
func (s *Store) Delete(ctx context.Context, publicID string) error {
	result, err := s.client.Upload.Destroy(ctx, uploader.DestroyParams{
		PublicID:     publicID,
		ResourceType: "image",
	})
	if err != nil {
		return fmt.Errorf("failed to destroy asset %q: %w", publicID, err)
	}
	if result.Result != "ok" && result.Result != "not found" {
		return fmt.Errorf("failed to destroy asset %q: %s", publicID, result.Result)
	}

	s.logger.DebugContext(ctx, "asset destroyed", slog.String("public_id", publicID))

	return nil
}
