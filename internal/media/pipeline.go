package media

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/FavasCherukunnu/ecomm-api/internal/platform/logger"
)

// thumbnailSuffix distinguishes the thumbnail's public ID within a batch.
const thumbnailSuffix = "_thumb"

// ErrAssetUpload is returned when moving derivatives to the asset host
// fails. The underlying cause is wrapped.
var ErrAssetUpload = errors.New("asset upload failed")

// Pipeline turns one uploaded image into a persisted pair of remote
// derivatives and cleans them up again when products change or disappear.
type Pipeline struct {
	store  Store
	folder string
	logger *slog.Logger
}

// NewPipeline creates a Pipeline that stores derivatives under the given
// folder on the asset host. If logger is nil, a default logger will be used.
func NewPipeline(store Store, folder string, logger *slog.Logger) *Pipeline {
	if store == nil {
		panic("store cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &Pipeline{
		store:  store,
		folder: folder,
		logger: logger.With(slog.String("component", "media_pipeline")),
	}
}

// Process derives both renditions from the upload and moves them to the
// asset host under one freshly generated batch ID, so a product's two URLs
// always identify the same upload. The uploads run concurrently; the join
// waits for both, the first error wins, and the sibling upload is not
// cancelled. A derivative that landed while its sibling failed is destroyed
// best-effort before the error is returned.
func (p *Pipeline) Process(ctx context.Context, data []byte, mimeType string) (Pair, error) {
	log := logger.FromContextOrDefault(ctx, p.logger)

	derivatives, err := Derive(data, mimeType)
	if err != nil {
		return Pair{}, err
	}

	batch := uuid.New().String()
	displayID := p.folder + "/" + batch
	thumbnailID := displayID + thumbnailSuffix

	var displayAsset, thumbnailAsset *Asset
	var g errgroup.Group
	g.Go(func() error {
		asset, err := p.store.Upload(ctx, bytes.NewReader(derivatives.Display), displayID)
		if err != nil {
			return fmt.Errorf("display derivative: %w", err)
		}
		displayAsset = asset
		return nil
	})
	g.Go(func() error {
		asset, err := p.store.Upload(ctx, bytes.NewReader(derivatives.Thumbnail), thumbnailID)
		if err != nil {
			return fmt.Errorf("thumbnail derivative: %w", err)
		}
		thumbnailAsset = asset
		return nil
	})

	if err := g.Wait(); err != nil {
		p.destroyStray(ctx, log, displayAsset)
		p.destroyStray(ctx, log, thumbnailAsset)
		log.Error("upload batch failed",
			slog.String("batch", batch),
			slog.String("error", err.Error()))
		return Pair{}, fmt.Errorf("%w: %v", ErrAssetUpload, err)
	}

	log.Debug("upload batch stored", slog.String("batch", batch))
	return Pair{Image: displayAsset.URL, Thumbnail: thumbnailAsset.URL}, nil
}

// destroyStray removes a derivative whose sibling failed to land.
func (p *Pipeline) destroyStray(ctx context.Context, log *slog.Logger, asset *Asset) {
	if asset == nil {
		return
	}
	if err := p.store.Delete(ctx, asset.PublicID); err != nil {
		log.Warn("failed to remove stray derivative",
			slog.String("public_id", asset.PublicID),
			slog.String("error", err.Error()))
	}
}

// Remove destroys the remote assets behind the given URLs. Removal is
// best-effort by contract: failures are logged, never returned, and empty
// URLs are skipped.
func (p *Pipeline) Remove(ctx context.Context, urls ...string) {
	log := logger.FromContextOrDefault(ctx, p.logger)

	for _, raw := range urls {
		if raw == "" {
			continue
		}

		publicID, err := PublicIDFromURL(raw)
		if err != nil {
			log.Warn("cannot derive public ID from asset URL",
				slog.String("url", raw),
				slog.String("error", err.Error()))
			continue
		}

		if err := p.store.Delete(ctx, publicID); err != nil {
			log.Warn("failed to delete remote asset",
				slog.String("public_id", publicID),
				slog.String("error", err.Error()))
		}
	}
}
