package mocks

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/FavasCherukunnu/ecomm-api/internal/media"
)

// MockMediaStore implements media.Store for testing. The default
// implementation records every upload and delete so tests can assert on
// batch behavior; it is safe for the pipeline's concurrent uploads.
type MockMediaStore struct {
	// Function fields for customizable behavior
	UploadFn func(ctx context.Context, r io.Reader, publicID string) (*media.Asset, error)
	DeleteFn func(ctx context.Context, publicID string) error

	// FailThumbnail makes uploads of thumbnail derivatives fail, and
	// FailDisplay does the same for display derivatives.
	FailDisplay   bool
	FailThumbnail bool

	// DeleteErr is returned from Delete when set.
	DeleteErr error

	mu      sync.Mutex
	uploads map[string][]byte
	deletes []string
	baseURL string
}

// NewMockMediaStore creates a new mock asset host.
func NewMockMediaStore() *MockMediaStore {
	return &MockMediaStore{
		uploads: make(map[string][]byte),
		baseURL: "https://cdn.test/demo/image/upload/v1",
	}
}

// Upload implements the media.Store interface
func (m *MockMediaStore) Upload(ctx context.Context, r io.Reader, publicID string) (*media.Asset, error) {
	if m.UploadFn != nil {
		return m.UploadFn(ctx, r, publicID)
	}

	isThumbnail := strings.HasSuffix(publicID, "_thumb")
	if (isThumbnail && m.FailThumbnail) || (!isThumbnail && m.FailDisplay) {
		return nil, fmt.Errorf("injected upload failure for %s", publicID)
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.uploads[publicID] = data

	return &media.Asset{
		PublicID: publicID,
		URL:      m.baseURL + "/" + publicID + ".jpg",
	}, nil
}

// Delete implements the media.Store interface
func (m *MockMediaStore) Delete(ctx context.Context, publicID string) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, publicID)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.deletes = append(m.deletes, publicID)
	if m.DeleteErr != nil {
		return m.DeleteErr
	}
	delete(m.uploads, publicID)
	return nil
}

// Uploads returns a copy of the stored derivatives keyed by public ID.
func (m *MockMediaStore) Uploads() map[string][]byte {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make(map[string][]byte, len(m.uploads))
	for k, v := range m.uploads {
		out[k] = v
	}
	return out
}

// Deletes returns the public IDs passed to Delete, in call order.
func (m *MockMediaStore) Deletes() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.deletes...)
}

// Ensure MockMediaStore implements media.Store
var _ media.Store = (*MockMediaStore)(nil)
