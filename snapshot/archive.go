package snapshot

import (
	"context"
	"fmt"

	"github.com/particleforge/webmesh/blobstore"
)

// Key builds the blob name for a buffer's snapshot at a given update
// sequence number.
func Key(name string, seq uint64) string {
	return fmt.Sprintf("snapshots/%s/%012d.wms", name, seq)
}

// Publish writes the frame to the store under the given blob name,
// streaming through the store's Create path.
func Publish(ctx context.Context, store blobstore.Store, name string, f Frame, optFns ...func(o *Options)) error {
	w, err := store.Create(ctx, name)
	if err != nil {
		return fmt.Errorf("failed to create snapshot blob: %w", err)
	}
	if err := Write(w, f, optFns...); err != nil {
		_ = w.Close()
		return err
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("failed to commit snapshot blob: %w", err)
	}
	return nil
}

// Fetch reads the frame stored under the given blob name.
func Fetch(ctx context.Context, store blobstore.Store, name string) (Frame, error) {
	rc, err := store.Open(ctx, name)
	if err != nil {
		return Frame{}, fmt.Errorf("failed to open snapshot blob: %w", err)
	}
	defer rc.Close()

	return Read(rc)
}
