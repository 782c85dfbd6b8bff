package snapshot

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/particleforge/webmesh/blobstore"
	"github.com/particleforge/webmesh/codec"
	"github.com/particleforge/webmesh/geom"
	"github.com/particleforge/webmesh/knn"
	"github.com/particleforge/webmesh/mesh"
)

func sampleFrame() Frame {
	return Frame{
		Name: "web",
		Vertices: []geom.Point3{
			{0, 0, 0},
			{1.5, -2.25, 3},
			{0.125, 0.25, 0.5},
		},
		Edges: []mesh.Edge{{A: 0, B: 1}, {A: 1, B: 2}},
	}
}

func TestWriteReadRoundTrip(t *testing.T) {
	tests := []struct {
		name        string
		codec       codec.Codec
		compression Compression
	}{
		{name: "DefaultZstd", codec: codec.Default, compression: CompressionZstd},
		{name: "StdlibNone", codec: codec.JSON{}, compression: CompressionNone},
		{name: "GoJSONLZ4", codec: codec.GoJSON{}, compression: CompressionLZ4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			err := Write(&buf, sampleFrame(), func(o *Options) {
				o.Codec = tt.codec
				o.Compression = tt.compression
			})
			require.NoError(t, err)

			got, err := Read(&buf)
			require.NoError(t, err)
			assert.Equal(t, sampleFrame(), got)
		})
	}
}

func TestReadRejectsGarbage(t *testing.T) {
	t.Run("BadMagic", func(t *testing.T) {
		_, err := Read(bytes.NewReader([]byte("not a snapshot at all")))
		assert.ErrorIs(t, err, ErrInvalidMagic)
	})

	t.Run("Truncated", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, Write(&buf, sampleFrame()))
		_, err := Read(bytes.NewReader(buf.Bytes()[:8]))
		assert.Error(t, err)
	})

	t.Run("Empty", func(t *testing.T) {
		_, err := Read(bytes.NewReader(nil))
		assert.Error(t, err)
	})
}

func TestCaptureApply(t *testing.T) {
	buf := mesh.NewBuffer("web")
	points := []geom.Point3{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}}
	require.NoError(t, mesh.Sync(buf, points, knn.Table{{0, 1}, {1, 0}, {2, 0}}))

	frame := Capture(buf)
	assert.Equal(t, "web", frame.Name)
	assert.Equal(t, points, frame.Vertices)
	assert.Equal(t, buf.Edges(), frame.Edges)

	// Capture is a copy: later syncs do not leak into the frame.
	moved := []geom.Point3{{9, 9, 9}, {8, 8, 8}, {7, 7, 7}}
	require.NoError(t, mesh.Sync(buf, moved, knn.Table{{0, 1}, {1, 0}, {2, 0}}))
	assert.Equal(t, points, frame.Vertices)

	restored := mesh.NewBuffer("restored")
	require.NoError(t, frame.Apply(restored))
	assert.Equal(t, points, restored.Vertices())
	assert.Equal(t, frame.Edges, restored.Edges())
}

func TestPublishFetch(t *testing.T) {
	ctx := context.Background()
	store := blobstore.NewMemoryStore()
	frame := sampleFrame()

	key := Key("web", 42)
	require.NoError(t, Publish(ctx, store, key, frame))

	names, err := store.List(ctx, "snapshots/web/")
	require.NoError(t, err)
	assert.Equal(t, []string{key}, names)

	got, err := Fetch(ctx, store, key)
	require.NoError(t, err)
	assert.Equal(t, frame, got)
}

func TestFetchMissing(t *testing.T) {
	_, err := Fetch(context.Background(), blobstore.NewMemoryStore(), "nope")
	assert.ErrorIs(t, err, blobstore.ErrNotFound)
}

func TestParseCompression(t *testing.T) {
	tests := []struct {
		in      string
		want    Compression
		wantErr bool
	}{
		{in: "none", want: CompressionNone},
		{in: "", want: CompressionNone},
		{in: "zstd", want: CompressionZstd},
		{in: "lz4", want: CompressionLZ4},
		{in: "gzip", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseCompression(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrUnknownCompression)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
