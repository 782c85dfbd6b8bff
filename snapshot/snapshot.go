// Package snapshot persists web meshes as self-describing frame files.
//
// A snapshot file carries a small fixed header (magic, format version,
// compression, codec name) followed by the codec-encoded frame payload,
// optionally compressed. Because the header names the codec and the
// compression, any file ever written stays readable regardless of the
// defaults at read time.
package snapshot

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"

	"github.com/particleforge/webmesh/codec"
	"github.com/particleforge/webmesh/geom"
	"github.com/particleforge/webmesh/mesh"
)

var (
	// ErrInvalidMagic is returned when a file does not start with the
	// snapshot magic bytes.
	ErrInvalidMagic = errors.New("snapshot: invalid magic")

	// ErrUnsupportedVersion is returned for format versions this
	// build cannot read.
	ErrUnsupportedVersion = errors.New("snapshot: unsupported format version")

	// ErrUnknownCodec is returned when the header names a codec this
	// build does not have.
	ErrUnknownCodec = errors.New("snapshot: unknown codec")

	// ErrUnknownCompression is returned for compression schemes this
	// build does not have.
	ErrUnknownCompression = errors.New("snapshot: unknown compression")
)

var (
	magic         = [4]byte{'W', 'M', 'S', '0'}
	formatVersion = uint16(1)
)

// Compression identifies the payload compression scheme.
type Compression uint8

const (
	// CompressionNone stores the payload uncompressed.
	CompressionNone Compression = iota

	// CompressionZstd compresses the payload with zstandard.
	CompressionZstd

	// CompressionLZ4 compresses the payload with lz4.
	CompressionLZ4
)

func (c Compression) String() string {
	switch c {
	case CompressionNone:
		return "none"
	case CompressionZstd:
		return "zstd"
	case CompressionLZ4:
		return "lz4"
	default:
		return fmt.Sprintf("Unknown(%d)", uint8(c))
	}
}

// ParseCompression maps a scheme name to its Compression value.
func ParseCompression(name string) (Compression, error) {
	switch name {
	case "none", "":
		return CompressionNone, nil
	case "zstd":
		return CompressionZstd, nil
	case "lz4":
		return CompressionLZ4, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownCompression, name)
	}
}

// Frame is the persisted form of one synchronized web mesh.
type Frame struct {
	Name     string        `json:"name"`
	Vertices []geom.Point3 `json:"vertices"`
	Edges    []mesh.Edge   `json:"edges"`
}

// Capture copies the buffer's current content into a Frame. The copy is
// independent of later synchronizations.
func Capture(buf *mesh.Buffer) Frame {
	verts := make([]geom.Point3, buf.VertexCount())
	copy(verts, buf.Vertices())
	edges := make([]mesh.Edge, buf.EdgeCount())
	copy(edges, buf.Edges())

	return Frame{
		Name:     buf.Name(),
		Vertices: verts,
		Edges:    edges,
	}
}

// Apply loads the frame into the buffer, replacing its content.
func (f Frame) Apply(buf *mesh.Buffer) error {
	verts := make([]geom.Point3, len(f.Vertices))
	copy(verts, f.Vertices)
	edges := make([]mesh.Edge, len(f.Edges))
	copy(edges, f.Edges)

	return buf.Load(verts, edges)
}

// Options configures snapshot writing. Reads need no options: the file
// header says how it was written.
type Options struct {
	// Codec encodes the frame payload.
	Codec codec.Codec

	// Compression is the payload compression scheme.
	Compression Compression
}

// DefaultOptions are the default write options.
var DefaultOptions = Options{
	Codec:       codec.Default,
	Compression: CompressionZstd,
}

// Write encodes the frame to w in the snapshot format.
func Write(w io.Writer, f Frame, optFns ...func(o *Options)) error {
	opts := DefaultOptions
	for _, fn := range optFns {
		fn(&opts)
	}
	if opts.Codec == nil {
		opts.Codec = codec.Default
	}
	if _, ok := codec.ByName(opts.Codec.Name()); !ok {
		return fmt.Errorf("%w: %q", ErrUnknownCodec, opts.Codec.Name())
	}

	if err := writeHeader(w, opts); err != nil {
		return err
	}

	payload, err := opts.Codec.Marshal(f)
	if err != nil {
		return fmt.Errorf("failed to encode frame: %w", err)
	}
	return writePayload(w, payload, opts.Compression)
}

// Read decodes a frame from r, selecting codec and compression from the
// file header.
func Read(r io.Reader) (Frame, error) {
	c, compression, err := readHeader(r)
	if err != nil {
		return Frame{}, err
	}

	payload, err := readPayload(r, compression)
	if err != nil {
		return Frame{}, err
	}

	var f Frame
	if err := c.Unmarshal(payload, &f); err != nil {
		return Frame{}, fmt.Errorf("failed to decode frame: %w", err)
	}
	return f, nil
}

// Header layout (little endian):
// [magic:4][version:2][compression:1][codecNameLen:1][reserved:8][codecName:N]
const headerFixedLen = 16

func writeHeader(w io.Writer, opts Options) error {
	name := opts.Codec.Name()
	if len(name) > 255 {
		return fmt.Errorf("%w: codec name too long", ErrUnknownCodec)
	}

	buf := make([]byte, 0, headerFixedLen+len(name))
	buf = append(buf, magic[:]...)
	var fixed [12]byte
	binary.LittleEndian.PutUint16(fixed[0:2], formatVersion)
	fixed[2] = uint8(opts.Compression)
	fixed[3] = uint8(len(name))
	// fixed[4:12] reserved
	buf = append(buf, fixed[:]...)
	buf = append(buf, name...)

	if _, err := w.Write(buf); err != nil {
		return fmt.Errorf("failed to write snapshot header: %w", err)
	}
	return nil
}

func readHeader(r io.Reader) (codec.Codec, Compression, error) {
	var head [headerFixedLen]byte
	if _, err := io.ReadFull(r, head[:]); err != nil {
		return nil, 0, fmt.Errorf("failed to read snapshot header: %w", err)
	}
	if [4]byte(head[0:4]) != magic {
		return nil, 0, ErrInvalidMagic
	}

	version := binary.LittleEndian.Uint16(head[4:6])
	if version != formatVersion {
		return nil, 0, fmt.Errorf("%w: %d", ErrUnsupportedVersion, version)
	}

	compression := Compression(head[6])
	switch compression {
	case CompressionNone, CompressionZstd, CompressionLZ4:
	default:
		return nil, 0, fmt.Errorf("%w: %d", ErrUnknownCompression, head[6])
	}

	nameLen := int(head[7])
	name := make([]byte, nameLen)
	if _, err := io.ReadFull(r, name); err != nil {
		return nil, 0, fmt.Errorf("failed to read codec name: %w", err)
	}

	c, ok := codec.ByName(string(name))
	if !ok {
		return nil, 0, fmt.Errorf("%w: %q", ErrUnknownCodec, string(name))
	}
	return c, compression, nil
}

func writePayload(w io.Writer, payload []byte, compression Compression) error {
	switch compression {
	case CompressionNone:
		_, err := w.Write(payload)
		return err

	case CompressionZstd:
		zw, err := zstd.NewWriter(w)
		if err != nil {
			return fmt.Errorf("failed to create zstd writer: %w", err)
		}
		if _, err := zw.Write(payload); err != nil {
			_ = zw.Close()
			return err
		}
		return zw.Close()

	case CompressionLZ4:
		lw := lz4.NewWriter(w)
		if _, err := lw.Write(payload); err != nil {
			_ = lw.Close()
			return err
		}
		return lw.Close()

	default:
		return fmt.Errorf("%w: %d", ErrUnknownCompression, uint8(compression))
	}
}

func readPayload(r io.Reader, compression Compression) ([]byte, error) {
	switch compression {
	case CompressionNone:
		return io.ReadAll(r)

	case CompressionZstd:
		zr, err := zstd.NewReader(r)
		if err != nil {
			return nil, fmt.Errorf("failed to create zstd reader: %w", err)
		}
		defer zr.Close()
		return io.ReadAll(zr)

	case CompressionLZ4:
		return io.ReadAll(lz4.NewReader(r))

	default:
		return nil, fmt.Errorf("%w: %d", ErrUnknownCompression, uint8(compression))
	}
}
