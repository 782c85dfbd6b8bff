package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/particleforge/webmesh"
	"github.com/particleforge/webmesh/distance"
	"github.com/particleforge/webmesh/geom"
	"github.com/particleforge/webmesh/mesh"
	"github.com/particleforge/webmesh/snapshot"
)

var (
	webName string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "webmesh",
	Short: "CLI tool for KNN web-mesh generation",
	Long:  `Builds web-like edge meshes over 3D point clouds by connecting each point to its k nearest neighbors.`,
}

var weaveCmd = &cobra.Command{
	Use:   "weave <points.json>",
	Short: "Weave a web mesh from a point cloud",
	Long: `Reads a JSON array of [x, y, z] points (use "-" for stdin), connects each
point to its k nearest neighbors and writes the resulting mesh.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		k, _ := cmd.Flags().GetInt("k")
		metricName, _ := cmd.Flags().GetString("metric")
		approximate, _ := cmd.Flags().GetBool("approximate")
		parallelism, _ := cmd.Flags().GetInt("parallelism")
		format, _ := cmd.Flags().GetString("format")
		outPath, _ := cmd.Flags().GetString("out")
		snapshotPath, _ := cmd.Flags().GetString("snapshot")
		compressionName, _ := cmd.Flags().GetString("compression")

		metric, err := distance.ParseMetric(metricName)
		if err != nil {
			return err
		}

		points, err := readPoints(args[0])
		if err != nil {
			return fmt.Errorf("failed to read points: %w", err)
		}

		opts := []webmesh.Option{
			webmesh.WithK(k),
			webmesh.WithMetric(metric),
			webmesh.WithApproximateIndex(approximate),
			webmesh.WithParallelism(parallelism),
		}
		if verbose {
			opts = append(opts, webmesh.WithLogger(webmesh.NewTextLogger(slog.LevelDebug)))
		}

		w, err := webmesh.New(opts...)
		if err != nil {
			return err
		}

		buf, err := w.Update(context.Background(), webName, points)
		if err != nil {
			return fmt.Errorf("failed to weave: %w", err)
		}

		if snapshotPath != "" {
			compression, err := snapshot.ParseCompression(compressionName)
			if err != nil {
				return err
			}
			if err := writeSnapshotFile(snapshotPath, buf, compression); err != nil {
				return fmt.Errorf("failed to write snapshot: %w", err)
			}
		}

		out, err := openOutput(outPath)
		if err != nil {
			return err
		}
		defer out.Close()

		switch format {
		case "json":
			return writeJSON(out, buf)
		case "obj":
			return writeOBJ(out, buf.Name(), buf.Vertices(), buf.Edges())
		default:
			return fmt.Errorf("unknown format %q (want json or obj)", format)
		}
	},
}

var inspectCmd = &cobra.Command{
	Use:   "inspect <snapshot.wms>",
	Short: "Show the contents of a snapshot file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		asJSON, _ := cmd.Flags().GetBool("json")

		frame, err := readSnapshotFile(args[0])
		if err != nil {
			return err
		}

		if asJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(frame)
		}

		fmt.Printf("Name:     %s\n", frame.Name)
		fmt.Printf("Vertices: %d\n", len(frame.Vertices))
		fmt.Printf("Edges:    %d\n", len(frame.Edges))
		return nil
	},
}

var exportCmd = &cobra.Command{
	Use:   "export <snapshot.wms>",
	Short: "Export a snapshot as Wavefront OBJ",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		outPath, _ := cmd.Flags().GetString("out")

		frame, err := readSnapshotFile(args[0])
		if err != nil {
			return err
		}

		out, err := openOutput(outPath)
		if err != nil {
			return err
		}
		defer out.Close()

		return writeOBJ(out, frame.Name, frame.Vertices, frame.Edges)
	},
}

func readPoints(path string) ([]geom.Point3, error) {
	var r io.Reader
	if path == "-" {
		r = os.Stdin
	} else {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		r = f
	}

	var points []geom.Point3
	if err := json.NewDecoder(r).Decode(&points); err != nil {
		return nil, err
	}
	return points, nil
}

func openOutput(path string) (io.WriteCloser, error) {
	if path == "" || path == "-" {
		return nopWriteCloser{os.Stdout}, nil
	}
	return os.Create(path)
}

type nopWriteCloser struct {
	io.Writer
}

func (nopWriteCloser) Close() error { return nil }

func writeJSON(w io.Writer, buf *mesh.Buffer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(snapshot.Capture(buf))
}

// writeOBJ writes vertices and line elements. OBJ indices are 1-based.
func writeOBJ(w io.Writer, name string, verts []geom.Point3, edges []mesh.Edge) error {
	if name != "" {
		if _, err := fmt.Fprintf(w, "o %s\n", name); err != nil {
			return err
		}
	}
	for _, v := range verts {
		if _, err := fmt.Fprintf(w, "v %g %g %g\n", v[0], v[1], v[2]); err != nil {
			return err
		}
	}
	for _, e := range edges {
		if _, err := fmt.Fprintf(w, "l %d %d\n", e.A+1, e.B+1); err != nil {
			return err
		}
	}
	return nil
}

func writeSnapshotFile(path string, buf *mesh.Buffer, compression snapshot.Compression) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}

	err = snapshot.Write(f, snapshot.Capture(buf), func(o *snapshot.Options) {
		o.Compression = compression
	})
	if err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

func readSnapshotFile(path string) (snapshot.Frame, error) {
	f, err := os.Open(path)
	if err != nil {
		return snapshot.Frame{}, err
	}
	defer f.Close()

	return snapshot.Read(f)
}

func init() {
	rootCmd.PersistentFlags().StringVar(&webName, "name", "web", "Web mesh name")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose logging")

	weaveCmd.Flags().Int("k", webmesh.DefaultK, "Neighbors per point, self included")
	weaveCmd.Flags().String("metric", "euclidean", "Distance metric (euclidean/manhattan/dot/angular)")
	weaveCmd.Flags().Bool("approximate", false, "Use the approximate neighbor index")
	weaveCmd.Flags().Int("parallelism", 1, "Goroutines for exact search")
	weaveCmd.Flags().String("format", "json", "Output format (json/obj)")
	weaveCmd.Flags().String("out", "", "Output file (default stdout)")
	weaveCmd.Flags().String("snapshot", "", "Also write a snapshot file to this path")
	weaveCmd.Flags().String("compression", "zstd", "Snapshot compression (none/zstd/lz4)")

	inspectCmd.Flags().Bool("json", false, "Output as JSON")

	exportCmd.Flags().String("out", "", "Output file (default stdout)")

	rootCmd.AddCommand(
		weaveCmd,
		inspectCmd,
		exportCmd,
	)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Fatal(err)
	}
}
