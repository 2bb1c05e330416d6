package cmd

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/mj1618/desktop-tree/internal/model"
	"github.com/mj1618/desktop-tree/internal/output"
	"github.com/mj1618/desktop-tree/internal/platform"
)

var annotateCmd = &cobra.Command{
	Use:   "annotate",
	Short: "Capture a screenshot with every interactive element outlined and labelled",
	Long: `Take a snapshot, capture the screen and outline every interactive element in a
random color, labelled with its index in the snapshot's interactive list.`,
	RunE: runAnnotate,
}

func init() {
	rootCmd.AddCommand(annotateCmd)
	annotateCmd.Flags().Float64("scale", 0, "Scale factor 0.1-1.0 (default: annotate.scale from config)")
	annotateCmd.Flags().String("output", "", "Output file path (default: stdout as base64)")
	annotateCmd.Flags().String("image-format", "png", "Image format: png, jpg")
	annotateCmd.Flags().Int("quality", 80, "JPEG quality 1-100")
	annotateCmd.Flags().String("app", "", "Only annotate elements of these applications (comma-separated)")
	annotateCmd.Flags().String("text", "", "Only annotate elements whose name contains this text")
	annotateCmd.Flags().String("region", "", "Only annotate elements overlapping left,top,right,bottom")
	annotateCmd.Flags().Int("max-nodes", 0, "Max elements to annotate (0 = unlimited)")
}

// encodeImage encodes img as png or jpg.
func encodeImage(img image.Image, format string, quality int) ([]byte, error) {
	buf := &bytes.Buffer{}
	var err error
	switch format {
	case "jpg", "jpeg":
		err = jpeg.Encode(buf, img, &jpeg.Options{Quality: quality})
	case "png":
		err = png.Encode(buf, img)
	default:
		return nil, fmt.Errorf("unsupported image format: %s (use png or jpg)", format)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to encode annotated image: %w", err)
	}
	return buf.Bytes(), nil
}

// selectNodes narrows the snapshot's interactive nodes for annotation.
// Labels are indexes into the returned slice.
func selectNodes(state model.TreeState, apps []string, text string, region *model.BoundingBox, max int) []model.InteractiveNode {
	state = model.FilterByApp(state, apps)
	state = model.FilterByText(state, text)
	nodes := model.FilterInteractiveByRegion(state.Interactive, region)
	return model.LimitInteractive(nodes, max)
}

func runAnnotate(cmd *cobra.Command, args []string) error {
	scale, _ := cmd.Flags().GetFloat64("scale")
	out, _ := cmd.Flags().GetString("output")
	format, _ := cmd.Flags().GetString("image-format")
	quality, _ := cmd.Flags().GetInt("quality")
	apps, _ := cmd.Flags().GetString("app")
	text, _ := cmd.Flags().GetString("text")
	regionStr, _ := cmd.Flags().GetString("region")
	maxNodes, _ := cmd.Flags().GetInt("max-nodes")

	if scale == 0 {
		scale = cfg.Annotate.Scale
	}
	if scale < 0.1 || scale > 1 {
		return fmt.Errorf("scale must be between 0.1 and 1.0, got %v", scale)
	}
	var region *model.BoundingBox
	if regionStr != "" {
		r, err := platform.ParseRegion(regionStr)
		if err != nil {
			return err
		}
		region = r
	}

	s, err := newSession(cfg)
	if err != nil {
		return err
	}
	defer s.Close()

	state, err := s.tree.Snapshot()
	if err != nil {
		return err
	}
	nodes := selectNodes(state, splitList(apps), text, region, maxNodes)

	img, err := s.tree.AnnotatedScreenshot(nodes, scale)
	if err != nil {
		return err
	}
	data, err := encodeImage(img, format, quality)
	if err != nil {
		return err
	}

	if out != "" {
		if err := os.WriteFile(out, data, 0644); err != nil {
			return err
		}
		b := img.Bounds()
		return output.Print(output.AnnotateResult{
			ID:     uuid.NewString(),
			TS:     time.Now().Unix(),
			Path:   out,
			Width:  b.Dx(),
			Height: b.Dy(),
			Nodes:  len(nodes),
		})
	}

	// Default: write to stdout as base64 for easy agent consumption
	encoder := base64.NewEncoder(base64.StdEncoding, output.Stdout)
	if _, err := encoder.Write(data); err != nil {
		return err
	}
	if err := encoder.Close(); err != nil {
		return err
	}
	fmt.Fprintln(output.Stdout)
	return nil
}
