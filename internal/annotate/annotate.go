// Package annotate draws numbered bounding boxes for interactive nodes over a
// padded copy of a screenshot.
package annotate

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"math/rand"
	"os"
	"strconv"
	"sync"
	"time"

	"github.com/golang/freetype/truetype"
	"go.uber.org/zap"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/mj1618/desktop-tree/internal/model"
	"github.com/mj1618/desktop-tree/internal/pool"
)

// Defaults for an Annotator.
const (
	DefaultScale    = 0.7
	DefaultPadding  = 20
	DefaultFontSize = 12

	// BoxStroke is the outline width of each bounding box in pixels.
	BoxStroke = 2
)

var (
	background = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	textColor  = color.RGBA{R: 255, G: 255, B: 255, A: 255}
)

// Annotator renders annotated screenshots. It is safe for concurrent use.
type Annotator struct {
	pool     *pool.Pool
	padding  int
	fontSize int
	face     font.Face
	logger   *zap.Logger

	rngMu sync.Mutex
	rng   *rand.Rand
}

// Option configures an Annotator.
type Option func(*Annotator)

// WithSeed makes label colors reproducible.
func WithSeed(seed int64) Option {
	return func(a *Annotator) { a.rng = rand.New(rand.NewSource(seed)) }
}

// WithRand injects the color generator.
func WithRand(r *rand.Rand) Option {
	return func(a *Annotator) { a.rng = r }
}

// WithPadding sets the white margin added on every side of the screenshot.
func WithPadding(padding int) Option {
	return func(a *Annotator) { a.padding = padding }
}

// WithFontSize sets the label tag height.
func WithFontSize(size int) Option {
	return func(a *Annotator) { a.fontSize = size }
}

// WithFace sets the label font.
func WithFace(face font.Face) Option {
	return func(a *Annotator) { a.face = face }
}

// WithLogger sets the logger used for failed draw tasks.
func WithLogger(logger *zap.Logger) Option {
	return func(a *Annotator) { a.logger = logger }
}

// New returns an Annotator that draws on p's workers.
func New(p *pool.Pool, opts ...Option) *Annotator {
	a := &Annotator{
		pool:     p,
		padding:  DefaultPadding,
		fontSize: DefaultFontSize,
		face:     basicfont.Face7x13,
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(a)
	}
	if a.rng == nil {
		a.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return a
}

// LoadFont parses a TrueType file into a face of the given pixel size.
func LoadFont(path string, size int) (font.Face, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read font: %w", err)
	}
	f, err := truetype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse font %s: %w", path, err)
	}
	return truetype.NewFace(f, &truetype.Options{Size: float64(size), DPI: 72, Hinting: font.HintingFull}), nil
}

// BoxRect maps a node's screen box onto the padded canvas: each edge is
// scaled, truncated and offset by padding.
func (a *Annotator) BoxRect(box model.BoundingBox, scale float64) image.Rectangle {
	r := box.Scale(scale, a.padding)
	return image.Rect(r.Left, r.Top, r.Right, r.Bottom)
}

// LabelRect places the tag for label above box, right-aligned with the box's
// right edge and kept inside canvas.
func (a *Annotator) LabelRect(label string, box, canvas image.Rectangle) image.Rectangle {
	width := font.MeasureString(a.face, label).Ceil() + 4
	height := a.fontSize + 4
	r := image.Rect(box.Max.X-width, box.Min.Y-height, box.Max.X, box.Min.Y)

	if r.Min.X < canvas.Min.X {
		r = r.Add(image.Pt(canvas.Min.X-r.Min.X, 0))
	}
	if r.Max.X > canvas.Max.X {
		r = r.Add(image.Pt(canvas.Max.X-r.Max.X, 0))
	}
	if r.Min.Y < canvas.Min.Y {
		r = r.Add(image.Pt(0, canvas.Min.Y-r.Min.Y))
	}
	if r.Max.Y > canvas.Max.Y {
		r = r.Add(image.Pt(0, canvas.Max.Y-r.Max.Y))
	}
	return r
}

// Colors returns n label colors drawn from the Annotator's generator.
func (a *Annotator) Colors(n int) []color.RGBA {
	a.rngMu.Lock()
	defer a.rngMu.Unlock()
	colors := make([]color.RGBA, n)
	for i := range colors {
		v := a.rng.Intn(0x1000000)
		colors[i] = color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 255}
	}
	return colors
}

// Annotate returns a new image: screenshot on a white canvas padded on every
// side, with node i outlined and tagged with the number i. Node boxes are in
// screen coordinates; scale is the factor the screenshot was captured at.
// screenshot is not modified.
//
// Each node is rendered onto its own layer by the pool; layers are then
// composited in index order, so where boxes overlap the higher label is on
// top regardless of which worker finished first.
func (a *Annotator) Annotate(nodes []model.InteractiveNode, screenshot image.Image, scale float64) *image.RGBA {
	src := screenshot.Bounds()
	canvas := image.NewRGBA(image.Rect(0, 0, src.Dx()+2*a.padding, src.Dy()+2*a.padding))
	draw.Draw(canvas, canvas.Bounds(), &image.Uniform{C: background}, image.Point{}, draw.Src)
	draw.Draw(canvas, image.Rect(a.padding, a.padding, a.padding+src.Dx(), a.padding+src.Dy()), screenshot, src.Min, draw.Src)

	colors := a.Colors(len(nodes))
	bounds := canvas.Bounds()
	layers := make([]*image.RGBA, len(nodes))

	tasks := make([]func() error, len(nodes))
	for i, n := range nodes {
		tasks[i] = func() error {
			box := a.BoxRect(n.BoundingBox, scale)
			label := strconv.Itoa(i)
			tag := a.LabelRect(label, box, bounds)

			layer := image.NewRGBA(box.Union(tag).Intersect(bounds))
			drawOutline(layer, box, colors[i], BoxStroke)
			draw.Draw(layer, tag, &image.Uniform{C: colors[i]}, image.Point{}, draw.Src)
			a.drawText(layer, label, tag.Min.X+2, tag.Min.Y+2)
			layers[i] = layer
			return nil
		}
	}
	for o := range a.pool.Run(tasks...) {
		if o.Err != nil {
			a.logger.Warn("failed to draw annotation", zap.Int("label", o.Index), zap.Error(o.Err))
		}
	}
	for _, layer := range layers {
		if layer == nil {
			continue
		}
		draw.Draw(canvas, layer.Bounds(), layer, layer.Bounds().Min, draw.Over)
	}
	return canvas
}

// drawOutline strokes r inward with the given width.
func drawOutline(img *image.RGBA, r image.Rectangle, c color.Color, width int) {
	if r.Dx() <= 0 || r.Dy() <= 0 {
		return
	}
	u := &image.Uniform{C: c}
	for i := 0; i < width; i++ {
		in := image.Rect(r.Min.X+i, r.Min.Y+i, r.Max.X-i, r.Max.Y-i)
		if in.Dx() <= 0 || in.Dy() <= 0 {
			return
		}
		draw.Draw(img, image.Rect(in.Min.X, in.Min.Y, in.Max.X, in.Min.Y+1), u, image.Point{}, draw.Src)
		draw.Draw(img, image.Rect(in.Min.X, in.Max.Y-1, in.Max.X, in.Max.Y), u, image.Point{}, draw.Src)
		draw.Draw(img, image.Rect(in.Min.X, in.Min.Y, in.Min.X+1, in.Max.Y), u, image.Point{}, draw.Src)
		draw.Draw(img, image.Rect(in.Max.X-1, in.Min.Y, in.Max.X, in.Max.Y), u, image.Point{}, draw.Src)
	}
}

// drawText draws text with its top-left corner at (x, y).
func (a *Annotator) drawText(img *image.RGBA, text string, x, y int) {
	ascent := a.face.Metrics().Ascent
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(textColor),
		Face: a.face,
		Dot:  fixed.Point26_6{X: fixed.I(x), Y: fixed.I(y) + ascent},
	}
	d.DrawString(text)
}
