package scene

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/mj1618/desktop-tree/internal/platform"
)

// Default screen size used when a scene has neither a screen block nor a
// screenshot.
const (
	DefaultScreenWidth  = 1920
	DefaultScreenHeight = 1080
)

// Screen is the captured screen size in pixels.
type Screen struct {
	Width  int `yaml:"width"  json:"width"`
	Height int `yaml:"height" json:"height"`
}

// Scene is a recorded desktop: the top-level windows in enumeration order
// plus an optional screenshot file.
type Scene struct {
	Screen     Screen  `yaml:"screen,omitempty"     json:"screen,omitempty"`
	Screenshot string  `yaml:"screenshot,omitempty" json:"screenshot,omitempty"`
	Windows    []*Node `yaml:"windows"              json:"windows"`

	// WindowsError makes top-level enumeration fail with this message.
	WindowsError string `yaml:"windows_error,omitempty" json:"windows_error,omitempty"`
}

// Validate checks the structural constraints the loader cannot express.
func (s *Scene) Validate() error {
	for i, w := range s.Windows {
		if w == nil {
			return fmt.Errorf("windows/%d: empty window", i)
		}
		if err := w.validate(fmt.Sprintf("windows/%d", i)); err != nil {
			return err
		}
	}
	if s.Screen.Width < 0 || s.Screen.Height < 0 {
		return errors.New("screen size must not be negative")
	}
	return nil
}

// Desktop serves a Scene through platform.Desktop.
type Desktop struct {
	scene   *Scene
	baseDir string

	mu  sync.Mutex
	img image.Image
}

var _ platform.Desktop = (*Desktop)(nil)

// New builds a Desktop from in-memory windows, in enumeration order.
func New(windows ...*Node) *Desktop {
	return &Desktop{scene: &Scene{Windows: windows}}
}

// FromScene wraps an already parsed scene. Relative screenshot paths are
// resolved against baseDir.
func FromScene(s *Scene, baseDir string) (*Desktop, error) {
	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("invalid scene: %w", err)
	}
	return &Desktop{scene: s, baseDir: baseDir}, nil
}

// Parse decodes a YAML (or JSON) scene document.
func Parse(data []byte, baseDir string) (*Desktop, error) {
	var s Scene
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("failed to parse scene: %w", err)
	}
	return FromScene(&s, baseDir)
}

// Load reads a scene file from disk.
func Load(path string) (*Desktop, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scene: %w", err)
	}
	return Parse(data, filepath.Dir(path))
}

// NewProvider loads path and returns a Provider backed by it.
func NewProvider(path string) (*platform.Provider, error) {
	d, err := Load(path)
	if err != nil {
		return nil, err
	}
	return &platform.Provider{Desktop: d}, nil
}

// Scene returns the underlying scene.
func (d *Desktop) Scene() *Scene {
	return d.scene
}

func (d *Desktop) TopLevelWindows() ([]platform.Element, error) {
	if d.scene.WindowsError != "" {
		return nil, fmt.Errorf("enumerate windows: %s", d.scene.WindowsError)
	}
	windows := make([]platform.Element, len(d.scene.Windows))
	for i, w := range d.scene.Windows {
		windows[i] = w.Element()
	}
	return windows, nil
}

func (d *Desktop) IsAppVisible(window platform.Element) bool {
	n, ok := nodeOf(window)
	if !ok {
		return false
	}
	if n.Visible != nil {
		return *n.Visible
	}
	return !n.Offscreen && !n.Box().IsEmpty()
}

func (d *Desktop) Screenshot(scale float64) (image.Image, error) {
	img, err := d.base()
	if err != nil {
		return nil, err
	}
	return platform.ScaleImage(img, scale), nil
}

func (d *Desktop) base() (image.Image, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.img != nil {
		return d.img, nil
	}
	if d.scene.Screenshot != "" {
		path := d.scene.Screenshot
		if !filepath.IsAbs(path) && d.baseDir != "" {
			path = filepath.Join(d.baseDir, path)
		}
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("failed to open screenshot: %w", err)
		}
		defer f.Close()
		img, _, err := image.Decode(f)
		if err != nil {
			return nil, fmt.Errorf("failed to decode screenshot: %w", err)
		}
		d.img = img
		return img, nil
	}

	w, h := d.scene.Screen.Width, d.scene.Screen.Height
	if w == 0 || h == 0 {
		w, h = DefaultScreenWidth, DefaultScreenHeight
	}
	canvas := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(canvas, canvas.Bounds(), &image.Uniform{C: color.RGBA{R: 0xf0, G: 0xf0, B: 0xf0, A: 0xff}}, image.Point{}, draw.Src)
	d.img = canvas
	return canvas, nil
}
