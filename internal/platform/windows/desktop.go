package windows

import (
	"context"
	"errors"
	"image"
	"sync"

	"github.com/mj1618/desktop-tree/internal/model"
	"github.com/mj1618/desktop-tree/internal/platform"
)

// Desktop is the live Windows desktop. Each top-level window's subtree is
// dumped on first use, so walks of different windows dump in parallel.
type Desktop struct {
	bridge  *Bridge
	capture func() (image.Image, error)
}

var _ platform.Desktop = (*Desktop)(nil)

// NewDesktop returns a Desktop reading through bridge.
func NewDesktop(bridge *Bridge) *Desktop {
	return &Desktop{bridge: bridge, capture: captureScreen}
}

func (d *Desktop) TopLevelWindows() ([]platform.Element, error) {
	infos, err := d.bridge.ListWindows(context.Background())
	if err != nil {
		return nil, err
	}
	windows := make([]platform.Element, len(infos))
	for i, info := range infos {
		windows[i] = &window{info: info, bridge: d.bridge}
	}
	return windows, nil
}

func (d *Desktop) IsAppVisible(el platform.Element) bool {
	w, ok := el.(*window)
	return ok && w.info.Visible
}

func (d *Desktop) Screenshot(scale float64) (image.Image, error) {
	img, err := d.capture()
	if err != nil {
		return nil, err
	}
	return platform.ScaleImage(img, scale), nil
}

// window answers its name from the enumeration and everything else from a
// lazily dumped subtree.
type window struct {
	info   WindowInfo
	bridge *Bridge

	once sync.Once
	root platform.Element
	err  error
}

func (w *window) load() (platform.Element, error) {
	w.once.Do(func() {
		node, err := w.bridge.DumpWindow(context.Background(), w.info)
		if err != nil {
			w.err = err
			return
		}
		w.root = node.Element()
	})
	return w.root, w.err
}

func (w *window) Name() (string, error) {
	if w.info.NameError != "" {
		return "", errors.New(w.info.NameError)
	}
	return w.info.Name, nil
}

func (w *window) Children() ([]platform.Element, error) {
	root, err := w.load()
	if err != nil {
		return nil, err
	}
	return root.Children()
}

func (w *window) ControlType() (string, error) {
	root, err := w.load()
	if err != nil {
		return "", err
	}
	return root.ControlType()
}

func (w *window) LocalizedControlType() (string, error) {
	root, err := w.load()
	if err != nil {
		return "", err
	}
	return root.LocalizedControlType()
}

func (w *window) BoundingRectangle() (model.BoundingBox, error) {
	root, err := w.load()
	if err != nil {
		return model.BoundingBox{}, err
	}
	return root.BoundingRectangle()
}

func (w *window) IsOffscreen() (bool, error) {
	root, err := w.load()
	if err != nil {
		return false, err
	}
	return root.IsOffscreen()
}

func (w *window) IsEnabled() (bool, error) {
	root, err := w.load()
	if err != nil {
		return false, err
	}
	return root.IsEnabled()
}

func (w *window) AcceleratorKey() (string, error) {
	root, err := w.load()
	if err != nil {
		return "", err
	}
	return root.AcceleratorKey()
}

func (w *window) LegacyDefaultAction() (string, error) {
	root, err := w.load()
	if err != nil {
		return "", err
	}
	return root.LegacyDefaultAction()
}

func (w *window) ScrollPattern() (platform.ScrollInfo, error) {
	root, err := w.load()
	if err != nil {
		return platform.ScrollInfo{}, err
	}
	return root.ScrollPattern()
}
