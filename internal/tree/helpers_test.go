package tree

import (
	"image"
	"testing"

	"go.uber.org/zap/zaptest"

	"github.com/mj1618/desktop-tree/internal/platform"
	"github.com/mj1618/desktop-tree/internal/platform/scene"
	"github.com/mj1618/desktop-tree/internal/pool"
)

func button(name string, rect ...int) *scene.Node {
	return &scene.Node{Name: name, ControlType: "ButtonControl", LocalizedControlType: "button", Rect: rect, DefaultAction: "Press"}
}

func text(name string, rect ...int) *scene.Node {
	return &scene.Node{Name: name, ControlType: "TextControl", LocalizedControlType: "text", Rect: rect}
}

func pane(name string, rect []int, children ...*scene.Node) *scene.Node {
	return &scene.Node{Name: name, ControlType: "PaneControl", LocalizedControlType: "pane", Rect: rect, Children: children}
}

func window(name string, children ...*scene.Node) *scene.Node {
	return &scene.Node{Name: name, ControlType: "WindowControl", LocalizedControlType: "window", Rect: []int{100, 100, 900, 700}, Children: children}
}

func taskbar(children ...*scene.Node) *scene.Node {
	return pane(TaskbarWindow, []int{0, 760, 1280, 800}, children...)
}

func shell(children ...*scene.Node) *scene.Node {
	return pane(ShellWindow, []int{0, 0, 1280, 800}, children...)
}

// newDesktop returns a scene with a taskbar, the given windows and the shell,
// in that enumeration order.
func newDesktop(windows ...*scene.Node) *scene.Desktop {
	all := []*scene.Node{taskbar(button("Start", 0, 760, 48, 800))}
	all = append(all, windows...)
	all = append(all, shell(&scene.Node{
		Name: "Recycle Bin", ControlType: "ListItemControl", LocalizedControlType: "list item",
		Rect: []int{10, 10, 80, 80}, DefaultAction: "Double Click",
	}))
	return scene.New(all...)
}

func newTree(t *testing.T, desktop platform.Desktop, workers int) *Tree {
	t.Helper()
	p := pool.New(workers, zaptest.NewLogger(t))
	t.Cleanup(func() { p.Close() })
	opts := DefaultOptions()
	opts.SettleDelay = 0
	opts.CaptureDelay = 0
	return New(desktop, p, opts, zaptest.NewLogger(t))
}

// staticDesktop reports every window as visible.
type staticDesktop struct {
	windows []platform.Element
}

func (d staticDesktop) TopLevelWindows() ([]platform.Element, error) { return d.windows, nil }
func (d staticDesktop) IsAppVisible(platform.Element) bool            { return true }
func (d staticDesktop) Screenshot(float64) (image.Image, error) {
	return image.NewRGBA(image.Rect(0, 0, 10, 10)), nil
}

// panickingElement panics when its children are enumerated.
type panickingElement struct {
	platform.Element
}

func (panickingElement) Children() ([]platform.Element, error) {
	panic("element went away")
}
