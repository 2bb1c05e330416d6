package tree

import (
	"errors"
	"fmt"
	"strings"

	"github.com/mj1618/desktop-tree/internal/model"
	"github.com/mj1618/desktop-tree/internal/platform"
)

// Top-level windows that are always scanned.
const (
	TaskbarWindow = "Taskbar"
	ShellWindow   = "Program Manager"

	// DesktopApp is the app name nodes under the shell window are tagged with.
	DesktopApp = "Desktop"
)

// Reasons reported on model.Window.
const (
	ReasonTaskbar    = "taskbar"
	ReasonShell      = "desktop shell"
	ReasonForeground = "foreground"
	ReasonBackground = "not foreground"
	ReasonHidden     = "not visible"
	ReasonAvoided    = "avoided"
	ReasonDuplicate  = "duplicate name"
	ReasonNameFailed = "name query failed"
)

// ErrShellWindowMissing is returned when the taskbar or the desktop shell
// window is not among the visible top-level windows.
var ErrShellWindowMissing = errors.New("shell window not found")

// App is one top-level window selected for a walk.
type App struct {
	Name   string
	Window platform.Element
}

// Selection is the partitioner's decision for one snapshot.
type Selection struct {
	// Apps are the windows to walk: taskbar, desktop shell, then at most one
	// foreground application.
	Apps []App
	// Windows describes every top-level window in enumeration order.
	Windows []model.Window
}

// AppName maps a window name to the name its nodes are tagged with.
func AppName(windowName string) string {
	name := strings.TrimSpace(windowName)
	if name == ShellWindow {
		return DesktopApp
	}
	return name
}

// SelectApps enumerates the desktop's top-level windows and picks the ones
// to scan. Windows that are not visible or whose name is in avoided are
// never selected. The foreground application is the first remaining window
// in enumeration order. When several windows share a name the last one is
// walked, in the slot the first one earned.
func SelectApps(desktop platform.Desktop, avoided map[string]bool) (Selection, error) {
	windows, err := desktop.TopLevelWindows()
	if err != nil {
		return Selection{}, fmt.Errorf("failed to enumerate windows: %w", err)
	}

	var (
		sel        Selection
		taskbar    *App
		shell      *App
		foreground *App
		// seen maps a window name to the index in sel.Windows of the window
		// currently holding that name.
		seen = make(map[string]int, len(windows))
		apps = make(map[string]*App, 3)
	)
	for _, w := range windows {
		raw, err := w.Name()
		if err != nil {
			sel.Windows = append(sel.Windows, model.Window{Reason: ReasonNameFailed})
			continue
		}
		name := strings.TrimSpace(raw)
		info := model.Window{Name: name, Visible: desktop.IsAppVisible(w)}

		prev, dup := seen[name]
		switch {
		case !info.Visible:
			info.Reason = ReasonHidden
		case avoided[name]:
			info.Reason = ReasonAvoided
		case dup:
			held := &sel.Windows[prev]
			info.Selected, info.Reason = held.Selected, held.Reason
			held.Selected, held.Reason = false, ReasonDuplicate
			if app := apps[name]; app != nil {
				app.Window = w
			}
		case name == TaskbarWindow:
			taskbar = &App{Name: AppName(name), Window: w}
			apps[name] = taskbar
			info.Selected, info.Reason = true, ReasonTaskbar
		case name == ShellWindow:
			shell = &App{Name: AppName(name), Window: w}
			apps[name] = shell
			info.Selected, info.Reason = true, ReasonShell
		case foreground == nil:
			foreground = &App{Name: AppName(name), Window: w}
			apps[name] = foreground
			info.Selected, info.Reason = true, ReasonForeground
		default:
			info.Reason = ReasonBackground
		}
		if info.Visible && !avoided[name] {
			seen[name] = len(sel.Windows)
		}
		sel.Windows = append(sel.Windows, info)
	}

	if taskbar == nil {
		return sel, fmt.Errorf("%w: %q", ErrShellWindowMissing, TaskbarWindow)
	}
	if shell == nil {
		return sel, fmt.Errorf("%w: %q", ErrShellWindowMissing, ShellWindow)
	}
	sel.Apps = append(sel.Apps, *taskbar, *shell)
	if foreground != nil {
		sel.Apps = append(sel.Apps, *foreground)
	}
	return sel, nil
}
