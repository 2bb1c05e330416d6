// Package windows reads the Windows UI Automation tree through a Python
// uiautomation subprocess and captures the screen with robotgo.
package windows

import (
	"bytes"
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
	"time"

	"github.com/mj1618/desktop-tree/internal/platform/scene"
)

//go:embed scripts/list_windows.py
var listWindowsScript string

//go:embed scripts/dump_window.py
var dumpWindowScript string

// DefaultBridgeTimeout bounds one bridge invocation when none is configured.
const DefaultBridgeTimeout = 30 * time.Second

// WindowInfo is one top-level window as enumerated by the bridge.
type WindowInfo struct {
	Index     int    `json:"index"`
	Handle    int    `json:"handle"`
	Name      string `json:"name"`
	NameError string `json:"name_error,omitempty"`
	Rect      []int  `json:"rect"`
	Visible   bool   `json:"visible"`
}

// runFunc executes script with python and returns its stdout.
type runFunc func(ctx context.Context, python, script string, args ...string) ([]byte, error)

// Bridge runs the accessibility scripts.
type Bridge struct {
	python  string
	timeout time.Duration
	run     runFunc
}

// NewBridge returns a Bridge using the given interpreter. An empty python
// picks "python" or "python3" from PATH.
func NewBridge(python string, timeout time.Duration) *Bridge {
	if python == "" {
		python = "python"
		if _, err := exec.LookPath(python); err != nil {
			python = "python3"
		}
	}
	if timeout <= 0 {
		timeout = DefaultBridgeTimeout
	}
	return &Bridge{python: python, timeout: timeout, run: runPython}
}

// ListWindows enumerates the desktop's top-level windows in platform order.
func (b *Bridge) ListWindows(ctx context.Context) ([]WindowInfo, error) {
	out, err := b.exec(ctx, listWindowsScript)
	if err != nil {
		return nil, fmt.Errorf("failed to list windows: %w", err)
	}
	var windows []WindowInfo
	if err := json.Unmarshal(out, &windows); err != nil {
		return nil, fmt.Errorf("failed to parse window list: %w", err)
	}
	return windows, nil
}

// DumpWindow reads the full accessibility subtree of one window. Per-field
// query failures are carried in the returned nodes' Errors.
func (b *Bridge) DumpWindow(ctx context.Context, w WindowInfo) (*scene.Node, error) {
	out, err := b.exec(ctx, dumpWindowScript, strconv.Itoa(w.Handle), strconv.Itoa(w.Index))
	if err != nil {
		return nil, fmt.Errorf("failed to dump window %q: %w", w.Name, err)
	}
	var node scene.Node
	if err := json.Unmarshal(out, &node); err != nil {
		return nil, fmt.Errorf("failed to parse window %q: %w", w.Name, err)
	}
	return &node, nil
}

func (b *Bridge) exec(ctx context.Context, script string, args ...string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, b.timeout)
	defer cancel()
	return b.run(ctx, b.python, script, args...)
}

func runPython(ctx context.Context, python, script string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, python, append([]string{"-c", script}, args...)...)
	hideWindow(cmd)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	out, err := cmd.Output()
	if err != nil {
		return nil, fmt.Errorf("python error: %w\noutput: %s", err, strings.TrimSpace(stderr.String()))
	}
	return out, nil
}
