package platform

import (
	"fmt"
	"runtime"
	"time"
)

// Provider bundles the platform backends for the current OS.
type Provider struct {
	Desktop Desktop
}

// Options tunes native backends.
type Options struct {
	// Python is the interpreter that runs the accessibility bridge.
	Python string
	// BridgeTimeout bounds one bridge invocation.
	BridgeTimeout time.Duration
}

// ErrUnsupported is returned on unsupported platforms.
var ErrUnsupported = fmt.Errorf("desktop-tree has no native backend on %s/%s; supported: windows (or use --scene)", runtime.GOOS, runtime.GOARCH)

// NewProviderFunc is set by platform-specific packages via init().
// See internal/platform/windows/init.go for the Windows registration.
var NewProviderFunc func(opts Options) (*Provider, error)

// NewProvider returns a Provider for the current OS.
func NewProvider(opts Options) (*Provider, error) {
	if NewProviderFunc == nil {
		return nil, ErrUnsupported
	}
	return NewProviderFunc(opts)
}
