//go:build windows

package windows

import "github.com/mj1618/desktop-tree/internal/platform"

func init() {
	platform.NewProviderFunc = func(opts platform.Options) (*platform.Provider, error) {
		bridge := NewBridge(opts.Python, opts.BridgeTimeout)
		return &platform.Provider{Desktop: NewDesktop(bridge)}, nil
	}
}
