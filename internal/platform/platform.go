package platform

import (
	"image"

	"github.com/mj1618/desktop-tree/internal/model"
)

// Element is one node of the OS accessibility tree. Every query is a
// synchronous, possibly blocking call into the platform and may fail
// independently of the others.
type Element interface {
	// Children enumerates direct children in platform order.
	Children() ([]Element, error)

	Name() (string, error)

	// ControlType returns the control type identifier, e.g. "ButtonControl".
	ControlType() (string, error)

	// LocalizedControlType returns the human-readable type, e.g. "button".
	LocalizedControlType() (string, error)

	BoundingRectangle() (model.BoundingBox, error)
	IsOffscreen() (bool, error)
	IsEnabled() (bool, error)
	AcceleratorKey() (string, error)

	// LegacyDefaultAction acquires the legacy accessibility pattern and
	// returns its default action verb.
	LegacyDefaultAction() (string, error)

	// ScrollPattern acquires the scroll pattern.
	ScrollPattern() (ScrollInfo, error)
}

// Desktop enumerates top-level windows and captures the screen.
type Desktop interface {
	// TopLevelWindows returns the children of the desktop root in platform
	// enumeration order.
	TopLevelWindows() ([]Element, error)

	// IsAppVisible reports whether a top-level window is currently shown
	// (not minimized, on screen, non-trivial area).
	IsAppVisible(window Element) bool

	// Screenshot captures the full screen scaled by scale.
	Screenshot(scale float64) (image.Image, error)
}
