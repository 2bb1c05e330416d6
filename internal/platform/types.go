package platform

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/mj1618/desktop-tree/internal/model"
)

// ErrPatternUnsupported is wrapped by Element methods when the element does
// not implement the requested control pattern.
var ErrPatternUnsupported = errors.New("control pattern not supported")

// ScrollInfo is what an element's scroll pattern reports.
type ScrollInfo struct {
	Horizontal bool
	Vertical   bool
}

// Scrollable reports whether either axis can scroll.
func (s ScrollInfo) Scrollable() bool {
	return s.Horizontal || s.Vertical
}

// ParseRegion parses a "left,top,right,bottom" string into a BoundingBox.
func ParseRegion(s string) (*model.BoundingBox, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 4 {
		return nil, fmt.Errorf("invalid region %q: expected left,top,right,bottom", s)
	}
	vals := make([]int, 4)
	for i, p := range parts {
		v, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return nil, fmt.Errorf("invalid region %q: %w", s, err)
		}
		vals[i] = v
	}
	box := &model.BoundingBox{Left: vals[0], Top: vals[1], Right: vals[2], Bottom: vals[3]}
	if box.IsEmpty() {
		return nil, fmt.Errorf("invalid region %q: right/bottom must exceed left/top", s)
	}
	return box, nil
}
