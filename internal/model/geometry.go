package model

import "fmt"

// BoundingBox is an axis-aligned screen rectangle in full-resolution screen coordinates.
type BoundingBox struct {
	Left   int `yaml:"left"   json:"left"`
	Top    int `yaml:"top"    json:"top"`
	Right  int `yaml:"right"  json:"right"`
	Bottom int `yaml:"bottom" json:"bottom"`
}

// Center is the midpoint of a BoundingBox.
type Center struct {
	X int `yaml:"x" json:"x"`
	Y int `yaml:"y" json:"y"`
}

// Width returns right - left. It may be zero or negative for a degenerate box.
func (b BoundingBox) Width() int {
	return b.Right - b.Left
}

// Height returns bottom - top. It may be zero or negative for a degenerate box.
func (b BoundingBox) Height() int {
	return b.Bottom - b.Top
}

// IsEmpty reports whether the box has no positive area.
func (b BoundingBox) IsEmpty() bool {
	return b.Width() <= 0 || b.Height() <= 0
}

// Area returns width*height, or 0 for an empty box.
func (b BoundingBox) Area() int {
	if b.IsEmpty() {
		return 0
	}
	return b.Width() * b.Height()
}

// Center returns the integer midpoint of the box.
func (b BoundingBox) Center() Center {
	return Center{
		X: b.Left + b.Width()/2,
		Y: b.Top + b.Height()/2,
	}
}

// Scale multiplies every edge by factor, truncating toward zero, then shifts
// the result by offset on both axes.
func (b BoundingBox) Scale(factor float64, offset int) BoundingBox {
	return BoundingBox{
		Left:   int(float64(b.Left)*factor) + offset,
		Top:    int(float64(b.Top)*factor) + offset,
		Right:  int(float64(b.Right)*factor) + offset,
		Bottom: int(float64(b.Bottom)*factor) + offset,
	}
}

// Intersects reports whether two boxes overlap with positive area.
func (b BoundingBox) Intersects(o BoundingBox) bool {
	return b.Left < o.Right && b.Right > o.Left && b.Top < o.Bottom && b.Bottom > o.Top
}

func (b BoundingBox) String() string {
	return fmt.Sprintf("(%d,%d,%d,%d)", b.Left, b.Top, b.Right, b.Bottom)
}

func (c Center) String() string {
	return fmt.Sprintf("(%d,%d)", c.X, c.Y)
}
