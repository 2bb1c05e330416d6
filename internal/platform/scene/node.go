package scene

import (
	"fmt"
	"sync/atomic"

	"github.com/mj1618/desktop-tree/internal/model"
	"github.com/mj1618/desktop-tree/internal/platform"
)

// Query field names accepted in Node.Errors.
const (
	FieldChildren             = "children"
	FieldName                 = "name"
	FieldControlType          = "control_type"
	FieldLocalizedControlType = "localized_control_type"
	FieldRect                 = "rect"
	FieldOffscreen            = "offscreen"
	FieldEnabled              = "enabled"
	FieldAcceleratorKey       = "accelerator_key"
	FieldDefaultAction        = "default_action"
	FieldScroll               = "scroll"
)

// Scroll is the scroll pattern of a node. A nil *Scroll means the pattern is
// not supported.
type Scroll struct {
	Horizontal bool `yaml:"horizontal" json:"horizontal"`
	Vertical   bool `yaml:"vertical"   json:"vertical"`
}

// Node is a recorded accessibility element. Every platform query is answered
// from its fields; a query whose field name appears in Errors fails with that
// message instead.
type Node struct {
	Name                 string            `yaml:"name,omitempty"                   json:"name,omitempty"`
	ControlType          string            `yaml:"control_type,omitempty"           json:"control_type,omitempty"`
	LocalizedControlType string            `yaml:"localized_control_type,omitempty" json:"localized_control_type,omitempty"`
	Rect                 []int             `yaml:"rect,omitempty"                   json:"rect,omitempty"` // left, top, right, bottom
	Offscreen            bool              `yaml:"offscreen,omitempty"              json:"offscreen,omitempty"`
	Disabled             bool              `yaml:"disabled,omitempty"               json:"disabled,omitempty"`
	AcceleratorKey       string            `yaml:"accelerator_key,omitempty"        json:"accelerator_key,omitempty"`
	DefaultAction        string            `yaml:"default_action,omitempty"         json:"default_action,omitempty"`
	Scroll               *Scroll           `yaml:"scroll,omitempty"                 json:"scroll,omitempty"`
	Errors               map[string]string `yaml:"errors,omitempty"                 json:"errors,omitempty"`
	Children             []*Node           `yaml:"children,omitempty"               json:"children,omitempty"`

	// Visible is only consulted for top-level windows. When unset the window
	// is visible if its rect is non-empty and it is not offscreen.
	Visible *bool `yaml:"visible,omitempty" json:"visible,omitempty"`

	queries atomic.Int64
}

// QueryError is returned by a query listed in Node.Errors.
type QueryError struct {
	Field   string
	Message string
}

func (e *QueryError) Error() string {
	return fmt.Sprintf("query %s: %s", e.Field, e.Message)
}

// QueryCount returns how many platform queries this node has answered.
func (n *Node) QueryCount() int64 {
	return n.queries.Load()
}

// Fail marks field as failing with msg and returns n for chaining.
func (n *Node) Fail(field, msg string) *Node {
	if n.Errors == nil {
		n.Errors = make(map[string]string)
	}
	n.Errors[field] = msg
	return n
}

// Box returns the node's rect as a BoundingBox. A missing rect is the zero box.
func (n *Node) Box() model.BoundingBox {
	if len(n.Rect) != 4 {
		return model.BoundingBox{}
	}
	return model.BoundingBox{Left: n.Rect[0], Top: n.Rect[1], Right: n.Rect[2], Bottom: n.Rect[3]}
}

// Element returns the platform view of n.
func (n *Node) Element() platform.Element {
	return element{n}
}

func (n *Node) query(field string) error {
	n.queries.Add(1)
	if msg, ok := n.Errors[field]; ok {
		return &QueryError{Field: field, Message: msg}
	}
	return nil
}

func (n *Node) validate(path string) error {
	if len(n.Rect) != 0 && len(n.Rect) != 4 {
		return fmt.Errorf("%s: rect must have 4 values, got %d", path, len(n.Rect))
	}
	for i, c := range n.Children {
		if c == nil {
			return fmt.Errorf("%s/%d: empty node", path, i)
		}
		if err := c.validate(fmt.Sprintf("%s/%d", path, i)); err != nil {
			return err
		}
	}
	return nil
}

// element adapts *Node to platform.Element.
type element struct {
	n *Node
}

var _ platform.Element = element{}

func (e element) Children() ([]platform.Element, error) {
	if err := e.n.query(FieldChildren); err != nil {
		return nil, err
	}
	children := make([]platform.Element, len(e.n.Children))
	for i, c := range e.n.Children {
		children[i] = element{c}
	}
	return children, nil
}

func (e element) Name() (string, error) {
	if err := e.n.query(FieldName); err != nil {
		return "", err
	}
	return e.n.Name, nil
}

func (e element) ControlType() (string, error) {
	if err := e.n.query(FieldControlType); err != nil {
		return "", err
	}
	return e.n.ControlType, nil
}

func (e element) LocalizedControlType() (string, error) {
	if err := e.n.query(FieldLocalizedControlType); err != nil {
		return "", err
	}
	return e.n.LocalizedControlType, nil
}

func (e element) BoundingRectangle() (model.BoundingBox, error) {
	if err := e.n.query(FieldRect); err != nil {
		return model.BoundingBox{}, err
	}
	return e.n.Box(), nil
}

func (e element) IsOffscreen() (bool, error) {
	if err := e.n.query(FieldOffscreen); err != nil {
		return false, err
	}
	return e.n.Offscreen, nil
}

func (e element) IsEnabled() (bool, error) {
	if err := e.n.query(FieldEnabled); err != nil {
		return false, err
	}
	return !e.n.Disabled, nil
}

func (e element) AcceleratorKey() (string, error) {
	if err := e.n.query(FieldAcceleratorKey); err != nil {
		return "", err
	}
	return e.n.AcceleratorKey, nil
}

func (e element) LegacyDefaultAction() (string, error) {
	if err := e.n.query(FieldDefaultAction); err != nil {
		return "", err
	}
	return e.n.DefaultAction, nil
}

func (e element) ScrollPattern() (platform.ScrollInfo, error) {
	if err := e.n.query(FieldScroll); err != nil {
		return platform.ScrollInfo{}, err
	}
	if e.n.Scroll == nil {
		return platform.ScrollInfo{}, platform.ErrPatternUnsupported
	}
	return platform.ScrollInfo{Horizontal: e.n.Scroll.Horizontal, Vertical: e.n.Scroll.Vertical}, nil
}

// nodeOf unwraps an element produced by this package.
func nodeOf(el platform.Element) (*Node, bool) {
	e, ok := el.(element)
	return e.n, ok
}
