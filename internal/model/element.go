package model

// EmptyName is emitted in place of an empty display name so consumers can
// tell "no name" apart from an omitted field.
const EmptyName = "''"

// InteractiveNode is a clickable or otherwise actionable element.
type InteractiveNode struct {
	Name        string      `yaml:"name"         json:"name"`
	ControlType string      `yaml:"control_type" json:"control_type"`
	Shortcut    string      `yaml:"shortcut"     json:"shortcut"`
	BoundingBox BoundingBox `yaml:"bounding_box" json:"bounding_box"`
	Center      Center      `yaml:"center"       json:"center"`
	AppName     string      `yaml:"app_name"     json:"app_name"`
}

// InformativeNode is a readable element that cannot be acted on.
type InformativeNode struct {
	Name    string `yaml:"name"     json:"name"`
	AppName string `yaml:"app_name" json:"app_name"`
}

// ScrollableNode is a container that accepts scroll input.
type ScrollableNode struct {
	Name                 string `yaml:"name"                  json:"name"`
	AppName              string `yaml:"app_name"              json:"app_name"`
	Center               Center `yaml:"center"                json:"center"`
	HorizontalScrollable bool   `yaml:"horizontal_scrollable" json:"horizontal_scrollable"`
	VerticalScrollable   bool   `yaml:"vertical_scrollable"   json:"vertical_scrollable"`
}

// TreeState is one point-in-time inventory of the desktop. Across
// applications the order follows walk completion; within one application it
// follows pre-order traversal.
type TreeState struct {
	Interactive []InteractiveNode `yaml:"interactive" json:"interactive"`
	Informative []InformativeNode `yaml:"informative" json:"informative"`
	Scrollable  []ScrollableNode  `yaml:"scrollable"  json:"scrollable"`
}

// NormalizeName returns name, or EmptyName when name is empty.
func NormalizeName(name string) string {
	if name == "" {
		return EmptyName
	}
	return name
}

// Len returns the total number of nodes across all three lists.
func (s TreeState) Len() int {
	return len(s.Interactive) + len(s.Informative) + len(s.Scrollable)
}

// Merge appends other's lists onto a copy of s.
func (s TreeState) Merge(other TreeState) TreeState {
	return TreeState{
		Interactive: append(append([]InteractiveNode(nil), s.Interactive...), other.Interactive...),
		Informative: append(append([]InformativeNode(nil), s.Informative...), other.Informative...),
		Scrollable:  append(append([]ScrollableNode(nil), s.Scrollable...), other.Scrollable...),
	}
}
