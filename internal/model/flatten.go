package model

import (
	"fmt"
	"strings"
)

// FlatNode is one row of the compact agent listing of a TreeState.
// Interactive rows carry the same Label the annotator draws on the screenshot;
// other rows leave it nil.
type FlatNode struct {
	Label       *int   `yaml:"label,omitempty"        json:"label,omitempty"`
	Role        string `yaml:"role"                   json:"role"`
	App         string `yaml:"app"                    json:"app"`
	ControlType string `yaml:"control_type,omitempty" json:"control_type,omitempty"`
	Name        string `yaml:"name"                   json:"name"`
	Shortcut    string `yaml:"shortcut,omitempty"     json:"shortcut,omitempty"`
	Center      string `yaml:"center,omitempty"       json:"center,omitempty"`
	Scroll      string `yaml:"scroll,omitempty"       json:"scroll,omitempty"`
}

// FlattenState converts a TreeState into a single list: interactive nodes
// first (labelled by their index), then informative, then scrollable.
func FlattenState(state TreeState) []FlatNode {
	result := make([]FlatNode, 0, state.Len())
	for i, n := range state.Interactive {
		label := i
		result = append(result, FlatNode{
			Label:       &label,
			Role:        RoleInteractive.String(),
			App:         n.AppName,
			ControlType: n.ControlType,
			Name:        n.Name,
			Shortcut:    n.Shortcut,
			Center:      n.Center.String(),
		})
	}
	for _, n := range state.Informative {
		result = append(result, FlatNode{
			Role: RoleInformative.String(),
			App:  n.AppName,
			Name: n.Name,
		})
	}
	for _, n := range state.Scrollable {
		result = append(result, FlatNode{
			Role:   RoleScrollable.String(),
			App:    n.AppName,
			Name:   n.Name,
			Center: n.Center.String(),
			Scroll: scrollAxes(n),
		})
	}
	return result
}

func scrollAxes(n ScrollableNode) string {
	var axes []string
	if n.HorizontalScrollable {
		axes = append(axes, "horizontal")
	}
	if n.VerticalScrollable {
		axes = append(axes, "vertical")
	}
	return strings.Join(axes, ",")
}

// InteractiveLines renders interactive nodes one per line in the form
// "label - app - control type - name - shortcut - center".
func InteractiveLines(nodes []InteractiveNode) []string {
	lines := make([]string, 0, len(nodes))
	for i, n := range nodes {
		lines = append(lines, fmt.Sprintf("%d - %s - %s - %s - %s - %s",
			i, n.AppName, n.ControlType, n.Name, n.Shortcut, n.Center))
	}
	return lines
}

// InformativeLines renders informative nodes one per line as "app - name".
func InformativeLines(nodes []InformativeNode) []string {
	lines := make([]string, 0, len(nodes))
	for _, n := range nodes {
		lines = append(lines, fmt.Sprintf("%s - %s", n.AppName, n.Name))
	}
	return lines
}

// ScrollableLines renders scrollable nodes one per line as
// "app - name - center - axes".
func ScrollableLines(nodes []ScrollableNode) []string {
	lines := make([]string, 0, len(nodes))
	for _, n := range nodes {
		lines = append(lines, fmt.Sprintf("%s - %s - %s - %s", n.AppName, n.Name, n.Center, scrollAxes(n)))
	}
	return lines
}
