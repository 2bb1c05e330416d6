package model

import "strings"

// FilterByApp keeps only the nodes that belong to one of the given
// applications (case-insensitive). An empty list returns state unchanged.
func FilterByApp(state TreeState, apps []string) TreeState {
	if len(apps) == 0 {
		return state
	}
	appSet := make(map[string]bool, len(apps))
	for _, a := range apps {
		appSet[strings.ToLower(a)] = true
	}
	match := func(app string) bool { return appSet[strings.ToLower(app)] }

	var result TreeState
	for _, n := range state.Interactive {
		if match(n.AppName) {
			result.Interactive = append(result.Interactive, n)
		}
	}
	for _, n := range state.Informative {
		if match(n.AppName) {
			result.Informative = append(result.Informative, n)
		}
	}
	for _, n := range state.Scrollable {
		if match(n.AppName) {
			result.Scrollable = append(result.Scrollable, n)
		}
	}
	return result
}

// FilterByText keeps only nodes whose name contains text (case-insensitive).
func FilterByText(state TreeState, text string) TreeState {
	if text == "" {
		return state
	}
	textLower := strings.ToLower(text)
	match := func(name string) bool { return strings.Contains(strings.ToLower(name), textLower) }

	var result TreeState
	for _, n := range state.Interactive {
		if match(n.Name) {
			result.Interactive = append(result.Interactive, n)
		}
	}
	for _, n := range state.Informative {
		if match(n.Name) {
			result.Informative = append(result.Informative, n)
		}
	}
	for _, n := range state.Scrollable {
		if match(n.Name) {
			result.Scrollable = append(result.Scrollable, n)
		}
	}
	return result
}

// FilterInteractiveByRegion keeps interactive nodes whose bounding box
// overlaps region. A nil region returns nodes unchanged.
func FilterInteractiveByRegion(nodes []InteractiveNode, region *BoundingBox) []InteractiveNode {
	if region == nil {
		return nodes
	}
	var result []InteractiveNode
	for _, n := range nodes {
		if n.BoundingBox.Intersects(*region) {
			result = append(result, n)
		}
	}
	return result
}

// LimitInteractive returns at most max nodes. max <= 0 means unlimited.
func LimitInteractive(nodes []InteractiveNode, max int) []InteractiveNode {
	if max <= 0 || len(nodes) <= max {
		return nodes
	}
	return nodes[:max]
}
