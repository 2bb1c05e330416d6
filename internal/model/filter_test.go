package model

import "testing"

func TestFilterByApp_NoFilter(t *testing.T) {
	state := sampleState()
	result := FilterByApp(state, nil)
	if result.Len() != state.Len() {
		t.Errorf("expected %d nodes, got %d", state.Len(), result.Len())
	}
}

func TestFilterByApp_CaseInsensitive(t *testing.T) {
	result := FilterByApp(sampleState(), []string{"notepad"})
	if len(result.Interactive) != 1 || result.Interactive[0].Name != "OK" {
		t.Errorf("unexpected interactive nodes: %v", result.Interactive)
	}
	if len(result.Informative) != 1 {
		t.Errorf("expected 1 informative node, got %d", len(result.Informative))
	}
	if len(result.Scrollable) != 1 {
		t.Errorf("expected 1 scrollable node, got %d", len(result.Scrollable))
	}
}

func TestFilterByText(t *testing.T) {
	result := FilterByText(sampleState(), "start")
	if len(result.Interactive) != 1 || result.Interactive[0].Name != "Start" {
		t.Errorf("unexpected interactive nodes: %v", result.Interactive)
	}
	if len(result.Informative) != 0 || len(result.Scrollable) != 0 {
		t.Error("expected no informative or scrollable matches")
	}
}

func TestFilterByText_Empty(t *testing.T) {
	state := sampleState()
	if got := FilterByText(state, ""); got.Len() != state.Len() {
		t.Errorf("expected unchanged state, got %d nodes", got.Len())
	}
}

func TestFilterInteractiveByRegion(t *testing.T) {
	nodes := []InteractiveNode{
		{Name: "inside", BoundingBox: BoundingBox{10, 10, 60, 40}},
		{Name: "outside", BoundingBox: BoundingBox{200, 200, 250, 230}},
		{Name: "overlaps", BoundingBox: BoundingBox{90, 90, 140, 120}},
	}
	region := BoundingBox{0, 0, 100, 100}
	result := FilterInteractiveByRegion(nodes, &region)
	if len(result) != 2 {
		t.Errorf("expected 2 nodes (inside + overlapping), got %d", len(result))
	}
	if got := FilterInteractiveByRegion(nodes, nil); len(got) != 3 {
		t.Errorf("nil region: expected 3 nodes, got %d", len(got))
	}
}

func TestLimitInteractive(t *testing.T) {
	nodes := sampleState().Interactive
	if got := LimitInteractive(nodes, 1); len(got) != 1 {
		t.Errorf("expected 1 node, got %d", len(got))
	}
	if got := LimitInteractive(nodes, 0); len(got) != 2 {
		t.Errorf("expected unlimited, got %d", len(got))
	}
}
