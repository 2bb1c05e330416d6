package model

import (
	"encoding/json"
	"testing"

	"gopkg.in/yaml.v3"
)

func TestNormalizeName(t *testing.T) {
	if got := NormalizeName(""); got != EmptyName {
		t.Errorf("NormalizeName(\"\") = %q, want %q", got, EmptyName)
	}
	if got := NormalizeName("OK"); got != "OK" {
		t.Errorf("NormalizeName(\"OK\") = %q, want %q", got, "OK")
	}
}

func TestInteractiveNode_JSONKeys(t *testing.T) {
	n := InteractiveNode{
		Name:        "OK",
		ControlType: "Button",
		Shortcut:    EmptyName,
		BoundingBox: BoundingBox{Left: 10, Top: 20, Right: 110, Bottom: 50},
		Center:      Center{X: 60, Y: 35},
		AppName:     "Notepad",
	}
	data, err := json.Marshal(n)
	if err != nil {
		t.Fatal(err)
	}
	var m map[string]interface{}
	if err := json.Unmarshal(data, &m); err != nil {
		t.Fatal(err)
	}
	for _, key := range []string{"name", "control_type", "shortcut", "bounding_box", "center", "app_name"} {
		if _, ok := m[key]; !ok {
			t.Errorf("expected key %q in JSON output", key)
		}
	}
}

func TestTreeState_EmptyListsStillEmitted(t *testing.T) {
	data, err := yaml.Marshal(TreeState{})
	if err != nil {
		t.Fatal(err)
	}
	var m map[string]interface{}
	if err := yaml.Unmarshal(data, &m); err != nil {
		t.Fatal(err)
	}
	for _, key := range []string{"interactive", "informative", "scrollable"} {
		if _, ok := m[key]; !ok {
			t.Errorf("expected key %q in YAML output", key)
		}
	}
}

func TestTreeState_Merge(t *testing.T) {
	a := TreeState{
		Interactive: []InteractiveNode{{Name: "A"}},
		Informative: []InformativeNode{{Name: "a"}},
	}
	b := TreeState{
		Interactive: []InteractiveNode{{Name: "B"}},
		Scrollable:  []ScrollableNode{{Name: "list"}},
	}
	merged := a.Merge(b)
	if merged.Len() != 4 {
		t.Fatalf("expected 4 nodes, got %d", merged.Len())
	}
	if merged.Interactive[0].Name != "A" || merged.Interactive[1].Name != "B" {
		t.Errorf("unexpected interactive order: %v", merged.Interactive)
	}
	if len(a.Interactive) != 1 {
		t.Error("Merge must not modify the receiver")
	}
}
