package tree

import (
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mj1618/desktop-tree/internal/model"
	"github.com/mj1618/desktop-tree/internal/platform/scene"
)

func interactiveNames(nodes []model.InteractiveNode) []string {
	names := make([]string, len(nodes))
	for i, n := range nodes {
		names[i] = n.Name
	}
	return names
}

func TestWalk_PreOrder(t *testing.T) {
	root := window("App",
		button("A", 0, 0, 10, 10),
		pane("group", []int{0, 0, 100, 100},
			button("B", 0, 0, 10, 10),
			button("C", 0, 0, 10, 10),
		),
		button("D", 0, 0, 10, 10),
	)

	got := Walk(NewClassifier(DefaultClassifierOptions()), root.Element(), "App")
	if diff := cmp.Diff([]string{"A", "B", "C", "D"}, interactiveNames(got.State.Interactive)); diff != "" {
		t.Errorf("interactive order mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, 6, got.Visited)
	assert.Empty(t, got.Failures)
}

func TestWalk_MatchedNodesDoNotPrune(t *testing.T) {
	outer := button("outer", 0, 0, 100, 100)
	outer.Children = []*scene.Node{button("inner", 10, 10, 20, 20), text("caption", 10, 30, 90, 40)}

	got := Walk(NewClassifier(DefaultClassifierOptions()), window("App", outer).Element(), "App")
	assert.Equal(t, []string{"outer", "inner"}, interactiveNames(got.State.Interactive))
	require.Len(t, got.State.Informative, 1)
	assert.Equal(t, "caption", got.State.Informative[0].Name)
}

func TestWalk_TagsAppName(t *testing.T) {
	got := Walk(NewClassifier(DefaultClassifierOptions()), window("Notepad", button("OK", 0, 0, 5, 5), text("Hi", 0, 0, 5, 5)).Element(), "Notepad")
	for _, n := range got.State.Interactive {
		assert.Equal(t, "Notepad", n.AppName)
	}
	for _, n := range got.State.Informative {
		assert.Equal(t, "Notepad", n.AppName)
	}
}

func TestWalk_ChildrenFailureSkipsSubtreeOnly(t *testing.T) {
	broken := pane("broken", []int{0, 0, 10, 10}, button("lost", 0, 0, 10, 10)).Fail(scene.FieldChildren, "element not available")
	root := window("App",
		button("before", 0, 0, 10, 10),
		broken,
		button("after", 0, 0, 10, 10),
	)

	got := Walk(NewClassifier(DefaultClassifierOptions()), root.Element(), "App")
	assert.Equal(t, []string{"before", "after"}, interactiveNames(got.State.Interactive))
	require.Len(t, got.Failures, 1)
	assert.Equal(t, Failure{App: "App", Path: "1", Query: QueryChildren, Err: got.Failures[0].Err}, got.Failures[0])
	assert.ErrorContains(t, got.Failures[0], "element not available")
}

func TestWalk_SingleNodeFailureInLargeSubtree(t *testing.T) {
	children := make([]*scene.Node, 500)
	for i := range children {
		children[i] = button(fmt.Sprintf("b%d", i), i, 0, i+10, 10)
	}
	children[250].Fail(scene.FieldRect, "stale reference")

	got := Walk(NewClassifier(DefaultClassifierOptions()), window("App", children...).Element(), "App")
	assert.Len(t, got.State.Interactive, 499)
	assert.NotContains(t, interactiveNames(got.State.Interactive), "b250")
	require.Len(t, got.Failures, 1)
	assert.Equal(t, "250", got.Failures[0].Path)
	assert.Equal(t, QueryBoundingRectangle, got.Failures[0].Query)
}

func TestWalk_MutualExclusivity(t *testing.T) {
	var children []*scene.Node
	for _, ct := range []string{"ButtonControl", "TextControl", "ImageControl", "GroupControl", "PaneControl", "ListControl"} {
		children = append(children, &scene.Node{
			Name:          ct,
			ControlType:   ct,
			Rect:          []int{0, 0, 20, 20},
			DefaultAction: "Click",
			Scroll:        &scene.Scroll{Vertical: true},
		})
	}

	got := Walk(NewClassifier(DefaultClassifierOptions()), window("App", children...).Element(), "App")
	seen := map[string]int{}
	for _, n := range got.State.Interactive {
		seen[n.Name]++
	}
	for _, n := range got.State.Informative {
		seen[n.Name]++
	}
	for _, n := range got.State.Scrollable {
		seen[n.Name]++
	}
	for name, count := range seen {
		assert.Equal(t, 1, count, "%s appears in %d lists", name, count)
	}
	assert.Len(t, seen, 6)
}
