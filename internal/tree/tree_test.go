package tree

import (
	"image"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mj1618/desktop-tree/internal/model"
	"github.com/mj1618/desktop-tree/internal/platform"
	"github.com/mj1618/desktop-tree/internal/platform/scene"
)

func notepad() *scene.Node {
	return window("Untitled - Notepad",
		&scene.Node{Name: "File", ControlType: "MenuItemControl", LocalizedControlType: "menu item", Rect: []int{110, 130, 150, 150}, AcceleratorKey: "Alt+F"},
		&scene.Node{
			Name: "Text Editor", ControlType: "DocumentControl", LocalizedControlType: "document",
			Rect: []int{110, 160, 890, 690}, Scroll: &scene.Scroll{Vertical: true},
			Children: []*scene.Node{
				text("Ln 1, Col 1", 700, 670, 800, 690),
				&scene.Node{Name: "Scroll", ControlType: "PaneControl", LocalizedControlType: "pane", Rect: []int{870, 160, 890, 690}, Scroll: &scene.Scroll{Vertical: true}},
			},
		},
	)
}

var sortState = []cmp.Option{
	cmpopts.SortSlices(func(a, b model.InteractiveNode) bool { return a.AppName+a.Name < b.AppName+b.Name }),
	cmpopts.SortSlices(func(a, b model.InformativeNode) bool { return a.AppName+a.Name < b.AppName+b.Name }),
	cmpopts.SortSlices(func(a, b model.ScrollableNode) bool { return a.AppName+a.Name < b.AppName+b.Name }),
	cmpopts.EquateEmpty(),
}

func TestSnapshot(t *testing.T) {
	tr := newTree(t, newDesktop(notepad(), window("Calculator", button("Equals", 1150, 540, 1240, 590))), 4)

	state, err := tr.Snapshot()
	require.NoError(t, err)

	want := model.TreeState{
		Interactive: []model.InteractiveNode{
			{Name: "Start", ControlType: "Button", Shortcut: model.EmptyName, BoundingBox: model.BoundingBox{Left: 0, Top: 760, Right: 48, Bottom: 800}, Center: model.Center{X: 24, Y: 780}, AppName: TaskbarWindow},
			{Name: "Recycle Bin", ControlType: "List Item", Shortcut: model.EmptyName, BoundingBox: model.BoundingBox{Left: 10, Top: 10, Right: 80, Bottom: 80}, Center: model.Center{X: 45, Y: 45}, AppName: DesktopApp},
			{Name: "File", ControlType: "Menu Item", Shortcut: "Alt+F", BoundingBox: model.BoundingBox{Left: 110, Top: 130, Right: 150, Bottom: 150}, Center: model.Center{X: 130, Y: 140}, AppName: "Untitled - Notepad"},
			{Name: "Text Editor", ControlType: "Document", Shortcut: model.EmptyName, BoundingBox: model.BoundingBox{Left: 110, Top: 160, Right: 890, Bottom: 690}, Center: model.Center{X: 500, Y: 425}, AppName: "Untitled - Notepad"},
		},
		Informative: []model.InformativeNode{
			{Name: "Ln 1, Col 1", AppName: "Untitled - Notepad"},
		},
		Scrollable: []model.ScrollableNode{
			{Name: "Scroll", AppName: "Untitled - Notepad", Center: model.Center{X: 880, Y: 425}, VerticalScrollable: true},
		},
	}
	if diff := cmp.Diff(want, state, sortState...); diff != "" {
		t.Errorf("snapshot mismatch (-want +got):\n%s", diff)
	}
}

func TestSnapshot_PoolSizeDoesNotChangeMembership(t *testing.T) {
	desktop := newDesktop(notepad(), window("Calculator"))

	base, err := newTree(t, desktop, 1).Snapshot()
	require.NoError(t, err)
	for _, workers := range []int{2, 3, 16} {
		got, err := newTree(t, desktop, workers).Snapshot()
		require.NoError(t, err)
		if diff := cmp.Diff(base, got, sortState...); diff != "" {
			t.Errorf("workers=%d: membership differs (-1 worker +%d workers):\n%s", workers, workers, diff)
		}
	}
}

func TestSnapshot_AvoidedAppNeverContributes(t *testing.T) {
	toolbar := window("Recording toolbar", button("Stop recording", 0, 0, 40, 40))
	tr := newTree(t, newDesktop(toolbar, notepad()), 2)

	report, err := tr.SnapshotWithReport()
	require.NoError(t, err)
	assert.NotContains(t, report.Apps, "Recording toolbar")
	for _, n := range report.State.Interactive {
		assert.NotEqual(t, "Recording toolbar", n.AppName)
	}
	assert.Contains(t, report.Apps, "Untitled - Notepad")
}

func TestSnapshot_DisabledThenEnabled(t *testing.T) {
	save := button("Save", 800, 670, 880, 690)
	save.Disabled = true
	tr := newTree(t, newDesktop(window("Editor", save)), 2)

	state, err := tr.Snapshot()
	require.NoError(t, err)
	assert.NotContains(t, interactiveNames(state.Interactive), "Save")

	save.Disabled = false
	state, err = tr.Snapshot()
	require.NoError(t, err)
	assert.Contains(t, interactiveNames(state.Interactive), "Save")
}

func TestSnapshot_PanickingAppIsOmitted(t *testing.T) {
	desktop := staticDesktop{windows: []platform.Element{
		taskbar(button("Start", 0, 760, 48, 800)).Element(),
		panickingElement{window("Crashy", button("Boom", 0, 0, 10, 10)).Element()},
		shell(button("Icon", 10, 10, 80, 80)).Element(),
	}}
	tr := newTree(t, desktop, 2)

	report, err := tr.SnapshotWithReport()
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{TaskbarWindow, DesktopApp}, report.Apps)
	assert.ElementsMatch(t, []string{"Start", "Icon"}, interactiveNames(report.State.Interactive))
}

func TestSnapshot_MissingTaskbarFails(t *testing.T) {
	tr := newTree(t, scene.New(shell(), notepad()), 2)
	_, err := tr.Snapshot()
	assert.ErrorIs(t, err, ErrShellWindowMissing)
}

func TestSnapshot_ReportsFailures(t *testing.T) {
	broken := button("Broken", 0, 0, 10, 10).Fail(scene.FieldRect, "stale")
	tr := newTree(t, newDesktop(window("Editor", broken, button("Fine", 0, 0, 10, 10))), 2)

	report, err := tr.SnapshotWithReport()
	require.NoError(t, err)
	require.Len(t, report.Failures, 1)
	assert.Equal(t, "Editor", report.Failures[0].App)
	assert.Contains(t, interactiveNames(report.State.Interactive), "Fine")
	assert.Positive(t, report.Visited)
}

func TestSnapshot_SettleDelay(t *testing.T) {
	tr := newTree(t, newDesktop(), 1)
	tr.settle = 150 * time.Millisecond
	var slept []time.Duration
	tr.sleep = func(d time.Duration) { slept = append(slept, d) }

	_, err := tr.Snapshot()
	require.NoError(t, err)
	assert.Equal(t, []time.Duration{150 * time.Millisecond}, slept)
}

func TestWindows(t *testing.T) {
	tr := newTree(t, newDesktop(window("Editor"), window("Browser")), 1)
	windows, err := tr.Windows()
	require.NoError(t, err)
	require.Len(t, windows, 4)
	assert.Equal(t, model.Window{Name: "Editor", Visible: true, Selected: true, Reason: ReasonForeground}, windows[1])
	assert.Equal(t, model.Window{Name: "Browser", Visible: true, Reason: ReasonBackground}, windows[2])
}

func TestAnnotatedScreenshot(t *testing.T) {
	d, err := scene.Parse([]byte("screen: {width: 400, height: 200}\nwindows: []\n"), "")
	require.NoError(t, err)
	tr := newTree(t, d, 2)
	tr.capture = 250 * time.Millisecond
	var slept []time.Duration
	tr.sleep = func(d time.Duration) { slept = append(slept, d) }

	nodes := []model.InteractiveNode{{Name: "OK", BoundingBox: model.BoundingBox{Left: 100, Top: 100, Right: 200, Bottom: 140}}}
	img, err := tr.AnnotatedScreenshot(nodes, 0.5)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 240, 140), img.Bounds())
	assert.Equal(t, []time.Duration{250 * time.Millisecond}, slept)
}
