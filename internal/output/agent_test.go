package output

import (
	"bytes"
	"strings"
	"testing"

	"github.com/mj1618/desktop-tree/internal/model"
)

func TestFormatAgentString(t *testing.T) {
	out := FormatAgentString(sampleResult().TreeState)

	for _, want := range []string{
		"0 - Notepad - Button - OK - '' - (60,35)",
		"Notepad - Ln 1, Col 1",
		"Notepad - Text Editor - (400,300) - vertical",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("expected line %q in:\n%s", want, out)
		}
	}
}

func TestFormatAgentString_Empty(t *testing.T) {
	out := FormatAgentString(model.TreeState{})
	if strings.Count(out, "(none)") != 3 {
		t.Errorf("expected three empty sections, got:\n%s", out)
	}
}

func TestWriteAgent_Windows(t *testing.T) {
	var buf bytes.Buffer
	err := WriteAgent(&buf, WindowsResult{Windows: []model.Window{
		{Name: "Taskbar", Visible: true, Selected: true, Reason: "taskbar"},
		{Name: "Calculator", Visible: true, Reason: "not foreground"},
	}})
	if err != nil {
		t.Fatal(err)
	}
	want := "* Taskbar (taskbar)\n  Calculator (not foreground)\n"
	if buf.String() != want {
		t.Errorf("got %q, want %q", buf.String(), want)
	}
}

func TestWriteAgent_FallsBackToYAML(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteAgent(&buf, AnnotateResult{Path: "out.png"}); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "path: out.png") {
		t.Errorf("expected YAML fallback, got %q", buf.String())
	}
}
