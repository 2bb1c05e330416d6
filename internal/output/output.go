package output

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/mj1618/desktop-tree/internal/model"
)

// Format represents the output format.
type Format string

const (
	FormatYAML  Format = "yaml"
	FormatJSON  Format = "json"
	FormatAgent Format = "agent"
)

// OutputFormat is the current output format, set by the root command's --format flag.
var OutputFormat Format = FormatYAML

// PrettyOutput enables pretty-printing for JSON output.
var PrettyOutput bool

// Stdout is where Print writes.
var Stdout io.Writer = os.Stdout

// ParseFormat validates a --format value.
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case FormatYAML, FormatJSON, FormatAgent:
		return Format(s), nil
	default:
		return "", fmt.Errorf("unsupported format: %s (use yaml, json, or agent)", s)
	}
}

// IsOutputPiped reports whether stdout is not a terminal.
func IsOutputPiped() bool {
	info, err := os.Stdout.Stat()
	if err != nil {
		return false
	}
	return info.Mode()&os.ModeCharDevice == 0
}

// SnapshotResult is the top-level output of the `snapshot` command.
type SnapshotResult struct {
	ID              string   `yaml:"id"                 json:"id"`
	TS              int64    `yaml:"ts"                 json:"ts"`
	Apps            []string `yaml:"apps"               json:"apps"`
	Failures        int      `yaml:"failures,omitempty" json:"failures,omitempty"`
	model.TreeState `yaml:",inline"`
}

// NewSnapshotResult stamps state with a fresh snapshot id and the current time.
func NewSnapshotResult(state model.TreeState, apps []string, failures int) SnapshotResult {
	return SnapshotResult{
		ID:        uuid.NewString(),
		TS:        time.Now().Unix(),
		Apps:      apps,
		Failures:  failures,
		TreeState: state,
	}
}

// FlatSnapshotResult is SnapshotResult with the three lists merged into one.
type FlatSnapshotResult struct {
	ID    string           `yaml:"id"    json:"id"`
	TS    int64            `yaml:"ts"    json:"ts"`
	Apps  []string         `yaml:"apps"  json:"apps"`
	Nodes []model.FlatNode `yaml:"nodes" json:"nodes"`
}

// Flat converts r to its flat form.
func (r SnapshotResult) Flat() FlatSnapshotResult {
	return FlatSnapshotResult{ID: r.ID, TS: r.TS, Apps: r.Apps, Nodes: model.FlattenState(r.TreeState)}
}

// WindowsResult is the top-level output of the `windows` command.
type WindowsResult struct {
	TS      int64          `yaml:"ts"      json:"ts"`
	Windows []model.Window `yaml:"windows" json:"windows"`
}

// AnnotateResult is printed by `annotate` when the image is written to a file.
type AnnotateResult struct {
	ID     string `yaml:"id"     json:"id"`
	TS     int64  `yaml:"ts"     json:"ts"`
	Path   string `yaml:"path"   json:"path"`
	Width  int    `yaml:"width"  json:"width"`
	Height int    `yaml:"height" json:"height"`
	Nodes  int    `yaml:"nodes"  json:"nodes"`
}

// Print serializes v to Stdout in the current output format.
func Print(v interface{}) error {
	return Fprint(Stdout, OutputFormat, v)
}

// Fprint serializes v to w in format f.
func Fprint(w io.Writer, f Format, v interface{}) error {
	switch f {
	case FormatJSON:
		return WriteJSON(w, v, PrettyOutput)
	case FormatYAML:
		return WriteYAML(w, v)
	case FormatAgent:
		return WriteAgent(w, v)
	default:
		return fmt.Errorf("unsupported output format: %s", f)
	}
}
