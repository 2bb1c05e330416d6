// Package tree walks the accessibility tree of the selected desktop windows
// and classifies every element as interactive, informative or scrollable.
package tree

import (
	"fmt"
	"image"
	"time"

	"go.uber.org/zap"

	"github.com/mj1618/desktop-tree/internal/annotate"
	"github.com/mj1618/desktop-tree/internal/model"
	"github.com/mj1618/desktop-tree/internal/platform"
	"github.com/mj1618/desktop-tree/internal/pool"
)

// Default settling delays.
const (
	DefaultSettleDelay  = 150 * time.Millisecond
	DefaultCaptureDelay = 250 * time.Millisecond
)

// Options configures a Tree.
type Options struct {
	Classifier  ClassifierOptions
	AvoidedApps []string

	// SettleDelay is slept before every snapshot so a preceding UI change
	// can finish rendering.
	SettleDelay time.Duration
	// CaptureDelay is slept after every screenshot capture.
	CaptureDelay time.Duration

	// Annotator renders AnnotatedScreenshot. Defaults to one drawing on the
	// Tree's pool with the default options.
	Annotator *annotate.Annotator
}

// DefaultOptions returns the built-in classification lists and delays.
func DefaultOptions() Options {
	return Options{
		Classifier:   DefaultClassifierOptions(),
		AvoidedApps:  model.DefaultAvoidedApps,
		SettleDelay:  DefaultSettleDelay,
		CaptureDelay: DefaultCaptureDelay,
	}
}

// Report is a snapshot together with how it was produced.
type Report struct {
	State    model.TreeState
	Apps     []string
	Windows  []model.Window
	Failures []Failure
	Visited  int
	Duration time.Duration
}

// Tree produces snapshots of one desktop. It is safe for concurrent use;
// every call works on its own result values.
type Tree struct {
	desktop    platform.Desktop
	pool       *pool.Pool
	classifier *Classifier
	avoided    map[string]bool
	settle     time.Duration
	capture    time.Duration
	annotator  *annotate.Annotator
	logger     *zap.Logger
	sleep      func(time.Duration)
}

// New returns a Tree that walks desktop on p's workers.
func New(desktop platform.Desktop, p *pool.Pool, opts Options, logger *zap.Logger) *Tree {
	if logger == nil {
		logger = zap.NewNop()
	}
	annotator := opts.Annotator
	if annotator == nil {
		annotator = annotate.New(p, annotate.WithLogger(logger))
	}
	return &Tree{
		desktop:    desktop,
		pool:       p,
		classifier: NewClassifier(opts.Classifier),
		avoided:    model.NewSet(opts.AvoidedApps),
		settle:     opts.SettleDelay,
		capture:    opts.CaptureDelay,
		annotator:  annotator,
		logger:     logger.With(zap.String("component", "tree")),
		sleep:      time.Sleep,
	}
}

// Snapshot returns a fresh inventory of the taskbar, the desktop shell and
// the foreground application.
func (t *Tree) Snapshot() (model.TreeState, error) {
	report, err := t.SnapshotWithReport()
	if err != nil {
		return model.TreeState{}, err
	}
	return report.State, nil
}

// SnapshotWithReport is Snapshot plus the window selection and every query
// failure absorbed along the way. Application walks run concurrently and are
// merged in the order they complete; a walk that fails is logged and left
// out.
func (t *Tree) SnapshotWithReport() (Report, error) {
	t.pause(t.settle)
	start := time.Now()

	sel, err := SelectApps(t.desktop, t.avoided)
	if err != nil {
		return Report{Windows: sel.Windows}, err
	}

	results := make([]WalkResult, len(sel.Apps))
	tasks := make([]func() error, len(sel.Apps))
	for i, app := range sel.Apps {
		tasks[i] = func() error {
			results[i] = Walk(t.classifier, app.Window, app.Name)
			return nil
		}
	}

	report := Report{Windows: sel.Windows}
	for o := range t.pool.Run(tasks...) {
		app := sel.Apps[o.Index].Name
		if o.Err != nil {
			t.logger.Error("failed to walk application", zap.String("app", app), zap.Error(o.Err))
			continue
		}
		r := results[o.Index]
		report.State = report.State.Merge(r.State)
		report.Apps = append(report.Apps, app)
		report.Failures = append(report.Failures, r.Failures...)
		report.Visited += r.Visited
		if len(r.Failures) > 0 {
			t.logger.Debug("absorbed query failures", zap.String("app", app), zap.Int("failures", len(r.Failures)))
		}
	}
	report.Duration = time.Since(start)

	t.logger.Info("snapshot complete",
		zap.Strings("apps", report.Apps),
		zap.Int("visited", report.Visited),
		zap.Int("interactive", len(report.State.Interactive)),
		zap.Int("informative", len(report.State.Informative)),
		zap.Int("scrollable", len(report.State.Scrollable)),
		zap.Int("failures", len(report.Failures)),
		zap.Duration("duration", report.Duration),
	)
	return report, nil
}

// Windows reports the partitioner's decision for every top-level window
// without walking any of them.
func (t *Tree) Windows() ([]model.Window, error) {
	sel, err := SelectApps(t.desktop, t.avoided)
	return sel.Windows, err
}

// AnnotatedScreenshot captures the screen at scale and outlines nodes on a
// padded copy, labelling node i with i.
func (t *Tree) AnnotatedScreenshot(nodes []model.InteractiveNode, scale float64) (image.Image, error) {
	shot, err := t.desktop.Screenshot(scale)
	if err != nil {
		return nil, fmt.Errorf("failed to capture screenshot: %w", err)
	}
	t.pause(t.capture)
	return t.annotator.Annotate(nodes, shot, scale), nil
}

func (t *Tree) pause(d time.Duration) {
	if d > 0 {
		t.sleep(d)
	}
}
