package tree

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/mj1618/desktop-tree/internal/model"
	"github.com/mj1618/desktop-tree/internal/platform"
)

// Failure records one platform query that failed during a walk.
type Failure struct {
	App string `yaml:"app,omitempty"  json:"app,omitempty"`
	// Path is the chain of child indexes from the application root, "" for
	// the root itself.
	Path  string `yaml:"path"  json:"path"`
	Query string `yaml:"query" json:"query"`
	Err   error  `yaml:"-"     json:"-"`
}

func (f Failure) Error() string {
	return fmt.Sprintf("%s [%s] %s: %v", f.App, f.Path, f.Query, f.Err)
}

// WalkResult is everything one application walk produced.
type WalkResult struct {
	App      string
	State    model.TreeState
	Visited  int
	Failures []Failure
}

// Walk classifies root and every descendant in pre-order, tagging nodes
// with appName. Children are visited whether or not their parent matched.
// A node whose children cannot be enumerated ends its own subtree only.
func Walk(c *Classifier, root platform.Element, appName string) WalkResult {
	w := &walker{c: c, result: WalkResult{App: appName}}
	w.visit(root, nil)
	return w.result
}

type walker struct {
	c      *Classifier
	result WalkResult
}

func (w *walker) visit(el platform.Element, path []int) {
	w.result.Visited++

	cl := w.c.Classify(el, w.result.App)
	for _, f := range cl.Failures {
		w.record(path, f.Query, f.Err)
	}
	switch cl.Role {
	case model.RoleInteractive:
		w.result.State.Interactive = append(w.result.State.Interactive, cl.Interactive)
	case model.RoleInformative:
		w.result.State.Informative = append(w.result.State.Informative, cl.Informative)
	case model.RoleScrollable:
		w.result.State.Scrollable = append(w.result.State.Scrollable, cl.Scrollable)
	}

	children, err := el.Children()
	if err != nil {
		w.record(path, QueryChildren, err)
		return
	}
	for i, child := range children {
		w.visit(child, append(path, i))
	}
}

func (w *walker) record(path []int, query string, err error) {
	w.result.Failures = append(w.result.Failures, Failure{
		App:   w.result.App,
		Path:  formatPath(path),
		Query: query,
		Err:   err,
	})
}

func formatPath(path []int) string {
	parts := make([]string, len(path))
	for i, p := range path {
		parts[i] = strconv.Itoa(p)
	}
	return strings.Join(parts, "/")
}
