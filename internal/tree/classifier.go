package tree

import (
	"errors"
	"strings"

	"github.com/mj1618/desktop-tree/internal/model"
	"github.com/mj1618/desktop-tree/internal/platform"
)

// Check is the outcome of one classification predicate. Err is set when the
// platform query behind the predicate failed; Value is then meaningless.
type Check struct {
	Value bool
	Err   error
}

// True reports whether the predicate was answered and holds.
func (c Check) True() bool { return c.Err == nil && c.Value }

// False reports whether the predicate was answered and does not hold.
func (c Check) False() bool { return c.Err == nil && !c.Value }

// Failed reports whether the query behind the predicate failed.
func (c Check) Failed() bool { return c.Err != nil }

// Query names recorded on failures.
const (
	QueryChildren             = "children"
	QueryName                 = "name"
	QueryControlType          = "control_type"
	QueryLocalizedControlType = "localized_control_type"
	QueryBoundingRectangle    = "bounding_rectangle"
	QueryOffscreen            = "offscreen"
	QueryEnabled              = "enabled"
	QueryAcceleratorKey       = "accelerator_key"
	QueryDefaultAction        = "default_action"
	QueryScrollPattern        = "scroll_pattern"
)

// ClassifierOptions is the configuration surface of a Classifier.
type ClassifierOptions struct {
	InteractiveControlTypes []string
	InformativeControlTypes []string
	DefaultActions          []string

	// VisibilityThreshold is the area a box must exceed to count as visible.
	VisibilityThreshold int
}

// DefaultClassifierOptions returns the built-in control type and action lists.
func DefaultClassifierOptions() ClassifierOptions {
	return ClassifierOptions{
		InteractiveControlTypes: model.DefaultInteractiveControlTypes,
		InformativeControlTypes: model.DefaultInformativeControlTypes,
		DefaultActions:          model.DefaultActions,
	}
}

// Classifier decides which role, if any, an element plays. It holds only
// read-only lookup sets and is safe for concurrent use.
type Classifier struct {
	interactive map[string]bool
	informative map[string]bool
	actions     map[string]bool
	threshold   int
}

// NewClassifier builds a Classifier from opts.
func NewClassifier(opts ClassifierOptions) *Classifier {
	return &Classifier{
		interactive: model.NewSet(opts.InteractiveControlTypes),
		informative: model.NewSet(opts.InformativeControlTypes),
		actions:     model.NewSet(opts.DefaultActions),
		threshold:   opts.VisibilityThreshold,
	}
}

// IsVisible reports whether el has a non-empty box whose area exceeds the
// threshold and the platform does not report it off-screen.
func (c *Classifier) IsVisible(el platform.Element) Check {
	check, _, _ := c.visibility(el)
	return check
}

func (c *Classifier) visibility(el platform.Element) (Check, model.BoundingBox, string) {
	box, err := el.BoundingRectangle()
	if err != nil {
		return Check{Err: err}, box, QueryBoundingRectangle
	}
	if box.IsEmpty() || box.Area() <= c.threshold {
		return Check{}, box, ""
	}
	offscreen, err := el.IsOffscreen()
	if err != nil {
		return Check{Err: err}, box, QueryOffscreen
	}
	return Check{Value: !offscreen}, box, ""
}

// IsEnabled reports the platform enabled flag. A failed query is never
// treated as enabled.
func (c *Classifier) IsEnabled(el platform.Element) Check {
	enabled, err := el.IsEnabled()
	if err != nil {
		return Check{Err: err}
	}
	return Check{Value: enabled}
}

// IsImageOnly reports whether el is an image without a name or with the
// generic "graphic" type, i.e. decoration. controlType is el's control type.
func (c *Classifier) IsImageOnly(el platform.Element, controlType string) Check {
	check, _ := c.imageOnly(el, controlType)
	return check
}

func (c *Classifier) imageOnly(el platform.Element, controlType string) (Check, string) {
	if controlType != model.ControlTypeImage {
		return Check{}, ""
	}
	name, err := el.Name()
	if err != nil {
		return Check{Err: err}, QueryName
	}
	if strings.TrimSpace(name) == "" {
		return Check{Value: true}, ""
	}
	localized, err := el.LocalizedControlType()
	if err != nil {
		return Check{Err: err}, QueryLocalizedControlType
	}
	return Check{Value: localized == model.GraphicLocalizedType}, ""
}

// HasDefaultAction reports whether el's legacy default action is one of the
// configured verbs.
func (c *Classifier) HasDefaultAction(el platform.Element) Check {
	action, err := el.LegacyDefaultAction()
	if err != nil {
		return Check{Err: err}
	}
	return Check{Value: c.actions[action]}
}

// IsScrollable reports whether el supports scrolling on either axis. An
// element without a scroll pattern is simply not scrollable.
func (c *Classifier) IsScrollable(el platform.Element) Check {
	check, _ := c.scrollable(el)
	return check
}

func (c *Classifier) scrollable(el platform.Element) (Check, platform.ScrollInfo) {
	info, err := el.ScrollPattern()
	if errors.Is(err, platform.ErrPatternUnsupported) {
		return Check{}, info
	}
	if err != nil {
		return Check{Err: err}, info
	}
	return Check{Value: info.Scrollable()}, info
}

// Classification is the role decided for one element and, for a node that
// got a role, its extracted attributes.
type Classification struct {
	Role        model.Role
	Interactive model.InteractiveNode
	Informative model.InformativeNode
	Scrollable  model.ScrollableNode

	// Failures lists every query that failed while classifying. A failed
	// predicate query never grants a role.
	Failures []Failure
}

// Classify applies the role decision to el: interactive, then informative,
// then scrollable. Every role requires a visible, enabled element. appName is copied onto the produced node. Attributes are
// only read once a role has been decided.
func (c *Classifier) Classify(el platform.Element, appName string) Classification {
	p := &lookup{c: c, el: el}

	controlType, err := el.ControlType()
	if err != nil {
		p.fail(QueryControlType, err)
	} else {
		if c.interactive[controlType] && p.visible().True() && p.enabled().True() && p.imageOnly(controlType).False() {
			return p.interactive(appName)
		}
		if controlType == model.ControlTypeGroup && p.visible().True() && p.enabled().True() && p.defaultAction().True() {
			return p.interactive(appName)
		}
		if c.informative[controlType] && p.visible().True() && p.enabled().True() && p.imageOnly(controlType).False() {
			return p.informative(appName)
		}
	}

	scroll, info := c.scrollable(el)
	if scroll.Failed() {
		p.fail(QueryScrollPattern, scroll.Err)
	}
	if scroll.True() && p.visible().True() && p.enabled().True() {
		return p.scrollable(appName, info)
	}
	return p.result(model.RoleNone)
}

// lookup memoizes the predicates of one element so shared conditions are only
// queried once per classification.
type lookup struct {
	c  *Classifier
	el platform.Element

	visibleCheck   *Check
	box            model.BoundingBox
	enabledCheck   *Check
	imageCheck     *Check
	actionCheck    *Check
	classification Classification
}

func (p *lookup) fail(query string, err error) {
	p.classification.Failures = append(p.classification.Failures, Failure{Query: query, Err: err})
}

func (p *lookup) visible() Check {
	if p.visibleCheck == nil {
		check, box, query := p.c.visibility(p.el)
		if check.Failed() {
			p.fail(query, check.Err)
		}
		p.visibleCheck, p.box = &check, box
	}
	return *p.visibleCheck
}

func (p *lookup) enabled() Check {
	if p.enabledCheck == nil {
		check := p.c.IsEnabled(p.el)
		if check.Failed() {
			p.fail(QueryEnabled, check.Err)
		}
		p.enabledCheck = &check
	}
	return *p.enabledCheck
}

func (p *lookup) imageOnly(controlType string) Check {
	if p.imageCheck == nil {
		check, query := p.c.imageOnly(p.el, controlType)
		if check.Failed() {
			p.fail(query, check.Err)
		}
		p.imageCheck = &check
	}
	return *p.imageCheck
}

func (p *lookup) defaultAction() Check {
	if p.actionCheck == nil {
		check := p.c.HasDefaultAction(p.el)
		if check.Failed() {
			p.fail(QueryDefaultAction, check.Err)
		}
		p.actionCheck = &check
	}
	return *p.actionCheck
}

func (p *lookup) result(role model.Role) Classification {
	p.classification.Role = role
	return p.classification
}

// name returns the trimmed display name, or "" when the query fails.
func (p *lookup) name() string {
	name, err := p.el.Name()
	if err != nil {
		p.fail(QueryName, err)
		return ""
	}
	return strings.TrimSpace(name)
}

func (p *lookup) localizedType() string {
	localized, err := p.el.LocalizedControlType()
	if err != nil {
		p.fail(QueryLocalizedControlType, err)
		return ""
	}
	return localized
}

func (p *lookup) interactive(appName string) Classification {
	shortcut, err := p.el.AcceleratorKey()
	if err != nil {
		p.fail(QueryAcceleratorKey, err)
	}
	controlType := model.TitleControlType(p.localizedType())
	p.classification.Interactive = model.InteractiveNode{
		Name:        model.NormalizeName(p.name()),
		ControlType: model.NormalizeName(controlType),
		Shortcut:    model.NormalizeName(shortcut),
		BoundingBox: p.box,
		Center:      p.box.Center(),
		AppName:     appName,
	}
	return p.result(model.RoleInteractive)
}

func (p *lookup) informative(appName string) Classification {
	p.classification.Informative = model.InformativeNode{
		Name:    model.NormalizeName(p.name()),
		AppName: appName,
	}
	return p.result(model.RoleInformative)
}

// scrollable expects visible() to have passed, which leaves p.box set.
func (p *lookup) scrollable(appName string, info platform.ScrollInfo) Classification {
	name := p.name()
	if name == "" {
		name = model.CapitalizeControlType(p.localizedType())
	}
	p.classification.Scrollable = model.ScrollableNode{
		Name:                 model.NormalizeName(name),
		AppName:              appName,
		Center:               p.box.Center(),
		HorizontalScrollable: info.Horizontal,
		VerticalScrollable:   info.Vertical,
	}
	return p.result(model.RoleScrollable)
}
