package model

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// UI Automation control type identifiers with special meaning to the classifier.
const (
	ControlTypeGroup = "GroupControl"
	ControlTypeImage = "ImageControl"
)

// GraphicLocalizedType is the localized type Windows reports for decorative images.
const GraphicLocalizedType = "graphic"

// Role is the semantic role a node is assigned during classification.
type Role int

const (
	RoleNone Role = iota
	RoleInteractive
	RoleInformative
	RoleScrollable
)

func (r Role) String() string {
	switch r {
	case RoleInteractive:
		return "interactive"
	case RoleInformative:
		return "informative"
	case RoleScrollable:
		return "scrollable"
	default:
		return "none"
	}
}

// DefaultInteractiveControlTypes are control types that accept user input.
var DefaultInteractiveControlTypes = []string{
	"ButtonControl",
	"ListItemControl",
	"MenuItemControl",
	"DocumentControl",
	"EditControl",
	"CheckBoxControl",
	"RadioButtonControl",
	"ComboBoxControl",
	"HyperlinkControl",
	"SplitButtonControl",
	"TabItemControl",
	"CustomControl",
	"TreeItemControl",
	"DataItemControl",
	"HeaderItemControl",
	"TextBoxControl",
	"ImageControl",
	"SpinnerControl",
	"ScrollBarControl",
}

// DefaultInformativeControlTypes are control types that carry readable text.
var DefaultInformativeControlTypes = []string{
	"TextControl",
	"ImageControl",
}

// DefaultActions are the legacy default-action verbs that make a group clickable.
var DefaultActions = []string{
	"Click",
	"Press",
	"Jump",
	"Check",
	"Uncheck",
	"Double Click",
}

// DefaultAvoidedApps are top-level windows never scanned.
var DefaultAvoidedApps = []string{
	"Recording toolbar",
}

// TitleControlType converts a localized control type to title case,
// e.g. "split button" -> "Split Button".
func TitleControlType(localized string) string {
	// A Caser is stateful, so each call gets its own.
	return cases.Title(language.Und).String(localized)
}

// CapitalizeControlType upper-cases the first letter and lower-cases the rest,
// e.g. "scroll BAR" -> "Scroll bar".
func CapitalizeControlType(localized string) string {
	if localized == "" {
		return ""
	}
	r, size := utf8.DecodeRuneInString(localized)
	return string(unicode.ToUpper(r)) + strings.ToLower(localized[size:])
}

// NewSet builds a lookup set from a list of identifiers.
func NewSet(items []string) map[string]bool {
	set := make(map[string]bool, len(items))
	for _, item := range items {
		set[item] = true
	}
	return set
}
