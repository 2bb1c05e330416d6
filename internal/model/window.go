package model

// Window describes one top-level window and whether the partitioner scans it.
type Window struct {
	Name     string `yaml:"name"             json:"name"`
	Visible  bool   `yaml:"visible"          json:"visible"`
	Selected bool   `yaml:"selected"         json:"selected"`
	Reason   string `yaml:"reason,omitempty" json:"reason,omitempty"`
}
