package config

import (
	"time"

	"kubedash/internal/tui/layout"
)

// Config is the top-level configuration structure for kubedash.
type Config struct {
	UI      UISettings      `yaml:"ui"`
	Kube    KubeSettings    `yaml:"kube"`
	Logging LoggingSettings `yaml:"logging"`
	Theme   ThemeConfig     `yaml:"theme,omitempty"`

	// Layouts overrides the pane layout of a tab, keyed by tab name
	// ("pods", "config"). Every leaf must reference one of the tab's widgets.
	Layouts map[string]layout.Node `yaml:"layouts,omitempty"`
}

// UISettings controls the terminal interface.
type UISettings struct {
	TickInterval time.Duration `yaml:"tickInterval,omitempty"` // Redraw cadence, e.g. "200ms"
	Split        string        `yaml:"split,omitempty"`        // Initial split direction: "horizontal" or "vertical"
	FollowLogs   *bool         `yaml:"followLogs,omitempty"`   // Keep log panes pinned to the newest line
	CarryStyle   *bool         `yaml:"carryStyle,omitempty"`   // Carry SGR state across wrap-induced line breaks
	Mouse        *bool         `yaml:"mouse,omitempty"`        // Enable mouse reporting, including hover
}

// KubeSettings controls the cluster collaborator.
type KubeSettings struct {
	Kubeconfig   string        `yaml:"kubeconfig,omitempty"`
	Context      string        `yaml:"context,omitempty"`
	Namespaces   []string      `yaml:"namespaces,omitempty"`
	PollInterval time.Duration `yaml:"pollInterval,omitempty"`
	LogTailLines int64         `yaml:"logTailLines,omitempty"`
}

// LoggingSettings controls the application log.
type LoggingSettings struct {
	Level string `yaml:"level,omitempty"` // debug, info, warn, error
	File  string `yaml:"file,omitempty"`  // Empty discards file output
}

// ThemeConfig overrides theme colors. Values are "#rrggbb", a 0-255 palette
// index or a color name such as "cyan" or "brightblue".
type ThemeConfig struct {
	Border       string `yaml:"border,omitempty"`
	BorderActive string `yaml:"borderActive,omitempty"`
	BorderHover  string `yaml:"borderHover,omitempty"`
	Header       string `yaml:"header,omitempty"`
	Selected     string `yaml:"selected,omitempty"`
	TabActive    string `yaml:"tabActive,omitempty"`
	Status       string `yaml:"status,omitempty"`
	Error        string `yaml:"error,omitempty"`
}

// SplitDirection parses UI.Split.
func (c Config) SplitDirection() (layout.Direction, error) {
	return layout.ParseDirection(c.UI.Split)
}

// FollowLogs reports whether log panes follow new output.
func (c Config) FollowLogs() bool {
	return c.UI.FollowLogs == nil || *c.UI.FollowLogs
}

// CarryStyle reports whether wrapped lines inherit the style of the
// previous fragment.
func (c Config) CarryStyle() bool {
	return c.UI.CarryStyle != nil && *c.UI.CarryStyle
}

// MouseEnabled reports whether mouse reporting is requested.
func (c Config) MouseEnabled() bool {
	return c.UI.Mouse == nil || *c.UI.Mouse
}
