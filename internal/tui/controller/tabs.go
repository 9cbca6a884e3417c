package controller

import (
	"kubedash/internal/config"
	"kubedash/internal/kube"
	"kubedash/internal/tui/design"
	"kubedash/internal/tui/layout"
	"kubedash/internal/tui/text"
	"kubedash/internal/tui/widget"
	"kubedash/internal/tui/window"
)

// Layout names accepted under "layouts" in the configuration.
const (
	LayoutPods   = "pods"
	LayoutConfig = "config"
)

// targets maps cluster event targets to the widgets showing them.
var targets = map[kube.Target]widget.ID{
	kube.TargetPods:      widget.PodList,
	kube.TargetPodLog:    widget.PodLog,
	kube.TargetConfigs:   widget.ConfigList,
	kube.TargetConfigRaw: widget.ConfigRaw,
	kube.TargetEvents:    widget.EventLog,
	kube.TargetAPI:       widget.APILog,
	kube.TargetYAML:      widget.YAMLView,
}

// halves is the default two pane layout: equal halves along dir.
func halves(dir layout.Direction) layout.Node {
	return layout.Split(dir,
		layout.Weighted(1, layout.Leaf(0)),
		layout.Weighted(1, layout.Leaf(1)),
	)
}

func single(layout.Direction) layout.Node {
	return layout.Leaf(0)
}

// describeFor returns the configured layout for name, or fallback.
func describeFor(cfg config.Config, name string, fallback layout.Describe) layout.Describe {
	if n, ok := cfg.Layouts[name]; ok {
		return layout.Flip(n)
	}
	return fallback
}

// buildWindow creates every tab and popup.
func buildWindow(cfg config.Config, theme *design.Theme) (*window.Window, error) {
	dir, err := cfg.SplitDirection()
	if err != nil {
		return nil, err
	}
	opts := text.Options{CarryStyle: cfg.CarryStyle()}

	podLog := widget.NewText(widget.PodLog, "Log", opts, widget.WithFollow(cfg.FollowLogs()))
	pods, err := window.NewTab("Pods", describeFor(cfg, LayoutPods, halves), dir,
		widget.NewList(widget.PodList, "Pods"), podLog)
	if err != nil {
		return nil, err
	}
	configs, err := window.NewTab("Config", describeFor(cfg, LayoutConfig, halves), dir,
		widget.NewList(widget.ConfigList, "Configs"),
		widget.NewText(widget.ConfigRaw, "Raw Data", opts))
	if err != nil {
		return nil, err
	}
	events, err := window.NewTab("Event", single, dir,
		widget.NewText(widget.EventLog, "Event", opts, widget.WithFollow(true)))
	if err != nil {
		return nil, err
	}
	api, err := window.NewTab("API", single, dir, widget.NewText(widget.APILog, "API", opts))
	if err != nil {
		return nil, err
	}
	yaml, err := window.NewTab("YAML", single, dir, widget.NewText(widget.YAMLView, "YAML", opts))
	if err != nil {
		return nil, err
	}

	query := widget.NewSingleSelect(widget.LogQueryPopup, "Log query")
	query.SetFreeInput(true)

	popups := []widget.Widget{
		widget.NewSingleSelect(widget.ContextPopup, "Context"),
		widget.NewMultipleSelect(widget.NamespacePopup, "Namespace"),
		widget.NewSingleSelect(widget.SingleNamespacePopup, "Namespace"),
		widget.NewMultipleSelect(widget.APIPopup, "API"),
		widget.NewSingleSelect(widget.YAMLKindPopup, "Kind"),
		widget.NewSingleSelect(widget.YAMLNamePopup, "Name"),
		query,
		widget.NewText(widget.HelpPopup, "Help", text.Options{}),
		widget.NewText(widget.LogPopup, "Application log", text.Options{}, widget.WithFollow(true)),
	}
	return window.New([]*window.Tab{pods, configs, events, api, yaml}, popups, theme), nil
}
