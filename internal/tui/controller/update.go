package controller

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"slices"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"kubedash/internal/event"
	"kubedash/internal/kube"
	"kubedash/internal/tui/widget"
	"kubedash/internal/tui/window"
	"kubedash/pkg/logging"
)

const controllerSubsystem = "Controller"

func (m *AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.win.Resize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		return m, m.handleKey(msg)

	case tea.MouseMsg:
		return m, m.win.HandleMouse(msg).Cmd

	case event.TickMsg:
		if m.term.Terminated() {
			m.exitErr = m.term.Reason()
			return m, m.quit()
		}
		return m, event.Tick(m.cfg.UI.TickInterval)

	case kubeEventsMsg:
		var cmds []tea.Cmd
		for _, ev := range msg {
			if m.stale(ev) {
				continue
			}
			cmds = append(cmds, m.apply(ev))
		}
		cmds = append(cmds, listenKube(m.events))
		return m, tea.Batch(cmds...)

	case replyMsg:
		var cmds []tea.Cmd
		for _, ev := range msg {
			cmds = append(cmds, m.apply(ev))
		}
		return m, tea.Batch(cmds...)

	case logEntriesMsg:
		if w, ok := m.win.Widget(widget.LogPopup); ok {
			lines := make([]string, len(msg))
			for i, e := range msg {
				lines[i] = e.Format()
			}
			w.(*widget.Text).AppendItems(lines)
		}
		return m, listenLogs(m.logs)

	case errMsg:
		logging.Error(controllerSubsystem, msg.err, "Failed to %s", msg.op)
		m.win.SetStatus(fmt.Sprintf("failed to %s: %v", msg.op, msg.err))
		return m, nil

	case contextSwitchedMsg:
		return m, m.contextSwitched(msg.client)

	case logsDoneMsg:
		if msg.gen != m.logGen || msg.err == nil {
			return m, nil
		}
		line := errorLine(msg.err)
		if errors.Is(msg.err, kube.ErrNoPods) {
			line = "No pods match the query"
		}
		m.text(widget.PodLog).AppendItems([]string{line})
		return m, nil

	case widget.SelectedMsg:
		return m, m.selected(msg)

	case widget.MultiSelectedMsg:
		return m, m.multiSelected(msg)

	case widget.YankedMsg:
		if msg.Err != nil {
			logging.Error(controllerSubsystem, msg.Err, "Copy to clipboard failed")
			m.win.SetStatus("copy failed")
		} else {
			m.win.SetStatus(fmt.Sprintf("copied %d lines", msg.Lines))
		}
		return m, nil
	}
	return m, nil
}

func (m *AppModel) quit() tea.Cmd {
	m.quitting = true
	m.Stop()
	return tea.Quit
}

func (m *AppModel) handleKey(msg tea.KeyMsg) tea.Cmd {
	// ctrl+c quits even while a popup has the keyboard.
	if msg.Type == tea.KeyCtrlC {
		return m.quit()
	}
	if res := m.win.HandleKey(msg); !res.IsIgnored() {
		return res.Cmd
	}

	k := m.keys
	switch {
	case key.Matches(msg, k.Esc):
		m.win.ClosePopup()
	case key.Matches(msg, k.Quit):
		if _, open := m.win.Popup(); open {
			m.win.ClosePopup()
			return nil
		}
		return m.quit()
	case key.Matches(msg, k.Help):
		m.togglePopup(widget.HelpPopup)
	case key.Matches(msg, k.ToggleLog):
		m.togglePopup(widget.LogPopup)
	case key.Matches(msg, k.NextFocus):
		m.win.ActiveTab().ActivateNext()
	case key.Matches(msg, k.PrevFocus):
		m.win.ActiveTab().ActivatePrev()
	case key.Matches(msg, k.NextTab):
		m.win.NextTab()
	case key.Matches(msg, k.PrevTab):
		m.win.PrevTab()
	case key.Matches(msg, k.Tab1, k.Tab2, k.Tab3, k.Tab4, k.Tab5):
		m.win.SelectTab(int(msg.Runes[0] - '1'))
	case key.Matches(msg, k.ToggleSplit):
		m.win.ToggleDirection()
	case key.Matches(msg, k.Refresh):
		m.poller.Refresh()
	case key.Matches(msg, k.Context):
		m.win.OpenPopup(widget.ContextPopup)
	case key.Matches(msg, k.Namespaces):
		m.win.OpenPopup(widget.NamespacePopup)
	case key.Matches(msg, k.SingleNamespace):
		m.win.OpenPopup(widget.SingleNamespacePopup)
	case key.Matches(msg, k.APIResources):
		m.win.OpenPopup(widget.APIPopup)
	case key.Matches(msg, k.YAML):
		m.win.OpenPopup(widget.YAMLKindPopup)
	case key.Matches(msg, k.LogQuery):
		m.win.OpenPopup(widget.LogQueryPopup)
	}
	return nil
}

func (m *AppModel) togglePopup(id widget.ID) {
	if p, open := m.win.Popup(); open && p.ID() == id {
		m.win.ClosePopup()
		return
	}
	m.win.OpenPopup(id)
}

func (m *AppModel) text(id widget.ID) *widget.Text {
	w, _ := m.win.Widget(id)
	t, _ := w.(*widget.Text)
	return t
}

func errorLine(err error) string {
	return "\x1b[31m" + err.Error() + "\x1b[39m"
}

// stale reports whether ev was queued by a log stream or poller client that
// has since been replaced.
func (m *AppModel) stale(ev kube.Event) bool {
	switch e := ev.(type) {
	case kube.Lines:
		return e.Target == kube.TargetPodLog && e.Gen != m.logGen
	case kube.Table:
		return e.Gen != m.pollGen
	case kube.Replace:
		return e.Gen != m.pollGen
	case kube.Error:
		return e.Gen != m.pollGen
	}
	return false
}

// apply routes one cluster event to its widget.
func (m *AppModel) apply(ev kube.Event) tea.Cmd {
	switch e := ev.(type) {
	case kube.Table:
		if w, ok := m.win.Widget(targets[e.Target]); ok {
			if l, ok := w.(*widget.List); ok {
				l.SetTable(e.Header, e.Rows)
			}
		}
	case kube.Lines:
		if t := m.text(targets[e.Target]); t != nil {
			t.AppendItems(e.Lines)
		}
	case kube.Replace:
		if t := m.text(targets[e.Target]); t != nil {
			if e.Target == kube.TargetEvents || e.Target == kube.TargetAPI {
				t.Refresh(e.Lines)
			} else {
				t.SetItems(e.Lines)
			}
		}
	case kube.Error:
		if w, ok := m.win.Widget(targets[e.Target]); ok {
			w.SetItems([]string{errorLine(e.Err)})
		}
	case kube.Namespaces:
		snap := m.sel.Snapshot()
		if w, ok := m.win.Widget(widget.NamespacePopup); ok {
			ms := w.(*widget.MultipleSelect)
			ms.SetItems(e.Items)
			ms.SetSelected(snap.Namespaces)
		}
		if w, ok := m.win.Widget(widget.SingleNamespacePopup); ok {
			w.SetItems(e.Items)
		}
	case kube.Contexts:
		if w, ok := m.win.Widget(widget.ContextPopup); ok {
			w.SetItems(e.Items)
		}
	case kube.APIResources:
		m.apiResources = e.Items
		names := make([]string, len(e.Items))
		for i, r := range e.Items {
			names[i] = r.Name()
		}
		if w, ok := m.win.Widget(widget.APIPopup); ok {
			w.SetItems(names)
		}
		if w, ok := m.win.Widget(widget.YAMLKindPopup); ok {
			w.SetItems(names)
		}
	case kube.CurrentContext:
		m.win.SetContext(window.Context{Cluster: e.Name, Namespaces: e.Namespaces})
	case kube.YAMLNames:
		m.yamlResource = e.Resource
		if w, ok := m.win.Widget(widget.YAMLNamePopup); ok {
			w.SetItems(e.Items)
			m.win.OpenPopup(widget.YAMLNamePopup)
		}
	}
	return nil
}

func (m *AppModel) selected(msg widget.SelectedMsg) tea.Cmd {
	switch msg.ID {
	case widget.PodList:
		l := m.list(widget.PodList)
		name, _ := kube.Column(l.Header(), msg.Row, "NAME")
		namespaces := m.sel.Snapshot().Namespaces
		if ns, ok := kube.Column(l.Header(), msg.Row, "NAMESPACE"); ok {
			namespaces = []string{ns}
		}
		return m.startLogs(fmt.Sprintf("pod:^%s$", regexp.QuoteMeta(name)), namespaces)

	case widget.ConfigList:
		if m.client == nil {
			return nil
		}
		l := m.list(widget.ConfigList)
		name, _ := kube.Column(l.Header(), msg.Row, "NAME")
		kind, _ := kube.Column(l.Header(), msg.Row, "KIND")
		ns, ok := kube.Column(l.Header(), msg.Row, "NAMESPACE")
		if !ok {
			ns = firstOr(m.sel.Snapshot().Namespaces, "default")
		}
		return fetchConfigData(m.client, ns, kind, name)

	case widget.ContextPopup:
		m.win.ClosePopup()
		if m.client != nil && msg.Value == m.client.Context() {
			return nil
		}
		m.win.SetStatus("switching to " + msg.Value)
		return switchContext(m.kubeconfig, msg.Value)

	case widget.SingleNamespacePopup:
		m.win.ClosePopup()
		m.setNamespaces([]string{msg.Value})

	case widget.YAMLKindPopup:
		r, ok := kube.FindAPIResource(m.apiResources, msg.Value)
		if !ok || m.client == nil {
			return nil
		}
		m.win.ClosePopup()
		return fetchObjectNames(m.client, r, m.sel.Snapshot().Namespaces)

	case widget.YAMLNamePopup:
		m.win.ClosePopup()
		if m.client == nil {
			return nil
		}
		m.win.Focus(widget.YAMLView)
		m.text(widget.YAMLView).SetTitle(fmt.Sprintf("YAML: %s %s", m.yamlResource.Name(), msg.Value))
		return fetchYAML(m.client, m.yamlResource, msg.Value)

	case widget.LogQueryPopup:
		m.win.ClosePopup()
		m.remember(msg.Value)
		m.win.Focus(widget.PodLog)
		return m.startLogs(msg.Value, m.sel.Snapshot().Namespaces)
	}
	return nil
}

func (m *AppModel) multiSelected(msg widget.MultiSelectedMsg) tea.Cmd {
	switch msg.ID {
	case widget.NamespacePopup:
		if len(msg.Values) == 0 {
			// Keep at least one namespace; the popup shows the fallback.
			return nil
		}
		m.setNamespaces(msg.Values)
	case widget.APIPopup:
		var res []kube.APIResource
		for _, name := range msg.Values {
			if r, ok := kube.FindAPIResource(m.apiResources, name); ok {
				res = append(res, r)
			}
		}
		m.sel.SetAPIResources(res)
		if len(res) == 0 {
			m.text(widget.APILog).Clear()
		}
		m.poller.Refresh()
	}
	return nil
}

func (m *AppModel) list(id widget.ID) *widget.List {
	w, _ := m.win.Widget(id)
	l, _ := w.(*widget.List)
	return l
}

func (m *AppModel) setNamespaces(namespaces []string) {
	m.sel.SetNamespaces(namespaces)
	if w, ok := m.win.Widget(widget.NamespacePopup); ok {
		w.(*widget.MultipleSelect).SetSelected(namespaces)
	}
	ctx := m.win.Context()
	ctx.Namespaces = slices.Clone(namespaces)
	m.win.SetContext(ctx)
	m.stopLogs()
	m.text(widget.PodLog).Clear()
	m.text(widget.ConfigRaw).Clear()
	m.poller.Refresh()
}

func (m *AppModel) contextSwitched(c *kube.Client) tea.Cmd {
	m.stopLogs()
	m.client = c
	namespaces := []string{c.DefaultNamespace()}
	m.sel.SetContext(c.Context(), namespaces)
	m.apiResources = nil
	for _, id := range []widget.ID{widget.PodList, widget.PodLog, widget.ConfigList, widget.ConfigRaw, widget.EventLog, widget.APILog, widget.YAMLView} {
		if w, ok := m.win.Widget(id); ok {
			w.Clear()
		}
	}
	m.win.SetStatus("")
	m.pollGen = m.poller.SetClient(c)
	logging.Info(controllerSubsystem, "Switched to context %s", c.Context())
	return tea.Batch(
		func() tea.Msg { return replyMsg{kube.CurrentContext{Name: c.Context(), Namespaces: namespaces}} },
		fetchNamespaces(c),
		fetchAPIResources(c),
	)
}

func (m *AppModel) stopLogs() {
	if m.logCancel != nil {
		m.logCancel()
		m.logCancel = nil
	}
}

// startLogs replaces the current log stream.
func (m *AppModel) startLogs(query string, namespaces []string) tea.Cmd {
	m.stopLogs()
	log := m.text(widget.PodLog)
	log.Clear()
	log.SetTitle("Log: " + query)
	if m.client == nil {
		return nil
	}
	ctx, cancel := context.WithCancel(m.ctx)
	m.logCancel = cancel
	m.logGen++
	opts := kube.LogOptions{TailLines: m.cfg.Kube.LogTailLines, Follow: true, Gen: m.logGen}
	return streamLogs(ctx, m.client, m.logGen, query, namespaces, opts, m.events)
}

// remember puts query at the front of the query history.
func (m *AppModel) remember(query string) {
	m.history = slices.DeleteFunc(m.history, func(q string) bool { return q == query })
	m.history = append([]string{query}, m.history...)
	if len(m.history) > maxHistory {
		m.history = m.history[:maxHistory]
	}
	if w, ok := m.win.Widget(widget.LogQueryPopup); ok {
		w.SetItems(m.history)
	}
}

func firstOr(s []string, fallback string) string {
	if len(s) == 0 {
		return fallback
	}
	return s[0]
}
