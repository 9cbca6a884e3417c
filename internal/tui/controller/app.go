package controller

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"

	"kubedash/internal/config"
	"kubedash/internal/event"
	"kubedash/internal/kube"
	"kubedash/internal/tui/design"
	"kubedash/internal/tui/widget"
	"kubedash/internal/tui/window"
	"kubedash/pkg/logging"
)

const (
	eventBufferSize = 512
	maxBatch        = 256
	maxHistory      = 50
	requestTimeout  = 15 * time.Second
)

// Options configure an AppModel.
type Options struct {
	Config     config.Config
	Kubeconfig string
	Client     *kube.Client
	Namespaces []string
	LogChannel <-chan logging.LogEntry
	Terminator *event.Terminator
}

// AppModel is the bubbletea model. Its Update loop is the single consumer
// of input, ticks and cluster events; widgets are only touched from it.
type AppModel struct {
	cfg        config.Config
	kubeconfig string
	keys       KeyMap
	help       help.Model
	theme      design.Theme
	win        *window.Window

	term   *event.Terminator
	ctx    context.Context
	cancel context.CancelFunc

	events chan kube.Event
	logs   <-chan logging.LogEntry

	client *kube.Client
	sel    *kube.Selection
	poller *kube.Poller

	logCancel context.CancelFunc
	logGen    int
	pollGen   int
	history   []string

	apiResources []kube.APIResource
	yamlResource kube.APIResource

	quitting bool
	exitErr  error
}

// NewAppModel builds the window from the configuration. Invalid layouts or
// theme colors are returned as errors.
func NewAppModel(opts Options) (*AppModel, error) {
	theme, err := design.FromConfig(opts.Config.Theme)
	if err != nil {
		return nil, err
	}
	m := &AppModel{
		cfg:        opts.Config,
		kubeconfig: opts.Kubeconfig,
		keys:       DefaultKeyMap(),
		help:       help.New(),
		theme:      theme,
		term:       opts.Terminator,
		events:     make(chan kube.Event, eventBufferSize),
		logs:       opts.LogChannel,
		client:     opts.Client,
	}
	m.help.Styles = design.HelpStyles()
	if m.term == nil {
		m.term = event.NewTerminator()
	}
	m.ctx, m.cancel = context.WithCancel(context.Background())

	m.win, err = buildWindow(opts.Config, &m.theme)
	if err != nil {
		return nil, err
	}

	contextName := ""
	namespaces := opts.Namespaces
	if m.client != nil {
		contextName = m.client.Context()
		if len(namespaces) == 0 {
			namespaces = []string{m.client.DefaultNamespace()}
		}
	}
	m.sel = kube.NewSelection(contextName, namespaces)
	m.poller = kube.NewPoller(m.client, m.sel, m.events, opts.Config.Kube.PollInterval)
	m.win.SetContext(window.Context{Cluster: contextName, Namespaces: namespaces})
	m.win.SetHint(m.hint())
	m.renderHelp()
	return m, nil
}

// Start launches the background producers: the poller and the kubeconfig
// watcher. They stop when the model quits.
func (m *AppModel) Start() {
	m.term.Go("poller", func() error { return m.poller.Run(m.ctx) })
	if m.client != nil {
		path := kube.KubeconfigPath(m.kubeconfig)
		m.term.Go("kubeconfig-watcher", func() error {
			if err := kube.WatchKubeconfig(m.ctx, path, m.events); err != nil && m.ctx.Err() == nil {
				// A missing kubeconfig directory only disables reloading.
				logging.Warn("Controller", "Kubeconfig reload disabled: %v", err)
			}
			return nil
		})
	}
}

// Stop cancels the background producers and any log stream.
func (m *AppModel) Stop() {
	m.stopLogs()
	m.cancel()
}

// Err returns why the program was terminated, if it was.
func (m *AppModel) Err() error { return m.exitErr }

func (m *AppModel) Init() tea.Cmd {
	cmds := []tea.Cmd{
		tea.SetWindowTitle("kubedash"),
		event.Tick(m.cfg.UI.TickInterval),
		listenKube(m.events),
	}
	if m.logs != nil {
		cmds = append(cmds, listenLogs(m.logs))
	}
	if m.client != nil {
		cmds = append(cmds,
			fetchContexts(m.kubeconfig),
			fetchNamespaces(m.client),
			fetchAPIResources(m.client),
		)
	}
	return tea.Batch(cmds...)
}

func (m *AppModel) View() string {
	if m.quitting {
		return ""
	}
	return m.win.View()
}

// hint renders the short help as plain text for the status line.
func (m *AppModel) hint() string {
	var parts []string
	for _, b := range m.keys.ShortHelp() {
		h := b.Help()
		parts = append(parts, h.Key+" "+h.Desc)
	}
	return strings.Join(parts, " • ")
}

// renderHelp fills the help popup with the window and widget bindings.
func (m *AppModel) renderHelp() {
	w, ok := m.win.Widget(widget.HelpPopup)
	if !ok {
		return
	}
	var items []string
	items = append(items, "Global", m.help.FullHelpView(m.keys.FullHelp()), "", "Panes")
	items = append(items, m.help.FullHelpView(widget.Keys.FullHelp()))
	items = append(items, "", fmt.Sprintf("Log query: %s", logQueryHelp))
	w.SetItems(items)
}
