package controller

import (
	"context"
	"errors"

	tea "github.com/charmbracelet/bubbletea"

	"kubedash/internal/kube"
	"kubedash/pkg/logging"
)

const logQueryHelp = "pod: !pod: container: !container: log: !log: labels: fields: deploy/<name>"

// kubeEventsMsg carries a batch of cluster events.
type kubeEventsMsg []kube.Event

// replyMsg carries the result of a one-shot request. Unlike kubeEventsMsg
// it does not re-arm the channel listener.
type replyMsg []kube.Event

// logEntriesMsg carries a batch of application log entries.
type logEntriesMsg []logging.LogEntry

// errMsg reports a failed one-shot request.
type errMsg struct {
	op  string
	err error
}

// contextSwitchedMsg carries the client for a newly selected context.
type contextSwitchedMsg struct {
	client *kube.Client
}

// logsDoneMsg reports the end of a log stream. gen identifies the stream so
// that a stream replaced by a newer one is not reported.
type logsDoneMsg struct {
	gen int
	err error
}

// newClient is mockable for context switching in tests.
var newClient = kube.NewClient

// listenKube waits for the next cluster event and drains whatever else is
// queued, so a burst costs one Update.
func listenKube(ch <-chan kube.Event) tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-ch
		if !ok {
			return nil
		}
		batch := kubeEventsMsg{ev}
		for len(batch) < maxBatch {
			select {
			case ev, ok := <-ch:
				if !ok {
					return batch
				}
				batch = append(batch, ev)
			default:
				return batch
			}
		}
		return batch
	}
}

// listenLogs is listenKube for the application log channel.
func listenLogs(ch <-chan logging.LogEntry) tea.Cmd {
	return func() tea.Msg {
		entry, ok := <-ch
		if !ok {
			return nil
		}
		batch := logEntriesMsg{entry}
		for len(batch) < maxBatch {
			select {
			case entry, ok := <-ch:
				if !ok {
					return batch
				}
				batch = append(batch, entry)
			default:
				return batch
			}
		}
		return batch
	}
}

// request runs fn with a timeout and wraps its event or error as a message.
func request(op string, fn func(ctx context.Context) (kube.Event, error)) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		ev, err := fn(ctx)
		if err != nil {
			return errMsg{op: op, err: err}
		}
		return replyMsg{ev}
	}
}

func fetchContexts(kubeconfig string) tea.Cmd {
	return request("list contexts", func(context.Context) (kube.Event, error) {
		names, current, err := kube.LoadContexts(kubeconfig)
		return kube.Contexts{Items: names, Current: current}, err
	})
}

func fetchNamespaces(c *kube.Client) tea.Cmd {
	return request("list namespaces", func(ctx context.Context) (kube.Event, error) {
		names, err := c.Namespaces(ctx)
		return kube.Namespaces{Items: names}, err
	})
}

func fetchAPIResources(c *kube.Client) tea.Cmd {
	return request("discover API resources", func(ctx context.Context) (kube.Event, error) {
		res, err := c.APIResources(ctx)
		return kube.APIResources{Items: res}, err
	})
}

func fetchConfigData(c *kube.Client, namespace, kind, name string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		lines, err := c.ConfigData(ctx, namespace, kind, name)
		if err != nil {
			return replyMsg{kube.Error{Target: kube.TargetConfigRaw, Err: err}}
		}
		return replyMsg{kube.Replace{Target: kube.TargetConfigRaw, Lines: lines}}
	}
}

func fetchObjectNames(c *kube.Client, r kube.APIResource, namespaces []string) tea.Cmd {
	return request("list "+r.Name(), func(ctx context.Context) (kube.Event, error) {
		names, err := c.ObjectNames(ctx, r, namespaces)
		return kube.YAMLNames{Resource: r, Items: names}, err
	})
}

func fetchYAML(c *kube.Client, r kube.APIResource, ref string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		lines, err := c.RawYAML(ctx, r, ref)
		if err != nil {
			return replyMsg{kube.Error{Target: kube.TargetYAML, Err: err}}
		}
		return replyMsg{kube.Replace{Target: kube.TargetYAML, Lines: lines}}
	}
}

func switchContext(kubeconfig, name string) tea.Cmd {
	return func() tea.Msg {
		c, err := newClient(kubeconfig, name)
		if err != nil {
			return errMsg{op: "switch context", err: err}
		}
		return contextSwitchedMsg{client: c}
	}
}

func streamLogs(ctx context.Context, c *kube.Client, gen int, query string, namespaces []string, opts kube.LogOptions, out chan<- kube.Event) tea.Cmd {
	return func() tea.Msg {
		err := c.StreamLogs(ctx, query, namespaces, opts, out)
		if errors.Is(err, context.Canceled) {
			err = nil
		}
		return logsDoneMsg{gen: gen, err: err}
	}
}
