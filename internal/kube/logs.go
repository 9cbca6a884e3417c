package kube

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"golang.org/x/sync/errgroup"
	corev1 "k8s.io/api/core/v1"
	apierrors "k8s.io/apimachinery/pkg/api/errors"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/fields"
	"k8s.io/apimachinery/pkg/labels"

	"kubedash/pkg/logging"
)

const (
	maxLogLineSize = 1 << 20
	logBatchSize   = 64
)

// ErrNoPods is reported when a query matches no pod.
var ErrNoPods = errors.New("no pods match the query")

// prefix colors cycle per stream, like the foreground colors 31..36.
var streamColors = []string{"\x1b[32m", "\x1b[33m", "\x1b[34m", "\x1b[35m", "\x1b[36m", "\x1b[31m"}

// LogStream is one container log to follow.
type LogStream struct {
	Namespace string
	Pod       string
	Container string
}

func (s LogStream) String() string {
	return s.Pod + "/" + s.Container
}

// LogOptions tune StreamLogs. Gen tags every Lines event of the stream.
type LogOptions struct {
	TailLines int64
	Follow    bool
	Gen       int
}

// MatchStreams resolves a filter to the container logs it selects in
// namespaces.
func (c *Client) MatchStreams(ctx context.Context, f Filter, namespaces []string) ([]LogStream, error) {
	var streams []LogStream
	for _, ns := range namespaces {
		opts := metav1.ListOptions{LabelSelector: f.LabelSelector, FieldSelector: f.FieldSelector}
		if f.Resource != nil {
			sel, err := c.resourceSelector(ctx, ns, *f.Resource)
			if apierrors.IsNotFound(err) && len(namespaces) > 1 {
				continue
			}
			if err != nil {
				return nil, err
			}
			opts.LabelSelector = joinSelector(opts.LabelSelector, sel.labels)
			opts.FieldSelector = joinSelector(opts.FieldSelector, sel.fields)
		}
		pods, err := c.clientset.CoreV1().Pods(ns).List(ctx, opts)
		if err != nil {
			return nil, fmt.Errorf("failed to list pods in %s: %w", ns, err)
		}
		slices.SortFunc(pods.Items, func(a, b corev1.Pod) int { return strings.Compare(a.Name, b.Name) })
		for _, p := range pods.Items {
			if !f.MatchPod(p.Name) {
				continue
			}
			for _, ctr := range p.Spec.Containers {
				if f.MatchContainer(ctr.Name) {
					streams = append(streams, LogStream{Namespace: ns, Pod: p.Name, Container: ctr.Name})
				}
			}
		}
	}
	return streams, nil
}

type selectors struct {
	labels, fields string
}

func (c *Client) resourceSelector(ctx context.Context, ns string, r Resource) (selectors, error) {
	var (
		sel *metav1.LabelSelector
		err error
	)
	switch r.Kind {
	case ResourcePod:
		return selectors{fields: fields.OneTermEqualSelector("metadata.name", r.Name).String()}, nil
	case ResourceService:
		svc, gerr := c.clientset.CoreV1().Services(ns).Get(ctx, r.Name, metav1.GetOptions{})
		if gerr != nil {
			return selectors{}, fmt.Errorf("failed to get service %s/%s: %w", ns, r.Name, gerr)
		}
		if len(svc.Spec.Selector) == 0 {
			return selectors{}, fmt.Errorf("service %s/%s has no selector", ns, r.Name)
		}
		return selectors{labels: labels.SelectorFromSet(svc.Spec.Selector).String()}, nil
	case ResourceDeployment:
		d, gerr := c.clientset.AppsV1().Deployments(ns).Get(ctx, r.Name, metav1.GetOptions{})
		if err = gerr; err == nil {
			sel = d.Spec.Selector
		}
	case ResourceDaemonSet:
		d, gerr := c.clientset.AppsV1().DaemonSets(ns).Get(ctx, r.Name, metav1.GetOptions{})
		if err = gerr; err == nil {
			sel = d.Spec.Selector
		}
	case ResourceReplicaSet:
		d, gerr := c.clientset.AppsV1().ReplicaSets(ns).Get(ctx, r.Name, metav1.GetOptions{})
		if err = gerr; err == nil {
			sel = d.Spec.Selector
		}
	case ResourceStatefulSet:
		d, gerr := c.clientset.AppsV1().StatefulSets(ns).Get(ctx, r.Name, metav1.GetOptions{})
		if err = gerr; err == nil {
			sel = d.Spec.Selector
		}
	case ResourceJob:
		d, gerr := c.clientset.BatchV1().Jobs(ns).Get(ctx, r.Name, metav1.GetOptions{})
		if err = gerr; err == nil {
			sel = d.Spec.Selector
		}
	default:
		return selectors{}, fmt.Errorf("unsupported resource kind %q", r.Kind)
	}
	if err != nil {
		return selectors{}, fmt.Errorf("failed to get %s %s/%s: %w", r.Kind, ns, r.Name, err)
	}
	if sel == nil {
		return selectors{}, fmt.Errorf("%s %s/%s has no selector", r.Kind, ns, r.Name)
	}
	s, err := metav1.LabelSelectorAsSelector(sel)
	if err != nil {
		return selectors{}, fmt.Errorf("invalid selector on %s %s/%s: %w", r.Kind, ns, r.Name, err)
	}
	return selectors{labels: s.String()}, nil
}

// StreamLogs follows the logs selected by query and sends them to out as
// Lines for TargetPodLog until ctx is cancelled or every stream ends.
// Each line is prefixed by its colored pod/container name.
func (c *Client) StreamLogs(ctx context.Context, query string, namespaces []string, opts LogOptions, out chan<- Event) error {
	f, err := ParseFilter(query)
	if err != nil {
		return fmt.Errorf("invalid log query: %w", err)
	}
	streams, err := c.MatchStreams(ctx, f, namespaces)
	if err != nil {
		return err
	}
	if len(streams) == 0 {
		return ErrNoPods
	}
	logging.Debug("Logs", "Following %d container logs for %q", len(streams), query)

	g, gctx := errgroup.WithContext(ctx)
	for i, s := range streams {
		color := streamColors[i%len(streamColors)]
		prefix := color + s.String() + "\x1b[39m "
		if len(namespaces) > 1 {
			prefix = color + s.Namespace + "/" + s.String() + "\x1b[39m "
		}
		g.Go(func() error {
			if err := c.followContainer(gctx, s, f, prefix, opts, out); err != nil && gctx.Err() == nil {
				logging.Warn("Logs", "Log stream %s ended: %v", s, err)
				send(gctx, out, Lines{Target: TargetPodLog, Lines: []string{prefix + "\x1b[31m" + err.Error() + "\x1b[39m"}, Gen: opts.Gen})
			}
			return nil
		})
	}
	return g.Wait()
}

func (c *Client) followContainer(ctx context.Context, s LogStream, f Filter, prefix string, opts LogOptions, out chan<- Event) error {
	podOpts := &corev1.PodLogOptions{Container: s.Container, Follow: opts.Follow}
	if opts.TailLines > 0 {
		tail := opts.TailLines
		podOpts.TailLines = &tail
	}
	rc, err := c.clientset.CoreV1().Pods(s.Namespace).GetLogs(s.Pod, podOpts).Stream(ctx)
	if err != nil {
		return fmt.Errorf("failed to open log stream: %w", err)
	}
	defer rc.Close()

	lines := make(chan string)
	scanErr := make(chan error, 1)
	go func() {
		defer close(lines)
		sc := bufio.NewScanner(rc)
		sc.Buffer(make([]byte, 0, 64*1024), maxLogLineSize)
		for sc.Scan() {
			select {
			case lines <- sc.Text():
			case <-ctx.Done():
				return
			}
		}
		scanErr <- sc.Err()
	}()

	// Batch whatever is already available so a busy log does not produce
	// one event per line.
	var batch []string
	for {
		line, ok := <-lines
		if !ok {
			break
		}
		batch = appendMatch(batch, f, prefix, line)
	drain:
		for len(batch) < logBatchSize {
			select {
			case line, ok = <-lines:
				if !ok {
					break drain
				}
				batch = appendMatch(batch, f, prefix, line)
			default:
				break drain
			}
		}
		if len(batch) > 0 {
			if !send(ctx, out, Lines{Target: TargetPodLog, Lines: batch, Gen: opts.Gen}) {
				return ctx.Err()
			}
			batch = nil
		}
		if !ok {
			break
		}
	}
	select {
	case err := <-scanErr:
		return err
	default:
		return ctx.Err()
	}
}

func appendMatch(batch []string, f Filter, prefix, line string) []string {
	if !f.MatchLog(line) {
		return batch
	}
	return append(batch, prefix+strings.TrimRight(line, "\r"))
}

// send delivers ev unless ctx ends first.
func send(ctx context.Context, out chan<- Event, ev Event) bool {
	select {
	case out <- ev:
		return true
	case <-ctx.Done():
		return false
	}
}
