package kube

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/util/duration"
)

// now is mockable for age columns.
var now = time.Now

func age(t metav1.Time) string {
	if t.IsZero() {
		return "<unknown>"
	}
	return duration.HumanDuration(now().Sub(t.Time))
}

// withNamespace prefixes a NAMESPACE column when more than one namespace is
// shown.
func withNamespace(multi bool, ns string, cols ...string) []string {
	if multi {
		return append([]string{ns}, cols...)
	}
	return cols
}

// PodTable lists the pods of namespaces.
func (c *Client) PodTable(ctx context.Context, namespaces []string) (Table, error) {
	multi := len(namespaces) > 1
	t := Table{
		Target: TargetPods,
		Header: withNamespace(multi, "NAMESPACE", "NAME", "READY", "STATUS", "RESTARTS", "AGE", "IP"),
	}
	for _, ns := range namespaces {
		list, err := c.clientset.CoreV1().Pods(ns).List(ctx, metav1.ListOptions{})
		if err != nil {
			return Table{}, fmt.Errorf("failed to list pods in %s: %w", ns, err)
		}
		sort.Slice(list.Items, func(i, j int) bool { return list.Items[i].Name < list.Items[j].Name })
		for _, p := range list.Items {
			ready, restarts := containerCounts(p.Status.ContainerStatuses)
			t.Rows = append(t.Rows, withNamespace(multi, p.Namespace,
				p.Name,
				fmt.Sprintf("%d/%d", ready, len(p.Spec.Containers)),
				podStatus(&p),
				strconv.Itoa(restarts),
				age(p.CreationTimestamp),
				p.Status.PodIP,
			))
		}
	}
	return t, nil
}

func containerCounts(statuses []corev1.ContainerStatus) (ready, restarts int) {
	for _, s := range statuses {
		if s.Ready {
			ready++
		}
		restarts += int(s.RestartCount)
	}
	return ready, restarts
}

// podStatus mirrors the STATUS column of kubectl get pods.
func podStatus(p *corev1.Pod) string {
	if p.DeletionTimestamp != nil {
		return "Terminating"
	}
	status := string(p.Status.Phase)
	if p.Status.Reason != "" {
		status = p.Status.Reason
	}
	for _, s := range p.Status.InitContainerStatuses {
		switch {
		case s.State.Terminated != nil && s.State.Terminated.ExitCode == 0:
			continue
		case s.State.Waiting != nil && s.State.Waiting.Reason != "" && s.State.Waiting.Reason != "PodInitializing":
			return "Init:" + s.State.Waiting.Reason
		case s.State.Terminated != nil:
			return "Init:Error"
		default:
			return "Init"
		}
	}
	for _, s := range p.Status.ContainerStatuses {
		if s.State.Waiting != nil && s.State.Waiting.Reason != "" {
			status = s.State.Waiting.Reason
		} else if s.State.Terminated != nil && s.State.Terminated.Reason != "" {
			status = s.State.Terminated.Reason
		}
	}
	if status == "" {
		return "Unknown"
	}
	return status
}

// Config kinds shown in the configs pane.
const (
	KindConfigMap = "ConfigMap"
	KindSecret    = "Secret"
)

// ConfigTable lists the config maps and secrets of namespaces.
func (c *Client) ConfigTable(ctx context.Context, namespaces []string) (Table, error) {
	multi := len(namespaces) > 1
	t := Table{
		Target: TargetConfigs,
		Header: withNamespace(multi, "NAMESPACE", "NAME", "KIND", "DATA", "AGE"),
	}
	for _, ns := range namespaces {
		cms, err := c.clientset.CoreV1().ConfigMaps(ns).List(ctx, metav1.ListOptions{})
		if err != nil {
			return Table{}, fmt.Errorf("failed to list configmaps in %s: %w", ns, err)
		}
		secrets, err := c.clientset.CoreV1().Secrets(ns).List(ctx, metav1.ListOptions{})
		if err != nil {
			return Table{}, fmt.Errorf("failed to list secrets in %s: %w", ns, err)
		}

		var rows [][]string
		for _, cm := range cms.Items {
			rows = append(rows, withNamespace(multi, ns, cm.Name, KindConfigMap,
				strconv.Itoa(len(cm.Data)+len(cm.BinaryData)), age(cm.CreationTimestamp)))
		}
		for _, s := range secrets.Items {
			rows = append(rows, withNamespace(multi, ns, s.Name, KindSecret,
				strconv.Itoa(len(s.Data)), age(s.CreationTimestamp)))
		}
		nameCol := 0
		if multi {
			nameCol = 1
		}
		sort.SliceStable(rows, func(i, j int) bool { return rows[i][nameCol] < rows[j][nameCol] })
		t.Rows = append(t.Rows, rows...)
	}
	return t, nil
}

// ConfigData renders the data of one config map or secret as lines. Secret
// values are shown decoded.
func (c *Client) ConfigData(ctx context.Context, namespace, kind, name string) ([]string, error) {
	data := map[string]string{}
	switch kind {
	case KindConfigMap:
		cm, err := c.clientset.CoreV1().ConfigMaps(namespace).Get(ctx, name, metav1.GetOptions{})
		if err != nil {
			return nil, fmt.Errorf("failed to get configmap %s/%s: %w", namespace, name, err)
		}
		for k, v := range cm.Data {
			data[k] = v
		}
		for k, v := range cm.BinaryData {
			data[k] = fmt.Sprintf("<binary %d bytes>", len(v))
		}
	case KindSecret:
		s, err := c.clientset.CoreV1().Secrets(namespace).Get(ctx, name, metav1.GetOptions{})
		if err != nil {
			return nil, fmt.Errorf("failed to get secret %s/%s: %w", namespace, name, err)
		}
		for k, v := range s.Data {
			data[k] = string(v)
		}
	default:
		return nil, fmt.Errorf("unknown config kind %q", kind)
	}

	keys := make([]string, 0, len(data))
	for k := range data {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var lines []string
	for _, k := range keys {
		v := strings.TrimRight(data[k], "\n")
		if !strings.Contains(v, "\n") {
			lines = append(lines, fmt.Sprintf("\x1b[1m%s\x1b[22m: %s", k, v))
			continue
		}
		lines = append(lines, fmt.Sprintf("\x1b[1m%s\x1b[22m: |", k))
		for _, l := range strings.Split(v, "\n") {
			lines = append(lines, "  "+l)
		}
	}
	return lines, nil
}

// EventLines renders the events of namespaces, oldest first. Each event is
// one item of two lines.
func (c *Client) EventLines(ctx context.Context, namespaces []string) ([]string, error) {
	var events []corev1.Event
	for _, ns := range namespaces {
		list, err := c.clientset.CoreV1().Events(ns).List(ctx, metav1.ListOptions{})
		if err != nil {
			return nil, fmt.Errorf("failed to list events in %s: %w", ns, err)
		}
		events = append(events, list.Items...)
	}
	sort.SliceStable(events, func(i, j int) bool {
		return eventTime(events[i]).Before(eventTime(events[j]))
	})

	multi := len(namespaces) > 1
	lines := make([]string, 0, len(events))
	for _, e := range events {
		color := "\x1b[32m"
		if e.Type == corev1.EventTypeWarning {
			color = "\x1b[33m"
		}
		object := strings.ToLower(e.InvolvedObject.Kind) + "/" + e.InvolvedObject.Name
		if multi {
			object = e.Namespace + "/" + object
		}
		head := fmt.Sprintf("\x1b[90m%s\x1b[39m %s%s\x1b[39m %s %s",
			age(metav1.NewTime(eventTime(e))), color, e.Type, object, e.Reason)
		lines = append(lines, head+"\n  "+strings.TrimSpace(e.Message))
	}
	return lines, nil
}

func eventTime(e corev1.Event) time.Time {
	switch {
	case !e.LastTimestamp.IsZero():
		return e.LastTimestamp.Time
	case !e.EventTime.IsZero():
		return e.EventTime.Time
	case !e.FirstTimestamp.IsZero():
		return e.FirstTimestamp.Time
	}
	return e.CreationTimestamp.Time
}
