package kube

// Target names the pane an event is meant for.
type Target int

const (
	TargetPods Target = iota
	TargetPodLog
	TargetConfigs
	TargetConfigRaw
	TargetEvents
	TargetAPI
	TargetYAML
)

var targetNames = map[Target]string{
	TargetPods:      "pods",
	TargetPodLog:    "pod-log",
	TargetConfigs:   "configs",
	TargetConfigRaw: "config-raw",
	TargetEvents:    "events",
	TargetAPI:       "api",
	TargetYAML:      "yaml",
}

// String makes Target satisfy the fmt.Stringer interface.
func (t Target) String() string {
	if name, ok := targetNames[t]; ok {
		return name
	}
	return "unknown"
}

// Event is a message from the cluster collaborator to the UI.
type Event interface {
	isEvent()
}

// Producer generations let the UI drop events that were queued by a
// producer it has since replaced. Gen is the poller's client generation for
// Table, Replace and Error, and the log stream generation for Lines.

// Table is a full snapshot of a tabular resource list.
type Table struct {
	Target Target
	Header []string
	Rows   [][]string
	Gen    int
}

// Lines appends lines to a pane.
type Lines struct {
	Target Target
	Lines  []string
	Gen    int
}

// Replace replaces the content of a pane.
type Replace struct {
	Target Target
	Lines  []string
	Gen    int
}

// Error reports a failure to produce content for a pane.
type Error struct {
	Target Target
	Err    error
	Gen    int
}

// Namespaces lists the namespaces of the current context.
type Namespaces struct {
	Items []string
}

// Contexts lists the kubeconfig contexts.
type Contexts struct {
	Items   []string
	Current string
}

// APIResources lists the listable API resources of the cluster.
type APIResources struct {
	Items []APIResource
}

// CurrentContext reports a completed context switch.
type CurrentContext struct {
	Name       string
	Namespaces []string
}

// YAMLNames lists the objects of a kind for the YAML name picker.
type YAMLNames struct {
	Resource APIResource
	Items    []string
}

func (Table) isEvent()          {}
func (Lines) isEvent()          {}
func (Replace) isEvent()        {}
func (Error) isEvent()          {}
func (Namespaces) isEvent()     {}
func (Contexts) isEvent()       {}
func (APIResources) isEvent()   {}
func (CurrentContext) isEvent() {}
func (YAMLNames) isEvent()      {}

// Column returns the value of the named column of row.
func Column(header, row []string, name string) (string, bool) {
	for i, h := range header {
		if h == name && i < len(row) {
			return row[i], true
		}
	}
	return "", false
}
