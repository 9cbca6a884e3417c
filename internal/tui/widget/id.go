package widget

// ID identifies a widget. The set of widgets is closed, so IDs are an enum
// rather than free-form strings.
type ID int

const (
	None ID = iota
	PodList
	PodLog
	ConfigList
	ConfigRaw
	EventLog
	APILog
	YAMLView
	ContextPopup
	NamespacePopup
	SingleNamespacePopup
	APIPopup
	YAMLKindPopup
	YAMLNamePopup
	HelpPopup
	LogPopup
	LogQueryPopup
)

var idNames = map[ID]string{
	None:                 "none",
	PodList:              "pod-list",
	PodLog:               "pod-log",
	ConfigList:           "config-list",
	ConfigRaw:            "config-raw",
	EventLog:             "event",
	APILog:               "api",
	YAMLView:             "yaml",
	ContextPopup:         "context",
	NamespacePopup:       "namespaces",
	SingleNamespacePopup: "namespace",
	APIPopup:             "api-select",
	YAMLKindPopup:        "yaml-kind",
	YAMLNamePopup:        "yaml-name",
	HelpPopup:            "help",
	LogPopup:             "log",
	LogQueryPopup:        "log-query",
}

// String makes ID satisfy the fmt.Stringer interface.
func (id ID) String() string {
	if name, ok := idNames[id]; ok {
		return name
	}
	return "unknown"
}

// ParseID looks up an ID by its name.
func ParseID(name string) (ID, bool) {
	for id, n := range idNames {
		if n == name {
			return id, true
		}
	}
	return None, false
}
