package kube

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// ErrEmptyValue is returned for an attribute without a value.
var ErrEmptyValue = errors.New("attribute has no value")

// ResourceKind is a workload kind a query can target by name.
type ResourceKind string

const (
	ResourcePod         ResourceKind = "pod"
	ResourceDaemonSet   ResourceKind = "daemonset"
	ResourceDeployment  ResourceKind = "deployment"
	ResourceJob         ResourceKind = "job"
	ResourceReplicaSet  ResourceKind = "replicaset"
	ResourceService     ResourceKind = "service"
	ResourceStatefulSet ResourceKind = "statefulset"
)

var resourceAliases = map[string]ResourceKind{
	"pod": ResourcePod, "po": ResourcePod,
	"daemonset": ResourceDaemonSet, "ds": ResourceDaemonSet,
	"deployment": ResourceDeployment, "deploy": ResourceDeployment,
	"job":        ResourceJob,
	"replicaset": ResourceReplicaSet, "rs": ResourceReplicaSet,
	"service": ResourceService, "svc": ResourceService,
	"statefulset": ResourceStatefulSet, "sts": ResourceStatefulSet,
}

var resourceName = regexp.MustCompile(`^[a-zA-Z0-9.-]+$`)

// Resource names one workload whose pods a query follows.
type Resource struct {
	Kind ResourceKind
	Name string
}

// Filter is a parsed log query.
type Filter struct {
	Pods              []*regexp.Regexp
	ExcludePods       []*regexp.Regexp
	Containers        []*regexp.Regexp
	ExcludeContainers []*regexp.Regexp
	Logs              []*regexp.Regexp
	ExcludeLogs       []*regexp.Regexp
	LabelSelector     string
	FieldSelector     string
	Resource          *Resource
}

// ParseFilter parses a whitespace separated log query. See the package
// documentation for the grammar.
func ParseFilter(query string) (Filter, error) {
	var f Filter
	tokens, err := splitQuery(query)
	if err != nil {
		return Filter{}, err
	}
	for _, tok := range tokens {
		if err := f.add(tok); err != nil {
			return Filter{}, err
		}
	}
	return f, nil
}

// token is one query term. sep is ":" for attributes, "/" for resources and
// empty for a bare value.
type token struct {
	key, sep, value string
}

func (f *Filter) add(t token) error {
	if t.sep == "/" {
		kind, ok := resourceAliases[t.key]
		if !ok {
			return fmt.Errorf("unknown resource kind %q", t.key)
		}
		if !resourceName.MatchString(t.value) {
			return fmt.Errorf("invalid %s name %q", kind, t.value)
		}
		if f.Resource != nil {
			return fmt.Errorf("only one resource may be given, got %s/%s and %s/%s", f.Resource.Kind, f.Resource.Name, kind, t.value)
		}
		f.Resource = &Resource{Kind: kind, Name: t.value}
		return nil
	}

	if t.value == "" {
		return fmt.Errorf("%s: %w", t.key, ErrEmptyValue)
	}
	switch t.key {
	case "labels", "label", "l":
		f.LabelSelector = joinSelector(f.LabelSelector, t.value)
		return nil
	case "fields", "field", "f":
		f.FieldSelector = joinSelector(f.FieldSelector, t.value)
		return nil
	}

	var dst *[]*regexp.Regexp
	switch t.key {
	case "pod", "po", "p", "":
		dst = &f.Pods
	case "!pod", "!po", "!p":
		dst = &f.ExcludePods
	case "container", "co", "c":
		dst = &f.Containers
	case "!container", "!co", "!c":
		dst = &f.ExcludeContainers
	case "log", "lo":
		dst = &f.Logs
	case "!log", "!lo":
		dst = &f.ExcludeLogs
	default:
		return fmt.Errorf("unknown attribute %q", t.key)
	}
	re, err := regexp.Compile(t.value)
	if err != nil {
		return fmt.Errorf("%s: invalid regex: %w", t.key, err)
	}
	*dst = append(*dst, re)
	return nil
}

func joinSelector(a, b string) string {
	if a == "" {
		return b
	}
	return a + "," + b
}

// splitQuery splits on unquoted whitespace. The key of each term ends at
// the first ':' or '/'; a term without either is a bare pod regex. Quotes
// are removed while backslash escapes inside them are kept for the regex.
func splitQuery(q string) ([]token, error) {
	var (
		tokens []token
		cur    strings.Builder
		sawSep bool
		t      token
		quote  rune
		quoted bool
	)
	flush := func() {
		if !sawSep {
			if cur.Len() == 0 && !quoted {
				return
			}
			t = token{value: cur.String()}
		} else {
			t.value = cur.String()
		}
		tokens = append(tokens, t)
		cur.Reset()
		sawSep, quoted, t = false, false, token{}
	}

	runes := []rune(q)
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		switch {
		case quote != 0:
			if r == '\\' && i+1 < len(runes) {
				cur.WriteRune(r)
				cur.WriteRune(runes[i+1])
				i++
				continue
			}
			if r == quote {
				quote = 0
				continue
			}
			cur.WriteRune(r)
		case r == '"' || r == '\'':
			quote, quoted = r, true
		case r == ' ' || r == '\t' || r == '\n':
			flush()
		case !sawSep && !quoted && (r == ':' || r == '/'):
			t = token{key: cur.String(), sep: string(r)}
			cur.Reset()
			sawSep = true
		default:
			cur.WriteRune(r)
		}
	}
	if quote != 0 {
		return nil, fmt.Errorf("unterminated %c quote", quote)
	}
	flush()
	return tokens, nil
}

func matchAny(res []*regexp.Regexp, s string) bool {
	for _, re := range res {
		if re.MatchString(s) {
			return true
		}
	}
	return false
}

func match(include, exclude []*regexp.Regexp, s string) bool {
	if len(include) > 0 && !matchAny(include, s) {
		return false
	}
	return !matchAny(exclude, s)
}

// MatchPod reports whether a pod name passes the pod attributes.
func (f Filter) MatchPod(name string) bool { return match(f.Pods, f.ExcludePods, name) }

// MatchContainer reports whether a container name passes the container
// attributes.
func (f Filter) MatchContainer(name string) bool {
	return match(f.Containers, f.ExcludeContainers, name)
}

// MatchLog reports whether a log line passes the log attributes.
func (f Filter) MatchLog(line string) bool { return match(f.Logs, f.ExcludeLogs, line) }
