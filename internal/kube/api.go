package kube

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"
	"k8s.io/apimachinery/pkg/runtime/schema"
	"k8s.io/client-go/discovery"
	"sigs.k8s.io/yaml"
)

// APIResource identifies a listable resource type.
type APIResource struct {
	Group      string
	Version    string
	Resource   string
	Kind       string
	Namespaced bool
}

// Name returns the resource in kubectl form, e.g. "deployments.apps".
func (r APIResource) Name() string {
	if r.Group == "" {
		return r.Resource
	}
	return r.Resource + "." + r.Group
}

// GVR returns the group version resource for the dynamic client.
func (r APIResource) GVR() schema.GroupVersionResource {
	return schema.GroupVersionResource{Group: r.Group, Version: r.Version, Resource: r.Resource}
}

// FindAPIResource returns the resource whose Name is name.
func FindAPIResource(resources []APIResource, name string) (APIResource, bool) {
	for _, r := range resources {
		if r.Name() == name {
			return r, true
		}
	}
	return APIResource{}, false
}

// APIResources discovers the cluster's listable resources in their preferred
// versions, sorted by name. Partial discovery failures are tolerated.
func (c *Client) APIResources(ctx context.Context) ([]APIResource, error) {
	groups, lists, err := c.discovery.ServerGroupsAndResources()
	if err != nil && !discovery.IsGroupDiscoveryFailedError(err) {
		return nil, fmt.Errorf("failed to discover API resources: %w", err)
	}
	preferred := map[string]string{}
	for _, g := range groups {
		if _, ok := preferred[g.Name]; !ok && g.PreferredVersion.Version != "" {
			preferred[g.Name] = g.PreferredVersion.Version
		}
	}

	seen := map[string]bool{}
	var out []APIResource
	for _, list := range lists {
		gv, perr := schema.ParseGroupVersion(list.GroupVersion)
		if perr != nil {
			continue
		}
		if v, ok := preferred[gv.Group]; ok && v != gv.Version {
			continue
		}
		for _, r := range list.APIResources {
			if strings.Contains(r.Name, "/") || !hasVerb(r.Verbs, "list") {
				continue
			}
			res := APIResource{
				Group:      gv.Group,
				Version:    gv.Version,
				Resource:   r.Name,
				Kind:       r.Kind,
				Namespaced: r.Namespaced,
			}
			if seen[res.Name()] {
				continue
			}
			seen[res.Name()] = true
			out = append(out, res)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name() < out[j].Name() })
	return out, nil
}

func hasVerb(verbs metav1.Verbs, verb string) bool {
	for _, v := range verbs {
		if v == verb {
			return true
		}
	}
	return false
}

func (c *Client) listObjects(ctx context.Context, r APIResource, namespaces []string) ([]unstructured.Unstructured, error) {
	if !r.Namespaced {
		list, err := c.dynamic.Resource(r.GVR()).List(ctx, metav1.ListOptions{})
		if err != nil {
			return nil, fmt.Errorf("failed to list %s: %w", r.Name(), err)
		}
		return list.Items, nil
	}
	var items []unstructured.Unstructured
	for _, ns := range namespaces {
		list, err := c.dynamic.Resource(r.GVR()).Namespace(ns).List(ctx, metav1.ListOptions{})
		if err != nil {
			return nil, fmt.Errorf("failed to list %s in %s: %w", r.Name(), ns, err)
		}
		items = append(items, list.Items...)
	}
	return items, nil
}

// APILines renders a NAME/AGE listing for each selected resource. Resources
// are fetched concurrently and printed in selection order.
func (c *Client) APILines(ctx context.Context, resources []APIResource, namespaces []string) ([]string, error) {
	sections := make([][]string, len(resources))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(4)
	for i, r := range resources {
		g.Go(func() error {
			items, err := c.listObjects(gctx, r, namespaces)
			if err != nil {
				sections[i] = []string{fmt.Sprintf("\x1b[1m[ %s ]\x1b[22m", r.Name()), "\x1b[31m" + err.Error() + "\x1b[39m", ""}
				return nil
			}
			sections[i] = apiSection(r, items, len(namespaces) > 1)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	var lines []string
	for _, s := range sections {
		lines = append(lines, s...)
	}
	return lines, nil
}

func apiSection(r APIResource, items []unstructured.Unstructured, multi bool) []string {
	lines := []string{fmt.Sprintf("\x1b[1m[ %s ]\x1b[22m", r.Name())}
	if len(items) == 0 {
		return append(lines, "  No resources found", "")
	}
	showNS := multi && r.Namespaced
	names := make([]string, len(items))
	width := len("NAME")
	for i, it := range items {
		names[i] = it.GetName()
		if showNS {
			names[i] = it.GetNamespace() + "/" + names[i]
		}
		width = max(width, len(names[i]))
	}
	lines = append(lines, fmt.Sprintf("  \x1b[90m%-*s   AGE\x1b[39m", width, "NAME"))
	for i, it := range items {
		lines = append(lines, fmt.Sprintf("  %-*s   %s", width, names[i], age(it.GetCreationTimestamp())))
	}
	return append(lines, "")
}

// ObjectNames lists the objects of r as "namespace/name" for namespaced
// resources and "name" otherwise.
func (c *Client) ObjectNames(ctx context.Context, r APIResource, namespaces []string) ([]string, error) {
	items, err := c.listObjects(ctx, r, namespaces)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(items))
	for _, it := range items {
		if r.Namespaced {
			names = append(names, it.GetNamespace()+"/"+it.GetName())
		} else {
			names = append(names, it.GetName())
		}
	}
	sort.Strings(names)
	return names, nil
}

// RawYAML fetches one object and renders it as YAML without managed fields.
// ref is a value returned by ObjectNames.
func (c *Client) RawYAML(ctx context.Context, r APIResource, ref string) ([]string, error) {
	namespace, name := "", ref
	if r.Namespaced {
		var ok bool
		namespace, name, ok = strings.Cut(ref, "/")
		if !ok {
			return nil, fmt.Errorf("expected namespace/name, got %q", ref)
		}
	}

	var (
		obj *unstructured.Unstructured
		err error
	)
	if r.Namespaced {
		obj, err = c.dynamic.Resource(r.GVR()).Namespace(namespace).Get(ctx, name, metav1.GetOptions{})
	} else {
		obj, err = c.dynamic.Resource(r.GVR()).Get(ctx, name, metav1.GetOptions{})
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get %s %s: %w", r.Name(), ref, err)
	}
	unstructured.RemoveNestedField(obj.Object, "metadata", "managedFields")

	out, err := yaml.Marshal(obj.Object)
	if err != nil {
		return nil, fmt.Errorf("failed to render %s %s: %w", r.Name(), ref, err)
	}
	return strings.Split(strings.TrimRight(string(out), "\n"), "\n"), nil
}
