package kube

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"sort"

	"k8s.io/client-go/discovery"
	"k8s.io/client-go/dynamic"
	"k8s.io/client-go/kubernetes"
	"k8s.io/client-go/rest"
	"k8s.io/client-go/tools/clientcmd"

	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
)

const (
	clientQPS   = 50
	clientBurst = 100
)

// Client bundles the API clients of one kubeconfig context.
type Client struct {
	context   string
	namespace string
	clientset kubernetes.Interface
	dynamic   dynamic.Interface
	discovery discovery.DiscoveryInterface
}

// Mockable constructors.
var newClientset = func(c *rest.Config) (kubernetes.Interface, error) {
	return kubernetes.NewForConfig(c)
}

var newDynamic = func(c *rest.Config) (dynamic.Interface, error) {
	return dynamic.NewForConfig(c)
}

func clientConfig(kubeconfig, contextName string) clientcmd.ClientConfig {
	rules := clientcmd.NewDefaultClientConfigLoadingRules()
	if kubeconfig != "" {
		rules.ExplicitPath = kubeconfig
	}
	overrides := &clientcmd.ConfigOverrides{CurrentContext: contextName}
	return clientcmd.NewNonInteractiveDeferredLoadingClientConfig(rules, overrides)
}

// NewClient builds a client for contextName, or for the kubeconfig's current
// context when contextName is empty.
func NewClient(kubeconfig, contextName string) (*Client, error) {
	cc := clientConfig(kubeconfig, contextName)
	raw, err := cc.RawConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load kubeconfig: %w", err)
	}
	if contextName == "" {
		contextName = raw.CurrentContext
	}
	if _, ok := raw.Contexts[contextName]; !ok {
		return nil, fmt.Errorf("context %q not found in kubeconfig", contextName)
	}

	restConfig, err := cc.ClientConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to build REST config for context %q: %w", contextName, err)
	}
	restConfig.QPS = clientQPS
	restConfig.Burst = clientBurst

	namespace, _, err := cc.Namespace()
	if err != nil {
		return nil, fmt.Errorf("failed to resolve namespace for context %q: %w", contextName, err)
	}

	cs, err := newClientset(restConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create clientset: %w", err)
	}
	dyn, err := newDynamic(restConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create dynamic client: %w", err)
	}
	return NewClientFromInterfaces(contextName, namespace, cs, dyn), nil
}

// NewClientFromInterfaces wraps existing API clients, typically fakes.
func NewClientFromInterfaces(contextName, namespace string, cs kubernetes.Interface, dyn dynamic.Interface) *Client {
	if namespace == "" {
		namespace = metav1.NamespaceDefault
	}
	return &Client{
		context:   contextName,
		namespace: namespace,
		clientset: cs,
		dynamic:   dyn,
		discovery: cs.Discovery(),
	}
}

// Context returns the kubeconfig context name.
func (c *Client) Context() string { return c.context }

// DefaultNamespace returns the namespace configured for the context.
func (c *Client) DefaultNamespace() string { return c.namespace }

// Namespaces lists the cluster's namespaces sorted by name.
func (c *Client) Namespaces(ctx context.Context) ([]string, error) {
	list, err := c.clientset.CoreV1().Namespaces().List(ctx, metav1.ListOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to list namespaces: %w", err)
	}
	names := make([]string, 0, len(list.Items))
	for _, ns := range list.Items {
		names = append(names, ns.Name)
	}
	sort.Strings(names)
	return names, nil
}

// LoadContexts returns the kubeconfig's context names and its current context.
var LoadContexts = func(kubeconfig string) ([]string, string, error) {
	raw, err := clientConfig(kubeconfig, "").RawConfig()
	if err != nil {
		return nil, "", fmt.Errorf("failed to load kubeconfig: %w", err)
	}
	names := make([]string, 0, len(raw.Contexts))
	for name := range raw.Contexts {
		names = append(names, name)
	}
	slices.Sort(names)
	return names, raw.CurrentContext, nil
}

// KubeconfigPath resolves the file to watch for kubeconfig changes: the
// explicit path, the first KUBECONFIG entry, or ~/.kube/config.
func KubeconfigPath(explicit string) string {
	if explicit != "" {
		return explicit
	}
	if env := os.Getenv(clientcmd.RecommendedConfigPathEnvVar); env != "" {
		for _, p := range filepath.SplitList(env) {
			if p != "" {
				return p
			}
		}
	}
	return clientcmd.RecommendedHomeFile
}
