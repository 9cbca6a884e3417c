package cmd

import (
	"k8s.io/apimachinery/pkg/runtime"
	dynamicfake "k8s.io/client-go/dynamic/fake"
	"k8s.io/client-go/kubernetes/fake"

	"kubedash/internal/kube"
)

func testClient() *kube.Client {
	return kube.NewClientFromInterfaces("prod", "default",
		fake.NewSimpleClientset(),
		dynamicfake.NewSimpleDynamicClient(runtime.NewScheme()))
}
