// Package kube is the cluster collaborator of kubedash.
//
// It reads the cluster through client-go and turns what it finds into
// Events for the UI: pod, config and event tables, log lines, API resource
// listings and raw YAML. A Poller refreshes the tabular panes on an
// interval using a snapshot of the shared Selection, and StreamLogs follows
// container logs narrowed by a small query language:
//
//	pod:<regex>        !pod:<regex>        (also po:, p:)
//	container:<regex>  !container:<regex>  (also co:, c:)
//	log:<regex>        !log:<regex>        (also lo:)
//	labels:<selector>  fields:<selector>   (also label:, l:, field:, f:)
//	deploy/<name>      (pod/, ds/, deployment/, job/, rs/, svc/, sts/ ...)
//
// Regular expressions may be quoted with single or double quotes to include
// spaces. A bare word is treated as a pod regex.
//
// Everything that blocks takes a context.Context; cancelling it stops the
// poller, log streams and the kubeconfig watcher.
package kube
