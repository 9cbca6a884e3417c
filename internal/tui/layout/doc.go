// Package layout partitions a screen area among the widgets of a tab.
//
// A layout is a serializable tree of Nodes: leaves name a widget slot and
// splits divide their area among weighted children along a Direction. A
// Describe function produces the tree for a root direction so the split
// orientation can be toggled at runtime.
package layout
