// Package window routes input through the Window → Tab → Widget hierarchy.
//
// A Window shows one Tab at a time and at most one popup. Keys go to the
// popup when one is open, otherwise to the active tab's focused widget.
// Mouse events are hit-tested against widget areas; a left press moves
// focus, motion sets the hover, and the event is then forwarded to the
// focused widget. Window-level bindings are left to the caller, which
// tries them when a widget reports the event as ignored.
package window
