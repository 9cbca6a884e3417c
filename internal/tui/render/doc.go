// Package render provides the cell canvas widgets paint into. A frame is
// drawn bottom-up (tabs, then popups) and serialized once per View.
package render
