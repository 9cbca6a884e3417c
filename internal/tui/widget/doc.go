// Package widget implements the dashboard's panes and popup bodies: List,
// Text, SingleSelect and MultipleSelect. Widgets report what they did with
// an event through Result; selections travel back to the program as
// messages.
package widget
