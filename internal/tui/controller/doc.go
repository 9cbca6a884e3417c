// Package controller wires the window, the widgets and the cluster
// collaborator into a Bubble Tea program.
//
// AppModel.Update is the only goroutine that touches widgets. Cluster
// events arrive through a buffered channel drained by a re-arming command,
// application log entries through the logging channel, and a periodic tick
// checks the Terminator that supervises the background producers.
package controller
