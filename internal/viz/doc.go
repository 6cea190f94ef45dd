// Package viz renders live simulations in the terminal.
//
// The viewer draws each observable as a colored heatmap over the graph's
// layout positions, with a running history sparkline underneath. It runs in
// two modes: local, where the viewer owns the simulation and steps it on a
// frame timer, and remote, where frames arrive from a publisher over the
// transport channel.
package viz
