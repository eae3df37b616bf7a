// Package viz provides the terminal dashboard.
//
// The package implements an interactive TUI using the Bubble Tea framework:
//
//   - [App]: the dashboard program, four selection controls and three charts
//   - braille chart panels drawn by the render package
//   - Theme selection with built-in color schemes
//
// # Key Bindings
//
//	j/k, up/down     - Move between controls
//	h/l, left/right  - Change the selected control
//	Tab              - Cycle reference / inside / outside chart
//	T                - Cycle color themes
//	Q                - Quit
//
// Every change of a control triggers a complete rebuild of the render model;
// nothing from the previous render is reused.
package viz
