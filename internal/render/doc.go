// Package render turns dashboard charts into output.
//
// A [Chart] is renderer-agnostic: titled axes with a [Scale] each, and a
// list of line or bar [Series]. Three renderers are provided:
//
//   - [ASCII]: asciigraph plots for plain terminal output
//   - [Braille]: braille-dot canvas panels for the interactive TUI
//   - [SVG]: vector charts for the web dashboard and file export
//
// Values a scale cannot show (missing, or non-positive on a log axis) are
// left out of the drawing rather than clamped.
package render
