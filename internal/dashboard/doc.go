// Package dashboard turns the user's control values into everything one
// render pass displays.
//
// The flow is a pure function of its input: a [Selections] value goes in,
// a [RenderModel] comes out, and the charts derived from it are handed to
// whichever renderer the caller uses (terminal, TUI or web). Nothing is kept
// between renders; every Build re-reads its input files.
package dashboard
