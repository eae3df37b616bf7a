// Package scenario maps the two leaching parameters, containment-failure
// onset and leach completion, to one of sixteen precomputed result tables.
//
// Both parameters are closed enumerations. A [Key] built from [Onsets] and
// [Completions], or parsed with [ParseOnset] and [ParseCompletion], always
// resolves; values forged outside those sets fail with
// dataset.ErrSelectionOutOfRange instead of falling back to a default.
package scenario
