// Package nuclide loads and orders the reference data shown alongside the
// leaching results: initial inventories (moles) and decay constants, merged
// per nuclide.
package nuclide
