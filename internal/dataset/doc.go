// Package dataset provides the tabular primitives shared by the dashboard.
//
// A [Table] is a read-only, row-indexed grid of float64 values loaded from
// comma-separated files whose first column is the row key:
//
//   - [Decode]: parse a CSV stream into a [Table]
//   - [OuterJoin]: merge two tables on their row keys, keeping every key
//   - [Split]: cut a result table into its inside/outside matrix halves
//
// Missing cells are stored as NaN. Tables are never mutated after they are
// built; every transform returns a new value.
package dataset
