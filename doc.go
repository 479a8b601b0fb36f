// Package mrt builds machine-readable astronomical tables. It infers a
// Fortran format for every column of a dataset, serializes the rows
// into the fixed-width ASCII layout used for catalog submissions, and
// assembles the ReadMe document that describes each file byte by byte.
// Existing machine-readable tables can be read back, annotated with
// value bounds, and re-exported.
package mrt
