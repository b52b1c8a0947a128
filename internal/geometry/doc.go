// Package geometry holds the two pure pieces of seat finding: the proximity
// matcher, which decides which landmarks are near a seat in grid space, and the
// layout projector, which turns a classroom grid into drawable geometry.
//
// Grid space uses 1-based rows and columns for seats. Landmark positions share
// the same axes (X along columns, Y along rows) but are real-valued and may sit
// outside the grid, e.g. a board at Y = -0.8 above the first row.
//
// Nothing in this package holds state; identical inputs always produce identical
// output.
package geometry
