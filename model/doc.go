// Package model defines the core value types shared by every pointsearch package.
//
// # Identity
//
//   - ID: dense, ordinal point identifier (uint32), the position of the point in its input
//
// # Geometry
//
//   - Point: an indexed 2D point with its ID
//   - Centroid: a query-time reference point, never stored in an index
//   - BoundingBox: closed axis-aligned box, used for quadtree nodes and query squares
//   - Quadrant: one of the four equal-area children of a box
//
// All types are plain values and safe to copy.
package model
