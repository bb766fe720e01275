// Package gosiegeom is a planar and spatial geometry library whose
// combinatorial decisions are exact.
//
// Every finite float64 is a rational number, so orientation and
// in-circle/in-sphere predicates are evaluated first with outward-rounded
// intervals and, when the sign is uncertain, again with arbitrary precision
// rationals (see package rational). Algorithms built on these predicates
// never see an inconsistent answer:
//
//   - ConvexHull2: monotone chain hull.
//   - NewDelaunay2: incremental Delaunay triangulation with ghost triangles.
//   - (*Delaunay2).InsertConstraint and TriangulatePolygon: constrained
//     Delaunay triangulation of polygons with holes.
//   - TriangulateEC: ear clipping with hole bridging.
//   - Polygon2: BSP-tree polygon booleans on rational edges.
//   - MinAreaBox2, MinAreaCircle2, MinVolumeSphere3, BoundingCone3:
//     minimum bounding volumes.
//   - IntersectSegments2, PointInPolygon2 and distance queries.
//
// Meshes can be read and written as ASCII PLY or DXF with Mesh3.
//
// The package logs through log/slog and is silent by default; see
// SetLogger.
package gosiegeom
