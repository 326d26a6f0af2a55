// Package supershape builds closed 3D polygon meshes from the Superformula,
// Johan Gielis' generalization of the circle and ellipse equations.
//
// A single Superformula curve, described by [Params], maps an angle to a
// radius:
//
//	r(φ) = (|cos(mφ/4)/a|^n2 + |sin(mφ/4)/b|^n3)^(−1/n1)
//
// A supershape is the spherical product of two such curves: one swept around
// the z axis (longitude) and one from pole to pole (latitude). Varying the
// twelve parameters produces spheres, rounded cubes, stars, flowers and
// countless organic shapes.
//
// # Building meshes
//
// [Build] samples both curves on a [Resolution] grid and returns a [Mesh].
// Meshes are watertight: the longitude seam is closed by construction and the
// poles collapse into single apex vertices, so every mesh is a closed
// surface of Euler characteristic 2 with outward-facing polygons. The
// vertex and face order is fixed, so building the same inputs twice yields
// identical meshes, regardless of how many workers [BuildOpt] uses.
//
// Building never substitutes values for points where the formula is
// undefined. Invalid parameters produce a [*DomainError], wrapped in a
// [*SampleError] naming the failing axis and sample; an unusable resolution
// or scale produces a [*ConfigError].
//
// # Working with meshes
//
// Meshes are plain values. Operations return new meshes and leave their
// receiver alone:
//
//   - Affine transformations (see [Mesh.Transform] and [Affine])
//   - Normals and areas (see [Mesh.FaceNormal] and [Mesh.VertexNormals])
//   - Welding nearby vertices (see [Mesh.Weld])
//   - Triangulation (see [Mesh.Triangulate])
//   - Flat float32 buffers for GPU and host APIs (see [Mesh.Buffers])
//
// Subdivision lives in the subdiv sub-package, and the config sub-package
// describes a whole build pipeline as a TOML or YAML document.
//
// # Presets
//
// [Presets] lists a handful of named parameter pairs, such as "Starfish" and
// "RoundCube", that make good starting points for exploration.
//
// # Logging
//
// The package is silent by default. Install a [log/slog.Logger] with
// [SetLogger] to receive debug messages about each pipeline stage.
package supershape
