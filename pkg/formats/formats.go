// Package formats reads and writes fractal tree skeletons: Wavefront OBJ for
// the mesh and a YAML document for the branch tree.
package formats
