// Package fractal grows branching tree skeletons.
//
// A tree starts from a single vertex. The root branch is extruded from it one
// vertex at a time, each new segment repeating the previous one and then bent
// by a random rotation about the current tip. Every vertex of a branch may
// sprout a child branch with half the vertex count and half the segment
// length, and so on until branches are a single vertex long.
//
// Geometry is written through a MeshBuilder. Alongside the mesh a Tree
// records which vertices belong to which branch and how branches nest, so
// that a skin radius can later be applied per branch (see SkinRadii).
package fractal
