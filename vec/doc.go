// Package vec provides the small amount of 3-D math the transform engine
// needs: float and block vectors, cardinal directions, and affine maps.
//
// [Affine] values satisfy the transform package's leaf contract, so the
// catalog can hand them straight to the tree builder.
package vec
