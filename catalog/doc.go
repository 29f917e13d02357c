// Package catalog is a registry of named transforms for the expression
// language.
//
// A [Catalog] implements [lang.Registry] and [lang.AliasLister]. Each alias
// maps to a [Factory] that turns the operand's arguments into a transform
// node. Numeric arguments are arithmetic expressions, so "rotate 45*2" and
// "rotate 90" build the same leaf.
//
// [Default] returns a catalog holding the built-in transforms:
//
//	identity                 no change
//	rotate <y> [x] [z]       rotate by degrees about Y, then X, then Z
//	flip [x|y|z]             mirror across an axis (default x)
//	scale <s> | <sx sy sz>   scale uniformly or per axis
//	offset <dx dy dz>        translate
//	repeat <n> <expr>        apply expr n times in sequence
package catalog
