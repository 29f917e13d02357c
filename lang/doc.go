// Package lang parses rich transform expressions and builds them into
// [transform.Node] trees.
//
// # Grammar
//
// Informal EBNF:
//
//	Expr     → Operand (Op Operand)*
//	Op       → '&' | ','
//	Operand  → Head Group*
//	Head     → Alias Arg* | Weight '%' Head? | ε
//	Group    → '(' <balanced text> ')' | '[' <balanced text> ']'
//	Weight   → <arithmetic evaluated by expr-lang>
//
// ',' separates alternatives, of which one is chosen at random by weight
// each time the tree is applied. '&' joins operands that apply together.
// '&' binds tighter than ',', and both are inert inside a group.
//
// # Resolution
//
// Each operand resolves in this order:
//
//  1. An empty head ("(a&b)") builds its groups, joined by ',', as a
//     sub-expression of weight 1.
//  2. A head whose first word is a registered alias is resolved by the
//     [Registry] with the remaining words and group contents as arguments.
//  3. A head containing '%' evaluates the text before it as the weight and
//     builds the rest, followed by any group contents, as a sub-expression.
//  4. Anything else is an unknown transform.
//
// A run of '&'-joined operands becomes one intersection whose weight is the
// sum of its members' weights. A lone operand is returned as-is, never
// wrapped in a one-member combinator.
//
// # Example
//
//	eng := lang.New(catalog.Default())
//	node, err := eng.Parse(ctx, "30%rotate 90,70%(flip x&offset 0 1 0)")
//
// # Errors
//
// Every failure is an [*Error] with a [Kind]. Errors raised inside a
// sub-expression are reported against the outer operand but keep the inner
// kind and cause, so errors.Is(err, ErrDanglingOperator) holds however deep
// the dangling '&' was.
package lang
