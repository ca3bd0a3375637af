// Package rewrite defines the email substitution rule and the adapters that apply it.
//
// Rule is a pure predicate plus mapping. FilterRepoEngine serializes a Rule
// into the email callback understood by git filter-repo and is the only place
// where callback source text is generated. IdentityInspector reads history
// with go-git to report how many commits a rule would touch.
package rewrite
