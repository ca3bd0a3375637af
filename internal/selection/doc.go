// Package selection turns an operator's menu answer into the set of repositories to rewrite.
package selection
