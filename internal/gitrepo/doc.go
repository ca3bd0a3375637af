// Package gitrepo wraps the git commands performed around a history rewrite.
//
// RepositoryManager clones remote targets, reads and re-registers the origin
// remote, force-pushes rewritten branches, and prunes remote tags. Every
// command runs with an explicit working directory.
package gitrepo
