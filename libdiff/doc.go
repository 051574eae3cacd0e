// Package libdiff computes and prints line diffs between two
// renderings of a project.
package libdiff
