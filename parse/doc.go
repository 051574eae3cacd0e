// Package parse reads old-style property list text, as found in Xcode
// project files, into an ir tree.
package parse
