// Package pbxproj reads and writes Xcode project files.
//
// Parse turns old-style property list text into an order preserving
// ir tree, Build writes a tree the way Xcode does, and ParseAndBuild
// does both.  For canonical input the output is byte for byte equal to
// the input.  The project package layers an object graph with editing
// operations on top of the tree.
package pbxproj
