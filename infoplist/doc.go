// Package infoplist reads and writes the property lists that sit beside
// a project: Info.plist, .entitlements and privacy manifests.  XML,
// binary and OpenStep encodings are read; a document is written back in
// the encoding it was read in.
package infoplist
