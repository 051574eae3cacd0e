// Package encode writes ir trees as Xcode formats them: the UTF8
// marker line, tab indentation, one section per record kind in the
// objects table, single-line build file and file reference records,
// and a /* comment */ after every identifier naming the record it
// refers to.  JSON and YAML renderings are available through
// EncodeFormat.
package encode
