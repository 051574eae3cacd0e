// Package project is the document level view of an Xcode project: the
// objects table keyed by identifier, plus the operations which keep its
// records consistent while they are added, removed and rewired.
//
// Records refer to each other only by identifier.  Every operation
// takes and returns identifiers; the object.Record values handed out by
// Get share their properties with the project and are only valid until
// the record is removed.
//
// A Project is not safe for concurrent use.
package project
