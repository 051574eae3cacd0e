// Package object wraps the dictionaries of a project's objects table as
// records and declares, per record kind, which properties hold
// identifiers of other records.  That declaration drives orphan
// detection, cascading removal and rewriting of references, and comment
// generation.
package object
