// Package ir is the in-memory value tree of a property list: strings,
// integers, floats, data, arrays and dictionaries whose keys keep their
// insertion order.
package ir
