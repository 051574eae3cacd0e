// Package token provides the byte level lexer for old-style NeXTSTEP
// property lists as written by Xcode, together with the string escape
// codec and the quoting rules used when writing values back out.
package token
