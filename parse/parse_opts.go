package parse

type parseOpts struct {
	lenient     bool
	annotations map[string]string
}

type ParseOption func(*parseOpts)

// Lenient passes invalid escape sequences through literally instead of
// failing.
func Lenient() ParseOption {
	return func(o *parseOpts) { o.lenient = true }
}

// ParseStrict sets whether invalid escapes are errors.
func ParseStrict(v bool) ParseOption {
	return func(o *parseOpts) { o.lenient = !v }
}

// ParseAnnotations collects, for each bare literal followed by a block
// comment, the comment text keyed by the literal.  In project files
// this recovers the annotations Xcode writes after identifiers.
func ParseAnnotations(m map[string]string) ParseOption {
	return func(o *parseOpts) { o.annotations = m }
}
