package encode

import "github.com/signadot/pbxproj/format"

type EncodeOption func(*EncState)

func EncodeFormat(f format.Format) EncodeOption {
	return func(es *EncState) { es.format = f }
}

// FormatFromOpts extracts the format from encode options.
func FormatFromOpts(opts ...EncodeOption) format.Format {
	es := &EncState{}
	for _, opt := range opts {
		opt(es)
	}
	return es.format
}

// Indent sets the string written once per nesting level.
func Indent(s string) EncodeOption {
	return func(es *EncState) { es.indent = s }
}

// Shebang replaces the first line of the document.
func Shebang(s string) EncodeOption {
	return func(es *EncState) { es.shebang = s }
}

// SortObjects orders the records of each section by identifier, which
// is what Xcode does, instead of keeping table order.
func SortObjects(v bool) EncodeOption {
	return func(es *EncState) { es.sorted = v }
}

// Fragment writes a value without the document framing: no marker
// line and no sections.
func Fragment() EncodeOption {
	return func(es *EncState) { es.fragment = true }
}

// WithComments supplies the identifier annotations instead of deriving
// them from the objects table.
func WithComments(m map[string]string) EncodeOption {
	return func(es *EncState) { es.comments = m }
}

func EncodeColors(c *Colors) EncodeOption {
	return func(es *EncState) { es.Color = c.Color }
}
