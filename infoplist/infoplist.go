package infoplist

import (
	"errors"
	"fmt"
	"maps"
	"os"
	"slices"
	"strconv"
	"time"

	"github.com/signadot/pbxproj/ir"
	"github.com/signadot/pbxproj/settings"
	"github.com/signadot/pbxproj/token"
	"howett.net/plist"
)

var (
	ErrNotDict = errors.New("property list is not a dictionary")
	ErrFormat  = errors.New("unsupported property list format")
)

// Document is a property list whose top level is a dictionary.
type Document struct {
	// Format is one of plist.XMLFormat, plist.BinaryFormat,
	// plist.OpenStepFormat and plist.GNUStepFormat.
	Format int
	Root   map[string]any
}

// New returns an empty XML document.
func New() *Document {
	return &Document{Format: plist.XMLFormat, Root: map[string]any{}}
}

func Parse(d []byte) (*Document, error) {
	var v any
	f, err := plist.Unmarshal(d, &v)
	if err != nil {
		return nil, err
	}
	root, ok := v.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%w: top level is %T", ErrNotDict, v)
	}
	return &Document{Format: f, Root: root}, nil
}

func Read(path string) (*Document, error) {
	d, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	doc, err := Parse(d)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return doc, nil
}

// Keys lists the top level keys in byte order.
func (d *Document) Keys() []string {
	return slices.Sorted(maps.Keys(d.Root))
}

func (d *Document) Get(key string) (any, bool) {
	v, ok := d.Root[key]
	return v, ok
}

func (d *Document) GetString(key string) (string, bool) {
	s, ok := d.Root[key].(string)
	return s, ok
}

func (d *Document) Set(key string, v any) {
	d.Root[key] = v
}

func (d *Document) Delete(key string) bool {
	_, ok := d.Root[key]
	delete(d.Root, key)
	return ok
}

// Bytes encodes the document in its format.  XML is indented with tabs
// as Xcode writes it.
func (d *Document) Bytes() ([]byte, error) {
	switch d.Format {
	case plist.XMLFormat, plist.OpenStepFormat, plist.GNUStepFormat:
		return plist.MarshalIndent(d.Root, d.Format, "\t")
	case plist.BinaryFormat:
		return plist.Marshal(d.Root, d.Format)
	}
	return nil, fmt.Errorf("%w: %d", ErrFormat, d.Format)
}

// WriteFile encodes the document to path, keeping the mode of an
// existing file.
func (d *Document) WriteFile(path string) error {
	b, err := d.Bytes()
	if err != nil {
		return err
	}
	mode := os.FileMode(0o644)
	if fi, err := os.Stat(path); err == nil {
		mode = fi.Mode().Perm()
	}
	return os.WriteFile(path, b, mode)
}

// Expand replaces build setting references in every string of the
// document, as the build does when it processes Info.plist.
func (d *Document) Expand(lookup settings.Lookup) {
	for k, v := range d.Root {
		d.Root[k] = expand(v, lookup)
	}
}

func expand(v any, lookup settings.Lookup) any {
	switch x := v.(type) {
	case string:
		return settings.Resolve(x, lookup)
	case []any:
		for i, e := range x {
			x[i] = expand(e, lookup)
		}
	case map[string]any:
		for k, e := range x {
			x[k] = expand(e, lookup)
		}
	}
	return v
}

// ToNode converts the document to a tree with keys in byte order, so it
// can be printed like project values.  Booleans become YES or NO and
// dates RFC 3339 strings.
func (d *Document) ToNode() *ir.Node {
	return toNode(d.Root)
}

func toNode(v any) *ir.Node {
	switch x := v.(type) {
	case string:
		return ir.FromString(x)
	case bool:
		if x {
			return ir.FromString("YES")
		}
		return ir.FromString("NO")
	case int64:
		return intNode(x)
	case uint64:
		if x > token.MaxSafeInteger {
			return ir.FromString(strconv.FormatUint(x, 10))
		}
		return ir.FromInt(int64(x))
	case int:
		return intNode(int64(x))
	case float64:
		return ir.FromFloat(x)
	case float32:
		return ir.FromFloat(float64(x))
	case []byte:
		return ir.FromData(x)
	case time.Time:
		return ir.FromString(x.UTC().Format(time.RFC3339))
	case []any:
		vs := make([]*ir.Node, len(x))
		for i, e := range x {
			vs[i] = toNode(e)
		}
		return ir.FromSlice(vs)
	case map[string]any:
		res := ir.NewObject()
		for _, k := range slices.Sorted(maps.Keys(x)) {
			res.Set(k, toNode(x[k]))
		}
		return res
	}
	return ir.FromString(fmt.Sprint(v))
}

// intNode keeps integers which would not read back as numbers as
// strings.
func intNode(i int64) *ir.Node {
	if i > token.MaxSafeInteger || i < -token.MaxSafeInteger {
		return ir.FromString(strconv.FormatInt(i, 10))
	}
	return ir.FromInt(i)
}
