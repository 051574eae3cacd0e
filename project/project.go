package project

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/signadot/pbxproj/debug"
	"github.com/signadot/pbxproj/encode"
	"github.com/signadot/pbxproj/ir"
	"github.com/signadot/pbxproj/isa"
	"github.com/signadot/pbxproj/object"
	"github.com/signadot/pbxproj/parse"
)

// Project is a parsed project file.
type Project struct {
	root    *ir.Node
	objects *ir.Node
	records map[string]*object.Record
	path    string
}

// Open reads and parses the project file at path.  Save writes back to
// the same path.
func Open(path string, opts ...parse.ParseOption) (*Project, error) {
	d, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	p, err := parseProject(d, opts...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	p.path = path
	return p, nil
}

// OpenString parses project text.  The result has no file path.
func OpenString(s string, opts ...parse.ParseOption) (*Project, error) {
	return parseProject([]byte(s), opts...)
}

func parseProject(d []byte, opts ...parse.ParseOption) (*Project, error) {
	d = bytes.ReplaceAll(d, []byte("\r\n"), []byte("\n"))
	node, err := parse.Parse(d, opts...)
	if err != nil {
		return nil, err
	}
	return FromNode(node)
}

// FromNode builds a project over a parsed tree.  The tree is not copied:
// the project owns it from then on.
func FromNode(node *ir.Node) (*Project, error) {
	if node == nil || node.Type != ir.ObjectType {
		return nil, fmt.Errorf("%w: document is not a dictionary", ErrInvalid)
	}
	objects := node.Get("objects")
	if objects == nil || objects.Type != ir.ObjectType {
		return nil, fmt.Errorf("%w: missing objects dictionary", ErrInvalid)
	}
	rootID, ok := node.GetString("rootObject")
	if !ok {
		return nil, fmt.Errorf("%w: missing rootObject", ErrInvalid)
	}
	p := &Project{
		root:    node,
		objects: objects,
		records: make(map[string]*object.Record, len(objects.Fields)),
	}
	for i, id := range objects.Fields {
		if v := objects.Values[i]; v.Type == ir.ObjectType {
			p.records[id] = object.New(id, v)
		}
	}
	r := p.records[rootID]
	if r == nil {
		return nil, fmt.Errorf("%w: root object %q not found", ErrInvalid, rootID)
	}
	if r.Kind != isa.PBXProject {
		return nil, fmt.Errorf("%w: root object %q is a %s", ErrInvalid, rootID, r.ISA())
	}
	if debug.Project() {
		debug.Logf("project: %d records, root %s\n", len(p.records), rootID)
	}
	return p, nil
}

// FilePath is the path the project was opened from or last saved to.
func (p *Project) FilePath() string {
	return p.path
}

// ProjectRoot is the directory holding the .xcodeproj bundle, or "" for
// projects without a file path.
func (p *Project) ProjectRoot() string {
	if p.path == "" {
		return ""
	}
	return filepath.Dir(filepath.Dir(p.path))
}

func (p *Project) ArchiveVersion() int64 {
	return p.intProp("archiveVersion")
}

func (p *Project) ObjectVersion() int64 {
	return p.intProp("objectVersion")
}

func (p *Project) intProp(key string) int64 {
	if v := p.root.Get(key); v != nil && v.Type == ir.IntegerType {
		return v.Int64
	}
	return 0
}

// Classes is the classes dictionary, which is passed through untouched.
func (p *Project) Classes() *ir.Node {
	return p.root.Get("classes")
}

// ToNode returns a copy of the document tree.
func (p *Project) ToNode() *ir.Node {
	return p.root.Clone()
}

func (p *Project) Bytes(opts ...encode.EncodeOption) ([]byte, error) {
	buf := bytes.NewBuffer(make([]byte, 0, 64*1024))
	if err := encode.Encode(p.root, buf, opts...); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (p *Project) String() string {
	return encode.MustString(p.root)
}

func (p *Project) ToJSON() ([]byte, error) {
	return p.root.ToJSON("  ")
}

func (p *Project) ToYAML() ([]byte, error) {
	return p.root.ToYAML()
}

// Save writes the project back to its file.
func (p *Project) Save(opts ...encode.EncodeOption) error {
	if p.path == "" {
		return ErrNoPath
	}
	return p.SaveAs(p.path, opts...)
}

// SaveAs writes the project to path through a temporary file in the
// same directory, so path holds either the old or the new content.
func (p *Project) SaveAs(path string, opts ...encode.EncodeOption) error {
	d, err := p.Bytes(opts...)
	if err != nil {
		return err
	}
	if err := WriteFile(path, d); err != nil {
		return err
	}
	p.path = path
	return nil
}

// WriteFile replaces the file at path with d through a temporary file in
// the same directory, so the old content survives any failure.  An
// existing file keeps its permissions; a new one gets 0644.
func WriteFile(path string, d []byte) error {
	mode := os.FileMode(0o644)
	if fi, err := os.Stat(path); err == nil {
		mode = fi.Mode().Perm()
	}
	f, err := os.CreateTemp(filepath.Dir(path), ".pbxproj-*")
	if err != nil {
		return err
	}
	tmp := f.Name()
	if _, err := f.Write(d); err != nil {
		f.Close()
		os.Remove(tmp)
		return err
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return err
	}
	if err := os.Chmod(tmp, mode); err != nil {
		os.Remove(tmp)
		return err
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return err
	}
	return nil
}
