package project

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"

	"github.com/signadot/pbxproj/debug"
	"github.com/signadot/pbxproj/ir"
	"github.com/signadot/pbxproj/isa"
	"github.com/signadot/pbxproj/object"
)

// MintID derives a 24 character lowercase hex identifier from seed.  The
// same seed gives the same identifier as long as no record has taken it
// in between; a taken identifier is retried with a space appended to the
// seed.
func (p *Project) MintID(seed string) string {
	for {
		sum := md5.Sum([]byte(seed))
		id := hex.EncodeToString(sum[:12])
		if !p.objects.Has(id) {
			return id
		}
		seed += " "
	}
}

// Add inserts a record at the end of the table under an identifier
// minted from its properties.
func (p *Project) Add(props *ir.Node) (string, error) {
	if props == nil || props.Type != ir.ObjectType {
		return "", opErr("add", "", ErrWrongKind, "properties must be a dictionary")
	}
	if _, ok := props.GetString("isa"); !ok {
		return "", opErr("add", "", ErrWrongKind, "properties have no isa")
	}
	return p.add(props), nil
}

func (p *Project) add(props *ir.Node) string {
	seed, err := props.MarshalJSON()
	if err != nil {
		seed = []byte(fmt.Sprintf("%p", props))
	}
	id := p.MintID(string(seed))
	p.insert(id, props)
	return id
}

func (p *Project) insert(id string, props *ir.Node) *object.Record {
	p.objects.Set(id, props)
	r := object.New(id, props)
	p.records[id] = r
	if debug.Project() {
		debug.Logf("project: add %s %s\n", id, r.ISA())
	}
	return r
}

// Remove deletes a record and every declared reference to it.  Records
// which the removed one referred to are left in place.
func (p *Project) Remove(id string) error {
	r := p.records[id]
	if r == nil {
		return opErr("remove", id, ErrNotFound, "")
	}
	if r.Kind == isa.PBXProject && id == p.RootID() {
		return opErr("remove", id, ErrWrongKind, "cannot remove the root object")
	}
	p.objects.Delete(id)
	delete(p.records, id)
	p.each(func(o *object.Record) bool {
		o.RemoveReference(id)
		return true
	})
	if debug.Project() {
		debug.Logf("project: removed %s %s\n", id, r.ISA())
	}
	return nil
}
