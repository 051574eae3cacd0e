package project

import (
	"fmt"

	"github.com/signadot/pbxproj/object"
)

// OrphanedReference is an identifier held under a declared reference
// key which names no record.  It is a finding, not an error.
type OrphanedReference struct {
	ReferrerID  string
	ReferrerISA string
	Property    string
	MissingID   string
}

func (o OrphanedReference) String() string {
	return fmt.Sprintf("%s (%s).%s -> %s", o.ReferrerID, o.ReferrerISA, o.Property, o.MissingID)
}

// FindOrphanedReferences scans every record of a known kind for
// references to missing records, in table order.
func (p *Project) FindOrphanedReferences() []OrphanedReference {
	var res []OrphanedReference
	p.each(func(r *object.Record) bool {
		for _, ref := range r.References() {
			if _, ok := p.records[ref.ID]; ok {
				continue
			}
			res = append(res, OrphanedReference{
				ReferrerID:  r.ID,
				ReferrerISA: r.ISA(),
				Property:    ref.Key,
				MissingID:   ref.ID,
			})
		}
		return true
	})
	return res
}
