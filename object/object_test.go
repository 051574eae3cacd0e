package object

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/signadot/pbxproj/ir"
	"github.com/signadot/pbxproj/isa"
)

func target() *Record {
	return New("T", ir.FromKeyVals([]ir.KeyVal{
		{Key: "isa", Val: ir.FromString("PBXNativeTarget")},
		{Key: "buildConfigurationList", Val: ir.FromString("L")},
		{Key: "buildPhases", Val: ir.FromStrings([]string{"P1", "P2", "P1"})},
		{Key: "dependencies", Val: ir.FromStrings(nil)},
		{Key: "name", Val: ir.FromString("App")},
		{Key: "productReference", Val: ir.FromString("")},
	}))
}

func TestReferences(t *testing.T) {
	r := target()
	if r.Kind != isa.PBXNativeTarget {
		t.Fatalf("kind %s", r.Kind)
	}
	want := []Ref{
		{Key: "buildConfigurationList", Index: -1, ID: "L"},
		{Key: "buildPhases", Index: 0, ID: "P1"},
		{Key: "buildPhases", Index: 1, ID: "P2"},
		{Key: "buildPhases", Index: 2, ID: "P1"},
	}
	if diff := cmp.Diff(want, r.References()); diff != "" {
		t.Errorf("references (-want +got):\n%s", diff)
	}
	if !r.IsReferencing("P2") || r.IsReferencing("App") {
		t.Errorf("IsReferencing")
	}
}

func TestRemoveReplace(t *testing.T) {
	r := target()
	if !r.RemoveReference("P1") {
		t.Fatal("expected removal")
	}
	if diff := cmp.Diff([]string{"P2"}, r.List("buildPhases")); diff != "" {
		t.Errorf("phases (-want +got):\n%s", diff)
	}
	if !r.RemoveReference("L") || r.Props.Has("buildConfigurationList") {
		t.Errorf("single reference must be deleted")
	}
	if !r.ReplaceReference("P2", "P3") || r.List("buildPhases")[0] != "P3" {
		t.Errorf("replace")
	}
	if r.Str("name") != "App" {
		t.Errorf("non reference properties must be untouched")
	}
}

func TestUnknownKind(t *testing.T) {
	r := New("X", ir.FromKeyVals([]ir.KeyVal{
		{Key: "isa", Val: ir.FromString("PBXFutureThing")},
		{Key: "children", Val: ir.FromStrings([]string{"A"})},
	}))
	if r.Kind != isa.Unknown || r.ISA() != "PBXFutureThing" {
		t.Fatalf("kind %s isa %s", r.Kind, r.ISA())
	}
	if len(r.References()) != 0 || r.IsReferencing("A") {
		t.Errorf("unknown kinds are excluded from reference handling")
	}
}
