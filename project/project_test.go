package project

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/signadot/pbxproj/ir"
	"github.com/signadot/pbxproj/isa"
	"github.com/signadot/pbxproj/parse"
)

const (
	helloRoot      = "83CBB9F71A601CBA00E9B192"
	helloApp       = "13B07F861A680F5B00A75B9A"
	helloTests     = "00E356ED1AD99517003FC87E"
	helloMainGroup = "83CBB9F61A601CBA00E9B192"
	helloProducts  = "83CBBA001A601CBA00E9B192"
	helloSrcGroup  = "13B07FAE1A68108700A75B9A"
	helloDelegate  = "13B07FB01A68108700A75B9A"
	helloJSCore    = "ED297162215061F000B7C4FE"
	helloFwGroup   = "2D16E6871FA4F8E400B85C8A"
	helloProxy     = "00E356F41AD99517003FC87E"
)

func openHello(t *testing.T) *Project {
	t.Helper()
	p, err := Open("../testdata/helloworld.pbxproj")
	if err != nil {
		t.Fatal(err)
	}
	return p
}

// openCopy opens a copy of a fixture laid out as Name.xcodeproj/project.pbxproj
// inside a temporary directory.
func openCopy(t *testing.T, fixture, name string) *Project {
	t.Helper()
	d, err := os.ReadFile(filepath.Join("../testdata", fixture))
	if err != nil {
		t.Fatal(err)
	}
	dir := filepath.Join(t.TempDir(), name+".xcodeproj")
	if err := os.Mkdir(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(dir, "project.pbxproj")
	if err := os.WriteFile(path, d, 0o644); err != nil {
		t.Fatal(err)
	}
	p, err := Open(path)
	if err != nil {
		t.Fatal(err)
	}
	return p
}

func TestOpen(t *testing.T) {
	p := openHello(t)
	if got := p.RootID(); got != helloRoot {
		t.Errorf("root %q", got)
	}
	if got := p.ArchiveVersion(); got != 1 {
		t.Errorf("archiveVersion %d", got)
	}
	if got := p.ObjectVersion(); got != 46 {
		t.Errorf("objectVersion %d", got)
	}
	if got := p.MainGroupID(); got != helloMainGroup {
		t.Errorf("main group %q", got)
	}
	if got := p.ProductsGroupID(); got != helloProducts {
		t.Errorf("products group %q", got)
	}
	if diff := cmp.Diff([]string{helloApp, helloTests}, p.TargetIDs()); diff != "" {
		t.Errorf("targets (-want +got):\n%s", diff)
	}
	if got := p.Classes(); got == nil || got.Len() != 0 {
		t.Errorf("classes %v", got)
	}
	if got := len(p.IDs()); got != p.Len() {
		t.Errorf("%d ids for %d records", got, p.Len())
	}
	if !p.Has(helloDelegate) || p.Has("nope") {
		t.Error("Has")
	}
	d, err := os.ReadFile("../testdata/helloworld.pbxproj")
	if err != nil {
		t.Fatal(err)
	}
	if p.String() != string(d) {
		t.Error("unmodified project does not write back its input")
	}
}

func TestOpenCRLF(t *testing.T) {
	d, err := os.ReadFile("../testdata/helloworld.pbxproj")
	if err != nil {
		t.Fatal(err)
	}
	p, err := OpenString(strings.ReplaceAll(string(d), "\n", "\r\n"))
	if err != nil {
		t.Fatal(err)
	}
	if p.String() != string(d) {
		t.Error("line endings not normalized")
	}
}

func TestOpenInvalid(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{"array", "( a )"},
		{"no objects", "{ rootObject = R; }"},
		{"no root", "{ objects = { }; }"},
		{"missing root", "{ objects = { }; rootObject = R; }"},
		{"root kind", "{ objects = { R = { isa = PBXGroup; }; }; rootObject = R; }"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := OpenString(tc.in)
			if !errors.Is(err, ErrInvalid) {
				t.Errorf("got %v", err)
			}
		})
	}
	if _, err := OpenString("{ a = "); err == nil {
		t.Error("expected parse error")
	}
	if _, err := Open(filepath.Join(t.TempDir(), "missing")); err == nil {
		t.Error("expected open error")
	}
}

func TestOpenLenient(t *testing.T) {
	in := `{ objects = { R = { isa = PBXProject; note = "a\qb"; }; }; rootObject = R; }`
	if _, err := OpenString(in); err == nil {
		t.Fatal("expected escape error")
	}
	p, err := OpenString(in, parse.Lenient())
	if err != nil {
		t.Fatal(err)
	}
	if got := p.Root().Str("note"); got != `a\qb` {
		t.Errorf("got %q", got)
	}
}

func TestFinders(t *testing.T) {
	p := openHello(t)
	if id, ok := p.FindTargetByName("HelloWorldTests"); !ok || id != helloTests {
		t.Errorf("by name: %q %v", id, ok)
	}
	if _, ok := p.FindTargetByName("Missing"); ok {
		t.Error("found a missing target")
	}
	if id, ok := p.FindTargetByProductType(ProductTypeUnitTestBundle); !ok || id != helloTests {
		t.Errorf("by product type: %q %v", id, ok)
	}
	if id, ok := p.FindMainAppTarget("ios"); !ok || id != helloApp {
		t.Errorf("main app: %q %v", id, ok)
	}
	if id, ok := p.FindMainAppTarget("macos"); !ok || id != helloApp {
		t.Errorf("main app fallback: %q %v", id, ok)
	}
	if _, ok := p.FindMainAppTarget("amiga"); ok {
		t.Error("unknown platform")
	}
	if id, ok := p.FindBuildPhase(helloApp, isa.PBXShellScriptBuildPhase); !ok || id != "00DD1BFF1BD5951E006B06BC" {
		t.Errorf("shell phase: %q %v", id, ok)
	}
	if _, ok := p.FindBuildPhase(helloTests, isa.PBXShellScriptBuildPhase); ok {
		t.Error("tests have no shell phase")
	}
	if diff := cmp.Diff([]string{helloApp, helloTests}, p.NativeTargets()); diff != "" {
		t.Errorf("native targets (-want +got):\n%s", diff)
	}
	if got := len(p.ByKind(isa.XCBuildConfiguration)); got != 6 {
		t.Errorf("%d configurations", got)
	}
	if diff := cmp.Diff(p.ByKind(isa.PBXGroup), p.ByISA("PBXGroup")); diff != "" {
		t.Errorf("ByISA (-kind +isa):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"13B07FBC1A68108700A75B9A", helloSrcGroup}, p.Referrers(helloDelegate)); diff != "" {
		t.Errorf("referrers (-want +got):\n%s", diff)
	}
}

func TestConfigurations(t *testing.T) {
	p := openHello(t)
	list := p.Get(helloApp).Str("buildConfigurationList")
	if diff := cmp.Diff([]string{"13B07F941A680F5B00A75B9A", "13B07F951A680F5B00A75B9A"}, p.Configurations(list)); diff != "" {
		t.Errorf("configurations (-want +got):\n%s", diff)
	}
	if id, ok := p.DefaultConfiguration(list); !ok || id != "13B07F951A680F5B00A75B9A" {
		t.Errorf("default %q %v", id, ok)
	}
	if _, ok := p.DefaultConfiguration("nope"); ok {
		t.Error("default of a missing list")
	}
}

func TestOrphans(t *testing.T) {
	if got := openHello(t).FindOrphanedReferences(); len(got) != 0 {
		t.Errorf("helloworld orphans: %v", got)
	}
	p, err := Open("../testdata/malformed.pbxproj")
	if err != nil {
		t.Fatal(err)
	}
	want := []OrphanedReference{{
		ReferrerID:  "A10000000000000000000004",
		ReferrerISA: "PBXResourcesBuildPhase",
		Property:    "files",
		MissingID:   "3E1C2299F05049539341855D",
	}}
	if diff := cmp.Diff(want, p.FindOrphanedReferences()); diff != "" {
		t.Errorf("orphans (-want +got):\n%s", diff)
	}
	if got, want := want[0].String(), "A10000000000000000000004 (PBXResourcesBuildPhase).files -> 3E1C2299F05049539341855D"; got != want {
		t.Errorf("got %q", got)
	}
}

func TestMintID(t *testing.T) {
	p := openHello(t)
	a := p.MintID("seed")
	if len(a) != 24 || strings.ToLower(a) != a {
		t.Fatalf("bad id %q", a)
	}
	if b := p.MintID("seed"); a != b {
		t.Errorf("not deterministic: %q %q", a, b)
	}
	if err := p.ApplyJSONPatch([]byte(`[{"op":"add","path":"/objects/` + a + `","value":{"isa":"PBXGroup"}}]`)); err != nil {
		t.Fatal(err)
	}
	if b := p.MintID("seed"); b == a || len(b) != 24 {
		t.Errorf("taken id minted again: %q", b)
	}
}

func TestPaths(t *testing.T) {
	p := openHello(t)
	tests := []struct {
		id   string
		want string
	}{
		{helloDelegate, "HelloWorld/AppDelegate.m"},
		{helloJSCore, "$(SDKROOT)/System/Library/Frameworks/JavaScriptCore.framework"},
		{"00E356F21AD99517003FC87E", "HelloWorldTests/HelloWorldTests.m"},
		{"13B07F961A680F5B00A75B9A", "$(BUILT_PRODUCTS_DIR)/HelloWorld.app"},
	}
	for _, tc := range tests {
		got, ok := p.FullPath(tc.id)
		if !ok || got != tc.want {
			t.Errorf("%s: got %q %v", tc.id, got, ok)
		}
	}
	if _, ok := p.FullPath("nope"); ok {
		t.Error("path of a missing record")
	}
	if diff := cmp.Diff([]string{helloMainGroup, helloSrcGroup}, p.Parents(helloDelegate)); diff != "" {
		t.Errorf("parents (-want +got):\n%s", diff)
	}
	if got := p.Parents(helloMainGroup); len(got) != 0 {
		t.Errorf("main group parents %v", got)
	}
}

func TestRealPath(t *testing.T) {
	p := openCopy(t, "helloworld.pbxproj", "HelloWorld")
	root := p.ProjectRoot()
	got, ok := p.RealPath(helloDelegate)
	if want := filepath.Join(root, "HelloWorld/AppDelegate.m"); !ok || got != want {
		t.Errorf("got %q %v, want %q", got, ok, want)
	}
	if got := p.ProjectName(); got != "HelloWorld" {
		t.Errorf("project name %q", got)
	}
	if openHello(t).ProjectName() != "testdata" {
		t.Error("project name of a bare file")
	}
}

func TestBuildSettings(t *testing.T) {
	p := openCopy(t, "helloworld.pbxproj", "HelloWorld")
	tests := []struct {
		target string
		key    string
		want   string
		ok     bool
	}{
		{helloTests, "PRODUCT_BUNDLE_IDENTIFIER", "org.reactjs.native.example.HelloWorldTests", true},
		{helloApp, "PRODUCT_BUNDLE_IDENTIFIER", "org.reactjs.native.example.HelloWorld", true},
		{helloTests, "BUNDLE_LOADER", "$(BUILT_PRODUCTS_DIR)/HelloWorld.app/HelloWorld", true},
		{helloApp, "SDKROOT", "iphoneos", true},
		{helloApp, "CONFIGURATION", "Release", true},
		{helloApp, "PROJECT_NAME", "HelloWorld", true},
		{helloApp, "SRCROOT", p.ProjectRoot(), true},
		{helloApp, "OTHER_LDFLAGS", "-ObjC -lc++", true},
		{helloApp, "MARKETING_VERSION", "1.0", true},
		{helloApp, "NOPE", "", false},
	}
	for _, tc := range tests {
		got, ok := p.ResolveTargetBuildSetting(tc.target, tc.key)
		if ok != tc.ok || got != tc.want {
			t.Errorf("%s %s: got %q %v", tc.target, tc.key, got, ok)
		}
	}
	got, ok := p.ResolveBuildSetting("00E356F61AD99517003FC87E", "GCC_PREPROCESSOR_DEFINITIONS")
	if !ok || got != "DEBUG=1 DEBUG=1" {
		t.Errorf("inherited definitions %q %v", got, ok)
	}
	if v, ok := p.BuildSetting(helloApp, "SWIFT_VERSION"); !ok || v.Type != ir.StringType || v.String != "5.0" {
		t.Errorf("SWIFT_VERSION %v %v", v, ok)
	}
}

func TestBuildSettingCycle(t *testing.T) {
	p, err := OpenString(`{
	objects = {
		C = { isa = XCBuildConfiguration; buildSettings = { A = "$(B)"; B = "x$(A)"; }; name = Debug; };
		L = { isa = XCConfigurationList; buildConfigurations = ( C ); };
		R = { isa = PBXProject; buildConfigurationList = L; };
	};
	rootObject = R;
}`)
	if err != nil {
		t.Fatal(err)
	}
	got, ok := p.ResolveBuildSetting("C", "A")
	if !ok || got != "x$(A)" {
		t.Errorf("got %q %v", got, ok)
	}
}

func TestSetBuildSetting(t *testing.T) {
	p := openHello(t)
	if err := p.SetBuildSetting(helloApp, "SWIFT_VERSION", ir.FromString("6.0")); err != nil {
		t.Fatal(err)
	}
	for _, cfg := range p.Configurations(p.Get(helloApp).Str("buildConfigurationList")) {
		if got, _ := p.Get(cfg).Get("buildSettings").GetString("SWIFT_VERSION"); got != "6.0" {
			t.Errorf("%s: %q", cfg, got)
		}
	}
	if err := p.RemoveBuildSetting(helloApp, "SWIFT_VERSION"); err != nil {
		t.Fatal(err)
	}
	if _, ok := p.BuildSetting(helloApp, "SWIFT_VERSION"); ok {
		t.Error("setting not removed")
	}
	err := p.SetBuildSetting(helloDelegate, "X", ir.FromString("y"))
	if !errors.Is(err, ErrWrongKind) {
		t.Errorf("got %v", err)
	}
	err = p.SetBuildSetting("nope", "X", ir.FromString("y"))
	var opErr *OperationError
	if !errors.As(err, &opErr) || opErr.ID != "nope" || !errors.Is(err, ErrNotFound) {
		t.Errorf("got %v", err)
	}
}

func TestTargetFile(t *testing.T) {
	p := openCopy(t, "helloworld.pbxproj", "HelloWorld")
	got, ok := p.TargetFile(helloApp, "INFOPLIST_FILE")
	if want := filepath.Join(p.ProjectRoot(), "HelloWorld", "Info.plist"); !ok || got != want {
		t.Errorf("got %q %v want %q", got, ok, want)
	}
	if _, ok := p.TargetFile(helloApp, "CODE_SIGN_ENTITLEMENTS"); ok {
		t.Error("entitlements found")
	}
}

func TestWriteFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "project.pbxproj")
	if err := os.WriteFile(path, []byte("old"), 0o600); err != nil {
		t.Fatal(err)
	}
	if err := WriteFile(path, []byte("new")); err != nil {
		t.Fatal(err)
	}
	d, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(d) != "new" {
		t.Errorf("content %q", d)
	}
	fi, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if fi.Mode().Perm() != 0o600 {
		t.Errorf("mode %v", fi.Mode())
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Errorf("temporary files left behind: %v", entries)
	}

	fresh := filepath.Join(dir, "fresh.pbxproj")
	if err := WriteFile(fresh, []byte("x")); err != nil {
		t.Fatal(err)
	}
	if fi, err := os.Stat(fresh); err != nil || fi.Mode().Perm() != 0o644 {
		t.Errorf("fresh file %v %v", fi, err)
	}
	if err := WriteFile(filepath.Join(dir, "missing", "p.pbxproj"), []byte("x")); err == nil {
		t.Error("expected error for a missing directory")
	}
}
