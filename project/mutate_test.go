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
)

// reopen writes p out and parses the result, checking the text survives
// a second round unchanged.
func reopen(t *testing.T, p *Project) *Project {
	t.Helper()
	s := p.String()
	q, err := OpenString(s)
	if err != nil {
		t.Fatalf("reparse: %v\n%s", err, s)
	}
	if q.String() != s {
		t.Error("written project is not stable")
	}
	return q
}

func noOrphans(t *testing.T, p *Project) {
	t.Helper()
	if got := p.FindOrphanedReferences(); len(got) != 0 {
		t.Errorf("orphans: %v", got)
	}
}

func TestAddGroupAndFile(t *testing.T) {
	p := openHello(t)
	gid, err := p.AddGroup(helloSrcGroup, "Views", "Views")
	if err != nil {
		t.Fatal(err)
	}
	g := p.Get(gid)
	if g.Kind != isa.PBXGroup || g.Props.Has("name") || g.Str("path") != "Views" {
		t.Errorf("group %s", g.Props.Scalar())
	}
	fid, err := p.AddFile(gid, "Sub/Button.swift")
	if err != nil {
		t.Fatal(err)
	}
	f := p.Get(fid)
	if got := f.Str("lastKnownFileType"); got != "sourcecode.swift" {
		t.Errorf("file type %q", got)
	}
	if got := f.Str("name"); got != "Button.swift" {
		t.Errorf("name %q", got)
	}
	if got, _ := p.FullPath(fid); got != "Views/Sub/Button.swift" {
		t.Errorf("full path %q", got)
	}
	if diff := cmp.Diff([]string{helloMainGroup, helloSrcGroup, gid}, p.Parents(fid)); diff != "" {
		t.Errorf("parents (-want +got):\n%s", diff)
	}

	if _, err := p.AddFile(gid, "Sub/Button.swift"); !errors.Is(err, ErrExists) {
		t.Errorf("duplicate file: %v", err)
	}
	if _, err := p.AddGroup(helloSrcGroup, "Views", "Views"); !errors.Is(err, ErrExists) {
		t.Errorf("duplicate group: %v", err)
	}
	if _, err := p.AddGroup(helloSrcGroup, "", ""); !errors.Is(err, ErrInvalid) {
		t.Errorf("empty group: %v", err)
	}
	if _, err := p.AddFile(helloDelegate, "x.m"); !errors.Is(err, ErrWrongKind) {
		t.Errorf("file in a file: %v", err)
	}
	noOrphans(t, p)
	q := reopen(t, p)
	if !strings.Contains(q.String(), "/* Button.swift */ = {isa = PBXFileReference; lastKnownFileType = sourcecode.swift; name = Button.swift; path = Sub/Button.swift; sourceTree = \"<group>\"; };") {
		t.Error("file reference not written inline")
	}
}

func TestAddBuildPhaseAndFile(t *testing.T) {
	p := openHello(t)
	phase, err := p.AddBuildPhase(helloApp, isa.PBXShellScriptBuildPhase, "Lint")
	if err != nil {
		t.Fatal(err)
	}
	r := p.Get(phase)
	if got := r.Str("shellPath"); got != "/bin/sh" {
		t.Errorf("shellPath %q", got)
	}
	if got := p.Get(helloApp).List("buildPhases"); got[len(got)-1] != phase {
		t.Errorf("phase not appended: %v", got)
	}
	if _, err := p.AddBuildPhase(helloApp, isa.PBXGroup, ""); !errors.Is(err, ErrNotBuildPhase) {
		t.Errorf("group phase: %v", err)
	}
	copyPhase, err := p.AddBuildPhase(helloApp, isa.PBXCopyFilesBuildPhase, "")
	if err != nil {
		t.Fatal(err)
	}
	if v := p.Get(copyPhase).Get("dstSubfolderSpec"); v == nil || v.Int64 != 0 {
		t.Errorf("dstSubfolderSpec %v", v)
	}

	sources, _ := p.FindBuildPhase(helloApp, isa.PBXSourcesBuildPhase)
	bf, err := p.AddBuildFile(sources, helloDelegate)
	if err != nil {
		t.Fatal(err)
	}
	if got := p.Get(bf).Str("fileRef"); got != helloDelegate {
		t.Errorf("fileRef %q", got)
	}
	if _, err := p.AddBuildFile(sources, "nope"); !errors.Is(err, ErrNotFound) {
		t.Errorf("missing file: %v", err)
	}
	if _, err := p.AddBuildFile(helloApp, helloDelegate); !errors.Is(err, ErrWrongKind) {
		t.Errorf("target as phase: %v", err)
	}
	noOrphans(t, p)
	reopen(t, p)
}

func TestAddFramework(t *testing.T) {
	p := openHello(t)
	n := p.Len()
	bf, err := p.AddFramework(helloApp, "WebKit")
	if err != nil {
		t.Fatal(err)
	}
	fileID := p.Get(bf).Str("fileRef")
	f := p.Get(fileID)
	if f.Str("path") != "System/Library/Frameworks/WebKit.framework" || f.Str("sourceTree") != "SDKROOT" {
		t.Errorf("framework ref %v", f.Props.Fields)
	}
	if got := p.Get(helloFwGroup).List("children"); got[len(got)-1] != fileID {
		t.Errorf("framework not in Frameworks group: %v", got)
	}
	if got := p.Len(); got != n+2 {
		t.Errorf("%d new records", got-n)
	}
	if _, err := p.AddFramework(helloApp, "WebKit.framework"); !errors.Is(err, ErrExists) {
		t.Errorf("linked twice: %v", err)
	}
	// The tests target shares the existing JavaScriptCore reference.
	bf, err = p.AddFramework(helloTests, "JavaScriptCore")
	if err != nil {
		t.Fatal(err)
	}
	if got := p.Get(bf).Str("fileRef"); got != helloJSCore {
		t.Errorf("fileRef %q", got)
	}
	noOrphans(t, p)
	reopen(t, p)
}

func TestAddFrameworkCreatesGroupAndPhase(t *testing.T) {
	p := New("Empty")
	id, err := p.CreateNativeTarget(NativeTargetOptions{Name: "Tool", ProductType: ProductTypeTool})
	if err != nil {
		t.Fatal(err)
	}
	fw, _ := p.FindBuildPhase(id, isa.PBXFrameworksBuildPhase)
	if err := p.Remove(fw); err != nil {
		t.Fatal(err)
	}
	if _, err := p.AddFramework(id, "Foundation"); err != nil {
		t.Fatal(err)
	}
	if _, ok := p.FindBuildPhase(id, isa.PBXFrameworksBuildPhase); !ok {
		t.Error("no frameworks phase")
	}
	var found bool
	for _, c := range p.children(p.MainGroupID()) {
		found = found || c.DisplayName() == "Frameworks"
	}
	if !found {
		t.Error("no Frameworks group")
	}
	noOrphans(t, p)
}

func TestCreateNativeTarget(t *testing.T) {
	p := openHello(t)
	id, err := p.CreateNativeTarget(NativeTargetOptions{
		Name:        "Widget",
		ProductType: ProductTypeAppExtension,
		BuildSettings: map[string]string{
			"SWIFT_VERSION":          "5.0",
			"TARGETED_DEVICE_FAMILY": "1",
		},
	})
	if err != nil {
		t.Fatal(err)
	}
	target := p.Get(id)
	if got := p.TargetIDs(); got[len(got)-1] != id {
		t.Errorf("target not listed: %v", got)
	}
	var kinds []isa.Kind
	for _, ph := range target.List("buildPhases") {
		kinds = append(kinds, p.Get(ph).Kind)
	}
	want := []isa.Kind{isa.PBXSourcesBuildPhase, isa.PBXFrameworksBuildPhase, isa.PBXResourcesBuildPhase}
	if diff := cmp.Diff(want, kinds); diff != "" {
		t.Errorf("phases (-want +got):\n%s", diff)
	}
	product := p.Get(target.Str("productReference"))
	if got := product.Str("path"); got != "Widget.appex" {
		t.Errorf("product %q", got)
	}
	if got := p.Get(helloProducts).List("children"); got[len(got)-1] != product.ID {
		t.Errorf("product not in Products: %v", got)
	}
	if got, _ := p.ResolveTargetBuildSetting(id, "PRODUCT_NAME"); got != "Widget" {
		t.Errorf("PRODUCT_NAME %q", got)
	}
	if v, _ := p.BuildSetting(id, "TARGETED_DEVICE_FAMILY"); v.Type != ir.IntegerType {
		t.Errorf("TARGETED_DEVICE_FAMILY is %v", v.Type)
	}
	if got, _ := p.ResolveTargetBuildSetting(id, "SDKROOT"); got != "iphoneos" {
		t.Errorf("SDKROOT %q", got)
	}
	noOrphans(t, p)
	q := reopen(t, p)
	if !strings.Contains(q.String(), "SWIFT_VERSION = 5.0;") {
		t.Error("SWIFT_VERSION not written bare")
	}

	if _, err := p.CreateNativeTarget(NativeTargetOptions{Name: "Widget", ProductType: ProductTypeApplication}); !errors.Is(err, ErrExists) {
		t.Errorf("duplicate target: %v", err)
	}
	n := p.Len()
	if _, err := p.CreateNativeTarget(NativeTargetOptions{Name: "X", ProductType: "com.example.nope"}); !errors.Is(err, ErrWrongKind) {
		t.Errorf("unknown product type: %v", err)
	}
	if p.Len() != n {
		t.Error("failed create left records behind")
	}
}

func TestAddDependency(t *testing.T) {
	p := openHello(t)
	id, err := p.CreateNativeTarget(NativeTargetOptions{Name: "Lib", ProductType: ProductTypeStaticLibrary})
	if err != nil {
		t.Fatal(err)
	}
	dep, err := p.AddDependency(helloApp, id)
	if err != nil {
		t.Fatal(err)
	}
	proxy := p.Get(p.Get(dep).Str("targetProxy"))
	if proxy.Str("remoteGlobalIDString") != id || proxy.Str("remoteInfo") != "Lib" || proxy.Str("containerPortal") != helloRoot {
		t.Errorf("proxy %v", proxy.Props.Fields)
	}
	if _, err := p.AddDependency(helloApp, id); !errors.Is(err, ErrExists) {
		t.Errorf("duplicate: %v", err)
	}
	if _, err := p.AddDependency(helloApp, helloApp); !errors.Is(err, ErrInvalid) {
		t.Errorf("self: %v", err)
	}
	if _, err := p.AddDependency(helloApp, helloDelegate); !errors.Is(err, ErrWrongKind) {
		t.Errorf("file: %v", err)
	}
	noOrphans(t, p)
	reopen(t, p)
}

func TestEmbedExtension(t *testing.T) {
	tests := []struct {
		productType string
		spec        int64
		dst         string
		name        string
	}{
		{ProductTypeAppExtension, 13, "", "Embed Foundation Extensions"},
		{ProductTypeWatchApp2, 16, "$(CONTENTS_FOLDER_PATH)/Watch", "Embed Watch Content"},
		{ProductTypeAppClip, 16, "$(CONTENTS_FOLDER_PATH)/AppClips", "Embed App Clips"},
		{ProductTypeExtensionKit, 16, "$(EXTENSIONS_FOLDER_PATH)", "Embed ExtensionKit Extensions"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			p := openHello(t)
			ext, err := p.CreateNativeTarget(NativeTargetOptions{Name: "Ext", ProductType: tc.productType})
			if err != nil {
				t.Fatal(err)
			}
			bf, err := p.EmbedExtension(helloApp, ext)
			if err != nil {
				t.Fatal(err)
			}
			phases := p.Get(helloApp).List("buildPhases")
			phase := p.Get(phases[len(phases)-1])
			if phase.Kind != isa.PBXCopyFilesBuildPhase || phase.Get("dstSubfolderSpec").Int64 != tc.spec ||
				phase.Str("dstPath") != tc.dst || phase.Str("name") != tc.name {
				t.Errorf("phase %s", p.String())
			}
			if got := phase.List("files"); len(got) != 1 || got[0] != bf {
				t.Errorf("files %v", got)
			}
			attrs := p.Get(bf).Get("settings").Get("ATTRIBUTES").Strings()
			if diff := cmp.Diff([]string{"RemoveHeadersOnCopy"}, attrs); diff != "" {
				t.Errorf("attributes (-want +got):\n%s", diff)
			}
			if !p.dependsOn(p.Get(helloApp), ext) {
				t.Error("no dependency")
			}
			if _, err := p.EmbedExtension(helloApp, ext); !errors.Is(err, ErrExists) {
				t.Errorf("embedded twice: %v", err)
			}
			noOrphans(t, p)
			reopen(t, p)
		})
	}
	p := openHello(t)
	if _, err := p.EmbedExtension(helloApp, helloTests); !errors.Is(err, ErrWrongKind) {
		t.Errorf("tests embedded: %v", err)
	}
}

func TestRemove(t *testing.T) {
	p := openHello(t)
	if err := p.Remove(helloDelegate); err != nil {
		t.Fatal(err)
	}
	if p.Has(helloDelegate) {
		t.Error("record still present")
	}
	for _, c := range p.Get(helloSrcGroup).List("children") {
		if c == helloDelegate {
			t.Error("group still lists the removed file")
		}
	}
	// The build file for the removed reference now points nowhere.
	if got := p.Get("13B07FBC1A68108700A75B9A").Props.Has("fileRef"); got {
		t.Error("fileRef kept")
	}
	if s := p.String(); strings.Contains(s, helloDelegate) {
		t.Error("written project mentions the removed record")
	}
	if err := p.Remove(helloDelegate); !errors.Is(err, ErrNotFound) {
		t.Errorf("removed twice: %v", err)
	}
	if err := p.Remove(helloRoot); !errors.Is(err, ErrWrongKind) {
		t.Errorf("removed root: %v", err)
	}
}

func TestAdd(t *testing.T) {
	p := openHello(t)
	props := ir.FromKeyVals([]ir.KeyVal{
		kv("isa", str("PBXFileSystemSynchronizedRootGroup")),
		kv("path", str("Sources")),
		kv("sourceTree", str("<group>")),
	})
	id, err := p.Add(props)
	if err != nil {
		t.Fatal(err)
	}
	if got := p.ByISA("PBXFileSystemSynchronizedRootGroup"); len(got) != 1 || got[0] != id {
		t.Errorf("got %v", got)
	}
	if _, err := p.Add(ir.FromString("x")); !errors.Is(err, ErrWrongKind) {
		t.Errorf("scalar: %v", err)
	}
	if _, err := p.Add(ir.NewObject()); !errors.Is(err, ErrWrongKind) {
		t.Errorf("no isa: %v", err)
	}
}

func TestRenameTarget(t *testing.T) {
	p := openHello(t)
	if err := p.RenameTarget(helloApp, "HelloWorld2"); err != nil {
		t.Fatal(err)
	}
	app := p.Get(helloApp)
	if app.Str("name") != "HelloWorld2" || app.Str("productName") != "HelloWorld2" {
		t.Errorf("target %v", app.Props.Fields)
	}
	if got := p.Get(app.Str("productReference")).Str("path"); got != "HelloWorld2.app" {
		t.Errorf("product %q", got)
	}
	if got := p.Get(helloProxy).Str("remoteInfo"); got != "HelloWorld2" {
		t.Errorf("remoteInfo %q", got)
	}
	if got := p.Get(helloSrcGroup).Str("name"); got != "HelloWorld2" {
		t.Errorf("group %q", got)
	}
	if got, _ := p.ResolveTargetBuildSetting(helloTests, "TEST_HOST"); got != "$(BUILT_PRODUCTS_DIR)/HelloWorld2.app/HelloWorld2" {
		t.Errorf("TEST_HOST %q", got)
	}
	if got, _ := p.ResolveTargetBuildSetting(helloApp, "PRODUCT_NAME"); got != "HelloWorld2" {
		t.Errorf("PRODUCT_NAME %q", got)
	}
	if err := p.RenameTarget(helloApp, "HelloWorldTests"); !errors.Is(err, ErrExists) {
		t.Errorf("name clash: %v", err)
	}
	if err := p.RenameTarget(helloApp, ""); !errors.Is(err, ErrInvalid) {
		t.Errorf("empty name: %v", err)
	}
	s := p.String()
	if !strings.Contains(s, `/* Build configuration list for PBXNativeTarget "HelloWorld2" */`) {
		t.Error("comments do not follow the new name")
	}
	noOrphans(t, p)
	reopen(t, p)
}

func TestQuery(t *testing.T) {
	p := openHello(t)
	tests := []struct {
		src  string
		want []string
	}{
		{`isa == "PBXNativeTarget" && productType endsWith "application"`, []string{helloApp}},
		{`isa == "PBXContainerItemProxy" && nameOf(remoteGlobalIDString) == "HelloWorld"`, []string{helloProxy}},
		{`id == "` + helloRoot + `"`, []string{helloRoot}},
		{`isa == "PBXBuildFile" && settings?.ATTRIBUTES != nil && "Weak" in settings.ATTRIBUTES`, []string{"ED297163215061F000B7C4FE"}},
		{`isa == "PBXNativeTarget" && len(buildPhases) > 3`, []string{helloApp}},
		{`isa == "Nope"`, nil},
	}
	for _, tc := range tests {
		got, err := p.Query(tc.src)
		if err != nil {
			t.Errorf("%s: %v", tc.src, err)
			continue
		}
		if diff := cmp.Diff(tc.want, got); diff != "" {
			t.Errorf("%s (-want +got):\n%s", tc.src, diff)
		}
	}
	if _, err := p.Query(`isa ==`); !errors.Is(err, ErrQuery) {
		t.Errorf("bad query: %v", err)
	}
	if _, err := p.Query(`"x"`); !errors.Is(err, ErrQuery) {
		t.Errorf("non boolean: %v", err)
	}
}

func TestApplyJSONPatch(t *testing.T) {
	p := openHello(t)
	patch := `[
	{"op": "replace", "path": "/objects/` + helloApp + `/productName", "value": "Hi"},
	{"op": "remove", "path": "/objects/` + helloProxy + `/remoteInfo"}
]`
	if err := p.ApplyJSONPatch([]byte(patch)); err != nil {
		t.Fatal(err)
	}
	if got := p.Get(helloApp).Str("productName"); got != "Hi" {
		t.Errorf("productName %q", got)
	}
	if p.Get(helloProxy).Props.Has("remoteInfo") {
		t.Error("remoteInfo kept")
	}
	if got := p.ObjectVersion(); got != 46 {
		t.Errorf("objectVersion %d", got)
	}
	if got := p.Get(helloApp).Props.Fields[0]; got != "isa" {
		t.Errorf("first key %q", got)
	}
	before := p.String()
	bad := []string{
		`not json`,
		`[{"op": "remove", "path": "/objects/nope"}]`,
		`[{"op": "remove", "path": "/objects"}]`,
		`[{"op": "replace", "path": "/objects/` + helloRoot + `/isa", "value": "PBXGroup"}]`,
	}
	for _, b := range bad {
		if err := p.ApplyJSONPatch([]byte(b)); !errors.Is(err, ErrPatch) {
			t.Errorf("%s: %v", b, err)
		}
	}
	if p.String() != before {
		t.Error("failed patch changed the project")
	}
}

func TestNew(t *testing.T) {
	p := New("Demo")
	if got := New("Demo").String(); got != p.String() {
		t.Error("New is not deterministic")
	}
	if p.Root() == nil || p.Get(p.MainGroupID()) == nil || p.Get(p.ProductsGroupID()) == nil {
		t.Fatal("incomplete project")
	}
	if got := p.ObjectVersion(); got != LastKnownObjectVersion {
		t.Errorf("objectVersion %d", got)
	}
	cfgs := p.Configurations(p.Root().Str("buildConfigurationList"))
	if len(cfgs) != 2 {
		t.Fatalf("configurations %v", cfgs)
	}
	if _, err := p.CreateNativeTarget(NativeTargetOptions{Name: "Demo", ProductType: ProductTypeApplication}); err != nil {
		t.Fatal(err)
	}
	noOrphans(t, p)
	q := reopen(t, p)
	if !strings.HasPrefix(q.String(), "// !$*UTF8*$!\n{\n\tarchiveVersion = 1;\n\tclasses = {\n\t};\n\tobjectVersion = 77;\n\tobjects = {\n") {
		t.Errorf("header:\n%s", q.String()[:120])
	}
}

func TestSave(t *testing.T) {
	if err := New("X").Save(); !errors.Is(err, ErrNoPath) {
		t.Errorf("got %v", err)
	}
	p := openCopy(t, "helloworld.pbxproj", "HelloWorld")
	if err := os.Chmod(p.FilePath(), 0o600); err != nil {
		t.Fatal(err)
	}
	if err := p.RenameTarget(helloApp, "Renamed"); err != nil {
		t.Fatal(err)
	}
	if err := p.Save(); err != nil {
		t.Fatal(err)
	}
	fi, err := os.Stat(p.FilePath())
	if err != nil {
		t.Fatal(err)
	}
	if fi.Mode().Perm() != 0o600 {
		t.Errorf("mode %v", fi.Mode())
	}
	q, err := Open(p.FilePath())
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := q.FindTargetByName("Renamed"); !ok {
		t.Error("rename not saved")
	}
	entries, err := os.ReadDir(filepath.Dir(p.FilePath()))
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Errorf("temporary files left behind: %v", entries)
	}

	out := filepath.Join(t.TempDir(), "copy.pbxproj")
	if err := q.SaveAs(out); err != nil {
		t.Fatal(err)
	}
	if q.FilePath() != out {
		t.Errorf("path %q", q.FilePath())
	}
	d, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	if string(d) != q.String() {
		t.Error("saved text differs")
	}
}

func TestOperationError(t *testing.T) {
	p := openHello(t)
	_, err := p.AddGroup("nope", "x", "")
	var opErr *OperationError
	if !errors.As(err, &opErr) {
		t.Fatalf("got %T", err)
	}
	if opErr.Op != "add group" || opErr.ID != "nope" {
		t.Errorf("got %+v", opErr)
	}
	if got, want := err.Error(), "add group nope: no such record"; got != want {
		t.Errorf("got %q want %q", got, want)
	}
	_, err = p.CreateNativeTarget(NativeTargetOptions{})
	if got, want := err.Error(), "create native target: invalid project: empty target name"; got != want {
		t.Errorf("got %q want %q", got, want)
	}
}

func TestSettingValue(t *testing.T) {
	cases := []struct {
		in   string
		want ir.Type
	}{
		{"14", ir.IntegerType},
		{"1.5", ir.FloatType},
		{"5.0", ir.StringType},
		{"0755", ir.StringType},
		{"YES", ir.StringType},
		{"", ir.StringType},
	}
	for _, c := range cases {
		v := SettingValue(c.in)
		if v.Type != c.want {
			t.Errorf("SettingValue(%q) is %s, want %s", c.in, v.Type, c.want)
		}
		if got := v.Scalar(); got != c.in {
			t.Errorf("SettingValue(%q) reads back as %q", c.in, got)
		}
	}
}
