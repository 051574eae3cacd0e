package encode_test

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/signadot/pbxproj/encode"
	"github.com/signadot/pbxproj/format"
	"github.com/signadot/pbxproj/ir"
	"github.com/signadot/pbxproj/libdiff"
	"github.com/signadot/pbxproj/parse"
	"github.com/signadot/pbxproj/token"
)

func fixtures(t *testing.T) []string {
	t.Helper()
	res, err := filepath.Glob("../testdata/*.pbxproj")
	if err != nil {
		t.Fatal(err)
	}
	if len(res) == 0 {
		t.Fatal("no fixtures")
	}
	return res
}

func encodeString(t *testing.T, node *ir.Node, opts ...encode.EncodeOption) string {
	t.Helper()
	buf := bytes.NewBuffer(nil)
	if err := encode.Encode(node, buf, opts...); err != nil {
		t.Fatal(err)
	}
	return buf.String()
}

func TestRoundTrip(t *testing.T) {
	for _, path := range fixtures(t) {
		t.Run(filepath.Base(path), func(t *testing.T) {
			d, err := os.ReadFile(path)
			if err != nil {
				t.Fatal(err)
			}
			node, err := parse.Parse(d)
			if err != nil {
				t.Fatal(err)
			}
			got := encodeString(t, node)
			if got != string(d) {
				t.Errorf("round trip differs:\n%s", libdiff.Format(libdiff.Lines(string(d), got), 2, false))
			}
		})
	}
}

func TestIdempotent(t *testing.T) {
	for _, path := range fixtures(t) {
		d, err := os.ReadFile(path)
		if err != nil {
			t.Fatal(err)
		}
		first, err := parse.Parse(d)
		if err != nil {
			t.Fatal(err)
		}
		second, err := parse.Parse([]byte(encode.MustString(first)))
		if err != nil {
			t.Fatalf("%s: reparse: %v", path, err)
		}
		if !ir.Equal(first, second) {
			t.Errorf("%s: tree changed after a round trip", path)
		}
	}
}

func TestQuoting(t *testing.T) {
	node := ir.FromKeyVals([]ir.KeyVal{
		{Key: "empty", Val: ir.FromString("")},
		{Key: "digits", Val: ir.FromString("42")},
		{Key: "decimal", Val: ir.FromString("3.14")},
		{Key: "mode", Val: ir.FromString("0755")},
		{Key: "id", Val: ir.FromString("13B07F961A680F5B00A75B9A")},
		{Key: "path", Val: ir.FromString("HelloWorld/main.m")},
		{Key: "hyphen", Val: ir.FromString("a-b")},
		{Key: "comment", Val: ir.FromString("a//b")},
		{Key: "space", Val: ir.FromString("a b")},
		{Key: "escapes", Val: ir.FromString("\"\\\n\x01")},
		{Key: "number", Val: ir.FromInt(42)},
		{Key: "SWIFT_VERSION", Val: ir.FromInt(5)},
		{Key: "float", Val: ir.FromFloat(13.4)},
		{Key: "CODE_SIGN_IDENTITY[sdk=iphoneos*]", Val: ir.FromString("iPhone Developer")},
		{Key: "data", Val: ir.FromData([]byte{0x0f, 0xab})},
	})
	want := `{
	empty = "";
	digits = "42";
	decimal = "3.14";
	mode = 0755;
	id = 13B07F961A680F5B00A75B9A;
	path = HelloWorld/main.m;
	hyphen = "a-b";
	comment = "a//b";
	space = "a b";
	escapes = "\"\\\n\U0001";
	number = 42;
	SWIFT_VERSION = 5;
	float = 13.4;
	"CODE_SIGN_IDENTITY[sdk=iphoneos*]" = "iPhone Developer";
	data = <0FAB>;
}
`
	got := encodeString(t, node, encode.Fragment())
	if got != want {
		t.Errorf("got:\n%s\nwant:\n%s", got, want)
	}
	back, err := parse.Parse([]byte(got))
	if err != nil {
		t.Fatal(err)
	}
	for i, k := range node.Fields {
		if !ir.Equal(node.Values[i], back.Get(k)) {
			t.Errorf("%s: %v did not survive", k, node.Values[i])
		}
	}
}

func TestLegacyOctal(t *testing.T) {
	for code := 0x80; code <= 0xff; code++ {
		in := fmt.Sprintf(`{ s = "\%o"; }`, code)
		node, err := parse.Parse([]byte(in))
		if err != nil {
			t.Fatalf("%s: %v", in, err)
		}
		s, _ := node.GetString("s")
		if want := string(token.NeXTSTEPRune(code)); s != want {
			t.Errorf("%s: got %q want %q", in, s, want)
		}
		again, err := parse.Parse([]byte(encode.MustString(node, encode.Fragment())))
		if err != nil {
			t.Fatal(err)
		}
		if !ir.Equal(node, again) {
			t.Errorf("\\%o: value changed on rewrite", code)
		}
	}
}

func objectsDoc(records ...ir.KeyVal) *ir.Node {
	return ir.FromKeyVals([]ir.KeyVal{
		{Key: "archiveVersion", Val: ir.FromInt(1)},
		{Key: "classes", Val: ir.NewObject()},
		{Key: "objectVersion", Val: ir.FromInt(46)},
		{Key: "objects", Val: ir.FromKeyVals(records)},
		{Key: "rootObject", Val: ir.FromString("P")},
	})
}

func group(name string, children ...string) *ir.Node {
	return ir.FromKeyVals([]ir.KeyVal{
		{Key: "isa", Val: ir.FromString("PBXGroup")},
		{Key: "children", Val: ir.FromStrings(children)},
		{Key: "name", Val: ir.FromString(name)},
	})
}

func TestSections(t *testing.T) {
	doc := objectsDoc(
		ir.KeyVal{Key: "G2", Val: group("Two", "G1")},
		ir.KeyVal{Key: "P", Val: ir.FromKeyVals([]ir.KeyVal{
			{Key: "isa", Val: ir.FromString("PBXProject")},
			{Key: "attributes", Val: ir.NewObject()},
			{Key: "mainGroup", Val: ir.FromString("G2")},
		})},
		ir.KeyVal{Key: "G1", Val: group("One")},
	)
	want := `// !$*UTF8*$!
{
	archiveVersion = 1;
	classes = {
	};
	objectVersion = 46;
	objects = {

/* Begin PBXGroup section */
		G2 /* Two */ = {
			isa = PBXGroup;
			children = (
				G1 /* One */,
			);
			name = Two;
		};
		G1 /* One */ = {
			isa = PBXGroup;
			children = (
			);
			name = One;
		};
/* End PBXGroup section */

/* Begin PBXProject section */
		P /* Project object */ = {
			isa = PBXProject;
			attributes = {};
			mainGroup = G2 /* Two */;
		};
/* End PBXProject section */
	};
	rootObject = P /* Project object */;
}
`
	got := encodeString(t, doc)
	if got != want {
		t.Errorf("diff:\n%s", libdiff.Format(libdiff.Lines(want, got), 2, false))
	}
	sorted := encodeString(t, doc, encode.SortObjects(true))
	if strings.Index(sorted, "G1 /* One */ = {") > strings.Index(sorted, "G2 /* Two */ = {") {
		t.Errorf("SortObjects did not order by identifier:\n%s", sorted)
	}
}

func TestInlineRecords(t *testing.T) {
	doc := objectsDoc(
		ir.KeyVal{Key: "B", Val: ir.FromKeyVals([]ir.KeyVal{
			{Key: "isa", Val: ir.FromString("PBXBuildFile")},
			{Key: "fileRef", Val: ir.FromString("F")},
			{Key: "settings", Val: ir.FromKeyVals([]ir.KeyVal{
				{Key: "ATTRIBUTES", Val: ir.FromStrings([]string{"Weak", "CodeSignOnCopy"})},
			})},
		})},
		ir.KeyVal{Key: "F", Val: ir.FromKeyVals([]ir.KeyVal{
			{Key: "isa", Val: ir.FromString("PBXFileReference")},
			{Key: "includeInIndex", Val: ir.FromInt(0)},
			{Key: "path", Val: ir.FromString("Foo.framework")},
			{Key: "sourceTree", Val: ir.FromString("<group>")},
		})},
	)
	got := encodeString(t, doc)
	for _, line := range []string{
		"\t\tB /* Foo.framework in [missing build phase] */ = {isa = PBXBuildFile; fileRef = F /* Foo.framework */; settings = {ATTRIBUTES = (Weak, CodeSignOnCopy, ); }; };\n",
		"\t\tF /* Foo.framework */ = {isa = PBXFileReference; includeInIndex = 0; path = Foo.framework; sourceTree = \"<group>\"; };\n",
	} {
		if !strings.Contains(got, line) {
			t.Errorf("missing %q in\n%s", line, got)
		}
	}
}

func TestComments(t *testing.T) {
	d, err := os.ReadFile("../testdata/helloworld.pbxproj")
	if err != nil {
		t.Fatal(err)
	}
	node, err := parse.Parse(d)
	if err != nil {
		t.Fatal(err)
	}
	got := encode.Comments(node.Get("objects"))
	for id, want := range map[string]string{
		"13B07FBC1A68108700A75B9A": "AppDelegate.m in Sources",
		"ED297163215061F000B7C4FE": "JavaScriptCore.framework in Frameworks",
		"83CBB9F71A601CBA00E9B192": "Project object",
		"13B07F931A680F5B00A75B9A": `Build configuration list for PBXNativeTarget "HelloWorld"`,
		"83CBB9FA1A601CBA00E9B192": `Build configuration list for PBXProject "HelloWorld"`,
		"00DD1BFF1BD5951E006B06BC": "Bundle React Native code and images",
		"00E356F41AD99517003FC87E": "PBXContainerItemProxy",
		"13B07F8C1A680F5B00A75B9A": "Frameworks",
	} {
		if got[id] != want {
			t.Errorf("%s: got %q want %q", id, got[id], want)
		}
	}
	if c, ok := got["83CBB9F61A601CBA00E9B192"]; ok {
		t.Errorf("main group has comment %q", c)
	}

	// the annotations Xcode wrote agree with the derived ones
	ann := map[string]string{}
	if _, err := parse.Parse(d, parse.ParseAnnotations(ann)); err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(ann, got); diff != "" {
		t.Errorf("derived comments differ from file (-file +derived):\n%s", diff)
	}
}

func TestCommentFallbacks(t *testing.T) {
	objects := ir.FromKeyVals([]ir.KeyVal{
		{Key: "B", Val: ir.FromKeyVals([]ir.KeyVal{
			{Key: "isa", Val: ir.FromString("PBXBuildFile")},
			{Key: "fileRef", Val: ir.FromString("GONE")},
		})},
		{Key: "S", Val: ir.FromKeyVals([]ir.KeyVal{
			{Key: "isa", Val: ir.FromString("PBXSourcesBuildPhase")},
			{Key: "files", Val: ir.FromStrings([]string{"B"})},
		})},
		{Key: "L", Val: ir.FromKeyVals([]ir.KeyVal{
			{Key: "isa", Val: ir.FromString("XCConfigurationList")},
		})},
		{Key: "R", Val: ir.FromKeyVals([]ir.KeyVal{
			{Key: "isa", Val: ir.FromString("XCRemoteSwiftPackageReference")},
			{Key: "repositoryURL", Val: ir.FromString("https://github.com/apple/swift-collections.git")},
		})},
		{Key: "X", Val: ir.FromKeyVals([]ir.KeyVal{
			{Key: "isa", Val: ir.FromString("PBXSomethingNew")},
		})},
	})
	want := map[string]string{
		"B": "(null) in Sources",
		"S": "Sources",
		"L": "Build configuration list for [unknown]",
		"R": `XCRemoteSwiftPackageReference "swift-collections"`,
		"X": "PBXSomethingNew",
	}
	if diff := cmp.Diff(want, encode.Comments(objects)); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
}

func TestRepoName(t *testing.T) {
	for in, want := range map[string]string{
		"https://github.com/apple/swift-nio":     "swift-nio",
		"https://github.com/apple/swift-nio.git": "swift-nio",
		"https://gitlab.com/group/project.git":   "https://gitlab.com/group/project.git",
		"http://github.com/realm/SwiftLint.git":  "SwiftLint",
	} {
		if got := encode.RepoName(in); got != want {
			t.Errorf("RepoName(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestFormats(t *testing.T) {
	node := ir.FromKeyVals([]ir.KeyVal{
		{Key: "b", Val: ir.FromInt(1)},
		{Key: "a", Val: ir.FromData([]byte{1, 2})},
	})
	got := encodeString(t, node, encode.EncodeFormat(format.JSONFormat))
	want := `{
  "b": 1,
  "a": {
    "type": "Buffer",
    "data": [
      1,
      2
    ]
  }
}
`
	if got != want {
		t.Errorf("json:\n%s", got)
	}
	y := encodeString(t, node, encode.EncodeFormat(format.YAMLFormat))
	if !strings.HasPrefix(y, "b: 1\na:\n") {
		t.Errorf("yaml:\n%s", y)
	}
	if f := encode.FormatFromOpts(encode.EncodeFormat(format.YAMLFormat)); f != format.YAMLFormat {
		t.Errorf("FormatFromOpts: %v", f)
	}
}

func TestEncodeErrors(t *testing.T) {
	err := encode.Encode(ir.FromString("x"), bytes.NewBuffer(nil))
	if err == nil {
		t.Fatal("expected error for scalar head")
	}
	if got := encode.MustString(ir.FromString("x"), encode.Fragment()); got != "x" {
		t.Errorf("fragment scalar: %q", got)
	}
}

func TestColors(t *testing.T) {
	colors := encode.NewColors()
	colors.Default = func(s string, _ ...any) string { return s }
	for k := range colors.Map {
		colors.Map[k] = func(s string, _ ...any) string { return "[" + s + "]" }
	}
	got := encode.MustString(ir.FromKeyVals([]ir.KeyVal{{Key: "k", Val: ir.FromInt(1)}}),
		encode.Fragment(), encode.EncodeColors(colors))
	want := "[{]\n\t[k] = [1];\n[}]\n"
	if got != want {
		t.Errorf("got %q want %q", got, want)
	}
}

func TestWithComments(t *testing.T) {
	d, err := os.ReadFile("../testdata/helloworld.pbxproj")
	if err != nil {
		t.Fatal(err)
	}
	node, err := parse.Parse(d)
	if err != nil {
		t.Fatal(err)
	}
	comments := encode.Comments(node.Get("objects"))
	if got := encodeString(t, node, encode.WithComments(comments)); got != string(d) {
		t.Errorf("derived comments changed output:\n%s", libdiff.Format(libdiff.Lines(string(d), got), 2, false))
	}
	comments["13B07F861A680F5B00A75B9A"] = "Renamed"
	got := encodeString(t, node, encode.WithComments(comments))
	if !strings.Contains(got, "13B07F861A680F5B00A75B9A /* Renamed */ = {") {
		t.Error("supplied comment not used")
	}
}
