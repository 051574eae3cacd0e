package project

import (
	"path"
	"slices"
	"strings"

	"github.com/signadot/pbxproj/ir"
	"github.com/signadot/pbxproj/isa"
	"github.com/signadot/pbxproj/object"
	"github.com/signadot/pbxproj/token"
)

// Mutations check everything they depend on before the first record is
// added, so a returned error leaves the project as it was.

const buildActionMask = 2147483647

func kv(k string, v *ir.Node) ir.KeyVal {
	return ir.KeyVal{Key: k, Val: v}
}

func str(s string) *ir.Node {
	return ir.FromString(s)
}

func (p *Project) expect(op, id string, pred func(isa.Kind) bool, what string) (*object.Record, error) {
	r := p.records[id]
	if r == nil {
		return nil, opErr(op, id, ErrNotFound, "")
	}
	if !pred(r.Kind) {
		return nil, opErr(op, id, ErrWrongKind, "%s is not a %s", r.ISA(), what)
	}
	return r, nil
}

func (p *Project) children(groupID string) []*object.Record {
	var res []*object.Record
	for _, id := range p.records[groupID].List("children") {
		if r := p.records[id]; r != nil {
			res = append(res, r)
		}
	}
	return res
}

// AddGroup creates a group inside parentID.  Either name or path may be
// empty.
func (p *Project) AddGroup(parentID, name, groupPath string) (string, error) {
	const op = "add group"
	parent, err := p.expect(op, parentID, isa.Kind.IsGroup, "group")
	if err != nil {
		return "", err
	}
	if name == "" && groupPath == "" {
		return "", opErr(op, parentID, ErrInvalid, "group needs a name or a path")
	}
	for _, c := range p.children(parentID) {
		if c.Kind.IsGroup() && c.Str("name") == name && c.Str("path") == groupPath {
			return "", opErr(op, parentID, ErrExists, "group %q", c.DisplayName())
		}
	}
	kvs := []ir.KeyVal{
		kv("isa", str(isa.PBXGroup.String())),
		kv("children", ir.FromSlice(nil)),
	}
	if name != "" && name != groupPath {
		kvs = append(kvs, kv("name", str(name)))
	}
	if groupPath != "" {
		kvs = append(kvs, kv("path", str(groupPath)))
	}
	kvs = append(kvs, kv("sourceTree", str("<group>")))
	id := p.add(ir.FromKeyVals(kvs))
	parent.AppendList("children", id)
	return id, nil
}

// AddFile creates a file reference for filePath, relative to the group,
// inside groupID.
func (p *Project) AddFile(groupID, filePath string) (string, error) {
	const op = "add file"
	group, err := p.expect(op, groupID, isa.Kind.IsGroup, "group")
	if err != nil {
		return "", err
	}
	if filePath == "" {
		return "", opErr(op, groupID, ErrInvalid, "empty path")
	}
	for _, c := range p.children(groupID) {
		if c.Kind == isa.PBXFileReference && c.Str("path") == filePath {
			return "", opErr(op, groupID, ErrExists, "file %q", filePath)
		}
	}
	kvs := []ir.KeyVal{
		kv("isa", str(isa.PBXFileReference.String())),
		kv("lastKnownFileType", str(FileType(filePath))),
	}
	if base := path.Base(filePath); base != filePath {
		kvs = append(kvs, kv("name", str(base)))
	}
	kvs = append(kvs,
		kv("path", str(filePath)),
		kv("sourceTree", str("<group>")),
	)
	id := p.add(ir.FromKeyVals(kvs))
	group.AppendList("children", id)
	return id, nil
}

func phaseProps(k isa.Kind, name string, extra ...ir.KeyVal) *ir.Node {
	kvs := []ir.KeyVal{
		kv("isa", str(k.String())),
		kv("buildActionMask", ir.FromInt(buildActionMask)),
	}
	kvs = append(kvs, extra...)
	kvs = append(kvs, kv("files", ir.FromSlice(nil)))
	if k == isa.PBXShellScriptBuildPhase {
		kvs = append(kvs, kv("inputPaths", ir.FromSlice(nil)))
	}
	if name != "" {
		kvs = append(kvs, kv("name", str(name)))
	}
	if k == isa.PBXShellScriptBuildPhase {
		kvs = append(kvs, kv("outputPaths", ir.FromSlice(nil)))
	}
	kvs = append(kvs, kv("runOnlyForDeploymentPostprocessing", ir.FromInt(0)))
	if k == isa.PBXShellScriptBuildPhase {
		kvs = append(kvs,
			kv("shellPath", str("/bin/sh")),
			kv("shellScript", str("")),
		)
	}
	return ir.FromKeyVals(kvs)
}

// AddBuildPhase appends a new, empty phase of kind k to a target.
func (p *Project) AddBuildPhase(targetID string, k isa.Kind, name string) (string, error) {
	const op = "add build phase"
	target, err := p.expect(op, targetID, isa.Kind.IsTarget, "target")
	if err != nil {
		return "", err
	}
	if !k.IsBuildPhase() {
		return "", opErr(op, targetID, ErrNotBuildPhase, "%s", k)
	}
	var extra []ir.KeyVal
	if k == isa.PBXCopyFilesBuildPhase {
		extra = []ir.KeyVal{
			kv("dstPath", str("")),
			kv("dstSubfolderSpec", ir.FromInt(0)),
		}
	}
	id := p.add(phaseProps(k, name, extra...))
	target.AppendList("buildPhases", id)
	return id, nil
}

// AddBuildFile adds a build file for fileID, a file reference or a
// package product, to a build phase.
func (p *Project) AddBuildFile(phaseID, fileID string) (string, error) {
	const op = "add build file"
	phase, err := p.expect(op, phaseID, isa.Kind.IsBuildPhase, "build phase")
	if err != nil {
		return "", err
	}
	if _, ok := p.records[fileID]; !ok {
		return "", opErr(op, fileID, ErrNotFound, "")
	}
	return p.addBuildFile(phase, fileID, nil), nil
}

func (p *Project) addBuildFile(phase *object.Record, fileID string, fileSettings *ir.Node) string {
	refKey := "fileRef"
	if p.records[fileID].Kind == isa.XCSwiftPackageProductDependency {
		refKey = "productRef"
	}
	kvs := []ir.KeyVal{
		kv("isa", str(isa.PBXBuildFile.String())),
		kv(refKey, str(fileID)),
	}
	if fileSettings != nil {
		kvs = append(kvs, kv("settings", fileSettings))
	}
	id := p.add(ir.FromKeyVals(kvs))
	phase.AppendList("files", id)
	return id
}

// buildFileFor returns the build file in phase referring to fileID.
func (p *Project) buildFileFor(phase *object.Record, fileID string) (string, bool) {
	for _, id := range phase.List("files") {
		if r := p.records[id]; r != nil && (r.Str("fileRef") == fileID || r.Str("productRef") == fileID) {
			return id, true
		}
	}
	return "", false
}

// AddFramework links an SDK framework into a target, creating the file
// reference under the Frameworks group and the Frameworks phase when
// they are missing.  It returns the build file.
func (p *Project) AddFramework(targetID, name string) (string, error) {
	const op = "add framework"
	target, err := p.expect(op, targetID, isa.Kind.IsTarget, "target")
	if err != nil {
		return "", err
	}
	if name == "" {
		return "", opErr(op, targetID, ErrInvalid, "empty framework name")
	}
	if path.Ext(name) == "" {
		name += ".framework"
	}
	fwPath := "System/Library/Frameworks/" + name
	var fileID string
	for _, id := range p.ByKind(isa.PBXFileReference) {
		r := p.records[id]
		if r.Str("path") == fwPath && r.Str("sourceTree") == "SDKROOT" {
			fileID = id
			break
		}
	}
	phaseID, hasPhase := p.FindBuildPhase(targetID, isa.PBXFrameworksBuildPhase)
	if hasPhase && fileID != "" {
		if _, ok := p.buildFileFor(p.records[phaseID], fileID); ok {
			return "", opErr(op, targetID, ErrExists, "%s is already linked", name)
		}
	}
	main := p.records[p.MainGroupID()]
	if main == nil {
		return "", opErr(op, targetID, ErrNotFound, "main group")
	}

	if fileID == "" {
		group := p.frameworksGroup(main)
		fileID = p.add(ir.FromKeyVals([]ir.KeyVal{
			kv("isa", str(isa.PBXFileReference.String())),
			kv("lastKnownFileType", str(FileType(name))),
			kv("name", str(name)),
			kv("path", str(fwPath)),
			kv("sourceTree", str("SDKROOT")),
		}))
		group.AppendList("children", fileID)
	}
	if !hasPhase {
		phaseID = p.add(phaseProps(isa.PBXFrameworksBuildPhase, ""))
		target.AppendList("buildPhases", phaseID)
	}
	return p.addBuildFile(p.records[phaseID], fileID, nil), nil
}

func (p *Project) frameworksGroup(main *object.Record) *object.Record {
	for _, c := range p.children(main.ID) {
		if c.Kind == isa.PBXGroup && c.DisplayName() == "Frameworks" {
			return c
		}
	}
	id := p.add(ir.FromKeyVals([]ir.KeyVal{
		kv("isa", str(isa.PBXGroup.String())),
		kv("children", ir.FromSlice(nil)),
		kv("name", str("Frameworks")),
		kv("sourceTree", str("<group>")),
	}))
	main.AppendList("children", id)
	return p.records[id]
}

// NativeTargetOptions describes a target for CreateNativeTarget.
type NativeTargetOptions struct {
	Name        string
	ProductType string
	// ProductName defaults to Name.
	ProductName string
	// BuildSettings are added to both configurations.
	BuildSettings map[string]string
}

// CreateNativeTarget adds a target with its product reference, a Debug
// and Release configuration list, and empty Sources, Frameworks and
// Resources phases.  It returns the target.
func (p *Project) CreateNativeTarget(opts NativeTargetOptions) (string, error) {
	const op = "create native target"
	if opts.Name == "" {
		return "", opErr(op, "", ErrInvalid, "empty target name")
	}
	if _, ok := p.FindTargetByName(opts.Name); ok {
		return "", opErr(op, "", ErrExists, "target %q", opts.Name)
	}
	ext, ok := ProductExtension(opts.ProductType)
	if !ok {
		return "", opErr(op, "", ErrWrongKind, "unknown product type %q", opts.ProductType)
	}
	productName := opts.ProductName
	if productName == "" {
		productName = opts.Name
	}
	product := productName
	if ext != "" {
		product += "." + ext
	}

	productKVs := []ir.KeyVal{kv("isa", str(isa.PBXFileReference.String()))}
	if ext != "" {
		productKVs = append(productKVs, kv("explicitFileType", str(FileType(product))))
	} else {
		productKVs = append(productKVs, kv("explicitFileType", str("compiled.mach-o.executable")))
	}
	productKVs = append(productKVs,
		kv("includeInIndex", ir.FromInt(0)),
		kv("path", str(product)),
		kv("sourceTree", str("BUILT_PRODUCTS_DIR")),
	)
	productID := p.add(ir.FromKeyVals(productKVs))
	if products := p.records[p.ProductsGroupID()]; products != nil {
		products.AppendList("children", productID)
	}

	var cfgs []string
	for _, name := range []string{"Debug", "Release"} {
		bs := map[string]string{"PRODUCT_NAME": "$(TARGET_NAME)"}
		for k, v := range opts.BuildSettings {
			bs[k] = v
		}
		cfgs = append(cfgs, p.add(configProps(name, bs)))
	}
	listID := p.add(configListProps(cfgs))

	var phases []string
	for _, k := range []isa.Kind{isa.PBXSourcesBuildPhase, isa.PBXFrameworksBuildPhase, isa.PBXResourcesBuildPhase} {
		phases = append(phases, p.add(phaseProps(k, "")))
	}
	id := p.add(ir.FromKeyVals([]ir.KeyVal{
		kv("isa", str(isa.PBXNativeTarget.String())),
		kv("buildConfigurationList", str(listID)),
		kv("buildPhases", ir.FromStrings(phases)),
		kv("buildRules", ir.FromSlice(nil)),
		kv("dependencies", ir.FromSlice(nil)),
		kv("name", str(opts.Name)),
		kv("productName", str(productName)),
		kv("productReference", str(productID)),
		kv("productType", str(opts.ProductType)),
	}))
	p.Root().AppendList("targets", id)
	return id, nil
}

func configProps(name string, bs map[string]string) *ir.Node {
	keys := make([]string, 0, len(bs))
	for k := range bs {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	settings := ir.NewObject()
	for _, k := range keys {
		settings.Set(k, SettingValue(bs[k]))
	}
	return ir.FromKeyVals([]ir.KeyVal{
		kv("isa", str(isa.XCBuildConfiguration.String())),
		kv("buildSettings", settings),
		kv("name", str(name)),
	})
}

// SettingValue reads a build setting given as text the way the parser
// reads an unquoted value, so that numbers are written as numbers.
func SettingValue(s string) *ir.Node {
	switch kind, i, f := token.Classify(s); kind {
	case token.IntegerLiteral:
		return ir.FromInt(i)
	case token.FloatLiteral:
		return ir.FromFloat(f)
	}
	return str(s)
}

func configListProps(cfgs []string) *ir.Node {
	return ir.FromKeyVals([]ir.KeyVal{
		kv("isa", str(isa.XCConfigurationList.String())),
		kv("buildConfigurations", ir.FromStrings(cfgs)),
		kv("defaultConfigurationIsVisible", ir.FromInt(0)),
		kv("defaultConfigurationName", str("Release")),
	})
}

// AddDependency makes targetID depend on dependsOnID through a container
// item proxy.  It returns the target dependency.
func (p *Project) AddDependency(targetID, dependsOnID string) (string, error) {
	const op = "add dependency"
	target, err := p.expect(op, targetID, isa.Kind.IsTarget, "target")
	if err != nil {
		return "", err
	}
	dep, err := p.expect(op, dependsOnID, isa.Kind.IsTarget, "target")
	if err != nil {
		return "", err
	}
	if targetID == dependsOnID {
		return "", opErr(op, targetID, ErrInvalid, "target cannot depend on itself")
	}
	if p.dependsOn(target, dependsOnID) {
		return "", opErr(op, targetID, ErrExists, "dependency on %s", dependsOnID)
	}
	return p.addDependency(target, dep), nil
}

func (p *Project) dependsOn(target *object.Record, id string) bool {
	for _, d := range target.List("dependencies") {
		if r := p.records[d]; r != nil && r.Str("target") == id {
			return true
		}
	}
	return false
}

func (p *Project) addDependency(target, dep *object.Record) string {
	proxy := p.add(ir.FromKeyVals([]ir.KeyVal{
		kv("isa", str(isa.PBXContainerItemProxy.String())),
		kv("containerPortal", str(p.RootID())),
		kv("proxyType", ir.FromInt(1)),
		kv("remoteGlobalIDString", str(dep.ID)),
		kv("remoteInfo", str(dep.Str("name"))),
	}))
	id := p.add(ir.FromKeyVals([]ir.KeyVal{
		kv("isa", str(isa.PBXTargetDependency.String())),
		kv("target", str(dep.ID)),
		kv("targetProxy", str(proxy)),
	}))
	target.AppendList("dependencies", id)
	return id
}

type embedding struct {
	spec int64
	dst  string
	name string
}

// embeddingFor returns where a product of productType is copied inside
// its host application.
func embeddingFor(productType string) (embedding, bool) {
	switch productType {
	case ProductTypeWatchApp, ProductTypeWatchApp2:
		return embedding{16, "$(CONTENTS_FOLDER_PATH)/Watch", "Embed Watch Content"}, true
	case ProductTypeAppClip:
		return embedding{16, "$(CONTENTS_FOLDER_PATH)/AppClips", "Embed App Clips"}, true
	case ProductTypeExtensionKit:
		return embedding{16, "$(EXTENSIONS_FOLDER_PATH)", "Embed ExtensionKit Extensions"}, true
	}
	if strings.HasPrefix(productType, ProductTypeAppExtension) || productType == ProductTypeWatchExtension ||
		productType == ProductTypeWatchExtension2 {
		return embedding{13, "", "Embed Foundation Extensions"}, true
	}
	return embedding{}, false
}

// EmbedExtension copies the product of extID into the application
// appID, through the copy files phase for the product's destination,
// and makes the application depend on it.  It returns the build file.
func (p *Project) EmbedExtension(appID, extID string) (string, error) {
	const op = "embed extension"
	app, err := p.expect(op, appID, isa.Kind.IsTarget, "target")
	if err != nil {
		return "", err
	}
	ext, err := p.expect(op, extID, isa.Kind.IsTarget, "target")
	if err != nil {
		return "", err
	}
	productID := ext.Str("productReference")
	if _, ok := p.records[productID]; !ok {
		return "", opErr(op, extID, ErrNotFound, "product reference %q", productID)
	}
	emb, ok := embeddingFor(ext.Str("productType"))
	if !ok {
		return "", opErr(op, extID, ErrWrongKind, "cannot embed product type %q", ext.Str("productType"))
	}
	var phase *object.Record
	for _, id := range app.List("buildPhases") {
		r := p.records[id]
		if r == nil || r.Kind != isa.PBXCopyFilesBuildPhase {
			continue
		}
		if spec := r.Get("dstSubfolderSpec"); spec != nil && spec.Int64 == emb.spec && r.Str("dstPath") == emb.dst {
			phase = r
			break
		}
	}
	if phase != nil {
		if _, ok := p.buildFileFor(phase, productID); ok {
			return "", opErr(op, appID, ErrExists, "%s is already embedded", ext.Str("name"))
		}
	} else {
		id := p.add(phaseProps(isa.PBXCopyFilesBuildPhase, emb.name,
			kv("dstPath", str(emb.dst)),
			kv("dstSubfolderSpec", ir.FromInt(emb.spec)),
		))
		app.AppendList("buildPhases", id)
		phase = p.records[id]
	}
	attrs := ir.FromKeyVals([]ir.KeyVal{
		kv("ATTRIBUTES", ir.FromStrings([]string{"RemoveHeadersOnCopy"})),
	})
	id := p.addBuildFile(phase, productID, attrs)
	if !p.dependsOn(app, extID) {
		p.addDependency(app, ext)
	}
	return id, nil
}
