package object

import "github.com/signadot/pbxproj/isa"

// RefKey names a property holding one identifier, or a list of them
// when Many is set.
type RefKey struct {
	Name string
	Many bool
}

var (
	targetRefs = []RefKey{
		{Name: "buildConfigurationList"},
		{Name: "dependencies", Many: true},
		{Name: "buildPhases", Many: true},
		{Name: "buildRules", Many: true},
		{Name: "productReference"},
		{Name: "packageProductDependencies", Many: true},
		{Name: "fileSystemSynchronizedGroups", Many: true},
	}
	groupRefs = []RefKey{
		{Name: "children", Many: true},
	}
	phaseRefs = []RefKey{
		{Name: "files", Many: true},
	}
)

var refKeys = map[isa.Kind][]RefKey{
	isa.PBXProject: {
		{Name: "buildConfigurationList"},
		{Name: "mainGroup"},
		{Name: "productRefGroup"},
		{Name: "targets", Many: true},
		{Name: "packageReferences", Many: true},
	},
	isa.PBXNativeTarget:          targetRefs,
	isa.PBXAggregateTarget:       targetRefs,
	isa.PBXLegacyTarget:          targetRefs,
	isa.PBXGroup:                 groupRefs,
	isa.PBXVariantGroup:          groupRefs,
	isa.XCVersionGroup:           append([]RefKey{{Name: "currentVersion"}}, groupRefs...),
	isa.XCConfigurationList:      {{Name: "buildConfigurations", Many: true}},
	isa.XCBuildConfiguration:     {{Name: "baseConfigurationReference"}},
	isa.PBXBuildFile:             {{Name: "fileRef"}, {Name: "productRef"}},
	isa.PBXTargetDependency:      {{Name: "target"}, {Name: "targetProxy"}, {Name: "productRef"}},
	isa.PBXContainerItemProxy:    {{Name: "containerPortal"}},
	isa.PBXReferenceProxy:        {{Name: "remoteRef"}},
	isa.PBXAppleScriptBuildPhase: phaseRefs,
	isa.PBXCopyFilesBuildPhase:   phaseRefs,
	isa.PBXFrameworksBuildPhase:  phaseRefs,
	isa.PBXHeadersBuildPhase:     phaseRefs,
	isa.PBXResourcesBuildPhase:   phaseRefs,
	isa.PBXShellScriptBuildPhase: phaseRefs,
	isa.PBXSourcesBuildPhase:     phaseRefs,
	isa.PBXRezBuildPhase:         phaseRefs,

	isa.XCSwiftPackageProductDependency:                                {{Name: "package"}},
	isa.PBXFileSystemSynchronizedRootGroup:                             {{Name: "exceptions", Many: true}},
	isa.PBXFileSystemSynchronizedBuildFileExceptionSet:                 {{Name: "target"}},
	isa.PBXFileSystemSynchronizedGroupBuildPhaseMembershipExceptionSet: {{Name: "buildPhase"}},
}

// RefKeys returns the reference declarations for a kind.  Unknown kinds
// declare none.
func RefKeys(k isa.Kind) []RefKey {
	return refKeys[k]
}
