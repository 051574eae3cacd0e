// Package isa enumerates the record kinds found in the objects table of
// an Xcode project.
package isa

import "strings"

type Kind int

const (
	Unknown Kind = iota
	PBXBuildFile
	PBXAppleScriptBuildPhase
	PBXCopyFilesBuildPhase
	PBXFrameworksBuildPhase
	PBXHeadersBuildPhase
	PBXResourcesBuildPhase
	PBXShellScriptBuildPhase
	PBXSourcesBuildPhase
	PBXRezBuildPhase
	PBXContainerItemProxy
	PBXFileReference
	PBXGroup
	PBXVariantGroup
	XCVersionGroup
	PBXFileSystemSynchronizedRootGroup
	PBXFileSystemSynchronizedBuildFileExceptionSet
	PBXFileSystemSynchronizedGroupBuildPhaseMembershipExceptionSet
	PBXNativeTarget
	PBXAggregateTarget
	PBXLegacyTarget
	PBXProject
	PBXTargetDependency
	XCBuildConfiguration
	XCConfigurationList
	PBXBuildRule
	PBXReferenceProxy
	XCSwiftPackageProductDependency
	XCRemoteSwiftPackageReference
	XCLocalSwiftPackageReference
)

var names = [...]string{
	Unknown:                            "Unknown",
	PBXBuildFile:                       "PBXBuildFile",
	PBXAppleScriptBuildPhase:           "PBXAppleScriptBuildPhase",
	PBXCopyFilesBuildPhase:             "PBXCopyFilesBuildPhase",
	PBXFrameworksBuildPhase:            "PBXFrameworksBuildPhase",
	PBXHeadersBuildPhase:               "PBXHeadersBuildPhase",
	PBXResourcesBuildPhase:             "PBXResourcesBuildPhase",
	PBXShellScriptBuildPhase:           "PBXShellScriptBuildPhase",
	PBXSourcesBuildPhase:               "PBXSourcesBuildPhase",
	PBXRezBuildPhase:                   "PBXRezBuildPhase",
	PBXContainerItemProxy:              "PBXContainerItemProxy",
	PBXFileReference:                   "PBXFileReference",
	PBXGroup:                           "PBXGroup",
	PBXVariantGroup:                    "PBXVariantGroup",
	XCVersionGroup:                     "XCVersionGroup",
	PBXFileSystemSynchronizedRootGroup: "PBXFileSystemSynchronizedRootGroup",
	PBXFileSystemSynchronizedBuildFileExceptionSet:                 "PBXFileSystemSynchronizedBuildFileExceptionSet",
	PBXFileSystemSynchronizedGroupBuildPhaseMembershipExceptionSet: "PBXFileSystemSynchronizedGroupBuildPhaseMembershipExceptionSet",
	PBXNativeTarget:                 "PBXNativeTarget",
	PBXAggregateTarget:              "PBXAggregateTarget",
	PBXLegacyTarget:                 "PBXLegacyTarget",
	PBXProject:                      "PBXProject",
	PBXTargetDependency:             "PBXTargetDependency",
	XCBuildConfiguration:            "XCBuildConfiguration",
	XCConfigurationList:             "XCConfigurationList",
	PBXBuildRule:                    "PBXBuildRule",
	PBXReferenceProxy:               "PBXReferenceProxy",
	XCSwiftPackageProductDependency: "XCSwiftPackageProductDependency",
	XCRemoteSwiftPackageReference:   "XCRemoteSwiftPackageReference",
	XCLocalSwiftPackageReference:    "XCLocalSwiftPackageReference",
}

var byName = func() map[string]Kind {
	m := make(map[string]Kind, len(names))
	for k, n := range names {
		if Kind(k) != Unknown {
			m[n] = Kind(k)
		}
	}
	return m
}()

// Parse maps an isa string to its Kind, or Unknown.
func Parse(s string) Kind {
	return byName[s]
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(names) {
		return names[Unknown]
	}
	return names[k]
}

// Kinds returns every known kind.
func Kinds() []Kind {
	res := make([]Kind, 0, len(names)-1)
	for k := PBXBuildFile; int(k) < len(names); k++ {
		res = append(res, k)
	}
	return res
}

func (k Kind) IsBuildPhase() bool {
	switch k {
	case PBXAppleScriptBuildPhase, PBXCopyFilesBuildPhase, PBXFrameworksBuildPhase,
		PBXHeadersBuildPhase, PBXResourcesBuildPhase, PBXShellScriptBuildPhase,
		PBXSourcesBuildPhase, PBXRezBuildPhase:
		return true
	}
	return false
}

func (k Kind) IsTarget() bool {
	switch k {
	case PBXNativeTarget, PBXAggregateTarget, PBXLegacyTarget:
		return true
	}
	return false
}

// IsGroup reports kinds which hold children.
func (k Kind) IsGroup() bool {
	switch k {
	case PBXGroup, PBXVariantGroup, XCVersionGroup:
		return true
	}
	return false
}

// Inline reports kinds written on a single line.
func (k Kind) Inline() bool {
	return k == PBXBuildFile || k == PBXFileReference
}

// DefaultPhaseName is the display name of an unnamed build phase:
// "Sources" for PBXSourcesBuildPhase and so on.
func (k Kind) DefaultPhaseName() string {
	switch k {
	case PBXCopyFilesBuildPhase:
		return "CopyFiles"
	case PBXShellScriptBuildPhase:
		return "ShellScript"
	}
	return DefaultPhaseName(k.String())
}

// DefaultPhaseName strips the PBX prefix and BuildPhase suffix of an isa
// string.
func DefaultPhaseName(isa string) string {
	return strings.TrimSuffix(strings.TrimPrefix(isa, "PBX"), "BuildPhase")
}
