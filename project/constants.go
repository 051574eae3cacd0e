package project

import (
	"path"
	"strings"
)

const (
	LastKnownArchiveVersion = 1
	LastKnownObjectVersion  = 77
	DefaultObjectVersion    = 46
	LastUpgradeCheck        = "2600"
)

const (
	ProductTypeApplication       = "com.apple.product-type.application"
	ProductTypeAppClip           = "com.apple.product-type.application.on-demand-install-capable"
	ProductTypeWatchApp          = "com.apple.product-type.application.watchapp"
	ProductTypeWatchApp2         = "com.apple.product-type.application.watchapp2"
	ProductTypeWatchApp2Host     = "com.apple.product-type.application.watchapp2-container"
	ProductTypeAppExtension      = "com.apple.product-type.app-extension"
	ProductTypeExtensionKit      = "com.apple.product-type.extensionkit-extension"
	ProductTypeWatchExtension    = "com.apple.product-type.watchkit-extension"
	ProductTypeWatchExtension2   = "com.apple.product-type.watchkit2-extension"
	ProductTypeBundle            = "com.apple.product-type.bundle"
	ProductTypeFramework         = "com.apple.product-type.framework"
	ProductTypeDynamicLibrary    = "com.apple.product-type.library.dynamic"
	ProductTypeStaticLibrary     = "com.apple.product-type.library.static"
	ProductTypeTool              = "com.apple.product-type.tool"
	ProductTypeUnitTestBundle    = "com.apple.product-type.bundle.unit-test"
	ProductTypeUITestBundle      = "com.apple.product-type.bundle.ui-testing"
	ProductTypeMessagesExtension = "com.apple.product-type.app-extension.messages"
)

// fileTypes maps file extensions to lastKnownFileType values.
var fileTypes = map[string]string{
	"a":                "archive.ar",
	"app":              "wrapper.application",
	"appex":            "wrapper.app-extension",
	"bundle":           "wrapper.plug-in",
	"c":                "sourcecode.c.c",
	"cc":               "sourcecode.cpp.cpp",
	"cpp":              "sourcecode.cpp.cpp",
	"css":              "text.css",
	"cxx":              "sourcecode.cpp.cpp",
	"d":                "sourcecode.dtrace",
	"dylib":            "compiled.mach-o.dylib",
	"entitlements":     "text.plist.entitlements",
	"framework":        "wrapper.framework",
	"gif":              "image.gif",
	"gpx":              "text.xml",
	"h":                "sourcecode.c.h",
	"hh":               "sourcecode.cpp.h",
	"hpp":              "sourcecode.cpp.h",
	"html":             "text.html",
	"hxx":              "sourcecode.cpp.h",
	"intentdefinition": "file.intentdefinition",
	"ipp":              "sourcecode.cpp.h",
	"jpeg":             "image.jpeg",
	"jpg":              "image.jpeg",
	"js":               "sourcecode.javascript",
	"json":             "text.json",
	"m":                "sourcecode.c.objc",
	"markdown":         "net.daringfireball.markdown",
	"md":               "net.daringfireball.markdown",
	"mm":               "sourcecode.cpp.objcpp",
	"modulemap":        "sourcecode.module",
	"mp3":              "audio.mp3",
	"pch":              "sourcecode.c.h",
	"plist":            "text.plist.xml",
	"png":              "image.png",
	"s":                "sourcecode.asm",
	"sh":               "text.script.sh",
	"storyboard":       "file.storyboard",
	"strings":          "text.plist.strings",
	"stringsdict":      "text.plist.stringsdict",
	"swift":            "sourcecode.swift",
	"tbd":              "sourcecode.text-based-dylib-definition",
	"ts":               "sourcecode.javascript",
	"tsx":              "sourcecode.javascript",
	"ttf":              "file",
	"wav":              "audio.wav",
	"xcassets":         "folder.assetcatalog",
	"xcconfig":         "text.xcconfig",
	"xcdatamodel":      "wrapper.xcdatamodel",
	"xcdatamodeld":     "wrapper.xcdatamodeld",
	"xcframework":      "wrapper.xcframework",
	"xctest":           "wrapper.cfbundle",
	"xib":              "file.xib",
	"xml":              "text.xml",
	"yaml":             "text.yaml",
	"yml":              "text.yaml",
	"zip":              "archive.zip",
}

// FileType returns the lastKnownFileType for a file name, "file" when
// the extension is not known.
func FileType(name string) string {
	ext := strings.TrimPrefix(path.Ext(name), ".")
	if t, ok := fileTypes[strings.ToLower(ext)]; ok {
		return t
	}
	return "file"
}

// productExtensions maps product types to the extension of the product
// they build.
var productExtensions = map[string]string{
	ProductTypeApplication:       "app",
	ProductTypeAppClip:           "app",
	ProductTypeWatchApp:          "app",
	ProductTypeWatchApp2:         "app",
	ProductTypeWatchApp2Host:     "app",
	ProductTypeAppExtension:      "appex",
	ProductTypeMessagesExtension: "appex",
	ProductTypeExtensionKit:      "appex",
	ProductTypeWatchExtension:    "appex",
	ProductTypeWatchExtension2:   "appex",
	ProductTypeBundle:            "bundle",
	ProductTypeFramework:         "framework",
	ProductTypeDynamicLibrary:    "dylib",
	ProductTypeStaticLibrary:     "a",
	ProductTypeTool:              "",
	ProductTypeUnitTestBundle:    "xctest",
	ProductTypeUITestBundle:      "xctest",
}

// ProductExtension returns the extension of the product built by a
// product type.
func ProductExtension(productType string) (string, bool) {
	ext, ok := productExtensions[productType]
	return ext, ok
}

type setting struct {
	key, value string
}

// defaultSettings are the project level settings of a new project, in
// the order Xcode writes them.
var defaultSettings = []setting{
	{"ALWAYS_SEARCH_USER_PATHS", "NO"},
	{"CLANG_ANALYZER_NONNULL", "YES"},
	{"CLANG_ANALYZER_NUMBER_OBJECT_CONVERSION", "YES_AGGRESSIVE"},
	{"CLANG_CXX_LANGUAGE_STANDARD", "gnu++14"},
	{"CLANG_CXX_LIBRARY", "libc++"},
	{"CLANG_ENABLE_MODULES", "YES"},
	{"CLANG_ENABLE_OBJC_ARC", "YES"},
	{"CLANG_ENABLE_OBJC_WEAK", "YES"},
	{"CLANG_WARN_BLOCK_CAPTURE_AUTORELEASING", "YES"},
	{"CLANG_WARN_BOOL_CONVERSION", "YES"},
	{"CLANG_WARN_COMMA", "YES"},
	{"CLANG_WARN_CONSTANT_CONVERSION", "YES"},
	{"CLANG_WARN_DEPRECATED_OBJC_IMPLEMENTATIONS", "YES"},
	{"CLANG_WARN_DIRECT_OBJC_ISA_USAGE", "YES_ERROR"},
	{"CLANG_WARN_DOCUMENTATION_COMMENTS", "YES"},
	{"CLANG_WARN_EMPTY_BODY", "YES"},
	{"CLANG_WARN_ENUM_CONVERSION", "YES"},
	{"CLANG_WARN_INFINITE_RECURSION", "YES"},
	{"CLANG_WARN_INT_CONVERSION", "YES"},
	{"CLANG_WARN_NON_LITERAL_NULL_CONVERSION", "YES"},
	{"CLANG_WARN_OBJC_IMPLICIT_RETAIN_SELF", "YES"},
	{"CLANG_WARN_OBJC_LITERAL_CONVERSION", "YES"},
	{"CLANG_WARN_OBJC_ROOT_CLASS", "YES_ERROR"},
	{"CLANG_WARN_QUOTED_INCLUDE_IN_FRAMEWORK_HEADER", "YES"},
	{"CLANG_WARN_RANGE_LOOP_ANALYSIS", "YES"},
	{"CLANG_WARN_STRICT_PROTOTYPES", "YES"},
	{"CLANG_WARN_SUSPICIOUS_MOVE", "YES"},
	{"CLANG_WARN_UNGUARDED_AVAILABILITY", "YES_AGGRESSIVE"},
	{"CLANG_WARN_UNREACHABLE_CODE", "YES"},
	{"CLANG_WARN__DUPLICATE_METHOD_MATCH", "YES"},
	{"COPY_PHASE_STRIP", "NO"},
	{"ENABLE_STRICT_OBJC_MSGSEND", "YES"},
	{"GCC_C_LANGUAGE_STANDARD", "gnu11"},
	{"GCC_NO_COMMON_BLOCKS", "YES"},
	{"GCC_WARN_64_TO_32_BIT_CONVERSION", "YES"},
	{"GCC_WARN_ABOUT_RETURN_TYPE", "YES_ERROR"},
	{"GCC_WARN_UNDECLARED_SELECTOR", "YES"},
	{"GCC_WARN_UNINITIALIZED_AUTOS", "YES_AGGRESSIVE"},
	{"GCC_WARN_UNUSED_FUNCTION", "YES"},
	{"GCC_WARN_UNUSED_VARIABLE", "YES"},
	{"MTL_ENABLE_DEBUG_INFO", "INCLUDE_SOURCE"},
}

var debugSettings = []setting{
	{"DEBUG_INFORMATION_FORMAT", "dwarf"},
	{"ENABLE_TESTABILITY", "YES"},
	{"GCC_DYNAMIC_NO_PIC", "NO"},
	{"GCC_OPTIMIZATION_LEVEL", "0"},
	{"GCC_PREPROCESSOR_DEFINITIONS", "DEBUG=1 $(inherited)"},
	{"MTL_ENABLE_DEBUG_INFO", "INCLUDE_SOURCE"},
	{"ONLY_ACTIVE_ARCH", "YES"},
}

var releaseSettings = []setting{
	{"DEBUG_INFORMATION_FORMAT", "dwarf-with-dsym"},
	{"ENABLE_NS_ASSERTIONS", "NO"},
	{"MTL_ENABLE_DEBUG_INFO", "NO"},
	{"VALIDATE_PRODUCT", "YES"},
}
