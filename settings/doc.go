// Package settings expands build setting references such as
// $(PRODUCT_NAME), ${SRCROOT} and $(PRODUCT_NAME:rfc1034identifier).
//
// References which cannot be resolved are left in place as literal
// text, as the build system does.
package settings
