// Package format names the representations a project tree can be
// rendered to: the native pbxproj text, JSON and YAML.
package format
