package debug

import (
	"os"
	"strconv"
)

type debug struct {
	Lex     bool
	Parse   bool
	Encode  bool
	Project bool
	LSP     bool
}

var d *debug

func init() {
	d = &debug{}
	d.Lex = boolEnv("PBX_DEBUG_LEX")
	d.Parse = boolEnv("PBX_DEBUG_PARSE")
	d.Encode = boolEnv("PBX_DEBUG_ENCODE")
	d.Project = boolEnv("PBX_DEBUG_PROJECT")
	d.LSP = boolEnv("PBX_DEBUG_LSP")
}

func boolEnv(v string) bool {
	x := os.Getenv(v)
	if x == "" {
		return false
	}
	b, _ := strconv.ParseBool(x)
	return b
}

func Lex() bool {
	return d.Lex
}
func Parse() bool {
	return d.Parse
}
func Encode() bool {
	return d.Encode
}
func Project() bool {
	return d.Project
}
func LSP() bool {
	return d.LSP
}
