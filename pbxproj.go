package pbxproj

import (
	"bytes"

	"github.com/signadot/pbxproj/encode"
	"github.com/signadot/pbxproj/ir"
	"github.com/signadot/pbxproj/parse"
)

// Parse reads project text into a tree.
func Parse(d []byte, opts ...parse.ParseOption) (*ir.Node, error) {
	return parse.Parse(d, opts...)
}

// Build writes a tree as project text.
func Build(node *ir.Node, opts ...encode.EncodeOption) ([]byte, error) {
	buf := bytes.NewBuffer(make([]byte, 0, 64*1024))
	if err := encode.Encode(node, buf, opts...); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ParseAndBuild re-serializes project text.
func ParseAndBuild(d []byte, opts ...parse.ParseOption) ([]byte, error) {
	node, err := parse.Parse(d, opts...)
	if err != nil {
		return nil, err
	}
	return Build(node)
}
