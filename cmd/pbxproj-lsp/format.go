package main

import (
	"context"

	"github.com/signadot/pbxproj"
	"github.com/signadot/pbxproj/debug"
	"github.com/signadot/pbxproj/encode"
	"go.lsp.dev/protocol"
)

func (s *Server) Formatting(ctx context.Context, params *protocol.DocumentFormattingParams) ([]protocol.TextEdit, error) {
	doc := s.docs.get(string(params.TextDocument.URI))
	if doc == nil || doc.node == nil {
		return nil, nil
	}
	return formatEdits(doc), nil
}

// formatEdits replaces the whole document with its canonical text, or
// returns no edits when it is already canonical.
func formatEdits(doc *document) []protocol.TextEdit {
	d, err := pbxproj.Build(doc.node, encode.WithComments(doc.comments))
	if err != nil {
		if debug.LSP() {
			debug.Logf("format %s: %v\n", doc.uri, err)
		}
		return nil
	}
	formatted := string(d)
	if formatted == doc.content {
		return []protocol.TextEdit{}
	}
	return []protocol.TextEdit{
		{
			Range: protocol.Range{
				Start: protocol.Position{},
				End:   offsetToPosition(doc.content, len(doc.content)),
			},
			NewText: formatted,
		},
	}
}
