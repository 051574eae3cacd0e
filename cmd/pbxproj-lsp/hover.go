package main

import (
	"context"
	"fmt"
	"strings"

	"go.lsp.dev/protocol"
)

func (s *Server) Hover(ctx context.Context, params *protocol.HoverParams) (*protocol.Hover, error) {
	doc := s.docs.get(string(params.TextDocument.URI))
	if doc == nil || doc.proj == nil {
		return nil, nil
	}
	off := positionToOffset(doc.content, params.Position)
	id, start := wordAt(doc.content, off)
	if !isID(id) {
		return nil, nil
	}
	text := hoverText(doc, id)
	return &protocol.Hover{
		Contents: protocol.MarkupContent{
			Kind:  protocol.Markdown,
			Value: text,
		},
		Range: &protocol.Range{
			Start: offsetToPosition(doc.content, start),
			End:   offsetToPosition(doc.content, start+len(id)),
		},
	}, nil
}

func hoverText(doc *document, id string) string {
	r := doc.proj.Get(id)
	if r == nil {
		return fmt.Sprintf("`%s`: no such object", id)
	}
	b := &strings.Builder{}
	fmt.Fprintf(b, "**%s** `%s`", r.ISA(), id)
	name := doc.comments[id]
	if name == "" {
		name = r.DisplayName()
	}
	if name != "" {
		fmt.Fprintf(b, "\n\n%s", name)
	}
	if refs := doc.proj.Referrers(id); len(refs) > 0 {
		fmt.Fprintf(b, "\n\nreferenced by %d object", len(refs))
		if len(refs) > 1 {
			b.WriteString("s")
		}
	}
	return b.String()
}

func (s *Server) Definition(ctx context.Context, params *protocol.DefinitionParams) ([]protocol.Location, error) {
	doc := s.docs.get(string(params.TextDocument.URI))
	if doc == nil || doc.node == nil {
		return nil, nil
	}
	id, _ := wordAt(doc.content, positionToOffset(doc.content, params.Position))
	off, ok := doc.defs[id]
	if !ok {
		return nil, nil
	}
	return []protocol.Location{location(doc, off, len(id))}, nil
}

func (s *Server) References(ctx context.Context, params *protocol.ReferenceParams) ([]protocol.Location, error) {
	doc := s.docs.get(string(params.TextDocument.URI))
	if doc == nil || doc.node == nil {
		return nil, nil
	}
	id, _ := wordAt(doc.content, positionToOffset(doc.content, params.Position))
	if !isID(id) {
		return nil, nil
	}
	def, hasDef := doc.defs[id]
	var res []protocol.Location
	for _, off := range occurrences([]byte(doc.content), id) {
		if hasDef && off == def && !params.Context.IncludeDeclaration {
			continue
		}
		res = append(res, location(doc, off, len(id)))
	}
	return res, nil
}

func location(doc *document, off, n int) protocol.Location {
	return protocol.Location{
		URI: protocol.DocumentURI(doc.uri),
		Range: protocol.Range{
			Start: offsetToPosition(doc.content, off),
			End:   offsetToPosition(doc.content, off+n),
		},
	}
}
