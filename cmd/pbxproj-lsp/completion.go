package main

import (
	"context"
	"strings"

	"github.com/signadot/pbxproj/isa"
	"go.lsp.dev/protocol"
)

// Completion offers object kinds after "isa =".
func (s *Server) Completion(ctx context.Context, params *protocol.CompletionParams) (*protocol.CompletionList, error) {
	doc := s.docs.get(string(params.TextDocument.URI))
	if doc == nil {
		return nil, nil
	}
	off := positionToOffset(doc.content, params.Position)
	items := isaCompletions(doc.content[:off])
	if items == nil {
		return nil, nil
	}
	return &protocol.CompletionList{Items: items}, nil
}

func isaCompletions(before string) []protocol.CompletionItem {
	i := strings.LastIndexAny(before, "{;\n")
	stmt := before[i+1:]
	key, partial, ok := strings.Cut(stmt, "=")
	if !ok || strings.TrimSpace(key) != "isa" {
		return nil
	}
	partial = strings.TrimSpace(partial)
	var items []protocol.CompletionItem
	for _, k := range isa.Kinds() {
		name := k.String()
		if !strings.HasPrefix(name, partial) {
			continue
		}
		items = append(items, protocol.CompletionItem{
			Label: name,
			Kind:  protocol.CompletionItemKindClass,
		})
	}
	return items
}
