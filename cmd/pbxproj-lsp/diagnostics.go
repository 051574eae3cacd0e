package main

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/signadot/pbxproj/debug"
	"github.com/signadot/pbxproj/encode"
	"github.com/signadot/pbxproj/ir"
	"github.com/signadot/pbxproj/parse"
	"github.com/signadot/pbxproj/project"
	"github.com/signadot/pbxproj/token"
	"go.lsp.dev/protocol"
)

const diagSource = "pbxproj"

type documentStore struct {
	mu   sync.RWMutex
	docs map[string]*document
}

type document struct {
	uri     string
	content string
	version int32

	// node is nil when content does not parse; err holds why.
	node *ir.Node
	err  error
	// proj is nil when node is not a project document.
	proj     *project.Project
	projErr  error
	comments map[string]string
	// id -> offset of its definition in the objects table
	defs map[string]int
}

func newDocument(uri, content string, version int32) *document {
	doc := &document{uri: uri, content: content, version: version}
	node, err := parse.Parse([]byte(content))
	if err != nil {
		doc.err = err
		return doc
	}
	doc.node = node
	doc.comments = encode.Comments(node.Get("objects"))
	doc.defs = definitions([]byte(content))
	// FromNode takes ownership, so hand it a copy and keep node for
	// formatting.
	doc.proj, doc.projErr = project.FromNode(node.Clone())
	return doc
}

func (ds *documentStore) get(uri string) *document {
	ds.mu.RLock()
	defer ds.mu.RUnlock()
	return ds.docs[uri]
}

func (ds *documentStore) put(uri string, content string, version int32) *document {
	doc := newDocument(uri, content, version)
	ds.mu.Lock()
	defer ds.mu.Unlock()
	ds.docs[uri] = doc
	return doc
}

func (ds *documentStore) remove(uri string) {
	ds.mu.Lock()
	defer ds.mu.Unlock()
	delete(ds.docs, uri)
}

func (s *Server) publishDiagnostics(ctx context.Context, uri string) {
	doc := s.docs.get(uri)
	if doc == nil {
		return
	}
	diagnostics := validateDocument(doc)
	if debug.LSP() {
		debug.Logf("%s: v%d %d diagnostics\n", uri, doc.version, len(diagnostics))
	}
	if s.conn != nil {
		s.conn.Notify(ctx, protocol.MethodTextDocumentPublishDiagnostics, &protocol.PublishDiagnosticsParams{
			URI:         protocol.DocumentURI(uri),
			Diagnostics: diagnostics,
		})
	}
}

func validateDocument(doc *document) []protocol.Diagnostic {
	diagnostics := []protocol.Diagnostic{}
	if doc.err != nil {
		pos := offsetToPosition(doc.content, errOffset(doc.err))
		end := pos
		end.Character++
		return append(diagnostics, protocol.Diagnostic{
			Range:    protocol.Range{Start: pos, End: end},
			Severity: protocol.DiagnosticSeverityError,
			Message:  doc.err.Error(),
			Source:   diagSource,
		})
	}
	if doc.projErr != nil {
		return append(diagnostics, protocol.Diagnostic{
			Severity: protocol.DiagnosticSeverityError,
			Message:  doc.projErr.Error(),
			Source:   diagSource,
		})
	}
	for _, o := range doc.proj.FindOrphanedReferences() {
		var rng protocol.Range
		if off, ok := doc.defs[o.ReferrerID]; ok {
			rng.Start = offsetToPosition(doc.content, off)
			rng.End = offsetToPosition(doc.content, off+len(o.ReferrerID))
		}
		diagnostics = append(diagnostics, protocol.Diagnostic{
			Range:    rng,
			Severity: protocol.DiagnosticSeverityWarning,
			Message:  fmt.Sprintf("%s refers to missing object %s", o.Property, o.MissingID),
			Source:   diagSource,
		})
	}
	return diagnostics
}

// errOffset returns the byte offset carried by a parse failure, or 0.
func errOffset(err error) int {
	var pe *parse.ParseError
	if errors.As(err, &pe) {
		return pe.Off
	}
	var le *token.LexError
	if errors.As(err, &le) {
		return le.Off
	}
	var ee *token.EscapeError
	if errors.As(err, &ee) {
		return ee.Off
	}
	return 0
}

func (s *Server) DidOpen(ctx context.Context, params *protocol.DidOpenTextDocumentParams) error {
	s.docs.put(string(params.TextDocument.URI), params.TextDocument.Text, params.TextDocument.Version)
	s.publishDiagnostics(ctx, string(params.TextDocument.URI))
	return nil
}

// contentChange mirrors protocol.TextDocumentContentChangeEvent with an
// optional range: a change without one replaces the whole document, and
// the value type cannot tell that apart from an insert at 0:0.
type contentChange struct {
	Range *protocol.Range `json:"range,omitempty"`
	Text  string          `json:"text"`
}

type didChangeParams struct {
	TextDocument   protocol.VersionedTextDocumentIdentifier `json:"textDocument"`
	ContentChanges []contentChange                          `json:"contentChanges"`
}

// DidChange is reached only when the raw notification was not decoded by
// handler, so every change carries a range.
func (s *Server) DidChange(ctx context.Context, params *protocol.DidChangeTextDocumentParams) error {
	p := &didChangeParams{TextDocument: params.TextDocument}
	for i := range params.ContentChanges {
		c := &params.ContentChanges[i]
		p.ContentChanges = append(p.ContentChanges, contentChange{Range: &c.Range, Text: c.Text})
	}
	return s.didChange(ctx, p)
}

func (s *Server) didChange(ctx context.Context, params *didChangeParams) error {
	uri := string(params.TextDocument.URI)
	doc := s.docs.get(uri)
	if doc == nil {
		return nil
	}
	content := doc.content
	for _, change := range params.ContentChanges {
		content = applyChange(content, change)
	}
	s.docs.put(uri, content, params.TextDocument.Version)
	s.publishDiagnostics(ctx, uri)
	return nil
}

func (s *Server) DidClose(ctx context.Context, params *protocol.DidCloseTextDocumentParams) error {
	s.docs.remove(string(params.TextDocument.URI))
	return nil
}

// applyChange applies one content change.  A change without a range
// replaces the whole document.
func applyChange(content string, change contentChange) string {
	if change.Range == nil {
		return change.Text
	}
	start := positionToOffset(content, change.Range.Start)
	end := positionToOffset(content, change.Range.End)
	if start > end {
		return content
	}
	return content[:start] + change.Text + content[end:]
}
