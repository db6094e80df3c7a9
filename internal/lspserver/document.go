package lspserver

import (
	"strings"
	"sync"

	"github.com/nulint/nulint/internal/span"
	"github.com/nulint/nulint/internal/uid"
)

// Document is one open buffer plus its latest lint result.
type Document struct {
	URI     string
	Name    string
	Version int
	Text    []byte
}

// Source returns the document as a lintable source.
func (d *Document) Source() span.Source {
	return span.NewSource(d.Name, d.Text)
}

// DocumentStore tracks the open documents by URI. Safe for concurrent
// use.
type DocumentStore struct {
	mu   sync.RWMutex
	docs map[string]*Document
}

// NewDocumentStore creates an empty store.
func NewDocumentStore() *DocumentStore {
	return &DocumentStore{docs: make(map[string]*Document)}
}

// Open registers a document.
func (s *DocumentStore) Open(uri string, version int, text string) *Document {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc := &Document{
		URI:     uri,
		Name:    uid.OrSynthetic(uriToPath(uri)),
		Version: version,
		Text:    []byte(text),
	}
	s.docs[uri] = doc
	return doc
}

// Update replaces a document's content. Unknown URIs are opened.
func (s *DocumentStore) Update(uri string, version int, text string) *Document {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, ok := s.docs[uri]
	if !ok {
		doc = &Document{URI: uri, Name: uid.OrSynthetic(uriToPath(uri))}
		s.docs[uri] = doc
	}
	doc.Version = version
	doc.Text = []byte(text)
	return doc
}

// Get returns the document for uri, or nil.
func (s *DocumentStore) Get(uri string) *Document {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.docs[uri]
}

// Close removes a document.
func (s *DocumentStore) Close(uri string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.docs, uri)
}

// uriToPath strips the file:// scheme. Non-file URIs (untitled:)
// yield "" and get a synthetic identity.
func uriToPath(uri string) string {
	if path, ok := strings.CutPrefix(uri, "file://"); ok {
		return path
	}
	return ""
}
