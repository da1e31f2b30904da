package parser

import (
	"context"
	"fmt"
	"net/url"
	"path"
	"strconv"

	"github.com/erraggy/oasprim/internal/pathutil"
	"github.com/erraggy/oasprim/oaserrors"
	"github.com/erraggy/oasprim/rawdoc"
)

// loader holds the state of one Load call.
type loader struct {
	p        *Parser
	ctx      context.Context
	log      Logger
	maxDepth int
	maxDocs  int

	// docs holds every document built by this load, by identifier
	docs  map[string]*Document
	order []*Document
	// cursor is the index of the next unresolved edge of each document
	cursor map[*Document]int
	// active tracks edges currently being resolved in the recursion stack
	active map[*RefEdge]bool
}

func newLoader(ctx context.Context, p *Parser) *loader {
	return &loader{
		p:        p,
		ctx:      ctx,
		log:      NewContextLogger(p.log(), ctx),
		maxDepth: p.maxRefDepth(),
		maxDocs:  p.maxCachedDocuments(),
		docs:     make(map[string]*Document),
		cursor:   make(map[*Document]int),
		active:   make(map[*RefEdge]bool),
	}
}

func (l *loader) load(rootID string) (*Graph, error) {
	root, err := l.root(rootID)
	if err != nil {
		return nil, err
	}
	if err := l.resolveAll(); err != nil {
		return nil, err
	}
	if err := link(l.order); err != nil {
		return nil, err
	}
	g := newGraph(root, l.order)
	l.log.Debug("loaded document graph",
		"root", rootID,
		"documents", len(l.order),
		"references", len(g.Edges()),
	)
	return g, nil
}

// root builds the root document, which must be a Swagger document.
func (l *loader) root(id string) (*Document, error) {
	raw, err := l.raw(id)
	if err != nil {
		return nil, err
	}
	if !isSwagger(raw) {
		if raw, err = l.p.migrate(id, raw); err != nil {
			return nil, err
		}
		if l.p.ValidateStructure {
			if err := checkStructure(id, raw); err != nil {
				return nil, err
			}
		}
	}
	return l.add(id, raw)
}

// document returns the document for id, fetching and building it on first use.
func (l *loader) document(id string) (*Document, error) {
	if doc, ok := l.docs[id]; ok {
		return doc, nil
	}
	if external := len(l.order) - 1; external >= l.maxDocs {
		return nil, &oaserrors.ResourceLimitError{
			ResourceType: "cached_documents",
			Limit:        int64(l.maxDocs),
			Actual:       int64(external + 1),
			Message:      "too many external documents referenced",
		}
	}
	raw, err := l.raw(id)
	if err != nil {
		return nil, err
	}
	return l.add(id, raw)
}

// add builds a document. Swagger documents are built eagerly; other documents
// are fragments whose objects are built when a reference reaches them.
func (l *loader) add(id string, raw any) (*Document, error) {
	doc := newDocument(id, raw)
	if isSwagger(raw) {
		b := &builder{doc: doc, log: l.log}
		obj, err := b.build(KindSwagger, raw, pathutil.Root, -1)
		if err != nil {
			return nil, err
		}
		doc.root = obj.(*Swagger)
	}
	l.docs[id] = doc
	l.order = append(l.order, doc)
	l.log.Debug("built document", "document", id, "objects", len(doc.nodes), "references", len(doc.edges))
	return doc, nil
}

func (l *loader) raw(id string) (any, error) {
	if err := l.ctx.Err(); err != nil {
		return nil, &oaserrors.LoadError{Document: id, Message: "load canceled", Cause: err}
	}
	raw, hit, err := l.p.documents().load(id, func() (any, error) {
		l.log.Debug("fetching document", "document", id)
		return l.p.fetch(l.ctx, id)
	})
	if err != nil {
		return nil, err
	}
	if hit {
		l.log.Debug("document cache hit", "document", id)
	}
	return raw, nil
}

// resolveAll resolves every edge of every document, including edges of
// documents and objects created while resolving.
func (l *loader) resolveAll() error {
	for progressed := true; progressed; {
		progressed = false
		for i := 0; i < len(l.order); i++ {
			doc := l.order[i]
			for l.cursor[doc] < len(doc.edges) {
				if err := l.ctx.Err(); err != nil {
					return &oaserrors.LoadError{Document: doc.id, Message: "load canceled", Cause: err}
				}
				e := doc.edges[l.cursor[doc]]
				l.cursor[doc]++
				if err := l.resolveEdge(e, 0); err != nil {
					return err
				}
				progressed = true
			}
		}
	}
	for _, doc := range l.order {
		for _, e := range doc.edges {
			if e.Target == nil {
				return &oaserrors.ReferenceError{Document: doc.id, Source: e.Source.Origin(), Ref: e.Ref, Message: "reference left unresolved"}
			}
		}
	}
	return nil
}

// resolveEdge sets e.Target to the final object of the reference chain
// starting at e. Resolved edges are memoized, so resolution order does not
// change any target.
func (l *loader) resolveEdge(e *RefEdge, depth int) error {
	if e.Target != nil {
		return nil
	}
	src := e.Source
	doc := src.Document()
	if l.active[e] {
		return &oaserrors.ReferenceError{
			Document:   doc.id,
			Source:     src.Origin(),
			Ref:        e.Ref,
			IsCircular: true,
			Message:    "reference chain revisits itself",
		}
	}
	if depth >= l.maxDepth {
		return &oaserrors.ResourceLimitError{
			ResourceType: "ref_depth",
			Limit:        int64(l.maxDepth),
			Actual:       int64(depth + 1),
			Message:      fmt.Sprintf("$ref chain through %s is too long", src.Origin()),
		}
	}
	l.active[e] = true
	defer delete(l.active, e)

	docRef, fragment := pathutil.Split(e.Ref)
	target := doc
	if docRef != "" {
		id := joinID(doc.id, docRef)
		if id != doc.id {
			var err error
			if target, err = l.document(id); err != nil {
				return &oaserrors.ReferenceError{
					Document: doc.id,
					Source:   src.Origin(),
					Ref:      e.Ref,
					Message:  "failed to load referenced document",
					Cause:    err,
				}
			}
		}
	}

	obj, err := l.locate(target, fragment, src.Kind())
	if err != nil {
		return &oaserrors.ReferenceError{Document: doc.id, Source: src.Origin(), Ref: e.Ref, Cause: err}
	}
	if r, ok := obj.(referrer); ok && r.refs().link != nil {
		next := r.refs().link
		if err := l.resolveEdge(next, depth+1); err != nil {
			return err
		}
		obj = next.Target
	}
	e.Target = obj
	l.log.Debug("resolved reference", "ref", e.Ref, "source", src.Origin(), "target", obj.Origin(), "depth", depth)
	return nil
}

// locate returns the object of kind at fragment inside doc. Targets that were
// not built with the document (fragment documents, or raw regions outside the
// declared fields) are built on first use, keyed by their pointer.
func (l *loader) locate(doc *Document, fragment string, kind Kind) (Object, error) {
	ptr := pathutil.Normalize(fragment)
	if obj := doc.Lookup(ptr); obj != nil {
		if obj.Kind() != kind {
			return nil, fmt.Errorf("expected %s at %s in %s, found %s", kind, ptr, doc.id, obj.Kind())
		}
		return obj, nil
	}
	segments := pathutil.Segments(ptr)
	raw, ok := walk(doc.raw, segments)
	if !ok {
		return nil, fmt.Errorf("target %s not found in %s", ptr, doc.id)
	}
	b := &builder{doc: doc, log: l.log}
	obj, err := b.build(kind, raw, ptr, -1)
	if err != nil {
		return nil, err
	}
	if s, ok := obj.(*Schema); ok && len(segments) == 2 && segments[0] == "definitions" {
		s.name = segments[1]
	}
	return obj, nil
}

// walk follows pointer segments through a raw tree.
func walk(raw any, segments []string) (any, bool) {
	cur := raw
	for _, seg := range segments {
		if seq, ok := cur.([]any); ok {
			i, err := strconv.Atoi(seg)
			if err != nil || i < 0 || i >= len(seq) {
				return nil, false
			}
			cur = seq[i]
			continue
		}
		next, ok := rawdoc.Lookup(cur, seg)
		if !ok {
			return nil, false
		}
		cur = next
	}
	return cur, true
}

// joinID resolves a document reference against the identifier of the
// referencing document: URLs resolve as URLs, anything else as a slash
// separated path relative to the referencing document's directory.
func joinID(base, ref string) string {
	if r, err := url.Parse(ref); err == nil && r.IsAbs() {
		return ref
	}
	if b, err := url.Parse(base); err == nil && b.IsAbs() && b.Host != "" {
		if r, err := url.Parse(ref); err == nil {
			return b.ResolveReference(r).String()
		}
	}
	if path.IsAbs(ref) {
		return path.Clean(ref)
	}
	return path.Join(path.Dir(base), ref)
}
