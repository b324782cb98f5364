package ast

import "sort"

// Document is a fully assembled SurfDoc: front matter, the ordered block
// tree, and the ID index built during assembly.
type Document struct {
	FrontMatter FrontMatter
	Blocks      []Block
	Index       *Index
}

// Walk traverses the document's blocks depth-first. See Walk.
func (d *Document) Walk(fn func(Block) bool) {
	Walk(d.Blocks, fn)
}

// ByID looks a block up by identifier. IDs cover declared id attributes,
// page routes (as "page:<route>") and heading anchors.
func (d *Document) ByID(id string) (Block, bool) {
	if d.Index == nil {
		return nil, false
	}
	return d.Index.Lookup(id)
}

// IDs returns every known identifier, sorted.
func (d *Document) IDs() []string {
	if d.Index == nil {
		return nil
	}
	return d.Index.IDs()
}

// Index is the ID side table: every addressable identifier in a document
// mapped to the block that declared it. The first declaration of a
// duplicated ID wins.
type Index struct {
	entries map[string]Block
}

// NewIndex returns an empty index.
func NewIndex() *Index {
	return &Index{entries: make(map[string]Block)}
}

// Add registers id for b. It reports false, without replacing the
// existing entry, when id is already taken.
func (ix *Index) Add(id string, b Block) bool {
	if id == "" {
		return false
	}
	if _, ok := ix.entries[id]; ok {
		return false
	}
	ix.entries[id] = b
	return true
}

// Lookup returns the block registered under id.
func (ix *Index) Lookup(id string) (Block, bool) {
	b, ok := ix.entries[id]
	return b, ok
}

// Has reports whether id is registered.
func (ix *Index) Has(id string) bool {
	_, ok := ix.entries[id]
	return ok
}

// IDs returns every registered identifier, sorted.
func (ix *Index) IDs() []string {
	out := make([]string, 0, len(ix.entries))
	for id := range ix.entries {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

// Len returns the number of registered identifiers.
func (ix *Index) Len() int { return len(ix.entries) }
