package ast

// Children returns the nested child blocks of container kinds, in
// document order. Tabs contributes the children of every panel. Leaf
// kinds return nil.
func Children(b Block) []Block {
	switch n := b.(type) {
	case *Tabs:
		var out []Block
		for _, p := range n.Panels {
			out = append(out, p.Children...)
		}
		return out
	case *Columns:
		var out []Block
		for _, c := range n.Cols {
			out = append(out, c.Children...)
		}
		return out
	case *Details:
		return n.Children
	case *Section:
		return n.Children
	case *Site:
		return n.Children
	case *Page:
		return n.Children
	default:
		return nil
	}
}

// Walk traverses blocks depth-first in document order, calling fn for
// each one. If fn returns false the block's children are skipped.
func Walk(blocks []Block, fn func(Block) bool) {
	for _, b := range blocks {
		walkBlock(b, fn)
	}
}

func walkBlock(b Block, fn func(Block) bool) {
	if !fn(b) {
		return
	}
	for _, c := range Children(b) {
		walkBlock(c, fn)
	}
}
