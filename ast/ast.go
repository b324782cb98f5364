// Package ast declares the types used to represent parsed SurfDoc
// documents: the block tree, inline text spans, attribute values, front
// matter, and the ID index.
//
// The Block and Inline unions are closed. Consumers switch over
// Block.Kind() (or type-switch on the concrete types) and can rely on the
// compiler plus the Kind enumeration to stay exhaustive.
package ast

// Span marks a half-open byte range [Start, End) in the source text the
// node was parsed from.
type Span struct {
	Start int
	End   int
}

// Synthetic is the span carried by nodes that were constructed
// programmatically rather than parsed.
var Synthetic = Span{Start: -1, End: -1}

// IsSynthetic reports whether the span refers to no source text.
func (s Span) IsSynthetic() bool { return s.Start < 0 }

// Len returns the number of bytes covered by the span.
func (s Span) Len() int {
	if s.IsSynthetic() || s.End < s.Start {
		return 0
	}
	return s.End - s.Start
}

// AttrValue is the closed union of attribute value types: String, Number,
// Bool and List.
type AttrValue interface {
	attrValue()
}

// String is a textual attribute value.
type String string

// Number is a numeric attribute value. Integers and floats share one
// representation.
type Number float64

// Bool is a boolean attribute value. Bare flags parse as Bool(true).
type Bool bool

// List is a single-level sequence of attribute values.
type List []AttrValue

func (String) attrValue() {}
func (Number) attrValue() {}
func (Bool) attrValue()   {}
func (List) attrValue()   {}

// Attrs is an ordered key/value collection of attributes. Iteration order
// is insertion order, which keeps serialization deterministic and
// preserves the author's ordering for unschematized attributes.
//
// The zero value is ready to use.
type Attrs struct {
	keys []string
	vals map[string]AttrValue
}

// Set stores v under key, replacing any previous value. A replaced key
// keeps its original position.
func (a *Attrs) Set(key string, v AttrValue) {
	if a.vals == nil {
		a.vals = make(map[string]AttrValue)
	}
	if _, ok := a.vals[key]; !ok {
		a.keys = append(a.keys, key)
	}
	a.vals[key] = v
}

// Get returns the value stored under key.
func (a *Attrs) Get(key string) (AttrValue, bool) {
	if a == nil || a.vals == nil {
		return nil, false
	}
	v, ok := a.vals[key]
	return v, ok
}

// Has reports whether key is present.
func (a *Attrs) Has(key string) bool {
	_, ok := a.Get(key)
	return ok
}

// Delete removes key and its value.
func (a *Attrs) Delete(key string) {
	if a == nil || a.vals == nil {
		return
	}
	if _, ok := a.vals[key]; !ok {
		return
	}
	delete(a.vals, key)
	for i, k := range a.keys {
		if k == key {
			a.keys = append(a.keys[:i], a.keys[i+1:]...)
			break
		}
	}
}

// Keys returns the attribute names in insertion order.
func (a *Attrs) Keys() []string {
	if a == nil {
		return nil
	}
	out := make([]string, len(a.keys))
	copy(out, a.keys)
	return out
}

// Len returns the number of attributes.
func (a *Attrs) Len() int {
	if a == nil {
		return 0
	}
	return len(a.keys)
}
