package gesture

// FoundSet records matched words. It only grows.
type FoundSet struct {
	order []string
	set   map[string]struct{}
}

// NewFoundSet returns an empty set.
func NewFoundSet() *FoundSet {
	return &FoundSet{set: make(map[string]struct{})}
}

// Add inserts w and reports whether it was new.
func (f *FoundSet) Add(w string) bool {
	if _, ok := f.set[w]; ok {
		return false
	}
	f.set[w] = struct{}{}
	f.order = append(f.order, w)
	return true
}

// Has reports whether w is present.
func (f *FoundSet) Has(w string) bool {
	_, ok := f.set[w]
	return ok
}

// Len returns the number of words found.
func (f *FoundSet) Len() int { return len(f.order) }

// Words returns a copy of the words in insertion order.
func (f *FoundSet) Words() []string { return append([]string(nil), f.order...) }
