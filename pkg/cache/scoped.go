package cache

// ScopedKeyer wraps a Keyer with a prefix so several deployments can share
// one redis instance without seeing each other's entries.
//
// Example usage:
//
//	keyer := NewScopedKeyer(NewDefaultKeyer(), "mindmup:staging:")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix.
// The prefix is prepended to all generated keys.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{
		inner:  inner,
		prefix: prefix,
	}
}

// RenderKey generates a prefixed key for rendered diagrams.
func (k *ScopedKeyer) RenderKey(docHash string, opts RenderKeyOpts) string {
	return k.prefix + k.inner.RenderKey(docHash, opts)
}

// NormalizeKey generates a prefixed key for normalized documents.
func (k *ScopedKeyer) NormalizeKey(docHash string, opts NormalizeKeyOpts) string {
	return k.prefix + k.inner.NormalizeKey(docHash, opts)
}
