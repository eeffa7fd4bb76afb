// Package keyed provides an ordered collection with a secondary key index.
//
// # Overview
//
// A [Collection] is a slice of values where every position also carries a
// string key. Lookups by key resolve to a position, and positional
// operations keep the key index consistent:
//
//	c := keyed.New[*idea.Node]()
//	c.AppendKey("alpha", a)
//	c.Append(b) // derives key "1"
//
//	pos, ok := c.Position("alpha")
//
// # Keys
//
// When no key is supplied, [Collection.Append] derives one with the
// configured key function. The default generator picks the next free
// synthetic integer, starting at the current number of keys. Use
// [WithKeyFunc] to derive keys from the value instead.
//
// # Removal
//
// Removing from the middle of the sequence shifts every later position.
// Rather than patching index entries one by one, the collection rebuilds
// the key→position index from the position→key reverse index after every
// removal, so the two can never drift apart.
//
// # Concurrency
//
// Collection is not safe for concurrent use without external synchronization.
package keyed
