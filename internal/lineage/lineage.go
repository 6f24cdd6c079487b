// Package lineage mints the identity tokens the container uses to detect
// duplication.
//
// A token names one lineage slot: the storage position a container handle
// occupies from its construction (or its most recent fork) until it is
// duplicated. Tokens replace the raw-address comparison a moving garbage
// collector would invalidate; they are compared by value and never reused
// within a process.
package lineage

import "sync/atomic"

// Token identifies a single container lineage slot. The zero Token is
// reserved and never minted, so a zero Token always means "no lineage
// recorded".
type Token uint64

var counter atomic.Uint64

// Next returns a fresh process-unique Token. Safe for concurrent use.
func Next() Token {
	return Token(counter.Add(1))
}
