// Package threadsafe provides Value[T], a generic container that serializes
// concurrent access to a single value and preserves value-type copy semantics
// when the container itself is duplicated.
//
// Every read takes the container's reader-writer lock in shared mode and
// copies the current value out; every write takes it in exclusive mode and
// replaces the value wholesale. Readers never observe a torn value: they see
// either the full previous value or the full new one.
//
// # Copy tracking
//
// Duplicating a container with Clone produces a handle that shares the
// original's storage until its own first write. That write allocates a fresh
// box and lock seeded with the written value and rebinds only the duplicate,
// so the original (and every other duplicate) is untouched:
//
//	orig := threadsafe.New("Hello")
//	dup := orig.Clone()
//	dup.Set("Hello, World!")
//	orig.Get() // "Hello"
//	dup.Get()  // "Hello, World!"
//
// Forking is lazy: duplicates that are only ever read keep sharing storage
// indefinitely, which is harmless and avoids needless copying. NewShared
// disables tracking entirely, making every duplicate a permanent alias.
// Payload types that declare the Sharer marker get the same treatment
// regardless of which constructor was used, since mutation through a shared
// reference is already visible to every holder and forking could not provide
// value-semantics isolation.
//
// Plain assignment of a Value is not duplication: both names refer to the
// same handle and lineage, like two copies of a map or channel value. Clone
// is the operation that starts a new lineage.
//
// # Sharing across goroutines
//
// A Value[T] may be handed to other goroutines exactly when values of T may:
// the container synchronizes its own bookkeeping, but a T that carries
// interior pointers to unsynchronized state remains as unsafe as it was bare.
//
// # Serialization
//
// A Value[T] encodes as a bare T in both JSON and YAML. The zero Value is the
// absent container: it reads as the zero T, reports IsZero, and disappears
// under `json:",omitzero"` and `yaml:",omitempty"` tags instead of encoding
// null. Decoding a document that lacks the field leaves the absent container
// in place; decoding a present field into it constructs a fresh tracking
// container around the decoded value.
package threadsafe
