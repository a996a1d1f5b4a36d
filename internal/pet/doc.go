// Package pet defines the persisted shape of a Little Beeper and its invariants.
//
// # Identity
//
// A pet is identified by the pair (Name, SpawnDate) and nothing else. The
// pair never collides within a collection because creation always stamps a
// fresh spawn date. SpawnDate is kept as the exact string that was persisted
// so identity comparisons survive a load/save round trip byte for byte.
//
// # Vocabulary
//
// Early records carry a single legacy "word" field. Once a pet attends a
// playdate the word is migrated into "words" and the legacy field is retired.
// In memory both shapes are a Vocabulary: an ordered sequence of words plus a
// flag recording whether the on-disk form is still legacy. Nothing outside
// this package branches on which field was present.
//
// # Monotonic fields
//
//   - Released only ever transitions false → true.
//   - History is append-only.
//   - Words only grows.
package pet
