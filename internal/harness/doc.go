// Package harness runs pet scenarios deterministically.
//
// A scenario seeds a fresh in-memory store with pets, runs a flow of
// create, visit, release, and playdate steps, and checks assertions against
// the final collection.
//
// # Scenario Format
//
//	name: two_pet_playdate
//	description: "Both pets learn one word"
//	script: [1, 0, 0, 0, 0, 0, 1, 2, 3, 0, 3, 3, 2, 2, 1]
//	pets:
//	  - name: Beep
//	    word: ad
//	  - name: Boop
//	    words: [sk]
//	flow:
//	  - playdate:
//	      pets: [Beep, Boop]
//	      turns: 3
//	      seconds: 30
//	  - visit:
//	      pet: Beep
//	      seconds: 12
//	      speak: 1
//	  - release:
//	      pet: Boop
//	    expect:
//	      error: released
//	assertions:
//	  - type: words_count
//	    pet: Beep
//	    count: 2
//
// # Assertion Types
//
//   - words_count: the pet knows exactly count words
//   - history_count: the pet has exactly count history events
//   - released: the pet's released flag equals released
//   - legacy: whether the pet is still stored with the single legacy word
//   - letters_from: every letter the pet knows appears in the seeded words
//     of the pets named in from
//   - partners: the distinct playdate partners of the pet, in any order
//   - pet_count: the collection holds exactly count pets
//
// # Determinism
//
// Randomness comes from script (exact values, see testutil.ScriptedRand)
// or from seed. Time comes from a testutil.Clock that only moves when a
// step says so, and playdate session IDs are fixed.
package harness
