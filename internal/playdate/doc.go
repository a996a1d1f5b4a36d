// Package playdate runs group sessions between active pets and evolves their
// vocabularies.
//
// A playdate has three phases:
//
//  1. Selection: candidates are the active (unreleased) pets. At least two
//     must exist, and at least two must be chosen, or the session is
//     abandoned with nothing changed.
//  2. Turn loop: the chosen pets speak in a shuffled turn order, one random
//     known word each. When every pet has spoken the order is reshuffled, so
//     each lap has every pet exactly once. The loop has no natural end; it
//     runs until the operator stops it.
//  3. Conclusion: the letters of every word known by every participant are
//     pooled into one letter bag. Each participant independently draws a new
//     five-letter word from that bag with replacement, migrates its legacy
//     word, learns the new word, logs a playdate event naming every other
//     participant, and is committed on its own through Store.UpdateOne.
//
// Commits are not transactional. A failure partway through leaves earlier
// participants durably updated and later ones untouched.
//
// All randomness comes from the injected Rand so tests can replay a seed.
package playdate
