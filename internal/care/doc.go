// Package care covers the solo side of keeping pets: hatching new ones,
// visiting them, and releasing them.
//
// A visit works on a private copy of the stored record. Nothing is written
// until the visit ends (a visit event is logged) or the pet is released
// (no event is logged). Either way the visit is closed afterwards.
package care
