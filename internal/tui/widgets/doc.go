// Package widgets contains dumb render primitives for screen bodies.
//
// Allowed here:
// - stateless drawing helpers (panel chrome, stacks, score bars, popup overlay)
//
// Not allowed here:
// - key handling, navigation, or calls into services
package widgets
