// Package ising simulates the two-dimensional Ising model on a toroidal
// lattice.
//
// A Model owns a width*height grid of spins, each exactly Up (+1) or Down
// (-1), stored row-major so that site (x, y) lives at index x + width*y.
// Coordinates passed to the accessors may be any int; they wrap onto the
// torus with true modulo, so (-1, 0) addresses the last column.
//
// The grid is mutated one site at a time by Step, which proposes a flip at a
// random site and accepts or rejects it according to the model's Policy:
//
//	PolicyLegacy      accept when the current contribution is >= 0,
//	                  otherwise when u < exp(2e/T)
//	PolicyMetropolis  accept when the flip lowers or keeps the energy,
//	                  otherwise when u < exp(-2e/T)
//
// Randomness is injected through Source. Models built without WithSource draw
// from a freshly seeded non-deterministic generator; tests pass a seeded or
// scripted Source to obtain bit-identical trajectories.
//
// A Model is not safe for concurrent use. Callers sharing one instance across
// goroutines must guard it themselves.
package ising
