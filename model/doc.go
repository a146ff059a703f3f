// Package model provides concrete collaborators for the align package:
// DNA k-mer ranking and Gaussian signal-level emission scoring.
//
// What:
//
//   - Alphabet ranks fixed-length DNA k-mers by base-4 lexicographic
//     encoding (A=0, C=1, G=2, T=3), the order pore model tables are
//     laid out in.
//   - PoreModel maps each k-mer rank to the Gaussian parameters of the
//     signal level the pore emits while that k-mer occupies it.
//   - Calibration carries a per-read shift/scale/var correction mapping
//     model-space levels into the read's measured current range.
//   - Scorer combines one read's event levels with a scaled pore model
//     and implements align.EmissionScorer.
//
// The strand is selected when a Scorer is built: pass the events, pore
// model, and calibration of the strand being aligned. The alignment
// engine itself is strand-agnostic.
//
// Errors:
//
//   - ErrBadK: non-positive k-mer length.
//   - ErrModelSize: pore model table size is not 4^k.
//
// Complexity: Rank is O(k); LogEmission is O(1).
package model
