// Package fresnelvol estimates, to configurable bit precision, the log-volume
// of the intersection of an N-dimensional axis-aligned box and an N-ball, via
// a truncated complex series built from Fresnel integrals (Forrester's
// comment on "Sum of squares of uniform random variables" by I. Weissman,
// arXiv:1804.07861, eq. 2.6). The quantity has no closed form for general N
// and scaling, so the expensive per-term values are precomputed once and kept
// in a persistent, incrementally extendable table store.
//
// Components:
//   - Estimator: evaluates the truncated series for log vol(box ∩ ball), with
//     closed-form shortcuts when one body contains the other.
//   - TermCache: persistent (dimension, precision) -> term-table store with
//     an idempotent populate operation and a strict fail-fast retrieve.
//   - store.Store: byte store behind the cache (filesystem, Redis, BigCache,
//     Ristretto).
//   - codec.Codec: table (de)serialization (deterministic CBOR by default).
//
// Scaling convention: for dimension N and scaling s, Estimate returns
// log vol([-1/sqrt(s), 1/sqrt(s)]^N ∩ B_N(1)). With ball radius R and box
// side q, pick s so that q/(2R) = 1/sqrt(s). s <= 1 degenerates to the full
// ball, s >= N to the full box.
//
// Protocol: populate is idempotent and side-effecting, retrieve is a pure
// read that fails with NotFoundError/IncompleteError. Estimate chains
// populate-then-retrieve, so a table computed by a previous process run is
// reused and only missing terms are ever computed. Both cache operations
// are also exposed directly for callers that precompute ahead of time.
package fresnelvol
