// Package codec defines the pluggable (de)serialization used for persisted
// Fresnel term tables. A codec must round-trip its value exactly: term tables
// carry high-precision values encoded as lossless hex-float strings, so any
// encoding that preserves strings and integers verbatim is usable.
package codec

// Codec encodes/decodes values V to []byte for storage.
type Codec[V any] interface {
	Encode(V) ([]byte, error)
	Decode([]byte) (V, error)
}
