package codec

import "encoding/json"

// JSON is a Codec that serializes values as JSON. Larger on disk than CBOR
// or msgpack, but convenient when stored tables should be greppable.
type JSON[V any] struct{}

func (JSON[V]) Encode(v V) ([]byte, error) { return json.Marshal(v) }
func (JSON[V]) Decode(b []byte) (V, error) {
	var v V
	err := json.Unmarshal(b, &v)
	return v, err
}
