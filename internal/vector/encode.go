package vector

import (
	"encoding/binary"
	"math"
)

// Vectors are encoded as little-endian float32 for storage.

func float32SliceToBytes(s []float32) []byte {
	const size = 4
	out := make([]byte, len(s)*size)
	for i, v := range s {
		binary.LittleEndian.PutUint32(out[i*size:(i+1)*size], math.Float32bits(v))
	}
	return out
}

func bytesToFloat32Slice(b []byte) []float32 {
	const size = 4
	out := make([]float32, len(b)/size)
	for i := range out {
		out[i] = math.Float32frombits(binary.LittleEndian.Uint32(b[i*size : (i+1)*size]))
	}
	return out
}

// dot returns the inner product of two equal-length vectors. Over normalized
// vectors this is cosine similarity.
func dot(a, b []float32) float64 {
	var sum float64
	for i := range a {
		sum += float64(a[i] * b[i])
	}
	return sum
}

// cosineScore is the dot product of two normalized vectors, floored at zero.
// Negative cosine means "unrelated" for retrieval purposes; clamping keeps
// scores in [0, 1] for downstream consumers.
func cosineScore(a, b []float32) float64 {
	s := dot(a, b)
	if s < 0 {
		return 0
	}
	return s
}
