package entity

import (
	"encoding/json"

	"github.com/pkg/errors"
)

// FaceEncoding is a fixed-length numeric embedding of a detected face.
// The encoder produces 128 dimensions; comparisons are order-sensitive.
type FaceEncoding []float64

// EncodingDimensions is the vector length produced by the face encoder.
const EncodingDimensions = 128

// EncodeText serializes the encoding as a JSON array for text-column storage.
func (e FaceEncoding) EncodeText() (string, error) {
	raw, err := json.Marshal([]float64(e))
	if err != nil {
		return "", errors.Wrap(err, "marshal face encoding")
	}

	return string(raw), nil
}

// DecodeFaceEncoding parses a stored text representation back into a vector.
func DecodeFaceEncoding(raw string) (FaceEncoding, error) {
	var values []float64
	if err := json.Unmarshal([]byte(raw), &values); err != nil {
		return nil, errors.Wrap(err, "unmarshal face encoding")
	}

	return FaceEncoding(values), nil
}
