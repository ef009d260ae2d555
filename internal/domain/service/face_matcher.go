package service

import "faceid/internal/domain/entity"

// MatchThreshold is the Euclidean distance at or below which two face
// encodings are considered the same person. The value is the calibrated
// tolerance of the reference recognition model and is part of the external
// contract; the comparison is inclusive (<=) on purpose.
const MatchThreshold = 0.5

// FaceMatcher compares two face encodings. Pure computation, no I/O.
type FaceMatcher interface {
	// Match returns whether the candidate encoding is within MatchThreshold
	// of the stored one, along with the computed distance. Distance is
	// symmetric in its arguments.
	Match(stored, candidate entity.FaceEncoding) (matched bool, distance float64)
}
