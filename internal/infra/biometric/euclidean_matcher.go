package biometric

import (
	"math"

	"faceid/internal/domain/entity"
	"faceid/internal/domain/service"
)

// euclideanMatcher implements service.FaceMatcher with a plain Euclidean
// distance against the calibrated service.MatchThreshold.
type euclideanMatcher struct{}

// NewEuclideanMatcher is the constructor for euclideanMatcher.
func NewEuclideanMatcher() service.FaceMatcher {
	return &euclideanMatcher{}
}

// Match computes the Euclidean distance between both encodings. Encodings of
// different dimensionality never match and report an infinite distance.
// The threshold comparison is inclusive: a distance of exactly
// service.MatchThreshold counts as a match.
func (m *euclideanMatcher) Match(stored, candidate entity.FaceEncoding) (bool, float64) {
	if len(stored) != len(candidate) {
		return false, math.Inf(1)
	}

	var sum float64
	for i := range stored {
		diff := stored[i] - candidate[i]
		sum += diff * diff
	}

	distance := math.Sqrt(sum)

	return distance <= service.MatchThreshold, distance
}
