package service

import (
	"context"
	"errors"

	"faceid/internal/domain/entity"
)

// ErrFaceNotDetected is returned by FaceEncoder when no usable face encoding
// can be derived from the input. Undecodable image data and a decoded image
// with zero detectable faces are deliberately indistinguishable to callers:
// "no face" is an expected outcome, not an exceptional one.
var ErrFaceNotDetected = errors.New("face not detected")

// FaceEncoder derives a fixed-length feature vector from raw image bytes.
type FaceEncoder interface {
	// Extract decodes the image and returns the encoding of the detected
	// face, or ErrFaceNotDetected. When the image contains several faces
	// the first detected one is used; ranking by size or confidence is a
	// known limitation left out of scope.
	//
	// The call is CPU-bound and blocks for its duration.
	Extract(ctx context.Context, image []byte) (entity.FaceEncoding, error)
}
