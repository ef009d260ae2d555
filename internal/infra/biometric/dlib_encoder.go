// Package biometric provides the face encoding and matching implementations.
package biometric

import (
	"bytes"
	"context"
	"image"
	"image/jpeg"
	"log/slog"

	// Register the decoders for the upload formats the API accepts.
	_ "image/gif"
	_ "image/png"

	"github.com/Kagami/go-face"
	"go.uber.org/fx"

	"faceid/config"
	"faceid/internal/domain/entity"
	"faceid/internal/domain/service"
	"faceid/internal/errors"
)

const defaultJPEGQuality = 90

// dlibEncoder implements service.FaceEncoder on top of the dlib ResNet
// descriptor model exposed by go-face.
type dlibEncoder struct {
	rec         *face.Recognizer
	jpegQuality int
	logger      *slog.Logger
}

// Params defines the required parameters
type Params struct {
	fx.In
	fx.Lifecycle

	Config *config.Config
	Logger *slog.Logger
}

// NewDlibEncoder loads the recognition models and returns a FaceEncoder.
// The underlying recognizer holds native resources and is released on shutdown.
func NewDlibEncoder(params Params) (service.FaceEncoder, error) {
	if params.Config.Biometric == nil {
		return nil, errors.New("biometric configuration is required")
	}

	rec, err := face.NewRecognizer(params.Config.Biometric.ModelsDir)
	if err != nil {
		return nil, errors.Wrapf(err, "load face recognition models from %s", params.Config.Biometric.ModelsDir)
	}

	quality := params.Config.Biometric.JPEGQuality
	if quality <= 0 || quality > 100 {
		quality = defaultJPEGQuality
	}

	params.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			rec.Close()

			return nil
		},
	})

	return &dlibEncoder{
		rec:         rec,
		jpegQuality: quality,
		logger:      params.Logger,
	}, nil
}

// Extract decodes the image bytes and returns the encoding of the first
// detected face. Every failure mode collapses into ErrFaceNotDetected:
// callers treat a malformed image and an image without a face identically.
func (e *dlibEncoder) Extract(ctx context.Context, imageBytes []byte) (entity.FaceEncoding, error) {
	normalized, err := e.normalize(imageBytes)
	if err != nil {
		e.logger.DebugContext(ctx, "Image decode failed", slog.Any("error", err))

		return nil, service.ErrFaceNotDetected
	}

	faces, err := e.rec.Recognize(normalized)
	if err != nil {
		e.logger.DebugContext(ctx, "Face recognition failed", slog.Any("error", err))

		return nil, service.ErrFaceNotDetected
	}
	if len(faces) == 0 {
		return nil, service.ErrFaceNotDetected
	}

	// Several faces: the first detected one wins. Ranking by size or
	// confidence is a documented limitation.
	return descriptorToEncoding(faces[0].Descriptor), nil
}

// normalize decodes arbitrary upload formats through the stdlib image
// registry and re-encodes to JPEG, the pixel layout the recognizer expects.
// Skipping this step makes detection silently degrade on non-JPEG input.
func (e *dlibEncoder) normalize(imageBytes []byte) ([]byte, error) {
	img, format, err := image.Decode(bytes.NewReader(imageBytes))
	if err != nil {
		return nil, errors.Wrap(err, "decode image")
	}

	if format == "jpeg" {
		return imageBytes, nil
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: e.jpegQuality}); err != nil {
		return nil, errors.Wrap(err, "re-encode image as jpeg")
	}

	return buf.Bytes(), nil
}

func descriptorToEncoding(d face.Descriptor) entity.FaceEncoding {
	encoding := make(entity.FaceEncoding, len(d))
	for i, v := range d {
		encoding[i] = float64(v)
	}

	return encoding
}
