package storage

import (
	"context"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"school-directory/models"
)

type lenient struct {
	Backend
}

// Lenient wraps b so that backend failures are logged and the school is
// saved without an image. Oversized payloads are still rejected.
func Lenient(b Backend) Backend {
	return &lenient{Backend: b}
}

func (l *lenient) Store(ctx context.Context, data []byte, contentType, originalName string) (*string, error) {
	ref, err := l.Backend.Store(ctx, data, contentType, originalName)
	if err == nil || errors.Is(err, models.ErrPayloadTooLarge) {
		return ref, err
	}
	log.WithFields(log.Fields{
		"backend":  l.Backend.Name(),
		"filename": originalName,
	}).WithError(err).Warn("image upload failed, saving school without image")
	return nil, nil
}
