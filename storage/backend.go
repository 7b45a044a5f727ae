// Package storage persists uploaded school images and hands back the
// reference that is saved in the image column. Exactly one backend is active
// per deployment; New picks it from configuration.
package storage

import (
	"context"
	"fmt"

	"github.com/gabriel-vasile/mimetype"
	log "github.com/sirupsen/logrus"

	"school-directory/config"
	"school-directory/models"
)

// Backend stores an image and returns its reference. A nil reference with
// a nil error means no image was supplied.
//
// Every implementation rejects payloads larger than models.MaxImageSize with
// models.ErrPayloadTooLarge before writing anything, and wraps other failures
// in *models.BackendError.
type Backend interface {
	Store(ctx context.Context, data []byte, contentType, originalName string) (*string, error)
	Name() string
}

// New builds the backend selected by cfg.
func New(cfg *config.Config) (Backend, error) {
	var b Backend
	switch cfg.Image.Backend {
	case config.BackendInline:
		b = NewInline()
	case config.BackendLocal:
		b = NewLocal(cfg.UploadDir)
	case config.BackendS3:
		s3b, err := NewS3FromConfig(cfg.S3)
		if err != nil {
			return nil, err
		}
		b = s3b
	default:
		return nil, fmt.Errorf("unknown image backend %q", cfg.Image.Backend)
	}
	if cfg.DropImageOnError() {
		b = Lenient(b)
	}
	log.WithFields(log.Fields{
		"backend":  b.Name(),
		"on_error": policyName(cfg.DropImageOnError()),
	}).Info("image storage configured")
	return b, nil
}

func policyName(drop bool) string {
	if drop {
		return config.OnErrorDrop
	}
	return config.OnErrorFail
}

// checkSize reports whether there is anything to store.
func checkSize(data []byte) (bool, error) {
	if len(data) == 0 {
		return false, nil
	}
	if len(data) > models.MaxImageSize {
		return false, models.ErrPayloadTooLarge
	}
	return true, nil
}

// detectType sniffs the content type when the client did not declare one.
func detectType(data []byte, declared string) string {
	if declared != "" && declared != "application/octet-stream" {
		return declared
	}
	return mimetype.Detect(data).String()
}
