package storage

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/request"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/google/uuid"
	"github.com/pkg/errors"

	"school-directory/config"
	"school-directory/models"
)

// ObjectPutter is the part of the S3 client the backend uses.
type ObjectPutter interface {
	PutObjectWithContext(ctx aws.Context, input *s3.PutObjectInput, opts ...request.Option) (*s3.PutObjectOutput, error)
}

// S3 uploads images to a bucket and stores their public URL.
type S3 struct {
	client  ObjectPutter
	bucket  string
	baseURL string
	prefix  string
	now     func() time.Time
}

// NewS3 returns a backend uploading through client. Objects are addressed as
// baseURL + "/" + key.
func NewS3(client ObjectPutter, bucket, baseURL, prefix string) *S3 {
	return &S3{
		client:  client,
		bucket:  bucket,
		baseURL: strings.TrimRight(baseURL, "/"),
		prefix:  prefix,
		now:     time.Now,
	}
}

// NewS3FromConfig creates an AWS session from cfg. Static keys are used when
// set, otherwise the default credential chain.
func NewS3FromConfig(cfg config.S3) (*S3, error) {
	awsCfg := &aws.Config{Region: aws.String(cfg.Region)}
	if cfg.AccessKeyID != "" && cfg.SecretAccessKey != "" {
		awsCfg.Credentials = credentials.NewStaticCredentials(cfg.AccessKeyID, cfg.SecretAccessKey, "")
	}
	if cfg.Endpoint != "" {
		awsCfg.Endpoint = aws.String(cfg.Endpoint)
		awsCfg.S3ForcePathStyle = aws.Bool(true)
	}
	sess, err := session.NewSession(awsCfg)
	if err != nil {
		return nil, fmt.Errorf("create AWS session: %w", err)
	}
	return NewS3(s3.New(sess), cfg.Bucket, PublicBaseURL(cfg), cfg.KeyPrefix), nil
}

// PublicBaseURL is where uploaded objects can be fetched from.
func PublicBaseURL(cfg config.S3) string {
	switch {
	case cfg.PublicBaseURL != "":
		return cfg.PublicBaseURL
	case cfg.Endpoint != "":
		return strings.TrimRight(cfg.Endpoint, "/") + "/" + cfg.Bucket
	default:
		return fmt.Sprintf("https://%s.s3.%s.amazonaws.com", cfg.Bucket, cfg.Region)
	}
}

func (*S3) Name() string { return "s3" }

func (b *S3) Store(ctx context.Context, data []byte, contentType, originalName string) (*string, error) {
	ok, err := checkSize(data)
	if !ok {
		return nil, err
	}

	key := b.key(originalName)
	_, err = b.client.PutObjectWithContext(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(b.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(data),
		ContentType:   aws.String(detectType(data, contentType)),
		ContentLength: aws.Int64(int64(len(data))),
	})
	if err != nil {
		return nil, &models.BackendError{Backend: b.Name(), Err: errors.Wrap(err, "upload image")}
	}
	url := b.baseURL + "/" + key
	return &url, nil
}

func (b *S3) key(originalName string) string {
	ext := strings.ToLower(filepath.Ext(SanitizeFilename(originalName)))
	return fmt.Sprintf("%s%d_%s%s", b.prefix, b.now().UnixNano(), uuid.New().String(), ext)
}
