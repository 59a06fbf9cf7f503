// Package publish uploads finished renders to S3-compatible object storage.
package publish

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3iface"
	"github.com/google/uuid"

	"github.com/df07/go-lux-raytracer/pkg/logging"
)

// UploadTimeout bounds a single PutObject call
const UploadTimeout = 30 * time.Second

// ErrNoBucket is returned when uploads are requested without a bucket
var ErrNoBucket = errors.New("publish: no S3 bucket configured")

// S3Config holds the connection settings for the object store
type S3Config struct {
	AccessKey string
	SecretKey string
	Endpoint  string
	Region    string
	Bucket    string
	Prefix    string // key prefix, defaults to "renders"
	CDNURL    string // optional public base URL for uploaded objects
}

// S3Publisher uploads encoded images under renders/<scene>/<id>.<ext>
type S3Publisher struct {
	client s3iface.S3API
	config S3Config
	logger *slog.Logger
	newID  func() string
}

// NewS3Publisher creates an AWS session from config.
// A custom endpoint switches to path-style addressing for S3-compatible stores.
func NewS3Publisher(config S3Config, logger *slog.Logger) (*S3Publisher, error) {
	if config.Bucket == "" {
		return nil, ErrNoBucket
	}

	awsConfig := &aws.Config{
		Credentials: credentials.NewStaticCredentials(config.AccessKey, config.SecretKey, ""),
		Region:      aws.String(config.Region),
	}
	if config.Endpoint != "" {
		awsConfig.Endpoint = aws.String(config.Endpoint)
		awsConfig.S3ForcePathStyle = aws.Bool(true)
	}

	sess, err := session.NewSession(awsConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create S3 session: %w", err)
	}
	return NewS3PublisherWithClient(s3.New(sess), config, logger), nil
}

// NewS3PublisherWithClient wraps an existing S3 client
func NewS3PublisherWithClient(client s3iface.S3API, config S3Config, logger *slog.Logger) *S3Publisher {
	if config.Prefix == "" {
		config.Prefix = "renders"
	}
	return &S3Publisher{
		client: client,
		config: config,
		logger: logging.OrNop(logger),
		newID:  func() string { return uuid.New().String() },
	}
}

// Key builds the object key for a render of sceneName with extension ext
func (p *S3Publisher) Key(sceneName, id, ext string) string {
	return path.Join(p.config.Prefix, sceneName, id+"."+ext)
}

// Upload stores data under a fresh key and returns the key and its public URL (if a CDN is configured)
func (p *S3Publisher) Upload(ctx context.Context, sceneName, ext, contentType string, data []byte) (key, url string, err error) {
	ctx, cancel := context.WithTimeout(ctx, UploadTimeout)
	defer cancel()

	key = p.Key(sceneName, p.newID(), ext)
	size := int64(len(data))
	_, err = p.client.PutObjectWithContext(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(p.config.Bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(data),
		ContentLength: aws.Int64(size),
		ContentType:   aws.String(contentType),
		ACL:           aws.String("public-read"),
	})
	if err != nil {
		return "", "", fmt.Errorf("failed to upload %s: %w", key, err)
	}

	if p.config.CDNURL != "" {
		url = p.config.CDNURL + "/" + key
	}
	p.logger.Info("uploaded render", "bucket", p.config.Bucket, "key", key, "bytes", size)
	return key, url, nil
}
