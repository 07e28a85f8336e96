package photos

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"

	kcf "github.com/daariikk/myhelp-web/pkg/configs/frontend"
)

// s3API is the part of *s3.Client used by S3 store.
type s3API interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	HeadObject(ctx context.Context, params *s3.HeadObjectInput, optFns ...func(*s3.Options)) (*s3.HeadObjectOutput, error)
	DeleteObject(ctx context.Context, params *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
}

// S3 stores photos as objects in a bucket.
//
// Public path of an object is "<url prefix>/<key>".
type S3 struct {
	client    s3API
	bucket    string
	urlPrefix string
}

var _ Store = &S3{}

// NewS3 creates S3 store. Credentials are taken from the default chain of AWS SDK.
func NewS3(ctx context.Context, conf kcf.PhotosConfig) (*S3, error) {
	opts := []func(*config.LoadOptions) error{}
	if conf.Region != "" {
		opts = append(opts, config.WithRegion(conf.Region))
	}
	cfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("photos: loading aws config: %w", err)
	}
	if cfg.Region == "" {
		cfg.Region = "us-east-1"
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		if conf.Endpoint != "" {
			o.BaseEndpoint = aws.String(conf.Endpoint)
		}
		o.UsePathStyle = conf.PathStyle
	})
	return newS3(client, conf.Bucket, conf.URLPrefix), nil
}

func newS3(client s3API, bucket string, urlPrefix string) *S3 {
	return &S3{
		client:    client,
		bucket:    bucket,
		urlPrefix: strings.TrimSuffix(urlPrefix, "/"),
	}
}

func (s *S3) Save(ctx context.Context, name string, contentType string, r io.Reader) (string, error) {
	key := path.Base(name)

	// PutObject needs a seekable body to sign the payload.
	body, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}

	input := &s3.PutObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
		Body:   bytes.NewReader(body),
	}
	if contentType != "" {
		input.ContentType = aws.String(contentType)
	}
	if _, err := s.client.PutObject(ctx, input); err != nil {
		return "", fmt.Errorf("photos: put %s: %w", key, err)
	}
	return s.urlPrefix + "/" + key, nil
}

// key returns object key of the public path.
func (s *S3) key(publicPath string) (string, error) {
	key, ok := strings.CutPrefix(publicPath, s.urlPrefix+"/")
	if !ok || key == "" || strings.Contains(key, "/") || key == "." || key == ".." {
		return "", ErrForbidden
	}
	return key, nil
}

func (s *S3) Delete(ctx context.Context, publicPath string) error {
	key, err := s.key(publicPath)
	if err != nil {
		return err
	}

	// DeleteObject succeeds for missing keys, so existence is checked first.
	if _, err := s.client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	}); err != nil {
		if isNotFound(err) {
			return ErrMissing
		}
		return fmt.Errorf("photos: head %s: %w", key, err)
	}

	if _, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	}); err != nil {
		return fmt.Errorf("photos: delete %s: %w", key, err)
	}
	return nil
}

func isNotFound(err error) bool {
	var notFound *types.NotFound
	if errors.As(err, &notFound) {
		return true
	}
	var noSuchKey *types.NoSuchKey
	if errors.As(err, &noSuchKey) {
		return true
	}
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.ErrorCode() {
		case "NotFound", "NoSuchKey":
			return true
		}
	}
	return false
}
