package wordsource

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// S3Scheme is the URI scheme that selects an S3 dictionary.
const S3Scheme = "s3"

var (
	// ErrInvalidS3URI is returned for dictionary URIs that are not of the
	// form s3://bucket/key.
	ErrInvalidS3URI = errors.New("invalid s3 uri")
	// ErrFailedToLoadConfig is returned when the AWS configuration cannot be loaded.
	ErrFailedToLoadConfig = errors.New("failed to load aws config")
)

// S3Client defines the S3 operations used by S3Source.
type S3Client interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// S3Config contains configuration for reading dictionaries from S3.
type S3Config struct {
	Region         string
	AccessKeyID    string
	SecretKey      string
	Endpoint       string // Optional: for S3-compatible services
	ForcePathStyle bool   // For S3-compatible services like MinIO
}

// S3Option defines a function that configures S3Source.
type S3Option func(*s3Options)

type s3Options struct {
	s3Client        S3Client
	s3ConfigOptions []func(*config.LoadOptions) error
}

// WithS3Client sets a custom pre-configured S3 client.
// Useful for testing with mocks.
func WithS3Client(client S3Client) S3Option {
	return func(o *s3Options) {
		o.s3Client = client
	}
}

// WithS3ConfigOption adds a custom AWS config option.
func WithS3ConfigOption(option func(*config.LoadOptions) error) S3Option {
	return func(o *s3Options) {
		o.s3ConfigOptions = append(o.s3ConfigOptions, option)
	}
}

// S3Source reads dictionaries stored as S3 objects. It is safe for
// concurrent use.
type S3Source struct {
	client S3Client
}

// NewS3Source creates a source backed by the default AWS configuration
// chain, narrowed by cfg. Static credentials are only used when both the key
// id and secret are set.
func NewS3Source(ctx context.Context, cfg S3Config, opts ...S3Option) (*S3Source, error) {
	options := &s3Options{}
	for _, opt := range opts {
		opt(options)
	}

	if options.s3Client != nil {
		return &S3Source{client: options.s3Client}, nil
	}

	var awsOptions []func(*config.LoadOptions) error
	if cfg.Region != "" {
		awsOptions = append(awsOptions, config.WithRegion(cfg.Region))
	}
	if cfg.AccessKeyID != "" && cfg.SecretKey != "" {
		awsOptions = append(awsOptions,
			config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
				cfg.AccessKeyID,
				cfg.SecretKey,
				"",
			)),
		)
	}
	awsOptions = append(awsOptions, options.s3ConfigOptions...)

	awsConfig, err := config.LoadDefaultConfig(ctx, awsOptions...)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFailedToLoadConfig, err)
	}

	client := s3.NewFromConfig(awsConfig, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
		o.UsePathStyle = cfg.ForcePathStyle
	})

	return &S3Source{client: client}, nil
}

// IsS3URI reports whether uri names an S3 object.
func IsS3URI(uri string) bool {
	return strings.HasPrefix(uri, S3Scheme+"://")
}

// ParseS3URI splits s3://bucket/key into its bucket and key.
func ParseS3URI(uri string) (bucket, key string, err error) {
	u, err := url.Parse(uri)
	if err != nil {
		return "", "", fmt.Errorf("%w: %v", ErrInvalidS3URI, err)
	}
	key = strings.TrimPrefix(u.Path, "/")
	if u.Scheme != S3Scheme || u.Host == "" || key == "" {
		return "", "", fmt.Errorf("%w: %q", ErrInvalidS3URI, uri)
	}
	return u.Host, key, nil
}

// Open fetches the object named by uri. The caller must close the returned
// reader. The returned size is the object's content length, or -1 when S3
// did not report one.
func (s *S3Source) Open(ctx context.Context, uri string) (io.ReadCloser, int64, error) {
	bucket, key, err := ParseS3URI(uri)
	if err != nil {
		return nil, 0, err
	}

	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, 0, fmt.Errorf("could not get dictionary %s: %w", uri, err)
	}

	size := int64(-1)
	if out.ContentLength != nil {
		size = *out.ContentLength
	}
	return out.Body, size, nil
}
