package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/gabriel-vasile/mimetype"

	"translized/src/config"
)

// s3Location is an object key inside the bucket of a configured alias.
type s3Location struct {
	alias config.Alias
	key   string
}

// locate resolves s3://alias/key against aliases. The alias prefix is
// prepended to the key.
func locate(rawURL string, aliases map[string]config.Alias) (s3Location, error) {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return s3Location{}, fmt.Errorf("parsing %s: %w", rawURL, err)
	}

	key := strings.TrimPrefix(parsed.Path, "/")
	if parsed.Scheme != "s3" || parsed.Host == "" || key == "" {
		return s3Location{}, fmt.Errorf("invalid s3 URL %q (expected s3://alias/key)", rawURL)
	}

	alias, exists := aliases[parsed.Host]
	if !exists {
		return s3Location{}, fmt.Errorf("alias %q not found", parsed.Host)
	}

	return s3Location{alias: alias, key: alias.Prefix + key}, nil
}

// S3Object reads and writes a single object in S3 or MinIO storage.
type S3Object struct {
	client *s3.Client
	bucket string
	key    string
}

func newS3Object(ctx context.Context, rawURL string, aliases map[string]config.Alias) (*S3Object, error) {
	location, err := locate(rawURL, aliases)
	if err != nil {
		return nil, err
	}

	client, err := newS3Client(ctx, location.alias)
	if err != nil {
		return nil, fmt.Errorf("creating S3 client: %w", err)
	}

	return &S3Object{client: client, bucket: location.alias.Bucket, key: location.key}, nil
}

func newS3Client(ctx context.Context, alias config.Alias) (*s3.Client, error) {
	var loadOpts []func(*awsconfig.LoadOptions) error

	if alias.Region != "" {
		loadOpts = append(loadOpts, awsconfig.WithRegion(alias.Region))
	}

	switch {
	case alias.NoSignRequest:
		loadOpts = append(loadOpts, awsconfig.WithCredentialsProvider(aws.AnonymousCredentials{}))
	case alias.AccessKey != "" && alias.SecretKey != "":
		loadOpts = append(loadOpts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(alias.AccessKey, alias.SecretKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("loading AWS config: %w", err)
	}

	return s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if alias.Endpoint != "" {
			o.BaseEndpoint = aws.String(alias.Endpoint)
			o.UsePathStyle = true
		}
	}), nil
}

// Download retrieves the object content.
func (object *S3Object) Download(ctx context.Context) (io.ReadCloser, int64, error) {
	result, err := object.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(object.bucket),
		Key:    aws.String(object.key),
	})
	if err != nil {
		return nil, 0, fmt.Errorf("getting s3://%s/%s: %w", object.bucket, object.key, err)
	}

	size := int64(-1)
	if result.ContentLength != nil {
		size = *result.ContentLength
	}

	return result.Body, size, nil
}

// Put replaces the object with data, typed by its sniffed content.
func (object *S3Object) Put(ctx context.Context, data []byte) error {
	_, err := object.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(object.bucket),
		Key:           aws.String(object.key),
		Body:          bytes.NewReader(data),
		ContentLength: aws.Int64(int64(len(data))),
		ContentType:   aws.String(mimetype.Detect(data).String()),
	})
	if err != nil {
		return fmt.Errorf("putting s3://%s/%s: %w", object.bucket, object.key, err)
	}

	return nil
}
