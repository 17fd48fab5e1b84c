// Package storage presigns document file transfers against S3 or any
// S3-compatible object store.
package storage

import (
	"context"
	"errors"
	"fmt"
	"path"
	"regexp"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
)

// URLScheme prefixes document fileUrl values that point into the bucket
const URLScheme = "s3://"

// S3ClientConfig holds configuration for S3Client
type S3ClientConfig struct {
	// Endpoint is empty for AWS and set for S3-compatible stores
	Endpoint        string
	Region          string
	AccessKeyID     string
	SecretAccessKey string
	Bucket          string
	UsePathStyle    bool
	UploadExpiry    time.Duration
	DownloadExpiry  time.Duration
}

// S3Client presigns uploads and downloads of document files
type S3Client struct {
	client            *s3.Client
	presignClient     *s3.PresignClient
	bucket            string
	uploadURLExpiry   time.Duration
	downloadURLExpiry time.Duration
}

// ObjectMetadata contains metadata about an S3 object
type ObjectMetadata struct {
	ContentLength int64
	ContentType   string
	ETag          string
}

// ErrObjectNotFound is returned by HeadObject when the key does not exist
var ErrObjectNotFound = errors.New("object not found")

// NewS3Client creates a new S3Client with the given configuration
func NewS3Client(ctx context.Context, cfg S3ClientConfig) (*S3Client, error) {
	awsCfg, err := config.LoadDefaultConfig(ctx,
		config.WithRegion(cfg.Region),
		config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
		o.UsePathStyle = cfg.UsePathStyle
	})

	uploadExpiry := cfg.UploadExpiry
	if uploadExpiry <= 0 {
		uploadExpiry = 15 * time.Minute
	}
	downloadExpiry := cfg.DownloadExpiry
	if downloadExpiry <= 0 {
		downloadExpiry = time.Hour
	}

	return &S3Client{
		client:            client,
		presignClient:     s3.NewPresignClient(client),
		bucket:            cfg.Bucket,
		uploadURLExpiry:   uploadExpiry,
		downloadURLExpiry: downloadExpiry,
	}, nil
}

// GenerateUploadURL creates a presigned URL for uploading an object
func (c *S3Client) GenerateUploadURL(ctx context.Context, key string, contentType string) (string, error) {
	input := &s3.PutObjectInput{
		Bucket:      aws.String(c.bucket),
		Key:         aws.String(key),
		ContentType: aws.String(contentType),
	}

	presignedReq, err := c.presignClient.PresignPutObject(ctx, input, func(opts *s3.PresignOptions) {
		opts.Expires = c.uploadURLExpiry
	})
	if err != nil {
		return "", fmt.Errorf("failed to generate upload URL: %w", err)
	}

	return presignedReq.URL, nil
}

// GenerateDownloadURL creates a presigned URL for downloading an object
func (c *S3Client) GenerateDownloadURL(ctx context.Context, key string) (string, error) {
	input := &s3.GetObjectInput{
		Bucket: aws.String(c.bucket),
		Key:    aws.String(key),
	}

	presignedReq, err := c.presignClient.PresignGetObject(ctx, input, func(opts *s3.PresignOptions) {
		opts.Expires = c.downloadURLExpiry
	})
	if err != nil {
		return "", fmt.Errorf("failed to generate download URL: %w", err)
	}

	return presignedReq.URL, nil
}

// DeleteObject removes an object from storage
func (c *S3Client) DeleteObject(ctx context.Context, key string) error {
	_, err := c.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(c.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("failed to delete object: %w", err)
	}
	return nil
}

// HeadObject returns metadata of an uploaded object, or ErrObjectNotFound
func (c *S3Client) HeadObject(ctx context.Context, key string) (*ObjectMetadata, error) {
	output, err := c.client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(c.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		var nf *types.NotFound
		if errors.As(err, &nf) {
			return nil, ErrObjectNotFound
		}
		return nil, fmt.Errorf("failed to head object: %w", err)
	}

	return &ObjectMetadata{
		ContentLength: aws.ToInt64(output.ContentLength),
		ContentType:   aws.ToString(output.ContentType),
		ETag:          aws.ToString(output.ETag),
	}, nil
}

// EnsureBucket creates the bucket if it doesn't exist
func (c *S3Client) EnsureBucket(ctx context.Context) error {
	_, err := c.client.HeadBucket(ctx, &s3.HeadBucketInput{
		Bucket: aws.String(c.bucket),
	})
	if err == nil {
		return nil
	}

	_, err = c.client.CreateBucket(ctx, &s3.CreateBucketInput{
		Bucket: aws.String(c.bucket),
	})
	if err != nil {
		return fmt.Errorf("failed to create bucket: %w", err)
	}

	return nil
}

var unsafeFilenameChars = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

// DocumentKey returns the object key for a document's file
func DocumentKey(businessID, documentID int64, filename string) string {
	name := unsafeFilenameChars.ReplaceAllString(path.Base(filename), "-")
	name = strings.Trim(name, "-.")
	if name == "" {
		name = "file"
	}
	return DocumentKeyPrefix(businessID, documentID) + name
}

// DocumentKeyPrefix returns the key prefix every object of a document lives under
func DocumentKeyPrefix(businessID, documentID int64) string {
	return fmt.Sprintf("businesses/%d/documents/%d/", businessID, documentID)
}

// IsStoredFileURL reports whether fileURL uses the stored-object scheme
func IsStoredFileURL(fileURL string) bool {
	return strings.HasPrefix(fileURL, URLScheme)
}

// FileURL renders key as a document fileUrl
func FileURL(key string) string {
	return URLScheme + key
}

// KeyFromFileURL extracts the object key from a fileUrl. ok is false for
// fileUrls that point elsewhere.
func KeyFromFileURL(fileURL string) (key string, ok bool) {
	if !strings.HasPrefix(fileURL, URLScheme) {
		return "", false
	}
	key = strings.TrimPrefix(fileURL, URLScheme)
	return key, key != ""
}
