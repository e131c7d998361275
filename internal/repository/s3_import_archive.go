package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	appConfig "github.com/mansoorceksport/liftlog/internal/config"
	"github.com/oklog/ulid/v2"
)

// S3ImportArchive implements domain.ImportArchive on an S3 compatible store
// (SeaweedFS, MinIO, AWS)
type S3ImportArchive struct {
	client    *s3.Client
	bucket    string
	publicURL string
}

// NewS3ImportArchive creates the archive and makes sure its bucket exists
func NewS3ImportArchive(ctx context.Context, cfg appConfig.S3Config) (*S3ImportArchive, error) {
	// S3 compatible stores still want signed requests, any static key works
	awsCfg, err := config.LoadDefaultConfig(ctx,
		config.WithRegion(cfg.Region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider("any", "any", "")),
	)
	if err != nil {
		return nil, fmt.Errorf("unable to load SDK config, %v", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(cfg.Endpoint)
		o.UsePathStyle = true
	})

	archive := &S3ImportArchive{
		client:    client,
		bucket:    cfg.Bucket,
		publicURL: strings.TrimRight(cfg.Endpoint, "/"),
	}

	if err := archive.ensureBucket(ctx); err != nil {
		return nil, err
	}

	return archive, nil
}

// ArchiveImport stores the raw text as imports/<namespace>/<ulid>.txt
func (a *S3ImportArchive) ArchiveImport(ctx context.Context, namespace string, text string) (string, error) {
	key := importObjectKey(namespace, ulid.Make().String())

	_, err := a.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(a.bucket),
		Key:         aws.String(key),
		Body:        strings.NewReader(text),
		ContentType: aws.String("text/plain; charset=utf-8"),
	})
	if err != nil {
		return "", fmt.Errorf("failed to archive import to S3: %w", err)
	}

	// Format: {Endpoint}/{Bucket}/{Key}
	return fmt.Sprintf("%s/%s/%s", a.publicURL, a.bucket, key), nil
}

// importObjectKey keeps namespaces like "user:abc" path safe
func importObjectKey(namespace, id string) string {
	return "imports/" + strings.ReplaceAll(namespace, ":", "/") + "/" + id + ".txt"
}

// ensureBucket checks if bucket exists, creating it if necessary
func (a *S3ImportArchive) ensureBucket(ctx context.Context) error {
	_, err := a.client.HeadBucket(ctx, &s3.HeadBucketInput{
		Bucket: aws.String(a.bucket),
	})
	if err != nil {
		_, err = a.client.CreateBucket(ctx, &s3.CreateBucketInput{
			Bucket: aws.String(a.bucket),
		})
		if err != nil {
			return fmt.Errorf("failed to create bucket %s: %w", a.bucket, err)
		}
	}
	return nil
}
