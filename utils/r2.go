// utils/r2.go
package utils

import (
	"bytes"
	"context"
	"fmt"

	"next2play/config"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// R2Store uploads mirrored artwork to a Cloudflare R2 bucket.
type R2Store struct {
	client     *s3.Client
	bucket     string
	cdnBaseURL string
}

func NewR2Store(ctx context.Context, r2 config.R2Config) (*R2Store, error) {
	endpoint := fmt.Sprintf("https://%s.r2.cloudflarestorage.com", r2.AccountID)
	cdnBaseURL := r2.CDNBaseURL
	if cdnBaseURL == "" {
		cdnBaseURL = endpoint + "/" + r2.Bucket
	}

	cfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion("auto"),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			r2.AccessKeyID, r2.AccessKeySecret, "",
		)),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load R2 config: %w", err)
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(endpoint)
	})
	return &R2Store{client: client, bucket: r2.Bucket, cdnBaseURL: cdnBaseURL}, nil
}

// Put uploads data under key and returns its public URL.
func (r *R2Store) Put(ctx context.Context, key string, data []byte, contentType string) (string, error) {
	_, err := r.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:       aws.String(r.bucket),
		Key:          aws.String(key),
		Body:         bytes.NewReader(data),
		ContentType:  aws.String(contentType),
		CacheControl: aws.String("public, max-age=31536000"),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload to R2: %w", err)
	}
	return fmt.Sprintf("%s/%s", r.cdnBaseURL, key), nil
}
