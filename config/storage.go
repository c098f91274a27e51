package config

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// S3Config holds the S3 client and the dataset object location.
type S3Config struct {
	Client *s3.Client
	Bucket string
	Key    string
}

// NewS3Config initializes the S3 client from the environment for
// fetching the recipe dataset object.
func NewS3Config(ctx context.Context, cfg *Config) (*S3Config, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(os.Getenv("AWS_REGION")),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	return &S3Config{
		Client: s3.NewFromConfig(awsCfg),
		Bucket: cfg.DatasetS3Bucket,
		Key:    cfg.DatasetS3Key,
	}, nil
}

// FetchDataset downloads the dataset object. The caller closes the
// returned reader.
func (s *S3Config) FetchDataset(ctx context.Context) (io.ReadCloser, error) {
	out, err := s.Client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.Bucket),
		Key:    aws.String(s.Key),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch dataset s3://%s/%s: %w", s.Bucket, s.Key, err)
	}
	return out.Body, nil
}
