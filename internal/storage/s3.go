package storage

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"zettel-todo/internal/config"
)

// S3Client envuelve el cliente de S3 para el almacenamiento de objetos.
// Funciona contra cualquier endpoint compatible (MinIO incluido).
type S3Client struct {
	client   *s3.Client
	endpoint string
}

func NewS3Client(ctx context.Context, cfg *config.Config) (*S3Client, error) {
	if strings.TrimSpace(cfg.S3Endpoint) == "" {
		return nil, fmt.Errorf("s3 endpoint is required")
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.S3Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.S3AccessKey,
			cfg.S3SecretKey,
			"",
		)))
	if err != nil {
		return nil, err
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(cfg.S3Endpoint)
		o.UsePathStyle = true
	})

	return &S3Client{
		client:   client,
		endpoint: strings.TrimRight(cfg.S3Endpoint, "/"),
	}, nil
}

// Upload sube el objeto y devuelve su URL pública.
func (c *S3Client) Upload(ctx context.Context, bucket, key string, data []byte, contentType string) (string, error) {
	_, err := c.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s/%s/%s", c.endpoint, bucket, key), nil
}

func (c *S3Client) Delete(ctx context.Context, bucket, key string) error {
	_, err := c.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	return err
}

// Healthcheck verifica que el servidor de objetos responda.
func (c *S3Client) Healthcheck(ctx context.Context) error {
	_, err := c.client.ListBuckets(ctx, &s3.ListBucketsInput{})
	return err
}
