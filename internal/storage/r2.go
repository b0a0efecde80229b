package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

type R2Config struct {
	Endpoint      string
	AccessKey     string
	SecretKey     string
	Bucket        string
	PublicBaseURL string
}

// ObjectPutter is the part of the S3 API the client needs.
type ObjectPutter interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// R2Client uploads dish images to Cloudflare R2 through its S3 API.
type R2Client struct {
	client  ObjectPutter
	bucket  string
	baseURL string
}

func NewR2Client(ctx context.Context, c R2Config) (*R2Client, error) {
	if c.Endpoint == "" || c.Bucket == "" {
		return nil, errors.New("r2 endpoint and bucket are required")
	}

	cfg, err := config.LoadDefaultConfig(
		ctx,
		config.WithRegion("auto"),
		config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(
				c.AccessKey,
				c.SecretKey,
				"",
			),
		),
	)
	if err != nil {
		return nil, err
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(c.Endpoint)
		o.UsePathStyle = true
	})

	return NewR2ClientWith(client, c.Bucket, c.PublicBaseURL), nil
}

func NewR2ClientWith(client ObjectPutter, bucket string, baseURL string) *R2Client {
	return &R2Client{
		client:  client,
		bucket:  bucket,
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

func (r *R2Client) Upload(
	ctx context.Context,
	key string,
	body io.Reader,
	contentType string,
) (string, error) {

	_, err := r.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(r.bucket),
		Key:         aws.String(key),
		Body:        body,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("upload %s: %w", key, err)
	}

	return fmt.Sprintf("%s/%s", r.baseURL, key), nil
}
