package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsConfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"go.uber.org/zap"

	"github.com/davicafu/academylab/internal/config"
	sharedDomain "github.com/davicafu/academylab/shared/domain"
	sharedStorage "github.com/davicafu/academylab/shared/platform/storage"
)

// PutObjectAPI es la parte del cliente S3 que usamos.
type PutObjectAPI interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3Uploader sube ficheros a un bucket S3 (o compatible, ej. MinIO).
type S3Uploader struct {
	client  PutObjectAPI
	bucket  string
	baseURL string
	log     *zap.Logger
}

var _ sharedStorage.Uploader = (*S3Uploader)(nil)

// NewS3Client construye el cliente con credenciales estáticas si las hay;
// si no, usa la cadena por defecto (variables de entorno, rol IAM...).
func NewS3Client(ctx context.Context, cfg config.S3) (*s3.Client, error) {
	opts := []func(*awsConfig.LoadOptions) error{awsConfig.WithRegion(cfg.Region)}
	if cfg.AccessKey != "" && cfg.SecretKey != "" {
		opts = append(opts, awsConfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		))
	}

	awsCfg, err := awsConfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	return s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
		o.UsePathStyle = cfg.UsePathStyle
	}), nil
}

func NewS3Uploader(client PutObjectAPI, cfg config.S3, log *zap.Logger) *S3Uploader {
	return &S3Uploader{
		client:  client,
		bucket:  cfg.Bucket,
		baseURL: PublicBaseURL(cfg),
		log:     log,
	}
}

// PublicBaseURL es el prefijo de las URLs devueltas por Upload.
func PublicBaseURL(cfg config.S3) string {
	switch {
	case cfg.PublicBaseURL != "":
		return strings.TrimRight(cfg.PublicBaseURL, "/")
	case cfg.Endpoint != "":
		return strings.TrimRight(cfg.Endpoint, "/") + "/" + cfg.Bucket
	default:
		return fmt.Sprintf("https://%s.s3.%s.amazonaws.com", cfg.Bucket, cfg.Region)
	}
}

func (u *S3Uploader) Upload(ctx context.Context, key string, body io.Reader, contentType string) (string, error) {
	_, err := u.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(u.bucket),
		Key:         aws.String(key),
		Body:        body,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		u.log.Error("s3 upload failed", zap.String("key", key), zap.Error(err))
		return "", &sharedDomain.UpstreamError{Service: "storage", Gateway: true, Err: err}
	}

	u.log.Debug("objeto subido", zap.String("bucket", u.bucket), zap.String("key", key))
	return u.baseURL + "/" + key, nil
}

var ErrStorageDisabled = errors.New("object storage is not configured")

// DisabledUploader se usa cuando no hay bucket configurado.
type DisabledUploader struct{}

var _ sharedStorage.Uploader = DisabledUploader{}

func (DisabledUploader) Upload(context.Context, string, io.Reader, string) (string, error) {
	return "", sharedDomain.NewUpstreamError("storage", ErrStorageDisabled)
}
