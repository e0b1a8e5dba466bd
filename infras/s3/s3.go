package s3

//go:generate go run go.uber.org/mock/mockgen -source=./s3.go -destination=./mocks/s3_mock.go -package=mocks

import (
	"bytes"
	"context"
	"fmt"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsConfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/rs/zerolog/log"

	"inn/config"
	"inn/infras/otel"
	"inn/shared/constant"
	"inn/shared/timezone"
)

const (
	otelAttrObjectKey = "object_key"
	otelAttrBucket    = "bucket"

	proofDirectory = "customer_proofs"
)

type S3 interface {
	Upload(ctx context.Context, objectKey, contentType string, data []byte) (url string, err error)
	Delete(ctx context.Context, objectKey string) error
	BuildKey(customerID, fileName string) string
	KeyFromURL(url string) (objectKey string)
}

type s3Impl struct {
	Client *s3.Client
	Config *config.Config
	otel   otel.Otel
}

// Upload stores the object and returns its public URL.
func (svc *s3Impl) Upload(ctx context.Context, objectKey, contentType string, data []byte) (url string, err error) {
	ctx, scope := svc.otel.NewScope(ctx, constant.OtelS3ScopeName, constant.OtelS3ScopeName+".Upload")
	defer scope.End()
	defer scope.TraceIfError(err)

	bucketName := svc.Config.External.S3.BucketName

	scope.SetAttributes(map[string]any{
		otelAttrObjectKey: objectKey,
		otelAttrBucket:    bucketName,
	})

	fileReader := bytes.NewReader(data)

	_, err = svc.Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(bucketName),
		Key:           aws.String(objectKey),
		Body:          fileReader,
		ContentType:   aws.String(contentType),
		ContentLength: aws.Int64(fileReader.Size()),
	})
	if err != nil {
		return constant.Empty, fmt.Errorf("failed to upload file to S3: %w", err)
	}

	return svc.objectURL(objectKey), nil
}

// Delete removes the object from the bucket.
func (svc *s3Impl) Delete(ctx context.Context, objectKey string) (err error) {
	ctx, scope := svc.otel.NewScope(ctx, constant.OtelS3ScopeName, constant.OtelS3ScopeName+".Delete")
	defer scope.End()
	defer scope.TraceIfError(err)

	bucketName := svc.Config.External.S3.BucketName

	scope.SetAttributes(map[string]any{
		otelAttrObjectKey: objectKey,
		otelAttrBucket:    bucketName,
	})

	_, err = svc.Client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(bucketName),
		Key:    aws.String(objectKey),
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to delete file from S3")

		return fmt.Errorf("failed to delete file from S3: %w", err)
	}

	return nil
}

// BuildKey derives the object key for a customer proof document. The
// millisecond timestamp keeps keys unique across re-uploads of the same name.
func (svc *s3Impl) BuildKey(customerID, fileName string) string {
	return path.Join(proofDirectory, customerID, fmt.Sprintf("%d_%s", timezone.Now().UnixMilli(), fileName))
}

// KeyFromURL reverses the public URL back into the object key. Returns empty
// when the URL does not belong to the configured bucket.
func (svc *s3Impl) KeyFromURL(url string) (objectKey string) {
	prefix := svc.bucketURL() + "/"

	if strings.HasPrefix(url, prefix) {
		return url[len(prefix):]
	}

	return constant.Empty
}

func (svc *s3Impl) bucketURL() string {
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com", svc.Config.External.S3.BucketName, svc.Config.External.S3.Region)
}

func (svc *s3Impl) objectURL(objectKey string) string {
	return fmt.Sprintf("%s/%s", svc.bucketURL(), objectKey)
}

func New(config *config.Config, otel otel.Otel) S3 {
	accessKeyID := config.External.S3.AccessKeyID
	secretAccessKey := config.External.S3.SecretAccessKey

	staticProvider := credentials.NewStaticCredentialsProvider(
		accessKeyID,
		secretAccessKey,
		"",
	)

	cfg, err := awsConfig.LoadDefaultConfig(
		context.TODO(),
		awsConfig.WithCredentialsProvider(staticProvider),
		awsConfig.WithRegion(config.External.S3.Region),
	)

	if err != nil {
		log.Err(err).Msg("Error loading AWS configuration")
	}

	s3Client := s3.NewFromConfig(cfg)

	return &s3Impl{
		Client: s3Client,
		Config: config,
		otel:   otel,
	}
}
