package s3

//go:generate go run go.uber.org/mock/mockgen -source=./s3.go -destination=./mocks/s3_mock.go -package=mocks

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path"
	"path/filepath"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsConfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/rs/zerolog/log"

	"heritage/config"
	"heritage/infras/otel"
	"heritage/shared/constant"
)

const (
	otelAttrObject = "object"
	otelAttrBucket = "bucket"

	archiveDirectory = "backups"
	archiveMimetype  = "text/csv"
)

// S3 ships backup snapshots of the booking tables to object storage. It is
// an optional second copy next to the local timestamped files, not a
// replacement for them.
type S3 interface {
	ArchiveFile(ctx context.Context, localPath string) (objectKey string, err error)
	UploadBytes(ctx context.Context, directory, objectName, contentType string, data []byte) (objectKey string, err error)
}

type s3Impl struct {
	Client *s3.Client
	Config *config.Config
	otel   otel.Otel
}

// ArchiveFile uploads a local backup file under the backups/ prefix, keyed
// by its base name (which already carries the timestamp).
func (svc *s3Impl) ArchiveFile(ctx context.Context, localPath string) (objectKey string, err error) {
	ctx, scope := svc.otel.NewScope(ctx, constant.OtelS3ScopeName, constant.OtelS3ScopeName+".ArchiveFile")
	defer scope.End()
	defer scope.TraceIfError(err)

	raw, err := os.ReadFile(localPath)
	if err != nil {
		return constant.Empty, fmt.Errorf("failed to read backup file %s: %w", localPath, err)
	}

	return svc.UploadBytes(ctx, archiveDirectory, filepath.Base(localPath), archiveMimetype, raw)
}

func (svc *s3Impl) UploadBytes(ctx context.Context, directory, objectName, contentType string, data []byte) (objectKey string, err error) {
	ctx, scope := svc.otel.NewScope(ctx, constant.OtelS3ScopeName, constant.OtelS3ScopeName+".UploadBytes")
	defer scope.End()
	defer scope.TraceIfError(err)

	bucketName := svc.Config.External.S3.BucketName
	objectKey = path.Join(directory, objectName)

	scope.SetAttributes(map[string]any{
		otelAttrObject: objectKey,
		otelAttrBucket: bucketName,
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
		return constant.Empty, fmt.Errorf("failed to upload object to S3: %w", err)
	}

	return objectKey, nil
}

func New(config *config.Config, otel otel.Otel) S3 {
	endpoint := config.External.S3.Endpoint

	staticProvider := credentials.NewStaticCredentialsProvider(
		config.External.S3.AccessKey,
		config.External.S3.SecretKey,
		"",
	)

	cfg, err := awsConfig.LoadDefaultConfig(
		context.TODO(),
		awsConfig.WithCredentialsProvider(staticProvider),
	)

	if err != nil {
		log.Err(err).Msg("Error loading AWS configuration")
	}

	s3Client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		if endpoint != constant.Empty {
			o.BaseEndpoint = aws.String(endpoint)
			o.UsePathStyle = true
		}

		if config.External.S3.Region != constant.Empty {
			o.Region = config.External.S3.Region
		}
	})

	return &s3Impl{
		Client: s3Client,
		Config: config,
		otel:   otel,
	}
}
