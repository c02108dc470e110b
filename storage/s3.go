package storage

import (
	"context"
	"io"
	"mime"
	"path"

	"gallery/config"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3manager"
)

type S3Store struct {
	svc    *s3.S3
	bucket string
}

func NewS3Store() *S3Store {
	awsConfig := aws.Config{
		Region:      aws.String(config.S3_REGION),
		Credentials: credentials.NewStaticCredentials(config.S3_KEY, config.S3_SECRET, ""),
	}
	if config.S3_ENDPOINT != "" {
		awsConfig.Endpoint = aws.String(config.S3_ENDPOINT)
		awsConfig.S3ForcePathStyle = aws.Bool(true)
	}
	sess := session.Must(session.NewSession(&awsConfig))
	return &S3Store{
		svc:    s3.New(sess),
		bucket: config.S3_BUCKET,
	}
}

func (s *S3Store) key(remotePath string) string {
	return path.Join(config.S3_PREFIX, remotePath)
}

func (s *S3Store) Upload(ctx context.Context, reader io.Reader, remotePath string) (string, error) {
	uploader := s3manager.NewUploaderWithClient(s.svc)
	contentType := mime.TypeByExtension(path.Ext(remotePath))
	input := s3manager.UploadInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.key(remotePath)),
		Body:   reader,
	}
	if contentType != "" {
		input.ContentType = aws.String(contentType)
	}
	if _, err := uploader.UploadWithContext(ctx, &input); err != nil {
		return "", err
	}
	return PublicURLFor(remotePath), nil
}

func (s *S3Store) Delete(ctx context.Context, remotePath string) error {
	_, err := s.svc.DeleteObjectWithContext(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.key(remotePath)),
	})
	return err
}
