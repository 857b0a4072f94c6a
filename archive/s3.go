package archive

import (
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// S3Archiver implements Archiver backed by S3

type S3Archiver struct {
	bucket string
	prefix string
	s3     *s3.Client
}

func NewS3Archiver(s3Client *s3.Client, bucket, prefix string) *S3Archiver {
	return &S3Archiver{
		bucket: bucket,
		prefix: prefix,
		s3:     s3Client,
	}
}

func (a *S3Archiver) Save(ctx context.Context, county string, plan string) error {
	key := a.prefix + planKey(county)
	_, err := a.s3.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(a.bucket),
		Key:         aws.String(key),
		Body:        strings.NewReader(plan),
		ContentType: aws.String("text/markdown"),
	})
	if err != nil {
		return fmt.Errorf("failed to put plan object to S3: %w", err)
	}
	return nil
}
