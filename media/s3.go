package media

import (
	"context"
	"io"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3manager"
	"github.com/pkg/errors"
)

// S3Store uploads images to a bucket. baseURL is usually a CDN in front of
// the bucket; without it URLs point at the bucket's virtual-hosted endpoint.
type S3Store struct {
	bucket   string
	baseURL  string
	uploader *s3manager.Uploader
	svc      *s3.S3
}

func NewS3Store(bucket, region, baseURL string) (*S3Store, error) {
	sess, err := session.NewSession(&aws.Config{
		Region: aws.String(region),
	})
	if err != nil {
		return nil, errors.Wrap(err, "create aws session")
	}
	if baseURL == "" {
		baseURL = "https://" + bucket + ".s3." + region + ".amazonaws.com/"
	}

	return &S3Store{
		bucket:   bucket,
		baseURL:  baseURL,
		uploader: s3manager.NewUploader(sess),
		svc:      s3.New(sess),
	}, nil
}

func (s *S3Store) Save(ctx context.Context, filename, contentType string, r io.Reader) (string, error) {
	key := NewKey(filename)
	input := &s3manager.UploadInput{
		ACL:    aws.String("public-read"),
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
		Body:   r,
	}
	if contentType != "" {
		input.ContentType = aws.String(contentType)
	}

	if _, err := s.uploader.UploadWithContext(ctx, input); err != nil {
		return "", errors.Wrapf(err, "upload %s to s3://%s", key, s.bucket)
	}
	return key, nil
}

func (s *S3Store) URL(key string) string {
	return joinURL(s.baseURL, key)
}

func (s *S3Store) Delete(ctx context.Context, key string) error {
	_, err := s.svc.DeleteObjectWithContext(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	return errors.Wrapf(err, "delete s3://%s/%s", s.bucket, key)
}
