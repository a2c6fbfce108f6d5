// Package archive keeps boards that a login merge could not fit into an
// account. Each board is written as a JSON object to S3-compatible storage.
package archive

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/dmitrijs2005/goalbingo/internal/storage"
)

var (
	loadDefaultAWSConfig = config.LoadDefaultConfig

	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) objectPutter {
		return s3.NewFromConfig(cfg, optFns...)
	}
)

type objectPutter interface {
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// Settings locate the archive bucket.
type Settings struct {
	User     string
	Password string
	Bucket   string
	Region   string
	Endpoint string
}

// S3Archiver writes boards to users/{userID}/archive/{boardID}-{unix}.json.
type S3Archiver struct {
	client objectPutter
	bucket string
	now    func() time.Time
}

// NewS3Archiver builds a client with static credentials. A non-empty
// Endpoint selects path-style addressing for MinIO and friends.
func NewS3Archiver(ctx context.Context, s Settings) (*S3Archiver, error) {
	cfg, err := loadDefaultAWSConfig(ctx,
		config.WithRegion(s.Region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(s.User, s.Password, "")),
	)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	client := newS3ClientFromConfig(cfg, func(o *s3.Options) {
		if s.Endpoint != "" {
			o.BaseEndpoint = aws.String(s.Endpoint)
			o.UsePathStyle = true
		}
	})

	return &S3Archiver{client: client, bucket: s.Bucket, now: time.Now}, nil
}

// ObjectKey names the archive object of one board.
func ObjectKey(userID, boardID string, at time.Time) string {
	return fmt.Sprintf("users/%s/archive/%s-%d.json", userID, boardID, at.Unix())
}

// Archive stores every board and returns how many were written. It stops at
// the first failure.
func (a *S3Archiver) Archive(ctx context.Context, userID string, boards []storage.StoredBoard) (int, error) {
	at := a.now()
	for i, b := range boards {
		body, err := json.Marshal(b)
		if err != nil {
			return i, fmt.Errorf("encode board %s: %w", b.ID, err)
		}
		_, err = a.client.PutObject(ctx, &s3.PutObjectInput{
			Bucket:      aws.String(a.bucket),
			Key:         aws.String(ObjectKey(userID, b.ID, at)),
			Body:        bytes.NewReader(body),
			ContentType: aws.String("application/json"),
		})
		if err != nil {
			return i, fmt.Errorf("put board %s: %w", b.ID, err)
		}
	}
	return len(boards), nil
}
