package archive

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/dmitrijs2005/goalbingo/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type putCall struct {
	bucket, key string
	body        []byte
}

type fakePutter struct {
	calls  []putCall
	failAt int
}

func (f *fakePutter) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	if f.failAt > 0 && len(f.calls)+1 == f.failAt {
		return nil, errors.New("access denied")
	}
	body, _ := io.ReadAll(in.Body)
	f.calls = append(f.calls, putCall{bucket: aws.ToString(in.Bucket), key: aws.ToString(in.Key), body: body})
	return &s3.PutObjectOutput{}, nil
}

func stubClient(t *testing.T, p objectPutter, opts *s3.Options) {
	t.Helper()
	origLoad, origNew := loadDefaultAWSConfig, newS3ClientFromConfig
	loadDefaultAWSConfig = func(ctx context.Context, optFns ...func(*config.LoadOptions) error) (aws.Config, error) {
		return aws.Config{}, nil
	}
	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) objectPutter {
		for _, fn := range optFns {
			fn(opts)
		}
		return p
	}
	t.Cleanup(func() { loadDefaultAWSConfig, newS3ClientFromConfig = origLoad, origNew })
}

func sample(ids ...string) []storage.StoredBoard {
	out := make([]storage.StoredBoard, len(ids))
	for i, id := range ids {
		out[i] = storage.StoredBoard{ID: id, Name: "board " + id, Size: 3}
	}
	return out
}

func TestNewS3Archiver_Endpoint(t *testing.T) {
	opts := &s3.Options{}
	stubClient(t, &fakePutter{}, opts)

	_, err := NewS3Archiver(context.Background(), Settings{Bucket: "b", Endpoint: "http://minio:9000"})
	require.NoError(t, err)
	assert.Equal(t, "http://minio:9000", aws.ToString(opts.BaseEndpoint))
	assert.True(t, opts.UsePathStyle)
}

func TestNewS3Archiver_ConfigError(t *testing.T) {
	orig := loadDefaultAWSConfig
	loadDefaultAWSConfig = func(context.Context, ...func(*config.LoadOptions) error) (aws.Config, error) {
		return aws.Config{}, errors.New("no region")
	}
	t.Cleanup(func() { loadDefaultAWSConfig = orig })

	_, err := NewS3Archiver(context.Background(), Settings{})
	assert.ErrorContains(t, err, "load aws config")
}

func TestArchive_WritesOneObjectPerBoard(t *testing.T) {
	p := &fakePutter{}
	stubClient(t, p, &s3.Options{})

	a, err := NewS3Archiver(context.Background(), Settings{Bucket: "archive"})
	require.NoError(t, err)
	a.now = func() time.Time { return time.Unix(1700000000, 0) }

	n, err := a.Archive(context.Background(), "u1", sample("b1", "b2"))
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	require.Len(t, p.calls, 2)
	assert.Equal(t, "archive", p.calls[0].bucket)
	assert.Equal(t, "users/u1/archive/b1-1700000000.json", p.calls[0].key)
	assert.Equal(t, "users/u1/archive/b2-1700000000.json", p.calls[1].key)

	var got storage.StoredBoard
	require.NoError(t, json.Unmarshal(p.calls[1].body, &got))
	assert.Equal(t, "board b2", got.Name)
}

func TestArchive_StopsAtFailure(t *testing.T) {
	p := &fakePutter{failAt: 2}
	stubClient(t, p, &s3.Options{})

	a, err := NewS3Archiver(context.Background(), Settings{Bucket: "archive"})
	require.NoError(t, err)

	n, err := a.Archive(context.Background(), "u1", sample("b1", "b2", "b3"))
	assert.Equal(t, 1, n)
	assert.ErrorContains(t, err, "put board b2")
}
