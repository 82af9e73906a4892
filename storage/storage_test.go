package storage

import (
	"context"
	"errors"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDiskSaveWritesFileAndReturnsURL(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "uploads")
	d := NewDisk(dir, "http://localhost:5002/")

	url, err := d.Save(context.Background(), "123-abc.png", "image/png", strings.NewReader("png-bytes"))
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:5002/uploads/123-abc.png", url)

	data, err := os.ReadFile(filepath.Join(dir, "123-abc.png"))
	require.NoError(t, err)
	assert.Equal(t, "png-bytes", string(data))
}

func TestDiskSaveStripsDirectories(t *testing.T) {
	dir := t.TempDir()
	d := NewDisk(dir, "")

	url, err := d.Save(context.Background(), "../../escape.png", "image/png", strings.NewReader("x"))
	require.NoError(t, err)
	assert.Equal(t, "/uploads/escape.png", url)
	assert.FileExists(t, filepath.Join(dir, "escape.png"))
}

type fakeObjects struct {
	input   *s3.PutObjectInput
	body    string
	deleted []string
	err     error
}

func (p *fakeObjects) PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	if p.err != nil {
		return nil, p.err
	}
	p.input = params
	data, _ := io.ReadAll(params.Body)
	p.body = string(data)
	return &s3.PutObjectOutput{}, nil
}

func (p *fakeObjects) DeleteObject(ctx context.Context, params *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error) {
	if p.err != nil {
		return nil, p.err
	}
	p.deleted = append(p.deleted, aws.ToString(params.Bucket)+":"+aws.ToString(params.Key))
	return &s3.DeleteObjectOutput{}, nil
}

func TestS3SaveUsesPrefixAndContentType(t *testing.T) {
	p := &fakeObjects{}
	s := &S3{client: p, Bucket: "shop", Prefix: "images", BaseURL: "https://cdn.example.com"}

	url, err := s.Save(context.Background(), "1-a.jpg", "image/jpeg", strings.NewReader("jpg"))
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/images/1-a.jpg", url)
	assert.Equal(t, "shop", aws.ToString(p.input.Bucket))
	assert.Equal(t, "images/1-a.jpg", aws.ToString(p.input.Key))
	assert.Equal(t, "image/jpeg", aws.ToString(p.input.ContentType))
	assert.Equal(t, "jpg", p.body)
}

func TestS3SaveReturnsPutError(t *testing.T) {
	s := &S3{client: &fakeObjects{err: errors.New("denied")}, Bucket: "shop"}

	_, err := s.Save(context.Background(), "1-a.jpg", "image/jpeg", strings.NewReader("jpg"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "denied")
}

func TestS3DeleteUsesPrefix(t *testing.T) {
	p := &fakeObjects{}
	s := &S3{client: p, Bucket: "shop", Prefix: "images"}

	require.NoError(t, s.Delete(context.Background(), "1-a.jpg"))
	assert.Equal(t, []string{"shop:images/1-a.jpg"}, p.deleted)

	s.client = &fakeObjects{err: errors.New("denied")}
	assert.Error(t, s.Delete(context.Background(), "1-a.jpg"))
}

func TestDiskDelete(t *testing.T) {
	dir := t.TempDir()
	d := NewDisk(dir, "")
	ctx := context.Background()

	_, err := d.Save(ctx, "1-a.png", "image/png", strings.NewReader("x"))
	require.NoError(t, err)
	require.NoError(t, d.Delete(ctx, "1-a.png"))
	assert.NoFileExists(t, filepath.Join(dir, "1-a.png"))

	assert.NoError(t, d.Delete(ctx, "1-a.png"))
}
