package storage

import (
	"alcyxob/fitness-admin/internal/media"
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeObjects struct {
	put     *s3.PutObjectInput
	body    []byte
	deleted string
	err     error
}

func (f *fakeObjects) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.put = in
	f.body, _ = io.ReadAll(in.Body)
	return &s3.PutObjectOutput{}, nil
}

func (f *fakeObjects) DeleteObject(_ context.Context, in *s3.DeleteObjectInput, _ ...func(*s3.Options)) (*s3.DeleteObjectOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.deleted = aws.ToString(in.Key)
	return &s3.DeleteObjectOutput{}, nil
}

func TestS3Host_UploadPublic(t *testing.T) {
	objects := &fakeObjects{}
	h := &s3Host{client: objects, bucketName: "media", publicURL: "https://img.example.com"}

	res, err := h.Upload(context.Background(), UploadInput{
		Filename:    "loop.gif",
		ContentType: "image/gif",
		Data:        []byte("GIF89a"),
		Folder:      "animations",
		PublicID:    "animated-1",
	})
	require.NoError(t, err)
	assert.Equal(t, "animations/animated-1", res.PublicID)
	assert.Equal(t, "https://img.example.com/image/upload/animations/animated-1", res.URL)
	assert.Equal(t, "gif", res.Format)
	assert.Equal(t, "media", aws.ToString(objects.put.Bucket))
	assert.Equal(t, "image/gif", aws.ToString(objects.put.ContentType))
	assert.Equal(t, []byte("GIF89a"), objects.body)
}

func TestS3Host_UploadGeneratesID(t *testing.T) {
	h := &s3Host{client: &fakeObjects{}, bucketName: "media", publicURL: "https://img.example.com"}
	res, err := h.Upload(context.Background(), UploadInput{Data: []byte("x")})
	require.NoError(t, err)
	assert.Len(t, res.PublicID, 36)
}

func TestS3Host_PrivateBucketPresigns(t *testing.T) {
	h := &s3Host{
		client:     &fakeObjects{},
		bucketName: "media",
		presign: func(_ context.Context, key string, expires time.Duration) (string, error) {
			assert.Equal(t, DefaultPresignedURLExpiry, expires)
			return "https://signed.example.com/" + key + "?sig=1", nil
		},
	}
	assert.Equal(t, "https://signed.example.com/a/b?sig=1", h.URL("/a/b", media.Transform{Width: 10}))
	require.Len(t, h.Candidates(), 1)
	assert.Equal(t, "presigned", h.Candidates()[0].Name)
	assert.Equal(t, "https://signed.example.com/x?sig=1", h.Candidates()[0].URL("x"))
}

func TestS3Host_Delete(t *testing.T) {
	objects := &fakeObjects{}
	h := &s3Host{client: objects, bucketName: "media"}
	require.NoError(t, h.Delete(context.Background(), "a/b"))
	assert.Equal(t, "a/b", objects.deleted)

	objects.err = errors.New("denied")
	require.Error(t, h.Delete(context.Background(), "a/b"))
}
