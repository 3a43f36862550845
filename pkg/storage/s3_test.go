package storage

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeS3 struct {
	puts    []*s3.PutObjectInput
	bodies  []string
	deletes []*s3.DeleteObjectInput
	putErr  error
}

func (f *fakeS3) PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	if f.putErr != nil {
		return nil, f.putErr
	}
	body, _ := io.ReadAll(params.Body)
	f.puts = append(f.puts, params)
	f.bodies = append(f.bodies, string(body))
	return &s3.PutObjectOutput{}, nil
}

func (f *fakeS3) DeleteObject(ctx context.Context, params *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error) {
	f.deletes = append(f.deletes, params)
	return &s3.DeleteObjectOutput{}, nil
}

func TestS3StoragePut(t *testing.T) {
	fake := &fakeS3{}
	store := NewS3StorageWithClient(fake, "gym-bucket")

	require.NoError(t, store.Put(context.Background(), "certificates/c.pdf", strings.NewReader("%PDF"), 4, "application/pdf"))
	require.Len(t, fake.puts, 1)
	put := fake.puts[0]
	assert.Equal(t, "gym-bucket", aws.ToString(put.Bucket))
	assert.Equal(t, "certificates/c.pdf", aws.ToString(put.Key))
	assert.Equal(t, "application/pdf", aws.ToString(put.ContentType))
	assert.Equal(t, int64(4), aws.ToInt64(put.ContentLength))
	assert.Equal(t, "%PDF", fake.bodies[0])
}

func TestS3StoragePutError(t *testing.T) {
	fake := &fakeS3{putErr: errors.New("denied")}
	store := NewS3StorageWithClient(fake, "gym-bucket")

	err := store.Put(context.Background(), "a.png", strings.NewReader("x"), 1, "image/png")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "denied")
}

func TestS3StorageDelete(t *testing.T) {
	fake := &fakeS3{}
	store := NewS3StorageWithClient(fake, "gym-bucket")

	require.NoError(t, store.Delete(context.Background(), "profiles/p.png"))
	require.Len(t, fake.deletes, 1)
	assert.Equal(t, "profiles/p.png", aws.ToString(fake.deletes[0].Key))

	assert.ErrorIs(t, store.Delete(context.Background(), "/abs"), ErrInvalidKey)
}
