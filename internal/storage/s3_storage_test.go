package storage

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePutter struct {
	input *s3.PutObjectInput
	body  string
	err   error
}

func (f *fakePutter) PutObject(_ context.Context, params *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	f.input = params
	if params.Body != nil {
		b, _ := io.ReadAll(params.Body)
		f.body = string(b)
	}
	if f.err != nil {
		return nil, f.err
	}
	return &s3.PutObjectOutput{}, nil
}

type fakeSigner struct{}

func (fakeSigner) PresignGetObject(_ context.Context, params *s3.GetObjectInput, _ ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
	return &v4.PresignedHTTPRequest{URL: "https://signed.example.com/" + aws.ToString(params.Key)}, nil
}

func TestS3Storage_Upload(t *testing.T) {
	putter := &fakePutter{}
	store := &S3Storage{client: putter, signer: fakeSigner{}, bucket: "reports", region: "ap-south-1"}

	obj, err := store.Upload(context.Background(), "reports/stores", "stores.xlsx", "application/octet-stream", strings.NewReader("data"))
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(obj.Key, "reports/stores/"))
	assert.True(t, strings.HasSuffix(obj.Key, ".xlsx"))
	assert.Equal(t, "https://reports.s3.ap-south-1.amazonaws.com/"+obj.Key, obj.FileURL)
	assert.Equal(t, "https://signed.example.com/"+obj.Key, obj.DownloadURL)
	assert.Equal(t, "reports", aws.ToString(putter.input.Bucket))
	assert.Equal(t, "data", putter.body)
	assert.Contains(t, aws.ToString(putter.input.ContentDisposition), "stores.xlsx")
}

func TestS3Storage_UploadUsesBaseURL(t *testing.T) {
	store := &S3Storage{client: &fakePutter{}, signer: fakeSigner{}, bucket: "reports", baseURL: "https://cdn.example.com"}

	obj, err := store.Upload(context.Background(), "r", "a.xlsx", "application/octet-stream", strings.NewReader(""))
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/"+obj.Key, obj.FileURL)
}

func TestS3Storage_UploadError(t *testing.T) {
	store := &S3Storage{client: &fakePutter{err: errors.New("access denied")}, signer: fakeSigner{}, bucket: "reports"}

	_, err := store.Upload(context.Background(), "r", "a.xlsx", "application/octet-stream", strings.NewReader(""))
	assert.ErrorContains(t, err, "access denied")
}
