package storage_test

import (
	"context"
	"errors"
	"testing"

	"loot-manager/core/storage"
	"loot-manager/core/storage/mocks"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestNewClient(t *testing.T) {
	t.Run("ValidConfig", func(t *testing.T) {
		cfg := storage.Config{
			Endpoint:  "localhost:9000",
			AccessKey: "testkey",
			SecretKey: "testsecret",
			UseSSL:    false,
			Bucket:    "datapacks",
			Region:    "us-east-1",
		}

		client, err := storage.NewClient(cfg)
		assert.NoError(t, err)
		assert.NotNil(t, client)
	})

	t.Run("EndpointWithHTTP", func(t *testing.T) {
		cfg := storage.Config{
			Endpoint:  "http://localhost:9000",
			AccessKey: "testkey",
			SecretKey: "testsecret",
			UseSSL:    false,
		}

		client, err := storage.NewClient(cfg)
		assert.NoError(t, err)
		assert.NotNil(t, client)
	})

	t.Run("EndpointWithHTTPS", func(t *testing.T) {
		cfg := storage.Config{
			Endpoint:  "https://s3.amazonaws.com",
			AccessKey: "testkey",
			SecretKey: "testsecret",
			UseSSL:    true,
			Region:    "us-east-1",
		}

		client, err := storage.NewClient(cfg)
		assert.NoError(t, err)
		assert.NotNil(t, client)
	})
}

func TestNewClient_DefaultTimeout(t *testing.T) {
	client, err := storage.NewClient(storage.Config{
		Endpoint:       "localhost:9000",
		AccessKey:      "testkey",
		SecretKey:      "testsecret",
		TimeoutSeconds: 0,
	})
	assert.NoError(t, err)
	assert.NotNil(t, client)
}

func TestEnsureBucket(t *testing.T) {
	ctx := context.Background()

	t.Run("Exists", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("BucketExists", mock.Anything, "datapacks").Return(true, nil)

		created, err := storage.EnsureBucket(ctx, client, "datapacks")
		require.NoError(t, err)
		assert.False(t, created)
		client.AssertNotCalled(t, "MakeBucket", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Created", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("BucketExists", mock.Anything, "datapacks").Return(false, nil)
		client.On("MakeBucket", mock.Anything, "datapacks", minio.MakeBucketOptions{}).Return(nil)

		created, err := storage.EnsureBucket(ctx, client, "datapacks")
		require.NoError(t, err)
		assert.True(t, created)
	})

	t.Run("Create Failure", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("BucketExists", mock.Anything, "datapacks").Return(false, nil)
		client.On("MakeBucket", mock.Anything, "datapacks", mock.Anything).Return(errors.New("quota"))

		_, err := storage.EnsureBucket(ctx, client, "datapacks")
		assert.EqualError(t, err, "failed to create bucket datapacks: quota")
	})
}
