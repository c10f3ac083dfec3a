package datapack

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"loot-manager/core/storage/mocks"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func buildPack(t *testing.T) string {
	t.Helper()
	dir := filepath.Join(t.TempDir(), "pack")
	_, err := newService(t, dir).Build(testRows())
	require.NoError(t, err)
	return dir
}

func newPublisher(client *mocks.Client) *Publisher {
	return NewPublisher(client, "datapacks", DefaultConfig(), zap.NewNop())
}

func TestPublish(t *testing.T) {
	dir := buildPack(t)
	client := new(mocks.Client)
	client.On("BucketExists", mock.Anything, "datapacks").Return(true, nil)
	client.On("PutObject", mock.Anything, "datapacks", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(minio.UploadInfo{}, nil)

	report, err := newPublisher(client).Publish(context.Background(), dir, "packs/lwi", false)
	require.NoError(t, err)

	assert.Equal(t, []string{
		"packs/lwi/data/village/functions/fill_village.mcfunction",
		"packs/lwi/data/village/functions/update_chests.mcfunction",
		"packs/lwi/data/village/loot_tables/chests/house.json",
		"packs/lwi/data/village/loot_tables/chests/house_ak.json",
		"packs/lwi/pack.mcmeta",
	}, report.Uploaded)
	assert.Positive(t, report.Bytes)
	assert.Empty(t, report.Pruned)
	client.AssertNumberOfCalls(t, "PutObject", 5)
	client.AssertCalled(t, "PutObject", mock.Anything, "datapacks", "packs/lwi/pack.mcmeta", mock.Anything, mock.Anything,
		minio.PutObjectOptions{ContentType: "application/json"})
	client.AssertNotCalled(t, "MakeBucket", mock.Anything, mock.Anything, mock.Anything)
}

func TestPublish_CreatesBucketAndPrunes(t *testing.T) {
	dir := buildPack(t)
	client := new(mocks.Client)
	client.On("BucketExists", mock.Anything, "datapacks").Return(false, nil)
	client.On("MakeBucket", mock.Anything, "datapacks", mock.Anything).Return(nil)
	client.On("PutObject", mock.Anything, "datapacks", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(minio.UploadInfo{}, nil)
	client.On("ListObjects", mock.Anything, "datapacks", minio.ListObjectsOptions{Prefix: "lwi/", Recursive: true}).
		Return(mocks.Objects("lwi/pack.mcmeta", "lwi/data/village/loot_tables/chests/old.json", "lwi/data/"))
	client.On("RemoveObjects", mock.Anything, "datapacks", mock.Anything, mock.Anything).
		Return(nil)

	report, err := newPublisher(client).Publish(context.Background(), dir, "lwi", true)
	require.NoError(t, err)
	assert.Equal(t, []string{"lwi/data/village/loot_tables/chests/old.json"}, report.Pruned)
	client.AssertCalled(t, "MakeBucket", mock.Anything, "datapacks", mock.Anything)
	client.AssertNumberOfCalls(t, "RemoveObjects", 1)
}

func TestPublish_PruneFailure(t *testing.T) {
	dir := buildPack(t)
	client := new(mocks.Client)
	client.On("BucketExists", mock.Anything, "datapacks").Return(true, nil)
	client.On("PutObject", mock.Anything, "datapacks", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(minio.UploadInfo{}, nil)
	client.On("ListObjects", mock.Anything, "datapacks", minio.ListObjectsOptions{Prefix: "lwi/", Recursive: true}).
		Return(mocks.Objects("lwi/stale.json"))
	client.On("RemoveObjects", mock.Anything, "datapacks", mock.Anything, mock.Anything).
		Return(mocks.RemoveErrors(errors.New("access denied"), "lwi/stale.json"))

	report, err := newPublisher(client).Publish(context.Background(), dir, "lwi", true)
	assert.Nil(t, report)
	assert.EqualError(t, err, "failed to remove lwi/stale.json: access denied")
}

func TestPublish_UploadFailure(t *testing.T) {
	dir := buildPack(t)
	client := new(mocks.Client)
	client.On("BucketExists", mock.Anything, "datapacks").Return(true, nil)
	client.On("PutObject", mock.Anything, "datapacks", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(minio.UploadInfo{}, errors.New("connection reset"))

	report, err := newPublisher(client).Publish(context.Background(), dir, "lwi", false)
	assert.Nil(t, report)
	assert.ErrorContains(t, err, "connection reset")
}

func TestPublish_BucketCheckFailure(t *testing.T) {
	client := new(mocks.Client)
	client.On("BucketExists", mock.Anything, "datapacks").Return(false, errors.New("denied"))

	_, err := newPublisher(client).Publish(context.Background(), t.TempDir(), "lwi", false)
	assert.EqualError(t, err, "failed to check bucket existence: denied")
}

func TestPublish_EmptyDir(t *testing.T) {
	client := new(mocks.Client)
	client.On("BucketExists", mock.Anything, "datapacks").Return(true, nil)

	_, err := newPublisher(client).Publish(context.Background(), t.TempDir(), "lwi", false)
	assert.ErrorContains(t, err, "is empty")
}

func TestCheckStructure(t *testing.T) {
	t.Run("Bucket Missing", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("BucketExists", mock.Anything, "datapacks").Return(false, nil)

		_, err := newPublisher(client).CheckStructure(context.Background(), "lwi")
		assert.ErrorContains(t, err, "does not exist")
	})

	t.Run("Pack Meta Missing", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("BucketExists", mock.Anything, "datapacks").Return(true, nil)
		client.On("ListObjects", mock.Anything, "datapacks", minio.ListObjectsOptions{Prefix: "lwi/data/", MaxKeys: 1}).
			Return(mocks.Objects("lwi/data/village/"))
		client.On("ListObjects", mock.Anything, "datapacks", minio.ListObjectsOptions{Prefix: "lwi/pack.mcmeta", MaxKeys: 1}).
			Return(mocks.Objects())

		missing, err := newPublisher(client).CheckStructure(context.Background(), "lwi")
		require.NoError(t, err)
		assert.Equal(t, []string{"pack.mcmeta"}, missing)
	})

	t.Run("Pack Meta Backup Only", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("BucketExists", mock.Anything, "datapacks").Return(true, nil)
		client.On("ListObjects", mock.Anything, "datapacks", minio.ListObjectsOptions{Prefix: "lwi/data/", MaxKeys: 1}).
			Return(mocks.Objects("lwi/data/village/"))
		client.On("ListObjects", mock.Anything, "datapacks", minio.ListObjectsOptions{Prefix: "lwi/pack.mcmeta", MaxKeys: 1}).
			Return(mocks.Objects("lwi/pack.mcmeta.bak"))

		missing, err := newPublisher(client).CheckStructure(context.Background(), "lwi")
		require.NoError(t, err)
		assert.Equal(t, []string{"pack.mcmeta"}, missing)
	})

	t.Run("Complete", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("BucketExists", mock.Anything, "datapacks").Return(true, nil)
		client.On("ListObjects", mock.Anything, "datapacks", minio.ListObjectsOptions{Prefix: "lwi/data/", MaxKeys: 1}).
			Return(mocks.Objects("lwi/data/village/functions/fill_village.mcfunction"))
		client.On("ListObjects", mock.Anything, "datapacks", minio.ListObjectsOptions{Prefix: "lwi/pack.mcmeta", MaxKeys: 1}).
			Return(mocks.Objects("lwi/pack.mcmeta"))

		missing, err := newPublisher(client).CheckStructure(context.Background(), "lwi")
		require.NoError(t, err)
		assert.Empty(t, missing)
	})
}

func TestFixStructure(t *testing.T) {
	client := new(mocks.Client)
	client.On("PutObject", mock.Anything, "datapacks", "lwi/data/", mock.Anything, int64(0), mock.Anything).
		Return(minio.UploadInfo{}, nil)
	client.On("PutObject", mock.Anything, "datapacks", "lwi/pack.mcmeta", mock.Anything, mock.MatchedBy(func(n int64) bool { return n > 0 }), mock.Anything).
		Return(minio.UploadInfo{}, nil)

	err := newPublisher(client).FixStructure(context.Background(), "lwi", []string{"data/", "pack.mcmeta"})
	require.NoError(t, err)
	client.AssertExpectations(t)
}

func TestFixStructure_Failure(t *testing.T) {
	client := new(mocks.Client)
	client.On("PutObject", mock.Anything, "datapacks", "lwi/data/", mock.Anything, int64(0), mock.Anything).
		Return(minio.UploadInfo{}, errors.New("read only"))

	err := newPublisher(client).FixStructure(context.Background(), "lwi", []string{"data/"})
	assert.EqualError(t, err, "read only")
}
