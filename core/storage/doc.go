// Package storage provides an abstraction layer for object storage services.
//
// It wraps the MinIO Go client so that generated datapacks can be published to
// AWS S3 or a self-hosted MinIO instance.
//
// # Client Interface
//
// The Client interface abstracts the underlying storage provider, making it easier
// to mock storage interactions for unit testing (see core/storage/mocks).
//
// # Operations
//
//   - BucketExists: Verifies access to the target bucket.
//   - MakeBucket: Creates the bucket on first publish.
//   - PutObject: Uploads one datapack file.
//   - ListObjects: Lists objects under a datapack prefix.
//   - RemoveObjects: Prunes files left over from a previous publish.
//
// # Usage
//
//	client, err := storage.NewClient(cfg.Storage)
//	exists, err := client.BucketExists(ctx, cfg.Storage.Bucket)
package storage
