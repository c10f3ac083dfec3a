package datapack

import (
	"bytes"
	"context"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"loot-manager/core/storage"

	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// RequiredEntries must exist under a published prefix for the game to load the pack.
// Entries ending in "/" are folders.
var RequiredEntries = []string{"data/", "pack.mcmeta"}

// PublishReport summarizes a Publish call.
type PublishReport struct {
	Bucket   string   `json:"bucket"`
	Prefix   string   `json:"prefix"`
	Uploaded []string `json:"uploaded"`
	Pruned   []string `json:"pruned"`
	Bytes    int64    `json:"bytes"`
}

// Publisher uploads a built datapack to object storage.
type Publisher struct {
	client storage.Client
	bucket string
	cfg    Config
	logger *zap.Logger
}

// NewPublisher creates a publisher writing to bucket.
func NewPublisher(client storage.Client, bucket string, cfg Config, logger *zap.Logger) *Publisher {
	return &Publisher{client: client, bucket: bucket, cfg: cfg, logger: logger}
}

// objectKey joins prefix and a slash-separated relative path.
func objectKey(prefix, rel string) string {
	if prefix == "" {
		return rel
	}
	return path.Join(prefix, rel)
}

// Publish uploads every file of dir under prefix. With prune, objects under
// prefix that are not part of dir are removed afterwards.
func (p *Publisher) Publish(ctx context.Context, dir, prefix string, prune bool) (*PublishReport, error) {
	if err := p.ensureBucket(ctx); err != nil {
		return nil, err
	}

	files, err := collectFiles(dir)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("datapack %s is empty", dir)
	}

	report := &PublishReport{Bucket: p.bucket, Prefix: prefix, Uploaded: make([]string, len(files))}
	sizes := make([]int64, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(1, p.cfg.UploadConcurrency))
	for i, rel := range files {
		g.Go(func() error {
			key := objectKey(prefix, rel)
			n, err := p.upload(gctx, filepath.Join(dir, filepath.FromSlash(rel)), key)
			if err != nil {
				return fmt.Errorf("failed to upload %s: %w", key, err)
			}
			report.Uploaded[i] = key
			sizes[i] = n
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	for _, n := range sizes {
		report.Bytes += n
	}
	p.logger.Info("Datapack uploaded",
		zap.String("bucket", p.bucket),
		zap.String("prefix", prefix),
		zap.Int("files", len(files)),
		zap.Int64("bytes", report.Bytes),
	)

	if prune {
		pruned, err := p.prune(ctx, prefix, report.Uploaded)
		if err != nil {
			return nil, err
		}
		report.Pruned = pruned
	}
	return report, nil
}

func (p *Publisher) ensureBucket(ctx context.Context) error {
	created, err := storage.EnsureBucket(ctx, p.client, p.bucket)
	if err != nil {
		return err
	}
	if created {
		p.logger.Info("Created bucket", zap.String("bucket", p.bucket))
	}
	return nil
}

func (p *Publisher) upload(ctx context.Context, file, key string) (int64, error) {
	f, err := os.Open(file)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return 0, err
	}
	_, err = p.client.PutObject(ctx, p.bucket, key, f, info.Size(), minio.PutObjectOptions{
		ContentType: contentType(key),
	})
	if err != nil {
		return 0, err
	}
	return info.Size(), nil
}

// prune removes objects under prefix that are not in keep.
func (p *Publisher) prune(ctx context.Context, prefix string, keep []string) ([]string, error) {
	wanted := make(map[string]bool, len(keep))
	for _, k := range keep {
		wanted[k] = true
	}

	listPrefix := prefix
	if listPrefix != "" && !strings.HasSuffix(listPrefix, "/") {
		listPrefix += "/"
	}

	var stale []minio.ObjectInfo
	for obj := range p.client.ListObjects(ctx, p.bucket, minio.ListObjectsOptions{Prefix: listPrefix, Recursive: true}) {
		if obj.Err != nil {
			return nil, fmt.Errorf("failed to list %s: %w", listPrefix, obj.Err)
		}
		if !wanted[obj.Key] && !strings.HasSuffix(obj.Key, "/") {
			stale = append(stale, obj)
		}
	}
	if len(stale) == 0 {
		return nil, nil
	}

	objectsCh := make(chan minio.ObjectInfo, len(stale))
	for _, obj := range stale {
		objectsCh <- obj
	}
	close(objectsCh)

	for rErr := range p.client.RemoveObjects(ctx, p.bucket, objectsCh, minio.RemoveObjectsOptions{}) {
		if rErr.Err != nil {
			return nil, fmt.Errorf("failed to remove %s: %w", rErr.ObjectName, rErr.Err)
		}
	}

	pruned := make([]string, len(stale))
	for i, obj := range stale {
		pruned[i] = obj.Key
	}
	p.logger.Info("Pruned stale objects", zap.Int("count", len(pruned)))
	return pruned, nil
}

// CheckStructure returns the required entries missing under prefix.
func (p *Publisher) CheckStructure(ctx context.Context, prefix string) ([]string, error) {
	exists, err := p.client.BucketExists(ctx, p.bucket)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket existence: %w", err)
	}
	if !exists {
		return nil, fmt.Errorf("bucket %s does not exist", p.bucket)
	}

	var missing []string
	for _, entry := range RequiredEntries {
		opts := minio.ListObjectsOptions{
			Prefix:    objectKey(prefix, entry) + trailingSlash(entry),
			Recursive: false,
			MaxKeys:   1,
		}

		// A file entry must match exactly; "pack.mcmeta.bak" shares its prefix.
		// Listing is lexicographic, so an exact key always comes first.
		folder := strings.HasSuffix(entry, "/")
		want := objectKey(prefix, entry)
		found := false
		for obj := range p.client.ListObjects(ctx, p.bucket, opts) {
			if obj.Err != nil {
				return nil, fmt.Errorf("failed to list %s: %w", opts.Prefix, obj.Err)
			}
			found = folder || obj.Key == want
			break
		}

		if !found {
			missing = append(missing, entry)
		}
	}
	return missing, nil
}

// FixStructure creates the missing entries: folders as empty markers and
// pack.mcmeta from the configured format and description.
func (p *Publisher) FixStructure(ctx context.Context, prefix string, missing []string) error {
	for _, entry := range missing {
		var body []byte
		if !strings.HasSuffix(entry, "/") {
			meta, err := PackMeta(p.cfg)
			if err != nil {
				return err
			}
			body = meta
		}

		key := objectKey(prefix, entry) + trailingSlash(entry)
		_, err := p.client.PutObject(ctx, p.bucket, key, bytes.NewReader(body), int64(len(body)), minio.PutObjectOptions{
			ContentType: contentType(key),
		})
		if err != nil {
			p.logger.Error("Failed to create entry", zap.String("entry", entry), zap.Error(err))
			return err
		}
		p.logger.Info("Created missing entry", zap.String("entry", entry))
	}
	return nil
}

// trailingSlash keeps the "/" of folder entries that path.Join strips.
func trailingSlash(entry string) string {
	if strings.HasSuffix(entry, "/") {
		return "/"
	}
	return ""
}

// collectFiles returns the regular files of dir as sorted slash-separated relative paths.
func collectFiles(dir string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(dir, p)
		if err != nil {
			return err
		}
		files = append(files, filepath.ToSlash(rel))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk datapack: %w", err)
	}
	sort.Strings(files)
	return files, nil
}

func contentType(key string) string {
	switch path.Ext(key) {
	case ".json", ".mcmeta":
		return "application/json"
	case ".mcfunction":
		return "text/plain; charset=utf-8"
	default:
		return "application/octet-stream"
	}
}
