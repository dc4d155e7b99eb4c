package gcp

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path"
	"strings"
	"time"

	"cloud.google.com/go/storage"
	"google.golang.org/api/option"

	"github.com/yungbote/listing-reel-backend/internal/platform/logger"
)

type BucketCategory string

const (
	BucketCategoryPhoto BucketCategory = "photo"
	BucketCategoryMusic BucketCategory = "music"
)

var ErrObjectNotFound = errors.New("object not found")

type BucketService interface {
	UploadFile(ctx context.Context, category BucketCategory, key string, file io.Reader) error
	DownloadFile(ctx context.Context, category BucketCategory, key string) (io.ReadCloser, error)
	DeleteFile(ctx context.Context, category BucketCategory, key string) error
	GetPublicURL(category BucketCategory, key string) string
}

type bucketService struct {
	log    *logger.Logger
	client *storage.Client
	cfg    StorageConfig
}

func NewBucketService(log *logger.Logger) (BucketService, error) {
	cfg, err := StorageConfigFromEnv()
	if err != nil {
		return nil, fmt.Errorf("resolve object storage config: %w", err)
	}
	return NewBucketServiceWithConfig(log, cfg)
}

func NewBucketServiceWithConfig(log *logger.Logger, cfg StorageConfig) (BucketService, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	client, err := newStorageClient(context.Background(), cfg)
	if err != nil {
		return nil, fmt.Errorf("create storage client: %w", err)
	}
	serviceLog := log.With("service", "BucketService")
	serviceLog.Info("Object storage initialized",
		"mode", cfg.Mode,
		"emulator_host", cfg.EmulatorHost,
		"public_base_url", cfg.PublicBaseURL,
		"photo_bucket", cfg.Photos.name,
		"music_bucket", cfg.Music.name,
	)
	return &bucketService{log: serviceLog, client: client, cfg: cfg}, nil
}

func newStorageClient(ctx context.Context, cfg StorageConfig) (*storage.Client, error) {
	if cfg.IsEmulator() {
		// The storage client reads the emulator endpoint from the environment only.
		_ = os.Setenv("STORAGE_EMULATOR_HOST", cfg.EmulatorHost)
		return storage.NewClient(ctx, option.WithoutAuthentication())
	}
	opts := append(ClientOptionsFromEnv(), option.WithScopes(storage.ScopeReadWrite))
	return storage.NewClient(ctx, opts...)
}

func (bs *bucketService) bucket(category BucketCategory) (bucketConfig, error) {
	switch category {
	case BucketCategoryPhoto:
		return bs.cfg.Photos, nil
	case BucketCategoryMusic:
		return bs.cfg.Music, nil
	}
	return bucketConfig{}, fmt.Errorf("unknown bucket category: %s", category)
}

func (bs *bucketService) UploadFile(ctx context.Context, category BucketCategory, key string, file io.Reader) error {
	b, err := bs.bucket(category)
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(ctx, 2*time.Minute)
	defer cancel()

	w := bs.client.Bucket(b.name).Object(key).NewWriter(ctx)
	w.ContentType = ContentTypeForKey(key)
	if _, err := io.Copy(w, file); err != nil {
		_ = w.Close()
		return fmt.Errorf("write %s/%s: %w", b.name, key, err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("close writer %s/%s: %w", b.name, key, err)
	}
	bs.log.Debug("Object uploaded", "bucket", b.name, "key", key)
	return nil
}

func (bs *bucketService) DeleteFile(ctx context.Context, category BucketCategory, key string) error {
	b, err := bs.bucket(category)
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()
	if err := bs.client.Bucket(b.name).Object(key).Delete(ctx); err != nil {
		if errors.Is(err, storage.ErrObjectNotExist) {
			return nil
		}
		return fmt.Errorf("delete %s/%s: %w", b.name, key, err)
	}
	return nil
}

// DownloadFile returns a reader whose Close also releases the download deadline.
func (bs *bucketService) DownloadFile(ctx context.Context, category BucketCategory, key string) (io.ReadCloser, error) {
	b, err := bs.bucket(category)
	if err != nil {
		return nil, err
	}
	ctx, cancel := context.WithTimeout(ctx, 2*time.Minute)
	if bs.cfg.IsEmulator() {
		rc, err := bs.emulatorDownload(ctx, b.name, key)
		if err != nil {
			cancel()
			return nil, err
		}
		return &cancelOnClose{ReadCloser: rc, cancel: cancel}, nil
	}
	r, err := bs.client.Bucket(b.name).Object(key).NewReader(ctx)
	if err != nil {
		cancel()
		if errors.Is(err, storage.ErrObjectNotExist) {
			return nil, fmt.Errorf("%s/%s: %w", b.name, key, ErrObjectNotFound)
		}
		return nil, fmt.Errorf("open reader %s/%s: %w", b.name, key, err)
	}
	return &cancelOnClose{ReadCloser: r, cancel: cancel}, nil
}

func (bs *bucketService) emulatorDownload(ctx context.Context, bucket, key string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, emulatorMediaURL(bs.cfg.EmulatorHost, bucket, key), nil)
	if err != nil {
		return nil, fmt.Errorf("build emulator request: %w", err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("emulator download: %w", err)
	}
	if resp.StatusCode == http.StatusNotFound {
		_ = resp.Body.Close()
		return nil, fmt.Errorf("%s/%s: %w", bucket, key, ErrObjectNotFound)
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		_ = resp.Body.Close()
		return nil, fmt.Errorf("emulator download failed: status=%d body=%s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	return resp.Body, nil
}

// GetPublicURL prefers the category CDN, then the emulator media endpoint, then the
// configured public base, then storage.googleapis.com.
func (bs *bucketService) GetPublicURL(category BucketCategory, key string) string {
	key = strings.TrimLeft(strings.TrimSpace(key), "/")
	b, err := bs.bucket(category)
	if err != nil {
		return key
	}
	switch {
	case b.cdnDomain != "":
		return fmt.Sprintf("https://%s/%s", b.cdnDomain, key)
	case bs.cfg.IsEmulator():
		base := bs.cfg.PublicBaseURL
		if base == "" {
			base = bs.cfg.EmulatorHost
		}
		return emulatorMediaURL(base, b.name, key)
	case bs.cfg.PublicBaseURL != "":
		return fmt.Sprintf("%s/%s/%s", bs.cfg.PublicBaseURL, b.name, key)
	}
	return fmt.Sprintf("https://storage.googleapis.com/%s/%s", b.name, key)
}

func emulatorMediaURL(base, bucket, key string) string {
	return fmt.Sprintf("%s/storage/v1/b/%s/o/%s?alt=media",
		strings.TrimRight(base, "/"), url.PathEscape(bucket), url.PathEscape(key))
}

type cancelOnClose struct {
	io.ReadCloser
	cancel context.CancelFunc
}

func (r *cancelOnClose) Close() error {
	err := r.ReadCloser.Close()
	r.cancel()
	return err
}

// ContentTypeForKey maps photo and audio extensions to MIME types.
func ContentTypeForKey(key string) string {
	ext := strings.ToLower(path.Ext(strings.SplitN(strings.TrimSpace(key), "?", 2)[0]))
	switch ext {
	case ".png":
		return "image/png"
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".webp":
		return "image/webp"
	case ".heic":
		return "image/heic"
	case ".mp3":
		return "audio/mpeg"
	case ".wav":
		return "audio/wav"
	case ".m4a":
		return "audio/mp4"
	case ".ogg":
		return "audio/ogg"
	case ".json":
		return "application/json"
	}
	return "application/octet-stream"
}
