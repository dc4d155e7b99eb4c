package gcp

import (
	"fmt"
	"net/url"
	"os"
	"strings"
)

type StorageMode string

const (
	StorageModeGCS      StorageMode = "gcs"
	StorageModeEmulator StorageMode = "gcs_emulator"
)

type bucketConfig struct {
	name      string
	cdnDomain string
}

// StorageConfig describes where listing photos and music tracks live.
type StorageConfig struct {
	Mode          StorageMode
	EmulatorHost  string
	PublicBaseURL string
	Photos        bucketConfig
	Music         bucketConfig
}

func (c StorageConfig) IsEmulator() bool { return c.Mode == StorageModeEmulator }

// Configured reports whether a photo bucket was named at all.
func (c StorageConfig) Configured() bool { return c.Photos.name != "" }

// StorageConfigFromEnv reads OBJECT_STORAGE_MODE, STORAGE_EMULATOR_HOST,
// OBJECT_STORAGE_PUBLIC_BASE_URL and the per-category bucket/CDN variables.
// A bare STORAGE_EMULATOR_HOST implies emulator mode.
func StorageConfigFromEnv() (StorageConfig, error) {
	cfg := StorageConfig{
		EmulatorHost:  strings.TrimRight(strings.TrimSpace(os.Getenv("STORAGE_EMULATOR_HOST")), "/"),
		PublicBaseURL: strings.TrimRight(strings.TrimSpace(os.Getenv("OBJECT_STORAGE_PUBLIC_BASE_URL")), "/"),
		Photos: bucketConfig{
			name:      strings.TrimSpace(os.Getenv("PHOTO_GCS_BUCKET_NAME")),
			cdnDomain: strings.TrimSpace(os.Getenv("PHOTO_CDN_DOMAIN")),
		},
		Music: bucketConfig{
			name:      strings.TrimSpace(os.Getenv("MUSIC_GCS_BUCKET_NAME")),
			cdnDomain: strings.TrimSpace(os.Getenv("MUSIC_CDN_DOMAIN")),
		},
	}
	if cfg.Music.name == "" {
		cfg.Music.name = cfg.Photos.name
	}

	raw := strings.ToLower(strings.TrimSpace(os.Getenv("OBJECT_STORAGE_MODE")))
	switch StorageMode(raw) {
	case "":
		cfg.Mode = StorageModeGCS
		if cfg.EmulatorHost != "" {
			cfg.Mode = StorageModeEmulator
		}
	case StorageModeGCS, StorageModeEmulator:
		cfg.Mode = StorageMode(raw)
	default:
		return cfg, fmt.Errorf("invalid OBJECT_STORAGE_MODE=%q (allowed: %q, %q)", raw, StorageModeGCS, StorageModeEmulator)
	}
	return cfg, cfg.Validate()
}

func (c StorageConfig) Validate() error {
	if c.Photos.name == "" {
		return fmt.Errorf("missing env var PHOTO_GCS_BUCKET_NAME")
	}
	if c.PublicBaseURL != "" && !absoluteURL(c.PublicBaseURL) {
		return fmt.Errorf("invalid OBJECT_STORAGE_PUBLIC_BASE_URL=%q; expected absolute URL like http://localhost:4443", c.PublicBaseURL)
	}
	if !c.IsEmulator() {
		return nil
	}
	if c.EmulatorHost == "" {
		return fmt.Errorf("OBJECT_STORAGE_MODE=%q requires STORAGE_EMULATOR_HOST to be set", StorageModeEmulator)
	}
	if !absoluteURL(c.EmulatorHost) {
		return fmt.Errorf("invalid STORAGE_EMULATOR_HOST=%q; expected absolute URL like http://fake-gcs:4443", c.EmulatorHost)
	}
	return nil
}

func absoluteURL(raw string) bool {
	u, err := url.Parse(raw)
	return err == nil && u.Scheme != "" && u.Host != ""
}
