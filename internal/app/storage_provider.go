package app

import (
	"errors"
	"fmt"

	"github.com/yungbote/listing-reel-backend/internal/platform/gcp"
	"github.com/yungbote/listing-reel-backend/internal/platform/logger"
)

var newBucketServiceWithConfig = gcp.NewBucketServiceWithConfig

type StorageProviderBootstrapErrorCode string

const (
	StorageProviderBootstrapErrorInvalidConfig StorageProviderBootstrapErrorCode = "invalid_config"
	StorageProviderBootstrapErrorConnectFailed StorageProviderBootstrapErrorCode = "connect_failed"
)

type StorageProviderBootstrapError struct {
	Code         StorageProviderBootstrapErrorCode
	Mode         string
	EmulatorHost string
	Cause        error
}

func (e *StorageProviderBootstrapError) Error() string {
	if e == nil {
		return "object storage bootstrap failed"
	}
	return fmt.Sprintf(
		"object storage bootstrap failed (code=%s mode=%q emulator_host=%q): %v",
		e.Code,
		e.Mode,
		e.EmulatorHost,
		e.Cause,
	)
}

func (e *StorageProviderBootstrapError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Cause
}

// resolveBucketService returns a nil bucket (and nil error) when no photo bucket is
// configured; photo upload and beat analysis then answer 503.
func resolveBucketService(log *logger.Logger) (gcp.BucketService, error) {
	storageCfg, cfgErr := gcp.StorageConfigFromEnv()
	if !storageCfg.Configured() {
		log.Warn("PHOTO_GCS_BUCKET_NAME not set; object storage disabled")
		return nil, nil
	}
	if cfgErr != nil {
		err := &StorageProviderBootstrapError{
			Code:         StorageProviderBootstrapErrorInvalidConfig,
			Mode:         string(storageCfg.Mode),
			EmulatorHost: storageCfg.EmulatorHost,
			Cause:        cfgErr,
		}
		log.Error("Object storage provider selection failed",
			"mode", storageCfg.Mode,
			"emulator_host", storageCfg.EmulatorHost,
			"error_code", err.Code,
			"error", cfgErr,
		)
		return nil, err
	}

	log.Info("Selecting object storage provider",
		"mode", storageCfg.Mode,
		"emulator_host", storageCfg.EmulatorHost,
	)
	bucket, err := newBucketServiceWithConfig(log, storageCfg)
	if err != nil {
		classified := &StorageProviderBootstrapError{
			Code:         StorageProviderBootstrapErrorConnectFailed,
			Mode:         string(storageCfg.Mode),
			EmulatorHost: storageCfg.EmulatorHost,
			Cause:        err,
		}
		log.Error("Object storage provider bootstrap failed",
			"mode", storageCfg.Mode,
			"error_code", classified.Code,
			"error", err,
		)
		return nil, classified
	}
	return bucket, nil
}

func storageProviderBootstrapErrorCode(err error) StorageProviderBootstrapErrorCode {
	var bootstrapErr *StorageProviderBootstrapError
	if errors.As(err, &bootstrapErr) && bootstrapErr.Code != "" {
		return bootstrapErr.Code
	}
	return StorageProviderBootstrapErrorConnectFailed
}
