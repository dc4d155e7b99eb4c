package temporalx

import (
	"time"

	"github.com/yungbote/listing-reel-backend/internal/platform/envutil"
	"github.com/yungbote/listing-reel-backend/internal/platform/logger"
)

type Config struct {
	Address   string
	Namespace string
	TaskQueue string
	// WorkflowType is the render workflow registered by the external worker.
	WorkflowType string

	ClientCertPath string
	ClientKeyPath  string
	ClientCAPath   string

	DialTimeout    time.Duration
	DialMaxWait    time.Duration
	DialBackoff    time.Duration
	DialBackoffMax time.Duration
	AutoRegister   bool
	RetentionDays  int
	RunTimeout     time.Duration
}

func LoadConfig(log *logger.Logger) Config {
	return Config{
		Address:      envutil.String(log, "TEMPORAL_ADDRESS", ""),
		Namespace:    envutil.String(log, "TEMPORAL_NAMESPACE", "listing-reel"),
		TaskQueue:    envutil.String(log, "TEMPORAL_TASK_QUEUE", "listing-video-render"),
		WorkflowType: envutil.String(log, "TEMPORAL_WORKFLOW_TYPE", "RenderListingVideo"),

		ClientCertPath: envutil.String(log, "TEMPORAL_CLIENT_CERT_PATH", ""),
		ClientKeyPath:  envutil.String(log, "TEMPORAL_CLIENT_KEY_PATH", ""),
		ClientCAPath:   envutil.String(log, "TEMPORAL_CLIENT_CA_PATH", ""),

		DialTimeout:    seconds(envutil.Int(log, "TEMPORAL_DIAL_TIMEOUT_SECONDS", 5)),
		DialMaxWait:    seconds(envutil.Int(log, "TEMPORAL_DIAL_MAX_WAIT_SECONDS", 30)),
		DialBackoff:    millis(envutil.Int(log, "TEMPORAL_DIAL_BACKOFF_MS", 250)),
		DialBackoffMax: millis(envutil.Int(log, "TEMPORAL_DIAL_BACKOFF_MAX_MS", 5000)),
		AutoRegister:   envutil.Bool(log, "TEMPORAL_AUTO_REGISTER_NAMESPACE", false),
		RetentionDays:  envutil.Int(log, "TEMPORAL_NAMESPACE_RETENTION_DAYS", 7),
		RunTimeout:     seconds(envutil.Int(log, "TEMPORAL_RUN_TIMEOUT_SECONDS", 1800)),
	}
}

func (c Config) Enabled() bool { return c.Address != "" }

func (c Config) usesTLS() bool {
	return c.ClientCertPath != "" || c.ClientKeyPath != "" || c.ClientCAPath != ""
}

func seconds(n int) time.Duration {
	if n < 0 {
		n = 0
	}
	return time.Duration(n) * time.Second
}

func millis(n int) time.Duration {
	if n < 0 {
		n = 0
	}
	return time.Duration(n) * time.Millisecond
}
