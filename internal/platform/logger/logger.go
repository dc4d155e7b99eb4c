package logger

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"strings"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger is a thin key/value facade over zap's sugared logger. Its method set also
// satisfies go.temporal.io/sdk/log.Logger.
type Logger struct {
	SugaredLogger *zap.SugaredLogger
}

func New(mode string) (*Logger, error) {
	var cfg zap.Config
	switch strings.ToLower(strings.TrimSpace(mode)) {
	case "prod", "production":
		cfg = zap.NewProductionConfig()
		cfg.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	case "test":
		cfg = zap.NewDevelopmentConfig()
		cfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
		cfg.DisableStacktrace = true
	default:
		cfg = zap.NewDevelopmentConfig()
		cfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}
	zl, err := cfg.Build(zap.AddCallerSkip(1))
	if err != nil {
		return nil, err
	}
	return &Logger{SugaredLogger: zl.Sugar()}, nil
}

// Nop returns a logger that discards everything.
func Nop() *Logger {
	return &Logger{SugaredLogger: zap.NewNop().Sugar()}
}

func (l *Logger) Sync() {
	if l == nil || l.SugaredLogger == nil {
		return
	}
	_ = l.SugaredLogger.Sync()
}

func (l *Logger) Debug(msg string, keyvals ...interface{}) {
	l.SugaredLogger.Debugw(msg, scrub(keyvals)...)
}

func (l *Logger) Info(msg string, keyvals ...interface{}) {
	l.SugaredLogger.Infow(msg, scrub(keyvals)...)
}

func (l *Logger) Warn(msg string, keyvals ...interface{}) {
	l.SugaredLogger.Warnw(msg, scrub(keyvals)...)
}

func (l *Logger) Error(msg string, keyvals ...interface{}) {
	l.SugaredLogger.Errorw(msg, scrub(keyvals)...)
}

func (l *Logger) Fatal(msg string, keyvals ...interface{}) {
	l.SugaredLogger.Fatalw(msg, scrub(keyvals)...)
}

func (l *Logger) With(keyvals ...interface{}) *Logger {
	return &Logger{SugaredLogger: l.SugaredLogger.With(scrub(keyvals)...)}
}

var (
	scrubOnce    sync.Once
	scrubEnabled bool
	scrubSalt    string
)

func scrubbing() bool {
	scrubOnce.Do(func() {
		switch strings.ToLower(strings.TrimSpace(os.Getenv("LOG_REDACTION_ENABLED"))) {
		case "0", "false", "no", "off":
			scrubEnabled = false
		default:
			scrubEnabled = true
		}
		scrubSalt = strings.TrimSpace(os.Getenv("LOG_HASH_SALT"))
	})
	return scrubEnabled
}

func scrub(kv []interface{}) []interface{} {
	if len(kv) < 2 || !scrubbing() {
		return kv
	}
	out := make([]interface{}, 0, len(kv))
	for i := 0; i+1 < len(kv); i += 2 {
		key := fmt.Sprint(kv[i])
		out = append(out, key, scrubValue(strings.ToLower(key), kv[i+1]))
	}
	if len(kv)%2 == 1 {
		out = append(out, kv[len(kv)-1])
	}
	return out
}

func scrubValue(key string, val interface{}) interface{} {
	switch {
	case secretKey(key):
		return "[REDACTED]"
	case contactKey(key):
		return digest(fmt.Sprint(val))
	}
	if m, ok := val.(map[string]interface{}); ok {
		out := make(map[string]interface{}, len(m))
		for k, v := range m {
			out[k] = scrubValue(strings.ToLower(k), v)
		}
		return out
	}
	return val
}

func secretKey(key string) bool {
	for _, frag := range []string{"token", "secret", "password", "authorization", "api_key", "apikey", "credentials"} {
		if strings.Contains(key, frag) {
			return true
		}
	}
	return false
}

// Agent contact details end up in payloads; keep them correlatable but unreadable.
func contactKey(key string) bool {
	return strings.Contains(key, "email") || strings.Contains(key, "phone")
}

func digest(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	sum := sha256.Sum256([]byte(scrubSalt + raw))
	return "hash:" + hex.EncodeToString(sum[:])[:12]
}
