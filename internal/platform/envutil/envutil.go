package envutil

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"github.com/yungbote/listing-reel-backend/internal/platform/logger"
)

// LoadDotEnv loads the given files (default ".env") without overriding variables that are
// already set in the process environment. Missing files are not an error.
func LoadDotEnv(log *logger.Logger, files ...string) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if _, err := os.Stat(f); err != nil {
			continue
		}
		if err := godotenv.Load(f); err != nil {
			if log != nil {
				log.Warn("Could not load env file", "file", f, "error", err)
			}
			continue
		}
		if log != nil {
			log.Info("Loaded env file", "file", f)
		}
	}
}

func String(log *logger.Logger, key, def string) string {
	val, ok := os.LookupEnv(key)
	val = strings.TrimSpace(val)
	if !ok || val == "" {
		debugDefault(log, key, def)
		return def
	}
	return val
}

func Int(log *logger.Logger, key string, def int) int {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		debugDefault(log, key, def)
		return def
	}
	i, err := strconv.Atoi(raw)
	if err != nil {
		if log != nil {
			log.Warn("Environment variable is not an int, using default", "env_var", key, "provided", raw, "default", def)
		}
		return def
	}
	return i
}

func Float(log *logger.Logger, key string, def float64) float64 {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		debugDefault(log, key, def)
		return def
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		if log != nil {
			log.Warn("Environment variable is not a float, using default", "env_var", key, "provided", raw, "default", def)
		}
		return def
	}
	return f
}

func Bool(log *logger.Logger, key string, def bool) bool {
	switch strings.ToLower(strings.TrimSpace(os.Getenv(key))) {
	case "":
		debugDefault(log, key, def)
		return def
	case "1", "true", "yes", "on":
		return true
	case "0", "false", "no", "off":
		return false
	default:
		return def
	}
}

func debugDefault(log *logger.Logger, key string, def interface{}) {
	if log != nil {
		log.Debug("Environment variable not set, using default", "env_var", key, "default", def)
	}
}
