package whats4dinner

import (
	"errors"
	"io/fs"
	"time"

	"github.com/joho/godotenv"
)

type SpoonacularConfig struct {
	APIKey  string        `env:"SPOONACULAR_API_KEY,required"`
	BaseURL string        `env:"SPOONACULAR_BASE_URL,default=https://api.spoonacular.com"`
	Timeout time.Duration `env:"SPOONACULAR_TIMEOUT,default=30s"`
}

// StorageConfig selects and configures the key-value backend holding the pantry.
// Backend is one of file, s3, redis or memory.
type StorageConfig struct {
	Backend       string `env:"STORAGE_BACKEND,default=file"`
	Dir           string `env:"STORAGE_DIR,default=data"`
	S3Bucket      string `env:"STORAGE_S3_BUCKET"`
	S3Prefix      string `env:"STORAGE_S3_PREFIX,default=whats4dinner/"`
	RedisAddr     string `env:"STORAGE_REDIS_ADDR,default=localhost:6379"`
	RedisPassword string `env:"STORAGE_REDIS_PASSWORD"`
	RedisDB       int    `env:"STORAGE_REDIS_DB,default=0"`
	RedisPrefix   string `env:"STORAGE_REDIS_PREFIX,default=whats4dinner:"`
}

type ServerConfig struct {
	Addr            string        `env:"HTTP_ADDR,default=:8080"`
	ShutdownTimeout time.Duration `env:"HTTP_SHUTDOWN_TIMEOUT,default=10s"`
	CallLogPath     string        `env:"CALL_LOG_PATH"`
	OtelEnabled     bool          `env:"OTEL_ENABLED,default=false"`
}

// CLIConfig configures cmd/pantry. When CallLogDir is set each run writes its
// API calls to a timestamped file there.
type CLIConfig struct {
	CallLogDir string `env:"CALL_LOG_DIR"`
}

type SlackConfig struct {
	WebhookURL string `env:"SLACK_WEBHOOK_URL"`
	Channel    string `env:"SLACK_CHANNEL,default=#dinner"`
	AppURL     string `env:"APP_URL"` // links in suggestions point here when set
}

// LoadDotEnv loads variables from the given .env files into the process
// environment. Files that do not exist are skipped; variables already set in
// the environment win over file values.
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, p := range paths {
		if err := godotenv.Load(p); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return err
		}
	}
	return nil
}
