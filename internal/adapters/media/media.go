package media

import (
	"fmt"
	"log/slog"

	"churchconnect/internal/domain"
)

// Config selects and configures the upload store.
type Config struct {
	Provider string // "local" or "s3"
	Local    LocalConfig
	S3       S3Config
}

// NewStore creates a MediaStore from config. Unknown providers fall back to local storage.
func NewStore(cfg Config, logger *slog.Logger) (domain.MediaStore, error) {
	switch cfg.Provider {
	case "s3":
		if cfg.S3.Bucket == "" {
			return nil, fmt.Errorf("s3 media store: bucket is required")
		}
		return NewS3Store(cfg.S3), nil
	case "local", "":
		return NewLocalStore(cfg.Local)
	default:
		logger.Warn("unknown media provider, using local", "provider", cfg.Provider)
		return NewLocalStore(cfg.Local)
	}
}
