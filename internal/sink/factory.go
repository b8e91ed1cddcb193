package sink

import (
	"context"
	"fmt"

	"rn-go/internal/config"
)

// NewSinkFromConfig creates a Sink implementation based on the sink config type.
func NewSinkFromConfig(ctx context.Context, cfg config.SinkConfig) (Sink, error) {
	switch cfg.Type {
	case "filesystem":
		if cfg.OutDir == "" {
			return nil, fmt.Errorf("filesystem sink requires out_dir to be set")
		}
		return NewFileSystemSink(cfg.OutDir)
	case "s3":
		return NewS3Sink(ctx, cfg)
	case "memory":
		return NewMemorySink(), nil
	default:
		return nil, fmt.Errorf("unknown sink type: %s", cfg.Type)
	}
}
