package settings

import (
	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
)

type Config struct {
	Deque  Deque  `mapstructure:"deque" validate:"required"`
	Logger Logger `mapstructure:"logger"`
}

// Deque is the configuration for a block-chained deque
type Deque struct {
	ElementSize   int   `mapstructure:"element_size" validate:"gte=1"`
	AllocCount    int   `mapstructure:"alloc_count" validate:"gte=1"`
	MaxBlockBytes int64 `mapstructure:"max_block_bytes" validate:"gte=0"` // Bytes, 0 = unlimited
}

// Logger is the configuration for the logger
type Logger struct {
	LogLevel    string `mapstructure:"log_level" validate:"omitempty,oneof=debug info warn error dpanic panic fatal"`
	FileLogName string `mapstructure:"file_log_name"`
	MaxBackups  int    `mapstructure:"max_backups" validate:"gte=0"`
	MaxAge      int    `mapstructure:"max_age" validate:"gte=0"`  // Days
	MaxSize     int    `mapstructure:"max_size" validate:"gte=0"` // Megabytes
	Compress    bool   `mapstructure:"compress"`
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks every tagged field of cfg.
func Validate(cfg any) error {
	if err := validate.Struct(cfg); err != nil {
		return errors.Wrap(err, "invalid configuration")
	}
	return nil
}
