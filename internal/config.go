package internal

import (
	"fmt"
	"time"

	"github.com/Netflix/go-env"
	"github.com/samber/lo"
)

type Config struct {
	BadgerFilepath       string        `env:"BADGER_FILEPATH,required=true"`
	LogLevel             string        `env:"LOG_LEVEL,default=INFO"`
	BufferSize           int           `env:"BUFFER_SIZE,default=256"`
	SinkTimeout          time.Duration `env:"SINK_TIMEOUT,default=2s"`
	RestartInterval      time.Duration `env:"RESTART_INTERVAL,default=200ms"`
	UploadDir            string        `env:"UPLOAD_DIR,default=uploads"`
	MaxUploadSize        int64         `env:"MAX_UPLOAD_SIZE,default=10485760"`
	MaxContentLength     int           `env:"MAX_CONTENT_LENGTH,default=4096"`
	SequenceBandwidth    uint64        `env:"SEQUENCE_BANDWIDTH,default=100"`
	CensoredWords        []string      `env:"CENSORED_WORDS"`
	CensoredDir          string        `env:"CENSORED_DIR"`
	CharReplacement      string        `env:"CHARACTER_REPLACEMENT,default=*"`
	MonitorInterval      time.Duration `env:"MONITOR_INTERVAL,default=5s"`
	// LOW_CAPACITY_THRESHOLD is the fill percentage of the event buffer above which a warning is logged
	LowCapacityThreshold int           `env:"LOW_CAPACITY_THRESHOLD,default=80"`
}

// Load reads the configuration from the process environment
func Load() (Config, error) {
	var config Config
	if _, err := env.UnmarshalFromEnviron(&config); err != nil {
		return Config{}, fmt.Errorf("config error: %w", err)
	}
	if config.BadgerFilepath == "" {
		return Config{}, fmt.Errorf("BADGER_FILEPATH must not be empty")
	}
	config.CensoredWords = lo.Compact(config.CensoredWords)
	if config.BufferSize < 1 {
		return Config{}, fmt.Errorf("BUFFER_SIZE must be positive, got %d", config.BufferSize)
	}
	if config.SequenceBandwidth < 1 {
		return Config{}, fmt.Errorf("SEQUENCE_BANDWIDTH must be positive, got %d", config.SequenceBandwidth)
	}
	if config.MonitorInterval <= 0 {
		return Config{}, fmt.Errorf("MONITOR_INTERVAL must be positive, got %s", config.MonitorInterval)
	}
	if config.LowCapacityThreshold < 1 || config.LowCapacityThreshold > 100 {
		return Config{}, fmt.Errorf("LOW_CAPACITY_THRESHOLD must be a percentage, got %d", config.LowCapacityThreshold)
	}
	return config, nil
}

// Moderated tells whether censored words were configured, inline or as a directory of word files
func (c Config) Moderated() bool {
	return len(c.CensoredWords) > 0 || c.CensoredDir != ""
}

func CharacterRune(str string) (rune, error) {
	r := []rune(str)
	if len(r) != 1 {
		return 0, fmt.Errorf(
			"CHARACTER_REPLACEMENT must be a single character, got %q",
			str,
		)
	}
	return r[0], nil
}
