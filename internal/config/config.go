package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/adrg/xdg"
	"github.com/dustin/go-humanize"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// AppName is the directory name used under the XDG base directories.
const AppName = "wavestream"

type Config struct {
	// Default playlist when none is given on the command line.
	Playlist PlaylistConfig `koanf:"playlist"`

	Log     LogConfig     `koanf:"log"`
	Player  PlayerConfig  `koanf:"player"`
	Artwork ArtworkConfig `koanf:"artwork"`

	// Desktop notification with transport buttons.
	Notify NotifyConfig `koanf:"notify"`

	// MPRIS2 media player interface on the session bus.
	MPRIS MPRISConfig `koanf:"mpris"`
}

// PlaylistConfig holds playlist loading configuration.
type PlaylistConfig struct {
	File     string `koanf:"file"`      // .toml or .m3u playlist
	ReadTags *bool  `koanf:"read_tags"` // fill missing names from file tags (default: true)
	Watch    *bool  `koanf:"watch"`     // reload on change (default: true)
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level      string `koanf:"level"`        // debug, info, warn, error (default: info)
	File       string `koanf:"file"`         // log file path (default: $XDG_STATE_HOME/wavestream/wavestream.log)
	MaxSizeMB  int    `koanf:"max_size_mb"`  // rotate after this size (default: 10)
	MaxBackups int    `koanf:"max_backups"`  // rotated files to keep, negative keeps all (default: 3)
	MaxAgeDays int    `koanf:"max_age_days"` // days to keep rotated files (default: 28)
	Compress   *bool  `koanf:"compress"`     // gzip rotated files (default: true)
	Console    *bool  `koanf:"console"`      // also log to stderr (default: true)
}

// PlayerConfig holds audio engine configuration.
type PlayerConfig struct {
	SampleRate int           `koanf:"sample_rate"` // speaker rate in Hz (default: 44100)
	MaxSource  string        `koanf:"max_source"`  // largest source accepted, e.g. "256 MiB"
	SeekStep   time.Duration `koanf:"seek_step"`   // rewind/fast-forward step (default: 10s)
	Volume     *float64      `koanf:"volume"`      // 0.0-1.0 (default: 1.0)
	Autoplay   *bool         `koanf:"autoplay"`    // start the first track on launch (default: true)
}

// ArtworkConfig holds cover art fetching configuration.
type ArtworkConfig struct {
	Size     int           `koanf:"size"`      // long edge in pixels (default: 256)
	CacheDir string        `koanf:"cache_dir"` // default: $XDG_CACHE_HOME/wavestream/artwork
	Timeout  time.Duration `koanf:"timeout"`   // per download (default: 10s)
}

// NotifyConfig holds desktop notification configuration.
type NotifyConfig struct {
	Enabled   *bool `koanf:"enabled"`    // default: true
	TimeoutMS *int  `koanf:"timeout_ms"` // -1 server default, 0 never expire (default: -1)
}

// MPRISConfig holds MPRIS configuration.
type MPRISConfig struct {
	Enabled *bool  `koanf:"enabled"` // default: true
	Name    string `koanf:"name"`    // bus name suffix (default: wavestream)
}

// Load reads the configuration. When path is empty the user config and then
// ./config.toml are merged, later files winning. An explicit path must exist.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	if path != "" {
		path = expandPath(path)
		if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
			return nil, fmt.Errorf("load %s: %w", path, err)
		}
	} else {
		for _, p := range getConfigPaths() {
			if _, err := os.Stat(p); err == nil {
				if err := k.Load(file.Provider(p), toml.Parser()); err != nil {
					return nil, fmt.Errorf("load %s: %w", p, err)
				}
			}
		}
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, err
	}

	cfg.Playlist.File = expandPath(cfg.Playlist.File)
	cfg.Log.File = expandPath(cfg.Log.File)
	cfg.Artwork.CacheDir = expandPath(cfg.Artwork.CacheDir)
	cfg.Log.Level = strings.ToLower(strings.TrimSpace(cfg.Log.Level))

	if cfg.Player.MaxSource != "" {
		if _, err := humanize.ParseBytes(cfg.Player.MaxSource); err != nil {
			return nil, fmt.Errorf("player.max_source: %w", err)
		}
	}

	return cfg, nil
}

func getConfigPaths() []string {
	return []string{
		// 1. $XDG_CONFIG_HOME/wavestream/config.toml
		filepath.Join(xdg.ConfigHome, AppName, "config.toml"),
		// 2. ./config.toml (pwd, highest priority)
		"config.toml",
	}
}

func expandPath(path string) string {
	if path != "" && path[0] == '~' {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[1:])
		}
	}
	return path
}

func boolOr(p *bool, def bool) bool {
	if p == nil {
		return def
	}
	return *p
}

// GetPlaylistConfig returns the playlist configuration with defaults applied.
func (c *Config) GetPlaylistConfig() PlaylistConfig {
	cfg := c.Playlist
	readTags := boolOr(cfg.ReadTags, true)
	watch := boolOr(cfg.Watch, true)
	cfg.ReadTags = &readTags
	cfg.Watch = &watch
	return cfg
}

// GetLogConfig returns the logging configuration with defaults applied.
func (c *Config) GetLogConfig() LogConfig {
	cfg := c.Log

	switch cfg.Level {
	case "debug", "info", "warn", "error":
	default:
		cfg.Level = "info"
	}
	if cfg.File == "" {
		cfg.File = filepath.Join(xdg.StateHome, AppName, AppName+".log")
	}
	if cfg.MaxSizeMB <= 0 {
		cfg.MaxSizeMB = 10
	}
	if cfg.MaxBackups < 0 {
		cfg.MaxBackups = 0
	} else if cfg.MaxBackups == 0 {
		cfg.MaxBackups = 3
	}
	if cfg.MaxAgeDays <= 0 {
		cfg.MaxAgeDays = 28
	}
	compress := boolOr(cfg.Compress, true)
	console := boolOr(cfg.Console, true)
	cfg.Compress = &compress
	cfg.Console = &console

	return cfg
}

const (
	defaultSampleRate     = 44100
	defaultMaxSourceBytes = 256 << 20
	defaultSeekStep       = 10 * time.Second
)

// GetPlayerConfig returns the player configuration with defaults applied.
func (c *Config) GetPlayerConfig() PlayerConfig {
	cfg := c.Player

	if cfg.SampleRate < 8000 || cfg.SampleRate > 192000 {
		cfg.SampleRate = defaultSampleRate
	}
	if _, err := humanize.ParseBytes(cfg.MaxSource); err != nil || cfg.MaxSource == "" {
		cfg.MaxSource = humanize.IBytes(defaultMaxSourceBytes)
	}
	if cfg.SeekStep <= 0 {
		cfg.SeekStep = defaultSeekStep
	}
	volume := 1.0
	if cfg.Volume != nil && *cfg.Volume >= 0 && *cfg.Volume <= 1 {
		volume = *cfg.Volume
	}
	cfg.Volume = &volume
	autoplay := boolOr(cfg.Autoplay, true)
	cfg.Autoplay = &autoplay

	return cfg
}

// MaxSourceBytes returns the max_source limit in bytes.
func (p PlayerConfig) MaxSourceBytes() int64 {
	n, err := humanize.ParseBytes(p.MaxSource)
	if err != nil || n == 0 {
		return defaultMaxSourceBytes
	}
	return int64(n)
}

// GetArtworkConfig returns the artwork configuration with defaults applied.
func (c *Config) GetArtworkConfig() ArtworkConfig {
	cfg := c.Artwork

	if cfg.Size <= 0 || cfg.Size > 2048 {
		cfg.Size = 256
	}
	if cfg.CacheDir == "" {
		cfg.CacheDir = filepath.Join(xdg.CacheHome, AppName, "artwork")
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}

	return cfg
}

// GetNotifyConfig returns the notification configuration with defaults applied.
func (c *Config) GetNotifyConfig() NotifyConfig {
	cfg := c.Notify

	enabled := boolOr(cfg.Enabled, true)
	cfg.Enabled = &enabled
	timeout := -1
	if cfg.TimeoutMS != nil && *cfg.TimeoutMS >= -1 {
		timeout = *cfg.TimeoutMS
	}
	cfg.TimeoutMS = &timeout

	return cfg
}

// GetMPRISConfig returns the MPRIS configuration with defaults applied.
func (c *Config) GetMPRISConfig() MPRISConfig {
	cfg := c.MPRIS

	enabled := boolOr(cfg.Enabled, true)
	cfg.Enabled = &enabled
	cfg.Name = strings.TrimSpace(cfg.Name)
	if cfg.Name == "" {
		cfg.Name = AppName
	}

	return cfg
}
