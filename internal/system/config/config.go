// Released under an MIT license. See LICENSE.

// Package config layers defaults, a YAML file, SKETCH_ environment
// variables and command line overrides.
package config

import (
	"errors"
	"os"
	"strings"

	"github.com/michaelmacinnis/sketch/internal/engine/scene"
	"github.com/michaelmacinnis/sketch/internal/system/logging"
	"github.com/spf13/viper"
)

const (
	envPrefix = "SKETCH"

	framesKey     = "run.frames"
	accumulateKey = "scene.accumulate"
	sinkKindKey   = "sink.kind"
	sinkRecordKey = "sink.record"
	sinkListenKey = "sink.listen"

	logFilenameKey   = "log.filename"
	logLevelKey      = "log.level"
	logVerboseKey    = "log.verbose"
	logMaxSizeKey    = "log.max_size"
	logMaxBackupsKey = "log.max_backups"
	logMaxAgeKey     = "log.max_age"
	logCompressKey   = "log.compress"

	defaultFrames     = 1
	defaultAccumulate = false
	defaultSinkKind   = "console"
	defaultSinkRecord = "frames.yaml"
	defaultSinkListen = "localhost:8080"

	defaultLogLevel      = "info"
	defaultLogVerbose    = false
	defaultLogMaxSize    = 10
	defaultLogMaxBackups = 3
	defaultLogMaxAge     = 28
	defaultLogCompress   = true
)

// Sink kinds.
const (
	Console = "console"
	Record  = "record"
	WS      = "ws"
)

// T (config) holds the merged configuration for one invocation.
type T struct {
	v *viper.Viper
}

// New creates a configuration holding only defaults and the environment.
func New() *T {
	v := viper.New()

	v.SetConfigType("yaml")
	v.AutomaticEnv()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))

	v.SetDefault(framesKey, defaultFrames)
	v.SetDefault(accumulateKey, defaultAccumulate)
	v.SetDefault(sinkKindKey, defaultSinkKind)
	v.SetDefault(sinkRecordKey, defaultSinkRecord)
	v.SetDefault(sinkListenKey, defaultSinkListen)

	v.SetDefault(logFilenameKey, logging.DefaultFilename)
	v.SetDefault(logLevelKey, defaultLogLevel)
	v.SetDefault(logVerboseKey, defaultLogVerbose)
	v.SetDefault(logMaxSizeKey, defaultLogMaxSize)
	v.SetDefault(logMaxBackupsKey, defaultLogMaxBackups)
	v.SetDefault(logMaxAgeKey, defaultLogMaxAge)
	v.SetDefault(logCompressKey, defaultLogCompress)

	return &T{v: v}
}

// Load creates a configuration and reads path. A missing file is not an
// error. Overrides take precedence over everything else.
func Load(path string, overrides map[string]interface{}) (*T, error) {
	c := New()

	if path != "" {
		c.v.SetConfigFile(path)

		if err := c.v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) && !errors.Is(err, os.ErrNotExist) {
				return nil, err
			}
		}
	}

	for k, v := range overrides {
		c.v.Set(k, v)
	}

	return c, nil
}

// Frames returns the number of frames per scene.
func (c *T) Frames() int {
	return c.v.GetInt(framesKey)
}

// Logging returns the logger settings.
func (c *T) Logging() logging.Settings {
	return logging.Settings{
		Filename:   c.v.GetString(logFilenameKey),
		Level:      c.v.GetString(logLevelKey),
		Verbose:    c.v.GetBool(logVerboseKey),
		MaxSize:    c.v.GetInt(logMaxSizeKey),
		MaxBackups: c.v.GetInt(logMaxBackupsKey),
		MaxAge:     c.v.GetInt(logMaxAgeKey),
		Compress:   c.v.GetBool(logCompressKey),
	}
}

// Policy returns the scene policy.
func (c *T) Policy() scene.Policy {
	if c.v.GetBool(accumulateKey) {
		return scene.Accumulate
	}

	return scene.Redraw
}

// Sink returns the configured sink kind.
func (c *T) Sink() string {
	return strings.ToLower(c.v.GetString(sinkKindKey))
}

// SinkListen returns the address for the websocket sink.
func (c *T) SinkListen() string {
	return c.v.GetString(sinkListenKey)
}

// SinkRecord returns the file for the record sink.
func (c *T) SinkRecord() string {
	return c.v.GetString(sinkRecordKey)
}
