// Package config loads tile2048 settings from YAML files with embedded defaults.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
)

// Config is the complete application configuration.
type Config struct {
	Board   BoardConfig   `yaml:"board"`
	Storage StorageConfig `yaml:"storage"`
	Log     LogConfig     `yaml:"log"`
	Server  ServerConfig  `yaml:"server"`
}

// BoardConfig sets up new games.
type BoardConfig struct {
	Column            int     `yaml:"column"`              // Board dimension
	ProbabilityOfFour float64 `yaml:"probability_of_four"` // Chance of spawning a 4
}

// StorageConfig locates the session database.
type StorageConfig struct {
	DBPath string `yaml:"db_path"`
}

// LogConfig controls the charmbracelet logger.
type LogConfig struct {
	Level string `yaml:"level"`
}

// ServerConfig contains settings for the SSH server.
type ServerConfig struct {
	Address            string `yaml:"address"`
	HostKeyPath        string `yaml:"host_key_path"`
	IdleTimeoutMinutes int    `yaml:"idle_timeout_minutes"`
}

// Board bounds accepted by Validate.
const (
	MinColumn = 2
	MaxColumn = 8
)

var (
	ErrInvalidColumn      = errors.New("board column out of range")
	ErrInvalidProbability = errors.New("probability of four out of range")
	ErrInvalidLogLevel    = errors.New("unknown log level")
)

// Validate checks the values that would otherwise fail deep inside the engine.
func (c Config) Validate() error {
	if c.Board.Column < MinColumn || c.Board.Column > MaxColumn {
		return fmt.Errorf("config: board.column %d: %w", c.Board.Column, ErrInvalidColumn)
	}
	if c.Board.ProbabilityOfFour < 0 || c.Board.ProbabilityOfFour > 1 {
		return fmt.Errorf("config: board.probability_of_four %v: %w", c.Board.ProbabilityOfFour, ErrInvalidProbability)
	}
	if _, err := c.LogLevel(); err != nil {
		return err
	}
	return nil
}

// LogLevel parses the configured level. An empty level means info.
func (c Config) LogLevel() (log.Level, error) {
	if c.Log.Level == "" {
		return log.InfoLevel, nil
	}
	level, err := log.ParseLevel(c.Log.Level)
	if err != nil {
		return 0, fmt.Errorf("config: log.level %q: %w", c.Log.Level, ErrInvalidLogLevel)
	}
	return level, nil
}

// IdleTimeout returns the SSH idle timeout. Zero disables it.
func (c ServerConfig) IdleTimeout() time.Duration {
	return time.Duration(c.IdleTimeoutMinutes) * time.Minute
}
