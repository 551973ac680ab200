package config

import (
	_ "embed"
)

//go:embed defaults/tile2048.yaml
var defaultYAML []byte

// Default returns the hardcoded configuration used when no YAML is usable.
func Default() Config {
	return Config{
		Board: BoardConfig{
			Column:            4,
			ProbabilityOfFour: 0.25,
		},
		Storage: StorageConfig{
			DBPath: "~/.tile2048/tile2048.db",
		},
		Log: LogConfig{
			Level: "info",
		},
		Server: ServerConfig{
			Address:            ":2048",
			HostKeyPath:        "~/.tile2048/ssh_host_ed25519",
			IdleTimeoutMinutes: 30,
		},
	}
}
