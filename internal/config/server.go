package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Server holds all configuration for the LURK game server. A config
// file that doesn't exist yields defaults rather than an error, and
// CLI arguments layer on top after LoadServer returns.
type Server struct {
	BindAddress string `yaml:"bind_address"`
	Port        int    `yaml:"port"`

	// MapPath is the directory containing map files named "{N}.json".
	// MapNumber selects which one to load.
	MapPath   string `yaml:"map_path"`
	MapNumber int    `yaml:"map_number"`

	// ServerDescription is sent as part of the GAME message on
	// handshake.
	ServerDescription string `yaml:"server_description"`

	// InitialPoints/StatLimit bound new-character stat allocation and
	// are advertised in the GAME message.
	InitialPoints uint16 `yaml:"initial_points"`
	StatLimit     uint16 `yaml:"stat_limit"`

	// SendQueueSize is the per-connection outbound buffer capacity; a
	// connection whose queue fills is disconnected rather than allowed
	// to stall the game loop.
	SendQueueSize int `yaml:"send_queue_size"`

	// ReadTimeout is an idle-read deadline. Zero, the default, disables
	// it: connections end only on LEAVE, protocol violation, or socket
	// failure. Operators may opt into one for abandoned-connection
	// cleanup.
	ReadTimeout  time.Duration `yaml:"read_timeout"`
	WriteTimeout time.Duration `yaml:"write_timeout"`

	LogLevel string `yaml:"log_level"`
}

// DefaultServer returns Server config with sensible defaults.
func DefaultServer() Server {
	return Server{
		BindAddress:        "0.0.0.0",
		Port:               5050,
		MapPath:            "data/maps/",
		MapNumber:          0,
		ServerDescription:  "A LURK dungeon.",
		InitialPoints:      40,
		StatLimit:          500,
		SendQueueSize:      256,
		ReadTimeout:        0,
		WriteTimeout:       5 * time.Second,
		LogLevel:           "info",
	}
}

// LoadServer loads server config from a YAML file. If the file doesn't
// exist, returns defaults.
func LoadServer(path string) (Server, error) {
	cfg := DefaultServer()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config %s: %w", path, err)
	}

	return cfg, nil
}
