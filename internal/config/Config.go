// Package config reads Camp Misty settings from the environment, an optional
// .env file and command line flags, in increasing order of precedence.
package config

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"

	"github.com/caarlos0/env/v11"
	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
)

// Game holds the settings both entry points share.
type Game struct {
	HistoryDBPath string `env:"CAMPMISTY_HISTORY" envDefault:"campmisty.db"`
	LogLevel      string `env:"CAMPMISTY_LOG_LEVEL" envDefault:"info"`
	KillerScript  string `env:"CAMPMISTY_KILLER_SCRIPT"`
	VictimScript  string `env:"CAMPMISTY_VICTIM_SCRIPT"`
}

// Client configures the local terminal game.
type Client struct {
	Game
	ListenAddr string `env:"CAMPMISTY_ADDR" envDefault:"127.0.0.1:7878"`
	WebSocket  bool   `env:"CAMPMISTY_WS"`
	LogFile    string `env:"CAMPMISTY_LOG_FILE" envDefault:"campmisty.log"`
}

// Server configures the SSH server.
type Server struct {
	Game
	Host                string `env:"CAMPMISTY_SSH_HOST" envDefault:"0.0.0.0"`
	Port                string `env:"CAMPMISTY_SSH_PORT" envDefault:"6996"`
	HostKeyPath         string `env:"CAMPMISTY_PRIVATE_KEY_PATH" envDefault:".ssh/id_ed25519"`
	MaxConnectionsPerIP int    `env:"CAMPMISTY_MAX_CONNECTIONS_PER_IP" envDefault:"2"`
}

func (s Server) Addr() string {
	return s.Host + ":" + s.Port
}

// Level parses LogLevel for charm log.
func (g Game) Level() (log.Level, error) {
	level, err := log.ParseLevel(g.LogLevel)
	if err != nil {
		return 0, fmt.Errorf("log level %q: %w", g.LogLevel, err)
	}
	return level, nil
}

// LoadDotEnv copies variables from a .env style file into the environment
// without overriding what is already set. A missing file is not an error.
func LoadDotEnv(path string) error {
	if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}

func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

func (g *Game) bindFlags(fs *flag.FlagSet) {
	fs.StringVar(&g.HistoryDBPath, "history", g.HistoryDBPath, "Path of the sqlite match history")
	fs.StringVar(&g.LogLevel, "log-level", g.LogLevel, "Log level (debug, info, warn, error)")
	fs.StringVar(&g.KillerScript, "killer-script", g.KillerScript, "Lua script playing the computer killer")
	fs.StringVar(&g.VictimScript, "victim-script", g.VictimScript, "Lua script playing the computer victim")
}

// ParseClient parses environment and flags into a Client.
func ParseClient(fs *flag.FlagSet, args []string) (Client, error) {
	var cfg Client
	if err := ParseEnv(&cfg); err != nil {
		return Client{}, err
	}
	cfg.bindFlags(fs)
	fs.StringVar(&cfg.ListenAddr, "addr", cfg.ListenAddr, "Address to host on or join")
	fs.BoolVar(&cfg.WebSocket, "ws", cfg.WebSocket, "Host and join over WebSocket instead of TCP")
	fs.StringVar(&cfg.LogFile, "log-file", cfg.LogFile, "File the game logs to")
	if err := fs.Parse(args); err != nil {
		return Client{}, err
	}
	if _, err := cfg.Level(); err != nil {
		return Client{}, err
	}
	return cfg, nil
}

// ParseServer parses environment and flags into a Server.
func ParseServer(fs *flag.FlagSet, args []string) (Server, error) {
	var cfg Server
	if err := ParseEnv(&cfg); err != nil {
		return Server{}, err
	}
	cfg.bindFlags(fs)
	fs.StringVar(&cfg.Host, "host", cfg.Host, "SSH listen host")
	fs.StringVar(&cfg.Port, "port", cfg.Port, "SSH listen port")
	fs.StringVar(&cfg.HostKeyPath, "key", cfg.HostKeyPath, "SSH host key path")
	fs.IntVar(&cfg.MaxConnectionsPerIP, "max-conns", cfg.MaxConnectionsPerIP, "Concurrent sessions allowed per IP")
	if err := fs.Parse(args); err != nil {
		return Server{}, err
	}
	if _, err := cfg.Level(); err != nil {
		return Server{}, err
	}
	if cfg.MaxConnectionsPerIP < 1 {
		return Server{}, fmt.Errorf("max connections per IP must be positive, got %d", cfg.MaxConnectionsPerIP)
	}
	return cfg, nil
}
