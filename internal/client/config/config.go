package config

import (
	"os"
	"time"
)

// Config holds runtime settings for the CLI.
type Config struct {
	ServerEndpointAddr  string
	DatabasePath        string
	OnlineCheckInterval time.Duration
	SaveDelay           time.Duration
	MaxBoards           int
	LogLevel            string
}

func (c *Config) LoadDefaults() {
	c.ServerEndpointAddr = "127.0.0.1:50051"
	c.DatabasePath = "goalbingo.db"
	c.OnlineCheckInterval = 3 * time.Second
	c.SaveDelay = 500 * time.Millisecond
	c.MaxBoards = 3
	c.LogLevel = "warn"
}

// LoadConfig builds a Config from defaults, the JSON file and the process
// flags. It panics on unreadable configuration.
func LoadConfig() *Config {
	return load(os.Args[1:])
}

func load(args []string) *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg, args)
	parseFlags(cfg, args)
	return cfg
}
