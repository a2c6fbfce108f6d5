package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/goalbingo/internal/flagx"
	"github.com/dmitrijs2005/goalbingo/internal/timex"
)

// JsonConfig is the JSON file shape. Absent fields keep earlier values.
type JsonConfig struct {
	ServerEndpointAddr  string         `json:"server_endpoint_addr"`
	DatabasePath        string         `json:"database_path"`
	OnlineCheckInterval timex.Duration `json:"online_check_interval"`
	SaveDelay           timex.Duration `json:"save_delay"`
	MaxBoards           int            `json:"max_boards"`
	LogLevel            string         `json:"log_level"`
}

// parseJson overlays cfg with the file named by -c/-config in args.
// Panics on read or unmarshal errors.
func parseJson(cfg *Config, args []string) {
	path := flagx.ConfigPath(args)
	if path == "" {
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}
	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.ServerEndpointAddr != "" {
		cfg.ServerEndpointAddr = jc.ServerEndpointAddr
	}
	if jc.DatabasePath != "" {
		cfg.DatabasePath = jc.DatabasePath
	}
	if jc.OnlineCheckInterval.Duration != 0 {
		cfg.OnlineCheckInterval = jc.OnlineCheckInterval.Duration
	}
	if jc.SaveDelay.Duration != 0 {
		cfg.SaveDelay = jc.SaveDelay.Duration
	}
	if jc.MaxBoards != 0 {
		cfg.MaxBoards = jc.MaxBoards
	}
	if jc.LogLevel != "" {
		cfg.LogLevel = jc.LogLevel
	}
}
