package config

import (
	"flag"
	"io"
	"time"

	"github.com/dmitrijs2005/goalbingo/internal/flagx"
)

// parseFlags overlays cfg with the flags it knows about; others in args are
// ignored. Panics on malformed values.
func parseFlags(cfg *Config, args []string) {
	args = flagx.FilterArgs(args, []string{"-a", "-d", "-i", "-s", "-m", "-l"})

	fs := flag.NewFlagSet("goalbingo", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&cfg.ServerEndpointAddr, "a", cfg.ServerEndpointAddr, "address and port of the board server")
	fs.StringVar(&cfg.DatabasePath, "d", cfg.DatabasePath, "device database path")
	interval := fs.Int("i", int(cfg.OnlineCheckInterval.Seconds()), "online check interval (in seconds)")
	fs.DurationVar(&cfg.SaveDelay, "s", cfg.SaveDelay, "auto-save quiet period")
	fs.IntVar(&cfg.MaxBoards, "m", cfg.MaxBoards, "maximum number of boards")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level (debug, info, warn, error)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.OnlineCheckInterval = time.Duration(*interval) * time.Second
}
