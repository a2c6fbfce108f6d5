package config

import (
	"flag"
	"io"

	"github.com/dmitrijs2005/goalbingo/internal/flagx"
)

// parseFlags overlays cfg with command-line flags.
//
// Supported flags (short forms):
//
//	-a string    gRPC bind address (e.g. ":50051")
//	-h string    health endpoint bind address
//	-d string    PostgreSQL DSN
//	-k string    JWT HMAC secret key
//	-t duration  access token validity
//	-r duration  refresh token validity
//	-m int       boards per account
//	-redis string  Redis URL
//	-u string    S3 user
//	-p string    S3 password
//	-b string    S3 bucket
//	-g string    S3 region
//	-e string    S3 base endpoint
//	-l string    log level
func parseFlags(cfg *Config, args []string) {
	args = flagx.FilterArgs(args, []string{"-a", "-h", "-d", "-k", "-t", "-r", "-m", "-redis", "-u", "-p", "-b", "-g", "-e", "-l"})

	fs := flag.NewFlagSet("goalbingo-server", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&cfg.EndpointAddrGRPC, "a", cfg.EndpointAddrGRPC, "address and port to run server")
	fs.StringVar(&cfg.HTTPAddr, "h", cfg.HTTPAddr, "address of the health endpoint")
	fs.StringVar(&cfg.DatabaseDSN, "d", cfg.DatabaseDSN, "database DSN")
	fs.StringVar(&cfg.SecretKey, "k", cfg.SecretKey, "secret key")
	fs.DurationVar(&cfg.AccessTokenValidityDuration, "t", cfg.AccessTokenValidityDuration, "access token validity")
	fs.DurationVar(&cfg.RefreshTokenValidityDuration, "r", cfg.RefreshTokenValidityDuration, "refresh token validity")
	fs.IntVar(&cfg.MaxBoards, "m", cfg.MaxBoards, "maximum boards per account")
	fs.StringVar(&cfg.RedisURL, "redis", cfg.RedisURL, "redis URL for the board cache")
	fs.StringVar(&cfg.S3RootUser, "u", cfg.S3RootUser, "S3 user")
	fs.StringVar(&cfg.S3RootPassword, "p", cfg.S3RootPassword, "S3 password")
	fs.StringVar(&cfg.S3Bucket, "b", cfg.S3Bucket, "S3 archive bucket")
	fs.StringVar(&cfg.S3Region, "g", cfg.S3Region, "S3 region")
	fs.StringVar(&cfg.S3BaseEndpoint, "e", cfg.S3BaseEndpoint, "S3 base endpoint")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level (debug, info, warn, error)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}
}
