// Package config loads runtime configuration for the goal bingo CLI.
//
// Sources, later ones overriding earlier ones:
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file named by -c or -config.
//  3. Command-line flags.
//
// Supported flags
//
//	-a string     address:port of the board server
//	-d string     path of the device database
//	-i int        online status check interval (seconds)
//	-s duration   auto-save quiet period
//	-m int        maximum number of boards
//	-l string     log level
//
// JSON durations accept "500ms" style strings or integer nanoseconds:
//
//	{
//	  "server_endpoint_addr": "127.0.0.1:50051",
//	  "database_path": "goalbingo.db",
//	  "save_delay": "500ms",
//	  "max_boards": 3
//	}
package config
