// Package migrations embeds the Postgres schema of the board server.
package migrations

import "embed"

//go:embed *.sql
var Migrations embed.FS
