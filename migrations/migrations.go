// Package migrations embeds the SQL migrations for the Postgres sink.
package migrations

import "embed"

// FS holds the golang-migrate source files.
//
//go:embed *.sql
var FS embed.FS
