// Package migrations embeds the PostgreSQL schema migrations for the state
// store.
package migrations

import "embed"

// FS holds the golang-migrate up/down files.
//
//go:embed *.sql
var FS embed.FS
