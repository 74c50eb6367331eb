// Package migrations embeds the SQL migration files so they can be used
// by the goose programmatic API for the SQLite and Postgres slot backends.
package migrations

import "embed"

// FS holds all *.sql migration files embedded at compile time.
// The statements stick to the SQL subset shared by SQLite and Postgres so one
// set of files serves both dialects.
//
//go:embed *.sql
var FS embed.FS
