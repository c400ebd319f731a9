// Package migrations embeds the SQL migration files into the binary so the
// store can bring any database file up to date at startup.
package migrations

import "embed"

//go:embed *.sql
var Migrations embed.FS
